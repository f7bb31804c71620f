// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Postgres connection string or SQLite DSN (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - IPSalt: Secret for voter IP fingerprints (required)
  - AdminKey: Enables the project admin endpoints (optional)
  - LogLevel: slog level name (default: info)

# Sources

Values are resolved in this order, later wins:

 1. struct defaults (envDefault tags)
 2. .env file in the working directory (never overrides the real environment)
 3. environment variables, parsed with caarlos0/env
 4. CLI flags

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	--ip-salt     IP fingerprint salt
	--admin-key   Admin key
	--log-level   Log level

# Environment Variables

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	IP_SALT       → --ip-salt
	ADMIN_KEY     → --admin-key
	LOG_LEVEL     → --log-level

# Validation

ParseFlags returns an error if DATABASE_URL or IP_SALT is missing, the
database type is unknown, the port is out of range or the log level
cannot be parsed.
*/
package cliparse

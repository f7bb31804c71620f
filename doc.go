// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the hackathon showcase server.

The showcase lists hackathon projects, renders a detail page per project,
lets visitors vote once per IP and shows a leaderboard. The same data is
served as JSON under /api.

# Starting the Server

The server reads environment variables, an optional .env file, or CLI flags:

	DATABASE_URL=showcase.db IP_SALT=... go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..." -ip-salt ...

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - IP_SALT (-ip-salt): Secret for voter IP fingerprints

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - ADMIN_KEY (-admin-key): Enables the /api/admin endpoints
  - LOG_LEVEL (-log-level): debug, info, warn or error (default: info)

# Architecture

  - handlers: JSON handlers and HTML pages
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, client IP
  - store: Vote and project queries for both databases
  - models: Request/response and domain types
  - auth: IP fingerprints and admin key checks
  - db: Connection and schema creation
  - cliparse: Configuration parsing
  - iplookup, voteclient: Client side of the vote button
  - cmd/vote: Terminal vote button

See package documentation for each component.
*/
package main

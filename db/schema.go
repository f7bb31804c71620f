// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	conn, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}

	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		// SQLite allows one writer; a single connection also keeps :memory: databases alive
		conn.SetMaxOpenConns(1)
		if _, err := conn.Exec(`PRAGMA foreign_keys = ON`); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, dialect string) error {
	var schema string
	switch dialect {
	case cliparse.DatabasePostgres:
		schema = postgresSchema
	case cliparse.DatabaseSQLite:
		schema = sqliteSchema
	default:
		return fmt.Errorf("failed to create schema: unsupported dialect %q", dialect)
	}

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const postgresSchema = `
-- Projects
CREATE TABLE IF NOT EXISTS project (
    id BIGINT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    theme JSONB NOT NULL DEFAULT '[]',
    team_name TEXT NOT NULL DEFAULT '',
    members JSONB NOT NULL DEFAULT '[]',
    thumbnail TEXT NOT NULL DEFAULT '',
    demo_url TEXT NOT NULL DEFAULT '',
    source_url TEXT NOT NULL DEFAULT '',
    video_url TEXT NOT NULL DEFAULT ''
);

-- Vote counters, one per project, with voter IP fingerprints
CREATE TABLE IF NOT EXISTS project_votes (
    project_id BIGINT PRIMARY KEY REFERENCES project(id) ON DELETE CASCADE,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    voter_ips TEXT[] NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_project_votes_votes ON project_votes(votes DESC);
`

const sqliteSchema = `
-- Projects
CREATE TABLE IF NOT EXISTS project (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    theme TEXT NOT NULL DEFAULT '[]',
    team_name TEXT NOT NULL DEFAULT '',
    members TEXT NOT NULL DEFAULT '[]',
    thumbnail TEXT NOT NULL DEFAULT '',
    demo_url TEXT NOT NULL DEFAULT '',
    source_url TEXT NOT NULL DEFAULT '',
    video_url TEXT NOT NULL DEFAULT ''
);

-- Vote counters, one per project
CREATE TABLE IF NOT EXISTS project_votes (
    project_id INTEGER PRIMARY KEY REFERENCES project(id) ON DELETE CASCADE,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_project_votes_votes ON project_votes(votes DESC);

-- Voter IP fingerprints (the IP set of a vote record)
CREATE TABLE IF NOT EXISTS project_vote_ips (
    project_id INTEGER NOT NULL REFERENCES project_votes(project_id) ON DELETE CASCADE,
    ip TEXT NOT NULL,
    PRIMARY KEY (project_id, ip)
);
`

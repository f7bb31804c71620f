// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates its schema.

# Connecting

Open picks the driver from cfg.DatabaseType ("postgres" via lib/pq,
"sqlite" via modernc.org/sqlite) and pings the server:

	conn, err := db.Open(cfg)

SQLite connections are limited to one and run with foreign keys enabled.

# Schema Creation

	if err := db.CreateSchema(conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - project: submitted projects (theme and members stored as JSON)
  - project_votes: one vote counter per project, created on first vote

The set of voter IP fingerprints is a TEXT[] column (voter_ips) on
Postgres and the project_vote_ips table on SQLite.

# Relationships

	project 1──0..1 project_votes
	project_votes 1──* project_vote_ips   (SQLite only)

All foreign keys use ON DELETE CASCADE.
*/
package db

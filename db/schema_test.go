// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"testing"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
)

func TestCreateSchemaSQLiteIsIdempotent(t *testing.T) {
	conn, err := Open(cliparse.Config{DatabaseType: cliparse.DatabaseSQLite, DatabaseURL: ":memory:"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"project", "project_votes", "project_vote_ips"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestCreateSchemaUnknownDialect(t *testing.T) {
	if err := CreateSchema(nil, "mysql"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

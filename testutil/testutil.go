// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/db"
	"github.com/danielhkuo/hackathon-showcase/models"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(cliparse.Config{
		DatabaseType: cliparse.DatabaseSQLite,
		DatabaseURL:  ":memory:",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, cliparse.DatabaseSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		IPSalt:       "test-ip-salt",
		AdminKey:     "test-admin-key",
		LogLevel:     "info",
	}
}

// TestProject returns a valid project with the given id and title
func TestProject(id int64, title string) models.Project {
	return models.Project{
		ID:          id,
		Title:       title,
		Description: "A test project",
		Theme:       []int{models.ThemeCyberAI},
		TeamName:    "Team " + title,
		Members: []models.Member{
			{Name: "Alice", Role: "Developer", School: "Test University"},
			{Name: "Bob"},
		},
		DemoURL: "https://example.com/demo",
	}
}

// CreateTestProject inserts a project row directly and returns its id
func CreateTestProject(t *testing.T, conn *sql.DB, id int64, title string) int64 {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO project (id, title, description, theme, team_name, members, demo_url)
		VALUES (?, ?, 'A test project', '[1]', ?, '[{"name":"Alice","role":"Developer"}]', 'https://example.com/demo')
	`, id, title, "Team "+title)
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}

	return id
}

// SetTestVotes writes a vote record with the given count
func SetTestVotes(t *testing.T, conn *sql.DB, projectID int64, votes int) {
	t.Helper()

	_, err := conn.ExecContext(context.Background(), `
		INSERT INTO project_votes (project_id, votes) VALUES (?, ?)
		ON CONFLICT (project_id) DO UPDATE SET votes = excluded.votes
	`, projectID, votes)
	if err != nil {
		t.Fatalf("Failed to set test votes: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

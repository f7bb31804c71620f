// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/hackathon-showcase/middleware"
	"github.com/danielhkuo/hackathon-showcase/models"
	"github.com/danielhkuo/hackathon-showcase/testutil"
)

func TestGetLeaderboard(t *testing.T) {
	s, conn := setupTestStore(t)
	handler := NewLeaderboardHandler(s)

	testutil.CreateTestProject(t, conn, 1, "Alpha")
	testutil.CreateTestProject(t, conn, 2, "Beta")
	testutil.CreateTestProject(t, conn, 3, "Gamma")
	testutil.SetTestVotes(t, conn, 1, 4)
	testutil.SetTestVotes(t, conn, 2, 9)
	testutil.SetTestVotes(t, conn, 3, 4)

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, testutil.MakeRequest("GET", "/api/leaderboard", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var rankings []models.VoteRanking
	testutil.AssertJSON(t, w, &rankings)

	wantOrder := []int64{2, 1, 3}
	if len(rankings) != len(wantOrder) {
		t.Fatalf("Expected %d rankings, got %d", len(wantOrder), len(rankings))
	}
	for i, id := range wantOrder {
		if rankings[i].ProjectID != id {
			t.Errorf("Rank %d: expected project %d, got %d", i+1, id, rankings[i].ProjectID)
		}
		if rankings[i].Project == nil {
			t.Errorf("Rank %d: expected joined project", i+1)
		}
	}
	if rankings[0].Project != nil && rankings[0].Project.Title != "Beta" {
		t.Errorf("Expected Beta first, got %q", rankings[0].Project.Title)
	}
}

func TestGetLeaderboardEmpty(t *testing.T) {
	s, _ := setupTestStore(t)
	handler := NewLeaderboardHandler(s)

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, testutil.MakeRequest("GET", "/api/leaderboard", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("Expected empty JSON array, got %q", body)
	}
}

func TestGetLeaderboardStoreFailure(t *testing.T) {
	handler := NewLeaderboardHandler(brokenStore{})

	w := httptest.NewRecorder()
	handler.GetLeaderboard(w, testutil.MakeRequest("GET", "/api/leaderboard", nil, nil))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

// TestStoreFailureLogCarriesRequestID checks that error logs can be matched to the access log
func TestStoreFailureLogCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := middleware.WithLogging(NewLeaderboardHandler(brokenStore{}).GetLeaderboard)

	req := testutil.MakeRequest("GET", "/api/leaderboard", nil, map[string]string{
		middleware.RequestIDHeader: "req-leaderboard-1",
	})
	w := httptest.NewRecorder()
	handler(w, req)
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var errorLine string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, "failed to get leaderboard") {
			errorLine = line
		}
	}
	if errorLine == "" {
		t.Fatalf("Expected an error log line, got %s", buf.String())
	}
	if !strings.Contains(errorLine, `"request_id":"req-leaderboard-1"`) {
		t.Errorf("Expected request_id in error log, got %s", errorLine)
	}
}

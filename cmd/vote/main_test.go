// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/router"
	"github.com/danielhkuo/hackathon-showcase/store"
	"github.com/danielhkuo/hackathon-showcase/testutil"
	"github.com/danielhkuo/hackathon-showcase/voteclient"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	st, err := store.New(conn, cliparse.DatabaseSQLite)
	require.NoError(t, err)
	testutil.CreateTestProject(t, conn, 42, "Answer")
	testutil.SetTestVotes(t, conn, 42, 1200)

	srv := httptest.NewServer(router.NewRouter(st, testutil.GetTestConfig()))
	t.Cleanup(srv.Close)
	return srv
}

func TestRequiresProject(t *testing.T) {
	err := run([]string{"-server", "http://127.0.0.1:1"}, &bytes.Buffer{})
	require.ErrorContains(t, err, "-project")
}

func TestLeaderboard(t *testing.T) {
	srv := newTestServer(t)

	var out bytes.Buffer
	require.NoError(t, run([]string{"-server", srv.URL, "-leaderboard"}, &out))
	require.Contains(t, out.String(), "1st")
	require.Contains(t, out.String(), "1,200")
	require.Contains(t, out.String(), "Answer (Team Answer)")
}

// The remembered project is reported as voted without a vote attempt
func TestStatusFromMemory(t *testing.T) {
	srv := newTestServer(t)
	mem := filepath.Join(t.TempDir(), "voted.json")
	require.NoError(t, voteclient.NewFileMemory(mem).Add(42))

	var out bytes.Buffer
	require.NoError(t, run([]string{"-server", srv.URL, "-project", "42", "-memory", mem}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Equal(t, "project 42: voted, 1,200 votes", lines[0])
	require.Contains(t, out.String(), "投票提示")
}

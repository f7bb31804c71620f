// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/router"
	"github.com/danielhkuo/hackathon-showcase/store"
	"github.com/danielhkuo/hackathon-showcase/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	st, err := store.New(conn, cliparse.DatabaseSQLite)
	require.NoError(t, err)
	testutil.CreateTestProject(t, conn, 42, "Answer")

	srv := httptest.NewServer(router.NewRouter(st, testutil.GetTestConfig()))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientAgainstServer(t *testing.T) {
	ctx := context.Background()
	c := New(newTestServer(t).URL + "/")

	votes, err := c.GetVotes(ctx, 42)
	require.NoError(t, err)
	require.Zero(t, votes)

	status, err := c.VoteStatus(ctx, 42, "203.0.113.4")
	require.NoError(t, err)
	require.False(t, status.Voted)

	votes, err = c.CastVoteWithIP(ctx, 42, "203.0.113.4")
	require.NoError(t, err)
	require.Equal(t, 1, votes)

	_, err = c.CastVoteWithIP(ctx, 42, "203.0.113.4")
	require.ErrorIs(t, err, ErrAlreadyVoted)

	status, err = c.VoteStatus(ctx, 42, "203.0.113.4")
	require.NoError(t, err)
	require.True(t, status.Voted)
	require.Equal(t, 1, status.Votes)

	votes, err = c.CastVote(ctx, 42)
	require.NoError(t, err)
	require.Equal(t, 2, votes)

	rankings, err := c.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	require.Equal(t, int64(42), rankings[0].ProjectID)
	require.Equal(t, 2, rankings[0].Votes)
}

func TestClientErrors(t *testing.T) {
	c := New(newTestServer(t).URL)

	_, err := c.CastVote(context.Background(), 999)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "Project not found", apiErr.Message)
}

func TestButtonAgainstServer(t *testing.T) {
	ctx := context.Background()
	c := New(newTestServer(t).URL)
	mem := NewFileMemory(filepath.Join(t.TempDir(), "voted_projects.json"))
	rec := &recorder{}

	btn := NewButton(42, c, &fixedIP{ip: "198.51.100.2"}, mem, rec)
	btn.Load(ctx)
	require.Equal(t, StateNotVoted, btn.State())
	require.NoError(t, btn.Vote(ctx))
	require.Equal(t, 1, btn.Votes())

	// Fresh memory, same IP: the server set is authoritative
	other := NewButton(42, c, &fixedIP{ip: "198.51.100.2"}, NewFileMemory(filepath.Join(t.TempDir(), "other.json")), rec)
	other.Load(ctx)
	require.Equal(t, StateVoted, other.State())
	require.Equal(t, 1, other.Votes())
}

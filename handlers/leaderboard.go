// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hackathon-showcase/middleware"
)

type LeaderboardHandler struct {
	store VoteStore
}

func NewLeaderboardHandler(s VoteStore) *LeaderboardHandler {
	return &LeaderboardHandler{store: s}
}

// GetLeaderboard handles GET /api/leaderboard
func (h *LeaderboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.store.GetVoteRankings(r.Context())
	if err != nil {
		slog.Error("failed to get leaderboard", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get leaderboard")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, rankings)
}

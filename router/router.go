// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/handlers"
	"github.com/danielhkuo/hackathon-showcase/middleware"
)

func NewRouter(st handlers.VoteStore, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	votesHandler := handlers.NewVotesHandler(st, cfg)
	leaderboardHandler := handlers.NewLeaderboardHandler(st)
	projectsHandler := handlers.NewProjectsHandler(st)
	adminHandler := handlers.NewAdminHandler(st, cfg)
	pagesHandler := handlers.NewPagesHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Votes
	mux.HandleFunc("GET /api/votes", middleware.WithLogging(votesHandler.GetVotes))
	mux.HandleFunc("POST /api/votes", middleware.WithLogging(votesHandler.CastVote))
	mux.HandleFunc("GET /api/votes/status", middleware.WithLogging(votesHandler.VoteStatus))
	mux.HandleFunc("POST /api/votes/ip", middleware.WithLogging(votesHandler.CastVoteWithIP))
	mux.HandleFunc("GET /api/leaderboard", middleware.WithLogging(leaderboardHandler.GetLeaderboard))

	// Projects (read-only)
	mux.HandleFunc("GET /api/projects", middleware.WithLogging(projectsHandler.ListProjects))
	mux.HandleFunc("GET /api/projects/{id}", middleware.WithLogging(projectsHandler.GetProject))

	// Admin operations (X-Admin-Key)
	mux.HandleFunc("PUT /api/admin/projects/{id}", middleware.WithLogging(adminHandler.PutProject))
	mux.HandleFunc("GET /api/admin/votes/{id}", middleware.WithLogging(adminHandler.GetVoteRecord))

	// Pages; "GET /" also renders the 404 page for unmatched paths
	mux.HandleFunc("GET /project/{id}", middleware.WithLogging(pagesHandler.ProjectDetail))
	mux.HandleFunc("POST /project/{id}/vote", middleware.WithLogging(pagesHandler.CastVoteForm))
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(pagesHandler.Leaderboard))
	mux.HandleFunc("GET /", middleware.WithLogging(pagesHandler.Home))

	return mux
}

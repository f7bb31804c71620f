// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the hackathon showcase.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health:

	GET /health

Votes (public):

	GET  /api/votes?projectId=  - Vote count
	POST /api/votes             - Cast a vote
	GET  /api/votes/status      - Count plus whether an IP voted
	POST /api/votes/ip          - Cast a vote once per IP
	GET  /api/leaderboard       - Rankings by votes

Projects (public, read-only):

	GET /api/projects       - Listing, ?page=N
	GET /api/projects/{id}  - One project

Admin (requires X-Admin-Key):

	PUT /api/admin/projects/{id} - Create or replace a project
	GET /api/admin/votes/{id}    - Vote record summary

Pages:

	GET  /                   - Project grid
	GET  /project/{id}       - Project detail with vote button
	POST /project/{id}/vote  - Vote button form
	GET  /leaderboard        - Ranking table

Every route except /health is wrapped in middleware.WithLogging.
*/
package router

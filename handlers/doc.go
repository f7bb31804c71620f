// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for the hackathon showcase.

# Handler Types

Each handler is a struct holding a VoteStore and, where needed, the config:

  - VotesHandler: vote counts, anonymous votes and per-IP votes
  - LeaderboardHandler: vote rankings
  - ProjectsHandler: project listing and detail as JSON
  - AdminHandler: project upserts and vote records, behind X-Admin-Key
  - PagesHandler: server-rendered HTML pages

Handlers are created via constructor functions:

	votesHandler := handlers.NewVotesHandler(st, cfg)

VoteStore is satisfied by *store.Store.

# Voting

	GET  /api/votes?projectId=   → GetVotes ({"votes": n})
	POST /api/votes              → CastVote (no duplicate prevention)
	GET  /api/votes/status       → VoteStatus ({"votes": n, "voted": bool})
	POST /api/votes/ip           → CastVoteWithIP (409 on a repeat IP)

IPs are stored as salted fingerprints (auth.HashIP). When the client
reports no IP, or "unknown", the address the server observed is used.

# Pages

	GET  /                   → Home (?page=N shows the first N*9 projects)
	GET  /project/{id}       → ProjectDetail
	POST /project/{id}/vote  → CastVoteForm (303 back with ?notice=)
	GET  /leaderboard        → Leaderboard

The voted_projects cookie remembers which projects this browser voted for.
Read failures on pages fall back to empty listings and zero counts.
*/
package handlers

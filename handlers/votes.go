// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/middleware"
	"github.com/danielhkuo/hackathon-showcase/models"
	"github.com/danielhkuo/hackathon-showcase/store"
)

type VotesHandler struct {
	store VoteStore
	cfg   cliparse.Config
}

func NewVotesHandler(s VoteStore, cfg cliparse.Config) *VotesHandler {
	return &VotesHandler{store: s, cfg: cfg}
}

// GetVotes handles GET /api/votes?projectId=
func (h *VotesHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("projectId")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "projectId is required")
		return
	}
	projectID, err := models.ParseProjectID(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	votes, err := h.store.GetProjectVotes(r.Context(), projectID)
	if err != nil {
		slog.Error("failed to get votes", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VotesResponse{Votes: votes})
}

// CastVote handles POST /api/votes
// No duplicate prevention here; the widget endpoints below do that.
func (h *VotesHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProjectID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "projectId is required")
		return
	}
	projectID := int64(req.ProjectID)

	if !h.requireProject(w, r, projectID) {
		return
	}

	votes, err := h.store.IncrementVote(r.Context(), projectID)
	if err != nil {
		slog.Error("failed to increment vote", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to vote")
		return
	}

	slog.Info("vote recorded", "project_id", projectID, "votes", votes)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{Success: true, Votes: votes})
}

// VoteStatus handles GET /api/votes/status?projectId=&ip=
func (h *VotesHandler) VoteStatus(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("projectId")
	if raw == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "projectId is required")
		return
	}
	projectID, err := models.ParseProjectID(raw)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	votes, err := h.store.GetProjectVotes(r.Context(), projectID)
	if err != nil {
		slog.Error("failed to get votes", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to get votes")
		return
	}

	fp := voterFingerprint(r, r.URL.Query().Get("ip"), h.cfg.IPSalt)
	voted, err := h.store.CheckIPVoted(r.Context(), projectID, fp)
	if err != nil {
		slog.Error("failed to check ip vote", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check vote status")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteStatusResponse{Votes: votes, Voted: voted})
}

// CastVoteWithIP handles POST /api/votes/ip
// Returns 409 when this IP already voted for the project.
func (h *VotesHandler) CastVoteWithIP(w http.ResponseWriter, r *http.Request) {
	var req models.CastIPVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ProjectID == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "projectId is required")
		return
	}
	projectID := int64(req.ProjectID)

	if !h.requireProject(w, r, projectID) {
		return
	}

	fp := voterFingerprint(r, req.IP, h.cfg.IPSalt)
	votes, err := h.store.IncrementVoteWithIP(r.Context(), projectID, fp)
	if errors.Is(err, store.ErrAlreadyVoted) {
		middleware.ErrorResponse(w, http.StatusConflict, "This IP address has already voted for this project")
		return
	}
	if err != nil {
		slog.Error("failed to increment vote with ip", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to vote")
		return
	}

	slog.Info("ip vote recorded", "project_id", projectID, "votes", votes)

	middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{Success: true, Votes: votes})
}

// requireProject writes 404/500 and returns false when the project cannot be voted for
func (h *VotesHandler) requireProject(w http.ResponseWriter, r *http.Request, projectID int64) bool {
	exists, err := h.store.ProjectExists(r.Context(), projectID)
	if err != nil {
		slog.Error("failed to check project", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to vote")
		return false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return false
	}
	return true
}

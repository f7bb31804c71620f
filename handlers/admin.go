// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/hackathon-showcase/auth"
	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/middleware"
	"github.com/danielhkuo/hackathon-showcase/models"
	"github.com/danielhkuo/hackathon-showcase/store"
)

type AdminHandler struct {
	store VoteStore
	cfg   cliparse.Config
}

func NewAdminHandler(s VoteStore, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: s, cfg: cfg}
}

// authorize checks X-Admin-Key and writes the error response when it fails
func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey)
	switch {
	case err == nil:
		return true
	case errors.Is(err, auth.ErrAdminDisabled):
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin access is not configured")
	default:
		slog.Warn("rejected admin request", "path", r.URL.Path, "remote", middleware.GetClientIP(r))
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
	}
	return false
}

// PutProject handles PUT /api/admin/projects/{id}
func (h *AdminHandler) PutProject(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	projectID, err := models.ParseProjectID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var project models.Project
	if err := middleware.ParseJSONBody(r, &project); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if project.ID != 0 && project.ID != projectID {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id in body does not match path")
		return
	}
	project.ID = projectID

	if err := h.store.UpsertProject(r.Context(), project); err != nil {
		if errors.Is(err, store.ErrInvalidProject) {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save project", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save project")
		return
	}

	saved, err := h.store.GetProject(r.Context(), projectID)
	if err != nil {
		slog.Error("failed to reload project", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, saved)
}

// GetVoteRecord handles GET /api/admin/votes/{id}
// Fingerprints stay private; only their count is returned.
func (h *AdminHandler) GetVoteRecord(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	projectID, err := models.ParseProjectID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.store.GetVoteRecord(r.Context(), projectID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No votes recorded for this project")
		return
	}
	if err != nil {
		slog.Error("failed to get vote record", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminVoteResponse{
		ProjectID:  rec.ProjectID,
		Votes:      rec.Votes,
		VoterCount: len(rec.VoterIPs),
	})
}

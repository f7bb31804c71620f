// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/hackathon-showcase/middleware"
	"github.com/danielhkuo/hackathon-showcase/models"
	"github.com/danielhkuo/hackathon-showcase/store"
)

type ProjectsHandler struct {
	store VoteStore
}

func NewProjectsHandler(s VoteStore) *ProjectsHandler {
	return &ProjectsHandler{store: s}
}

// ListProjects handles GET /api/projects?page=
// Page N returns the first N*PageSize projects, like the "load more" grid.
func (h *ProjectsHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = p
	}

	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		slog.Error("failed to list projects", "error", err, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	end, hasMore := pageWindow(len(projects), page)
	middleware.JSONResponse(w, http.StatusOK, models.ProjectListResponse{
		Projects: projects[:end],
		Page:     page,
		PageSize: models.PageSize,
		Total:    len(projects),
		HasMore:  hasMore,
	})
}

// GetProject handles GET /api/projects/{id}
func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := models.ParseProjectID(r.PathValue("id"))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := h.store.GetProject(r.Context(), projectID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Project not found")
		return
	}
	if err != nil {
		slog.Error("failed to get project", "error", err, "project_id", projectID, "request_id", middleware.RequestID(r.Context()))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, project)
}

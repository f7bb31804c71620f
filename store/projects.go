// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/danielhkuo/hackathon-showcase/models"
)

const projectColumns = `id, title, description, theme, team_name, members,
	thumbnail, demo_url, source_url, video_url`

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(row scanner) (models.Project, error) {
	var (
		p       models.Project
		theme   []byte
		members []byte
	)
	err := row.Scan(&p.ID, &p.Title, &p.Description, &theme, &p.TeamName, &members,
		&p.Thumbnail, &p.DemoURL, &p.SourceURL, &p.VideoURL)
	if err != nil {
		return models.Project{}, err
	}

	p.Theme = decodeTheme(theme, p.ID)
	p.Members = []models.Member{}
	if len(members) > 0 {
		if err := json.Unmarshal(members, &p.Members); err != nil {
			slog.Warn("malformed project members", "error", err, "project_id", p.ID)
			p.Members = []models.Member{}
		}
	}
	if p.Thumbnail == "" {
		p.Thumbnail = models.DefaultThumbnail
	}
	return p, nil
}

// ListProjects returns all projects ordered by id.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM project ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return projects, nil
}

// GetProject returns one project or ErrNotFound.
func (s *Store) GetProject(ctx context.Context, projectID int64) (models.Project, error) {
	row := s.db.QueryRowContext(ctx, s.q(`SELECT `+projectColumns+` FROM project WHERE id = $1`), projectID)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return models.Project{}, ErrNotFound
	}
	if err != nil {
		return models.Project{}, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// ProjectExists reports whether a project row exists.
func (s *Store) ProjectExists(ctx context.Context, projectID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT EXISTS(SELECT 1 FROM project WHERE id = $1)
	`), projectID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check project: %w", err)
	}
	return exists, nil
}

// ValidateProject checks the fields the pages rely on.
func ValidateProject(p models.Project) error {
	if p.ID <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidProject)
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidProject)
	}
	if len(p.Theme) == 0 || len(p.Theme) > models.MaxThemeCount {
		return fmt.Errorf("%w: theme must have 1 to %d tags", ErrInvalidProject, models.MaxThemeCount)
	}
	seen := make(map[int]bool, len(p.Theme))
	for _, t := range p.Theme {
		if t <= 0 {
			return fmt.Errorf("%w: theme tags must be positive", ErrInvalidProject)
		}
		if seen[t] {
			return fmt.Errorf("%w: duplicate theme tag %d", ErrInvalidProject, t)
		}
		seen[t] = true
	}
	for _, m := range p.Members {
		if strings.TrimSpace(m.Name) == "" {
			return fmt.Errorf("%w: member name is required", ErrInvalidProject)
		}
	}
	return nil
}

// UpsertProject inserts the project or replaces every column of an existing row.
func (s *Store) UpsertProject(ctx context.Context, p models.Project) error {
	if err := ValidateProject(p); err != nil {
		return err
	}
	if p.Members == nil {
		p.Members = []models.Member{}
	}

	theme, err := json.Marshal(p.Theme)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	members, err := json.Marshal(p.Members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}

	// JSON goes in as text: lib/pq would send []byte as bytea
	_, err = s.db.ExecContext(ctx, s.q(`
		INSERT INTO project (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			theme = excluded.theme,
			team_name = excluded.team_name,
			members = excluded.members,
			thumbnail = excluded.thumbnail,
			demo_url = excluded.demo_url,
			source_url = excluded.source_url,
			video_url = excluded.video_url
	`), p.ID, strings.TrimSpace(p.Title), p.Description, string(theme), p.TeamName, string(members),
		p.Thumbnail, p.DemoURL, p.SourceURL, p.VideoURL)
	if err != nil {
		return fmt.Errorf("upsert project: %w", err)
	}

	slog.Info("project saved", "project_id", p.ID, "title", p.Title)
	return nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/danielhkuo/hackathon-showcase/cliparse"
	"github.com/danielhkuo/hackathon-showcase/models"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAlreadyVoted   = errors.New("ip already voted for this project")
	ErrInvalidProject = errors.New("invalid project")
)

// Store is the data-access layer over the project and project_votes tables.
type Store struct {
	db      *sql.DB
	dialect string
}

// New wraps an open database. dialect is cliparse.DatabasePostgres or cliparse.DatabaseSQLite.
func New(db *sql.DB, dialect string) (*Store, error) {
	if dialect != cliparse.DatabasePostgres && dialect != cliparse.DatabaseSQLite {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &Store{db: db, dialect: dialect}, nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// q rewrites $N placeholders to SQLite's ?N form
func (s *Store) q(query string) string {
	if s.dialect == cliparse.DatabaseSQLite {
		return placeholder.ReplaceAllString(query, "?$1")
	}
	return query
}

// GetProjectVotes returns the stored count, or 0 when the project has no vote record.
func (s *Store) GetProjectVotes(ctx context.Context, projectID int64) (int, error) {
	var votes int
	err := s.db.QueryRowContext(ctx, s.q(`
		SELECT votes FROM project_votes WHERE project_id = $1
	`), projectID).Scan(&votes)

	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get project votes: %w", err)
	}
	return votes, nil
}

// VotesOrZero is GetProjectVotes with failures logged and defaulted to 0.
func (s *Store) VotesOrZero(ctx context.Context, projectID int64) int {
	votes, err := s.GetProjectVotes(ctx, projectID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "project_id", projectID)
		return 0
	}
	return votes
}

// IncrementVote adds one vote and returns the new count.
// The record is created on the first vote; the upsert is a single statement.
func (s *Store) IncrementVote(ctx context.Context, projectID int64) (int, error) {
	var votes int
	err := s.db.QueryRowContext(ctx, s.q(`
		INSERT INTO project_votes (project_id, votes)
		VALUES ($1, 1)
		ON CONFLICT (project_id) DO UPDATE SET votes = project_votes.votes + 1
		RETURNING votes
	`), projectID).Scan(&votes)
	if err != nil {
		return 0, fmt.Errorf("increment vote: %w", err)
	}
	return votes, nil
}

// CheckIPVoted reports whether the IP fingerprint is in the project's voter set.
func (s *Store) CheckIPVoted(ctx context.Context, projectID int64, ip string) (bool, error) {
	if s.dialect == cliparse.DatabasePostgres {
		return s.checkIPVotedPostgres(ctx, projectID, ip)
	}
	return s.checkIPVotedSQLite(ctx, projectID, ip)
}

// IncrementVoteWithIP records the IP fingerprint and adds one vote in one step.
// Returns ErrAlreadyVoted, with the count untouched, when the IP is already recorded.
func (s *Store) IncrementVoteWithIP(ctx context.Context, projectID int64, ip string) (int, error) {
	if s.dialect == cliparse.DatabasePostgres {
		return s.incrementVoteWithIPPostgres(ctx, projectID, ip)
	}
	return s.incrementVoteWithIPSQLite(ctx, projectID, ip)
}

// GetVoteRecord returns the full vote record, ErrNotFound when nobody voted yet.
func (s *Store) GetVoteRecord(ctx context.Context, projectID int64) (models.VoteRecord, error) {
	if s.dialect == cliparse.DatabasePostgres {
		return s.getVoteRecordPostgres(ctx, projectID)
	}
	return s.getVoteRecordSQLite(ctx, projectID)
}

// GetVoteRankings returns every vote record with minimal project fields,
// most votes first. Ties keep store order (project id).
func (s *Store) GetVoteRankings(ctx context.Context) ([]models.VoteRanking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pv.project_id, pv.votes, p.id, p.title, p.team_name, p.theme
		FROM project_votes pv
		LEFT JOIN project p ON p.id = pv.project_id
		ORDER BY pv.votes DESC, pv.project_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("get vote rankings: %w", err)
	}
	defer rows.Close()

	rankings := []models.VoteRanking{}
	for rows.Next() {
		var (
			r        models.VoteRanking
			id       sql.NullInt64
			title    sql.NullString
			teamName sql.NullString
			theme    []byte
		)
		if err := rows.Scan(&r.ProjectID, &r.Votes, &id, &title, &teamName, &theme); err != nil {
			return nil, fmt.Errorf("scan vote ranking: %w", err)
		}
		if id.Valid {
			r.Project = &models.RankedProject{
				ID:       id.Int64,
				Title:    title.String,
				TeamName: teamName.String,
				Theme:    decodeTheme(theme, id.Int64),
			}
		}
		rankings = append(rankings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote rankings: %w", err)
	}

	return rankings, nil
}

// VoteCounts returns the vote count of every project that has a record.
func (s *Store) VoteCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT project_id, votes FROM project_votes`)
	if err != nil {
		return nil, fmt.Errorf("get vote counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var id int64
		var votes int
		if err := rows.Scan(&id, &votes); err != nil {
			return nil, fmt.Errorf("scan vote count: %w", err)
		}
		counts[id] = votes
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vote counts: %w", err)
	}
	return counts, nil
}

func decodeTheme(raw []byte, projectID int64) []int {
	theme := []int{}
	if len(raw) == 0 {
		return theme
	}
	if err := json.Unmarshal(raw, &theme); err != nil {
		slog.Warn("malformed project theme", "error", err, "project_id", projectID)
		return []int{}
	}
	return theme
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/hackathon-showcase/models"
)

// On SQLite the voter IP set lives in project_vote_ips, keyed by (project_id, ip).

func (s *Store) checkIPVotedSQLite(ctx context.Context, projectID int64, ip string) (bool, error) {
	var voted bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM project_vote_ips
			WHERE project_id = ?1 AND ip = ?2
		)
	`, projectID, ip).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("check ip voted: %w", err)
	}
	return voted, nil
}

func (s *Store) incrementVoteWithIPSQLite(ctx context.Context, projectID int64, ip string) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	// The IP rows reference the counter, so make sure it exists first
	_, err = tx.ExecContext(ctx, `
		INSERT INTO project_votes (project_id, votes)
		VALUES (?1, 0)
		ON CONFLICT (project_id) DO NOTHING
	`, projectID)
	if err != nil {
		return 0, fmt.Errorf("create vote record: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO project_vote_ips (project_id, ip)
		VALUES (?1, ?2)
		ON CONFLICT (project_id, ip) DO NOTHING
	`, projectID, ip)
	if err != nil {
		return 0, fmt.Errorf("record voter ip: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("record voter ip: %w", err)
	}
	if n == 0 {
		return 0, ErrAlreadyVoted
	}

	var votes int
	err = tx.QueryRowContext(ctx, `
		UPDATE project_votes SET votes = votes + 1
		WHERE project_id = ?1
		RETURNING votes
	`, projectID).Scan(&votes)
	if err != nil {
		return 0, fmt.Errorf("increment vote with ip: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit vote: %w", err)
	}
	return votes, nil
}

func (s *Store) getVoteRecordSQLite(ctx context.Context, projectID int64) (models.VoteRecord, error) {
	rec := models.VoteRecord{ProjectID: projectID, VoterIPs: []string{}}
	err := s.db.QueryRowContext(ctx, `
		SELECT votes FROM project_votes WHERE project_id = ?1
	`, projectID).Scan(&rec.Votes)

	if err == sql.ErrNoRows {
		return models.VoteRecord{}, ErrNotFound
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("get vote record: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT ip FROM project_vote_ips WHERE project_id = ?1 ORDER BY ip
	`, projectID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("get voter ips: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ip string
		if err := rows.Scan(&ip); err != nil {
			return models.VoteRecord{}, fmt.Errorf("scan voter ip: %w", err)
		}
		rec.VoterIPs = append(rec.VoterIPs, ip)
	}
	if err := rows.Err(); err != nil {
		return models.VoteRecord{}, fmt.Errorf("iterate voter ips: %w", err)
	}
	return rec, nil
}

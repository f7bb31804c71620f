// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/danielhkuo/hackathon-showcase/models"
)

// On Postgres the voter IP set is the voter_ips TEXT[] column of project_votes.

func (s *Store) checkIPVotedPostgres(ctx context.Context, projectID int64, ip string) (bool, error) {
	var voted bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM project_votes
			WHERE project_id = $1 AND $2::text = ANY(voter_ips)
		)
	`, projectID, ip).Scan(&voted)
	if err != nil {
		return false, fmt.Errorf("check ip voted: %w", err)
	}
	return voted, nil
}

// The conditional DO UPDATE runs under the row lock, so the membership test
// and the append cannot interleave with another vote for the same project.
func (s *Store) incrementVoteWithIPPostgres(ctx context.Context, projectID int64, ip string) (int, error) {
	var votes int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO project_votes (project_id, votes, voter_ips)
		VALUES ($1, 1, $2)
		ON CONFLICT (project_id) DO UPDATE
		SET votes = project_votes.votes + 1,
		    voter_ips = array_append(project_votes.voter_ips, $3::text)
		WHERE NOT ($3::text = ANY(project_votes.voter_ips))
		RETURNING votes
	`, projectID, pq.Array([]string{ip}), ip).Scan(&votes)

	if err == sql.ErrNoRows {
		return 0, ErrAlreadyVoted
	}
	if err != nil {
		return 0, fmt.Errorf("increment vote with ip: %w", err)
	}
	return votes, nil
}

func (s *Store) getVoteRecordPostgres(ctx context.Context, projectID int64) (models.VoteRecord, error) {
	rec := models.VoteRecord{ProjectID: projectID}
	err := s.db.QueryRowContext(ctx, `
		SELECT votes, voter_ips FROM project_votes WHERE project_id = $1
	`, projectID).Scan(&rec.Votes, pq.Array(&rec.VoterIPs))

	if err == sql.ErrNoRows {
		return models.VoteRecord{}, ErrNotFound
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("get vote record: %w", err)
	}
	if rec.VoterIPs == nil {
		rec.VoterIPs = []string{}
	}
	return rec, nil
}

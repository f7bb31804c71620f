// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/hackathon-showcase/auth"
	"github.com/danielhkuo/hackathon-showcase/middleware"
	"github.com/danielhkuo/hackathon-showcase/models"
)

// VoteStore is the part of store.Store the handlers use
type VoteStore interface {
	GetProjectVotes(ctx context.Context, projectID int64) (int, error)
	VotesOrZero(ctx context.Context, projectID int64) int
	IncrementVote(ctx context.Context, projectID int64) (int, error)
	CheckIPVoted(ctx context.Context, projectID int64, ip string) (bool, error)
	IncrementVoteWithIP(ctx context.Context, projectID int64, ip string) (int, error)
	GetVoteRecord(ctx context.Context, projectID int64) (models.VoteRecord, error)
	GetVoteRankings(ctx context.Context) ([]models.VoteRanking, error)
	VoteCounts(ctx context.Context) (map[int64]int, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, projectID int64) (models.Project, error)
	ProjectExists(ctx context.Context, projectID int64) (bool, error)
	UpsertProject(ctx context.Context, p models.Project) error
}

// voterFingerprint hashes the IP the client reported, or the one we observed
// when the client could not resolve its public address.
func voterFingerprint(r *http.Request, reported, salt string) string {
	ip := reported
	if ip == "" || ip == auth.UnknownIP {
		ip = middleware.GetClientIP(r)
	}
	return auth.HashIP(ip, salt)
}

// pageWindow returns how many of total items the cumulative listing shows for page
func pageWindow(total, page int) (end int, hasMore bool) {
	if page < 1 {
		page = 1
	}
	end = page * models.PageSize
	if end >= total || end < 0 {
		return total, false
	}
	return end, true
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteclient

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/danielhkuo/hackathon-showcase/models"
)

type State int

const (
	StateLoading State = iota
	StateNotVoted
	StateVoted
	StateVoting
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateNotVoted:
		return "not-voted"
	case StateVoted:
		return "voted"
	case StateVoting:
		return "voting"
	}
	return "unknown"
}

// API is the part of Client a Button needs
type API interface {
	GetVotes(ctx context.Context, projectID int64) (int, error)
	VoteStatus(ctx context.Context, projectID int64, ip string) (models.VoteStatusResponse, error)
	CastVoteWithIP(ctx context.Context, projectID int64, ip string) (int, error)
}

// IPResolver finds the public IP; *iplookup.Resolver satisfies it
type IPResolver interface {
	Resolve(ctx context.Context) string
}

type Notification struct {
	Title       string
	Description string
	Destructive bool
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

var (
	notifyVoted         = Notification{Title: "投票成功", Description: "感谢您的支持！"}
	notifyAlreadyVoted  = Notification{Title: "投票提示", Description: "您已经投过票了，每个项目只能投一次哦！", Destructive: true}
	notifyIPAlreadyUsed = Notification{Title: "投票失败", Description: "该IP地址已经投过票了", Destructive: true}
	notifyFailed        = Notification{Title: "投票失败", Description: "请稍后再试", Destructive: true}
)

var (
	// ErrBusy is returned by Vote while another submission is in flight
	ErrBusy = errors.New("vote already in progress")
	// ErrNotReady is returned by Vote before Load has settled the state
	ErrNotReady = errors.New("vote button still loading")
)

// Button is the vote button for one project
type Button struct {
	projectID int64
	api       API
	ips       IPResolver
	memory    Memory
	notifier  Notifier

	mu    sync.Mutex
	state State
	votes int
}

func NewButton(projectID int64, api API, ips IPResolver, memory Memory, notifier Notifier) *Button {
	return &Button{
		projectID: projectID,
		api:       api,
		ips:       ips,
		memory:    memory,
		notifier:  notifier,
		state:     StateLoading,
	}
}

func (b *Button) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Button) Votes() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.votes
}

func (b *Button) set(state State, votes int) {
	b.mu.Lock()
	b.state = state
	b.votes = votes
	b.mu.Unlock()
}

// Load fetches the count and settles the button into voted or not-voted.
// A remembered project makes no call past the vote count.
func (b *Button) Load(ctx context.Context) {
	votes, err := b.api.GetVotes(ctx, b.projectID)
	if err != nil {
		slog.Warn("failed to load votes", "project_id", b.projectID, "error", err)
	}

	if b.memory.Has(b.projectID) {
		b.set(StateVoted, votes)
		return
	}

	ip := b.ips.Resolve(ctx)
	status, err := b.api.VoteStatus(ctx, b.projectID, ip)
	if err != nil {
		slog.Warn("vote status check failed, using local memory", "project_id", b.projectID, "error", err)
		b.set(StateNotVoted, votes)
		return
	}

	if status.Voted {
		b.remember()
		b.set(StateVoted, status.Votes)
		return
	}
	b.set(StateNotVoted, status.Votes)
}

// Vote submits one vote. Only a not-voted button submits: before Load it
// returns ErrNotReady, and it returns ErrAlreadyVoted when the project was
// already voted for, locally or by this IP.
func (b *Button) Vote(ctx context.Context) error {
	b.mu.Lock()
	switch b.state {
	case StateVoted:
		b.mu.Unlock()
		b.notifier.Notify(notifyAlreadyVoted)
		return ErrAlreadyVoted
	case StateLoading:
		b.mu.Unlock()
		return ErrNotReady
	case StateVoting:
		b.mu.Unlock()
		return ErrBusy
	}
	b.state = StateVoting
	b.mu.Unlock()

	if b.memory.Has(b.projectID) {
		b.mu.Lock()
		b.state = StateVoted
		b.mu.Unlock()
		b.notifier.Notify(notifyAlreadyVoted)
		return ErrAlreadyVoted
	}

	ip := b.ips.Resolve(ctx)
	_, err := b.api.CastVoteWithIP(ctx, b.projectID, ip)
	switch {
	case err == nil:
		b.remember()
		b.mu.Lock()
		b.state = StateVoted
		b.votes++
		b.mu.Unlock()
		b.notifier.Notify(notifyVoted)
		return nil
	case errors.Is(err, ErrAlreadyVoted):
		b.remember()
		b.mu.Lock()
		b.state = StateVoted
		b.mu.Unlock()
		b.notifier.Notify(notifyIPAlreadyUsed)
		return ErrAlreadyVoted
	default:
		slog.Error("vote failed", "project_id", b.projectID, "error", err)
		b.mu.Lock()
		b.state = StateNotVoted
		b.mu.Unlock()
		b.notifier.Notify(notifyFailed)
		return err
	}
}

func (b *Button) remember() {
	if err := b.memory.Add(b.projectID); err != nil {
		slog.Warn("failed to remember vote", "project_id", b.projectID, "error", err)
	}
}

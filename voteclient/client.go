// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voteclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/hackathon-showcase/models"
)

// ErrAlreadyVoted is returned when this client or its IP already voted
var ErrAlreadyVoted = errors.New("already voted for this project")

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the showcase JSON API
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetVotes(ctx context.Context, projectID int64) (int, error) {
	var resp models.VotesResponse
	q := url.Values{"projectId": {strconv.FormatInt(projectID, 10)}}
	if err := c.do(ctx, http.MethodGet, "/api/votes?"+q.Encode(), nil, &resp); err != nil {
		return 0, err
	}
	return resp.Votes, nil
}

func (c *Client) CastVote(ctx context.Context, projectID int64) (int, error) {
	var resp models.CastVoteResponse
	req := models.CastVoteRequest{ProjectID: models.ProjectRef(projectID)}
	if err := c.do(ctx, http.MethodPost, "/api/votes", req, &resp); err != nil {
		return 0, err
	}
	return resp.Votes, nil
}

func (c *Client) VoteStatus(ctx context.Context, projectID int64, ip string) (models.VoteStatusResponse, error) {
	var resp models.VoteStatusResponse
	q := url.Values{"projectId": {strconv.FormatInt(projectID, 10)}}
	if ip != "" {
		q.Set("ip", ip)
	}
	err := c.do(ctx, http.MethodGet, "/api/votes/status?"+q.Encode(), nil, &resp)
	return resp, err
}

// CastVoteWithIP returns ErrAlreadyVoted when the server reports a conflict.
func (c *Client) CastVoteWithIP(ctx context.Context, projectID int64, ip string) (int, error) {
	var resp models.CastVoteResponse
	req := models.CastIPVoteRequest{ProjectID: models.ProjectRef(projectID), IP: ip}
	err := c.do(ctx, http.MethodPost, "/api/votes/ip", req, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict {
		return 0, ErrAlreadyVoted
	}
	if err != nil {
		return 0, err
	}
	return resp.Votes, nil
}

func (c *Client) Leaderboard(ctx context.Context) ([]models.VoteRanking, error) {
	var rankings []models.VoteRanking
	if err := c.do(ctx, http.MethodGet, "/api/leaderboard", nil, &rankings); err != nil {
		return nil, err
	}
	return rankings, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Message == "" {
			e.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: e.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

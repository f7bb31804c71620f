// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package iplookup

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/hackathon-showcase/auth"
)

// DefaultServices are the public IP echo services, tried in order
var DefaultServices = []string{
	"https://api.ipify.org?format=json",
	"https://ipapi.co/json/",
	"https://api.ip.sb/jsonip",
}

const defaultTimeout = 5 * time.Second

// maxResponseBytes caps what we read from a service
const maxResponseBytes = 64 << 10

type Resolver struct {
	services []string
	client   *http.Client
}

// New returns a Resolver over services, or DefaultServices when none are given
func New(services ...string) *Resolver {
	if len(services) == 0 {
		services = DefaultServices
	}
	return &Resolver{
		services: services,
		client:   &http.Client{Timeout: defaultTimeout},
	}
}

// WithClient replaces the HTTP client used for lookups
func (r *Resolver) WithClient(c *http.Client) *Resolver {
	r.client = c
	return r
}

type answer struct {
	IP    string `json:"ip"`
	Query string `json:"query"`
}

// Resolve returns the caller's public IP, or auth.UnknownIP when every service fails.
func (r *Resolver) Resolve(ctx context.Context) string {
	for _, service := range r.services {
		ip, err := r.lookup(ctx, service)
		if err != nil {
			slog.Debug("ip service failed", "service", service, "error", err)
			continue
		}
		if ip != "" {
			return ip
		}
		slog.Debug("ip service returned no address", "service", service)
	}
	return auth.UnknownIP
}

func (r *Resolver) lookup(ctx context.Context, service string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, service, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var a answer
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&a); err != nil {
		return "", err
	}
	if ip := strings.TrimSpace(a.IP); ip != "" {
		return ip, nil
	}
	return strings.TrimSpace(a.Query), nil
}

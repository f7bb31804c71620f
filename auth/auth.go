// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrAdminDisabled   = errors.New("admin access is not configured")
)

// UnknownIP is what clients send when no lookup service answered
const UnknownIP = "unknown"

// HashIP creates a one-way fingerprint of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.TrimSpace(ip)))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}

// ValidateAdminKey compares the presented key with the configured one in constant time
func ValidateAdminKey(presented, configured string) error {
	if configured == "" {
		return ErrAdminDisabled
	}
	// Compare MACs so the comparison length does not depend on the input
	a := hmac.New(sha256.New, []byte("admin-key"))
	a.Write([]byte(presented))
	b := hmac.New(sha256.New, []byte("admin-key"))
	b.Write([]byte(configured))
	if !hmac.Equal(a.Sum(nil), b.Sum(nil)) {
		return ErrInvalidAdminKey
	}
	return nil
}

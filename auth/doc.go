// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter fingerprinting and admin key checks.

# IP Hashing

Voter IP addresses are never stored in the clear:

	fp := auth.HashIP(ipAddress, cfg.IPSalt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. The same IP and salt
always give the same fingerprint, so "has this IP voted" is a set lookup.

# Admin Keys

The admin endpoints compare the X-Admin-Key header with ADMIN_KEY:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)

ErrAdminDisabled is returned when no key is configured.
*/
package auth

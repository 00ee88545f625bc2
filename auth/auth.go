// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AdminKeyHeader carries the admin key on admin-only requests
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrMissingAdminKey = errors.New("missing admin key")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks the provided key against the configured one.
// Both sides are hashed first so the comparison is constant-time
// regardless of length.
func ValidateAdminKey(provided, expected string) error {
	if provided == "" {
		return ErrMissingAdminKey
	}
	a := sha256.Sum256([]byte(provided))
	b := sha256.Sum256([]byte(expected))
	if expected == "" || !hmac.Equal(a[:], b[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// ValidateRequest checks the admin key header of r
func ValidateRequest(r *http.Request, expected string) error {
	return ValidateAdminKey(strings.TrimSpace(r.Header.Get(AdminKeyHeader)), expected)
}

// GenerateAdminKey creates a random URL-safe key suitable for ADMIN_KEY
func GenerateAdminKey() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate admin key: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

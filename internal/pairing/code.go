// Package pairing issues and checks the short-lived connection codes a
// sponsee hands to a sponsor to start a connection. Codes are persisted in
// the secure store so they survive restarts, and expire after a configured
// validity window.
package pairing

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

const (
	codePrefix = "RC-"
	codeLength = 6

	// 32 symbols, ambiguous 0/O and 1/I excluded. 32 divides 256, so
	// mapping bytes with a modulo stays uniform.
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// secure store keys
	keyCode       = "connection_code"
	keyCodeExpiry = "connection_code_expiry"
)

var (
	ErrInvalidCodeFormat = errors.New("invalid connection code format")
	ErrCodeExpired       = errors.New("connection code expired")
)

// The check is looser than the generation alphabet on purpose: visually
// ambiguous letters are accepted so a hand-typed O or I does not reject a
// code, while the digits 0 and 1 never appear and stay invalid.
var codePattern = regexp.MustCompile(`^RC-[A-Z2-9]{6}$`)

// ConnectionCode is a pairing code together with its validity window.
type ConnectionCode struct {
	Code      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the code is past its validity window at now.
func (c *ConnectionCode) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Normalize trims surrounding whitespace and uppercases a hand-entered code.
func Normalize(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateFormat reports whether raw, after normalization, looks like a
// connection code. It says nothing about whether the code is known or live.
func ValidateFormat(raw string) bool {
	return codePattern.MatchString(Normalize(raw))
}

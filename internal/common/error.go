// Package common defines shared constants and sentinel errors used across
// the server layers of GophTodo. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("user already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Login errors. ErrInvalidCredentials covers both an unknown email and a
	// wrong password; the two cases must stay indistinguishable to a client.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("please provide both email and password")

	// Auth errors (absent, malformed, badly signed or expired token).
	ErrInvalidToken = errors.New("invalid token")
)

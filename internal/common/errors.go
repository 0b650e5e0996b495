// Package common defines shared constants and sentinel errors used across
// the client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")

	// ErrDecode marks a response body that did not match the endpoint's
	// documented shape. Contract violations fail loudly instead of
	// degrading to empty collections.
	ErrDecode = errors.New("unexpected response shape")

	// Record-level errors.
	ErrNotFound = errors.New("not found")

	// Registration-window errors.
	ErrRegistrationClosed = errors.New("registration is closed")
	ErrAlreadyApplied     = errors.New("already applied in this batch")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

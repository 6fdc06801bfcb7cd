package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Session Errors.

	// ErrNoSession indicates no usable session exists and the user must log in again.
	// It is the only failure the session manager reports to its callers.
	ErrNoSession = errors.New("no session")

	// ErrMalformedToken indicates an access token whose payload or expiry claim cannot be read.
	ErrMalformedToken = errors.New("malformed token")

	// ErrTokenRefreshFailed indicates the identity API rejected or failed a refresh.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrAuthInvalid indicates the identity API rejected the supplied username or password.
	ErrAuthInvalid = errors.New("authentication invalid")

	// API Errors.

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrTimeExpired indicates a timed test attempt ran past its deadline.
	ErrTimeExpired = errors.New("time expired")
)

package driven

import "context"

// TokenProvider provides access tokens for authenticated API calls.
// Implementations handle validation and refresh transparently.
//
// Callers must request a token immediately before each request and
// must not cache it beyond the single request it authorises.
type TokenProvider interface {
	// GetToken returns a usable access token.
	// Returns an error wrapping domain.ErrNoSession when the user must log in again.
	GetToken(ctx context.Context) (string, error)
}

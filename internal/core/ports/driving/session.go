package driving

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// SessionService owns the locally cached credential.
//
// Every failure to establish a session resolves to one of two outcomes:
// a usable access token, or domain.ErrNoSession with the store fully cleared.
// Callers never observe a partially valid credential.
type SessionService interface {
	// Login exchanges a username and password for a credential and saves it.
	Login(ctx context.Context, username, password string) (*domain.Credential, error)

	// Save persists a credential obtained from a login exchange.
	// Returns domain.ErrInvalidInput without writing when the access token is empty.
	Save(ctx context.Context, cred domain.Credential) error

	// Clear removes every persisted credential field. Idempotent.
	Clear(ctx context.Context)

	// Logout revokes the refresh token on a best-effort basis and clears local state.
	Logout(ctx context.Context)

	// Current returns the persisted credential, which may be empty or partial.
	Current(ctx context.Context) (domain.Credential, error)

	// IsValid reports whether the cached access token is usable right now.
	IsValid(ctx context.Context) bool

	// GetValidToken returns the cached token when valid, otherwise refreshes it.
	// Returns domain.ErrNoSession when no session can be established.
	GetValidToken(ctx context.Context) (string, error)

	// Refresh obtains and stores a new access token.
	// Returns domain.ErrNoSession, with the store cleared, on any failure.
	Refresh(ctx context.Context) (string, error)

	// CheckOnLoad runs the GetValidToken algorithm and reports whether a session is usable.
	// onInvalid is invoked exactly once when it is not, and never otherwise.
	CheckOnLoad(ctx context.Context, onInvalid func()) bool

	// Claims returns the claims of a valid access token, refreshing first if needed.
	Claims(ctx context.Context) (*domain.TokenClaims, error)
}

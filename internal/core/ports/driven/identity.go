package driven

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// IdentityAPI is the remote service that issues, refreshes and revokes tokens.
type IdentityAPI interface {
	// Login exchanges a username and password for a credential.
	// Returns domain.ErrAuthInvalid when the API rejects the pair.
	Login(ctx context.Context, username, password string) (*domain.Credential, error)

	// Register creates an account. It does not log the user in.
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)

	// Refresh obtains a new access token for refreshToken.
	// Any non-2xx status, transport failure, or response without a token is an error.
	Refresh(ctx context.Context, refreshToken string) (string, error)

	// Introspect reports whether the API considers token active.
	Introspect(ctx context.Context, token string) (bool, error)

	// Logout revokes refreshToken.
	Logout(ctx context.Context, refreshToken string) error
}

package auth

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
)

// Ensure SessionTokenProvider implements the TokenProvider interface.
var _ driven.TokenProvider = (*SessionTokenProvider)(nil)

// SessionTokenProvider provides access tokens from the local session.
// Validation and refresh are delegated to the session service, so the token
// is never cached here.
type SessionTokenProvider struct {
	session driving.SessionService
}

// NewSessionTokenProvider creates a token provider backed by session.
func NewSessionTokenProvider(session driving.SessionService) *SessionTokenProvider {
	return &SessionTokenProvider{session: session}
}

// GetToken returns a usable access token or domain.ErrNoSession.
func (p *SessionTokenProvider) GetToken(ctx context.Context) (string, error) {
	return p.session.GetValidToken(ctx)
}

package auth

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
)

// TokenSourceAdapter adapts a TokenProvider to oauth2.TokenSource.
// This lets an oauth2.Transport attach the session's bearer token to requests.
type TokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider.
//
// The source must not be wrapped in oauth2.ReuseTokenSource: every request
// asks the provider again so that expiry is checked per call.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &TokenSourceAdapter{
		provider: provider,
		ctx:      ctx,
	}
}

// Token implements oauth2.TokenSource.
func (t *TokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.GetToken(t.ctx)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}

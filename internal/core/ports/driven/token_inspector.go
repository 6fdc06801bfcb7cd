package driven

import "github.com/custodia-labs/quizctl/internal/core/domain"

// TokenInspector reads claims from an access token without verifying its signature.
type TokenInspector interface {
	// Claims decodes the token payload.
	// Returns an error wrapping domain.ErrMalformedToken when the payload or expiry cannot be read.
	Claims(token string) (*domain.TokenClaims, error)
}

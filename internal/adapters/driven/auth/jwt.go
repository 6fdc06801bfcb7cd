package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
)

// Ensure JWTInspector implements the interface.
var _ driven.TokenInspector = (*JWTInspector)(nil)

// JWTInspector reads access token claims without verifying the signature.
// The signing key lives with the identity API; the client only needs the expiry.
type JWTInspector struct {
	parser *jwt.Parser
}

// NewJWTInspector creates a token inspector.
func NewJWTInspector() *JWTInspector {
	return &JWTInspector{parser: jwt.NewParser()}
}

// Claims decodes the payload segment of token.
func (i *JWTInspector) Claims(token string) (*domain.TokenClaims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", domain.ErrMalformedToken)
	}

	claims := jwt.MapClaims{}
	// An unknown or missing alg only prevents verification, which is never attempted.
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil && !errors.Is(err, jwt.ErrTokenUnverifiable) {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedToken, err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return nil, fmt.Errorf("%w: exp: %w", domain.ErrMalformedToken, err)
	}
	if exp == nil {
		return nil, fmt.Errorf("%w: exp claim missing", domain.ErrMalformedToken)
	}

	scope, _ := claims["scope"].(string)

	return &domain.TokenClaims{
		Subject:   subject(claims["sub"]),
		Scope:     scope,
		ExpiresAt: exp.Time,
	}, nil
}

// subject renders sub as text. Only exp decides whether a token is usable,
// so an unexpected sub type yields an empty subject rather than an error.
func subject(v any) string {
	switch sub := v.(type) {
	case string:
		return sub
	case float64:
		return strconv.FormatFloat(sub, 'f', -1, 64)
	case json.Number:
		return sub.String()
	default:
		return ""
	}
}

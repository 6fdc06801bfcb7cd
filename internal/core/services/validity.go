package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/logger"
)

// ValidityMargin is how long before its expiry claim an access token stops being usable.
const ValidityMargin = 60 * time.Second

// TokenValidator decides whether an access token is usable.
// Implementations fail closed: any doubt yields false.
type TokenValidator interface {
	Valid(ctx context.Context, token string) bool
}

// NewTokenValidator returns the validator for strategy.
func NewTokenValidator(
	strategy domain.ValidationStrategy,
	inspector driven.TokenInspector,
	identity driven.IdentityAPI,
) (TokenValidator, error) {
	switch strategy {
	case domain.ValidationLocal:
		return NewLocalValidator(inspector), nil
	case domain.ValidationRemote:
		return NewRemoteValidator(identity), nil
	default:
		return nil, fmt.Errorf("%w: unknown validation strategy %q", domain.ErrInvalidInput, strategy)
	}
}

// LocalValidator trusts the token's own expiry claim.
// A server-revoked token still appears valid until it expires.
type LocalValidator struct {
	inspector driven.TokenInspector
	margin    time.Duration
	now       func() time.Time
}

// NewLocalValidator creates a validator using ValidityMargin and the wall clock.
func NewLocalValidator(inspector driven.TokenInspector) *LocalValidator {
	return &LocalValidator{
		inspector: inspector,
		margin:    ValidityMargin,
		now:       time.Now,
	}
}

// Valid returns true only if the expiry claim is strictly later than now plus the margin.
func (v *LocalValidator) Valid(_ context.Context, token string) bool {
	if token == "" {
		return false
	}
	claims, err := v.inspector.Claims(token)
	if err != nil {
		logger.Debug("token validation: %v", err)
		return false
	}
	return claims.ValidAt(v.now(), v.margin)
}

// RemoteValidator asks the identity API about every token.
type RemoteValidator struct {
	identity driven.IdentityAPI
}

// NewRemoteValidator creates a validator backed by the introspection endpoint.
func NewRemoteValidator(identity driven.IdentityAPI) *RemoteValidator {
	return &RemoteValidator{identity: identity}
}

// Valid returns the API's activity flag, or false on any error.
func (v *RemoteValidator) Valid(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	active, err := v.identity.Introspect(ctx, token)
	if err != nil {
		logger.Warn("token introspection: %v", err)
		return false
	}
	return active
}

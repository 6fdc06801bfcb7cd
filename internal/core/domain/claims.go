package domain

import (
	"strings"
	"time"
)

// AdminScope is the scope the quiz service grants to administrators.
const AdminScope = "ROLE_ADMIN"

// TokenClaims holds the claims quizctl reads from an access token payload.
// The signature is not verified client-side; the identity API remains the authority.
type TokenClaims struct {
	// Subject is the user identifier (sub).
	Subject string
	// Scope lists the roles granted to the token, space separated.
	Scope string
	// ExpiresAt is the expiry claim (exp).
	ExpiresAt time.Time
}

// ValidAt returns true if the token expires strictly after now plus margin.
func (c *TokenClaims) ValidAt(now time.Time, margin time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.After(now.Add(margin))
}

// HasScope returns true if the space separated scope contains name.
func (c *TokenClaims) HasScope(name string) bool {
	if c == nil {
		return false
	}
	for _, s := range strings.Fields(c.Scope) {
		if s == name {
			return true
		}
	}
	return false
}

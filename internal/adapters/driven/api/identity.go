package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
)

// Ensure IdentityClient implements the interface.
var _ driven.IdentityAPI = (*IdentityClient)(nil)

// IdentityClient calls the token endpoints. Requests carry no bearer token.
type IdentityClient struct {
	c *client
}

// NewIdentityClient creates an identity API client.
func NewIdentityClient(cfg Config) *IdentityClient {
	return &IdentityClient{c: newClient(cfg, cfg.Transport)}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResult struct {
	Token         string `json:"token"`
	RefreshToken  string `json:"refreshToken"`
	Authenticated *bool  `json:"authenticated,omitempty"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResult struct {
	Token string `json:"token"`
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResult struct {
	IsActive bool `json:"isActive"`
}

// Login exchanges a username and password for a credential.
func (i *IdentityClient) Login(ctx context.Context, username, password string) (*domain.Credential, error) {
	resp, err := i.c.send(ctx, http.MethodPost, "/auth/token", loginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	var result loginResult
	if err := resp.decodeEnvelope(&result); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status != http.StatusTooManyRequests && apiErr.Status < 500 {
			return nil, fmt.Errorf("%w: %s", domain.ErrAuthInvalid, apiErr.Message)
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if result.Authenticated != nil && !*result.Authenticated {
		return nil, domain.ErrAuthInvalid
	}
	if result.Token == "" {
		return nil, fmt.Errorf("login: %w", errMissingResult)
	}

	return &domain.Credential{
		AccessToken:  result.Token,
		RefreshToken: result.RefreshToken,
		Username:     username,
	}, nil
}

// Register creates an account.
func (i *IdentityClient) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	resp, err := i.c.send(ctx, http.MethodPost, "/users", reg)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var user domain.User
	if err := resp.decodeEnvelope(&user); err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &user, nil
}

// Refresh obtains a new access token.
// Any non-2xx status, failure code, or response without a token is an error.
func (i *IdentityClient) Refresh(ctx context.Context, refreshToken string) (string, error) {
	resp, err := i.c.send(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}

	var result refreshResult
	if err := resp.decodeEnvelope(&result); err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	if result.Token == "" {
		return "", fmt.Errorf("refresh: %w", errMissingResult)
	}
	return result.Token, nil
}

// Introspect reports whether the API considers token active.
// A response without an activity flag counts as inactive.
func (i *IdentityClient) Introspect(ctx context.Context, token string) (bool, error) {
	resp, err := i.c.send(ctx, http.MethodPost, "/auth/introspect", introspectRequest{Token: token})
	if err != nil {
		return false, fmt.Errorf("introspect: %w", err)
	}

	var result introspectResult
	if err := resp.decodeEnvelope(&result); err != nil {
		if errors.Is(err, errMissingResult) {
			return false, nil
		}
		return false, fmt.Errorf("introspect: %w", err)
	}
	return result.IsActive, nil
}

// Logout revokes refreshToken. The response body is ignored.
func (i *IdentityClient) Logout(ctx context.Context, refreshToken string) error {
	resp, err := i.c.send(ctx, http.MethodPost, "/auth/logout", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if !resp.ok() {
		return fmt.Errorf("logout: %w", resp.apiError())
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
	"github.com/custodia-labs/quizctl/internal/logger"
)

// Ensure SessionManager implements the interface.
var _ driving.SessionService = (*SessionManager)(nil)

const refreshFlight = "refresh"

// SessionManager owns the locally cached credential.
//
// Concurrent callers holding a stale token share a single in-flight refresh.
// mu serialises every write to the store, including the commit at the end of
// a refresh, so the store never holds a partially valid credential.
type SessionManager struct {
	store     driven.SessionStore
	identity  driven.IdentityAPI
	inspector driven.TokenInspector
	validator TokenValidator

	mu      sync.Mutex
	flights singleflight.Group
}

// NewSessionManager creates a session manager.
// validator must be the single strategy used for the manager's lifetime.
func NewSessionManager(
	store driven.SessionStore,
	identity driven.IdentityAPI,
	inspector driven.TokenInspector,
	validator TokenValidator,
) *SessionManager {
	return &SessionManager{
		store:     store,
		identity:  identity,
		inspector: inspector,
		validator: validator,
	}
}

// Login exchanges a username and password for a credential and saves it.
func (m *SessionManager) Login(ctx context.Context, username, password string) (*domain.Credential, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	cred, err := m.identity.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	if cred.Username == "" {
		cred.Username = username
	}
	if cred.RefreshToken == "" {
		logger.Warn("login for %s returned no refresh token; the session cannot be refreshed", username)
	}

	if err := m.Save(ctx, *cred); err != nil {
		return nil, err
	}
	return cred, nil
}

// Save persists all three credential fields.
// An empty refresh token or username removes that key, so nothing from a
// previous session survives. A failed write clears the store.
func (m *SessionManager) Save(ctx context.Context, cred domain.Credential) error {
	if cred.AccessToken == "" {
		logger.Error("save session: access token is missing")
		return fmt.Errorf("%w: access token is required", domain.ErrInvalidInput)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	values := map[string]string{
		domain.KeyAccessToken:  cred.AccessToken,
		domain.KeyRefreshToken: cred.RefreshToken,
		domain.KeyUsername:     cred.Username,
	}
	for _, key := range domain.CredentialKeys {
		var err error
		if v := values[key]; v != "" {
			err = m.store.Set(ctx, key, v)
		} else {
			err = m.store.Remove(ctx, key)
		}
		if err != nil {
			m.clearLocked(ctx)
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	logger.Debug("session saved for %s", cred.Username)
	return nil
}

// Clear removes every persisted credential field.
func (m *SessionManager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearLocked(ctx)
}

// clearLocked removes all keys (caller must hold mu).
func (m *SessionManager) clearLocked(ctx context.Context) {
	for _, key := range domain.CredentialKeys {
		if err := m.store.Remove(ctx, key); err != nil {
			logger.Error("clear session: remove %s: %v", key, err)
		}
	}
	logger.Debug("session cleared")
}

// Logout revokes the refresh token on a best-effort basis and always clears local state.
func (m *SessionManager) Logout(ctx context.Context) {
	cred, err := m.Current(ctx)
	switch {
	case err != nil:
		logger.Warn("logout: read session: %v", err)
	case !cred.HasRefreshToken():
		logger.Warn("logout: no refresh token, clearing local session only")
	default:
		if err := m.identity.Logout(ctx, cred.RefreshToken); err != nil {
			logger.Warn("logout: %v", err)
		}
	}
	m.Clear(ctx)
}

// Current returns the persisted credential as stored, which may be empty or partial.
func (m *SessionManager) Current(ctx context.Context) (domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadLocked(ctx)
}

// loadLocked reads all keys (caller must hold mu).
func (m *SessionManager) loadLocked(ctx context.Context) (domain.Credential, error) {
	var cred domain.Credential
	fields := map[string]*string{
		domain.KeyAccessToken:  &cred.AccessToken,
		domain.KeyRefreshToken: &cred.RefreshToken,
		domain.KeyUsername:     &cred.Username,
	}
	for _, key := range domain.CredentialKeys {
		v, _, err := m.store.Get(ctx, key)
		if err != nil {
			return domain.Credential{}, fmt.Errorf("read %s: %w", key, err)
		}
		*fields[key] = v
	}
	return cred, nil
}

// IsValid reports whether the cached access token is usable right now.
// Partial credentials are never valid.
func (m *SessionManager) IsValid(ctx context.Context) bool {
	cred, err := m.Current(ctx)
	if err != nil {
		logger.Warn("validate session: %v", err)
		return false
	}
	return m.valid(ctx, cred)
}

func (m *SessionManager) valid(ctx context.Context, cred domain.Credential) bool {
	if !cred.IsComplete() {
		return false
	}
	return m.validator.Valid(ctx, cred.AccessToken)
}

// GetValidToken returns the cached access token unchanged when it is valid,
// otherwise the result of a refresh.
func (m *SessionManager) GetValidToken(ctx context.Context) (string, error) {
	cred, err := m.Current(ctx)
	if err == nil && m.valid(ctx, cred) {
		return cred.AccessToken, nil
	}
	return m.refreshFrom(ctx, cred.AccessToken)
}

// Refresh obtains and stores a new access token, even if the current one is still valid.
func (m *SessionManager) Refresh(ctx context.Context) (string, error) {
	cred, _ := m.Current(ctx)
	return m.refreshFrom(ctx, cred.AccessToken)
}

// CheckOnLoad reports whether a session is usable, invoking onInvalid once when it is not.
func (m *SessionManager) CheckOnLoad(ctx context.Context, onInvalid func()) bool {
	if _, err := m.GetValidToken(ctx); err != nil {
		if onInvalid != nil {
			onInvalid()
		}
		return false
	}
	return true
}

// Claims returns the claims of a usable access token.
func (m *SessionManager) Claims(ctx context.Context) (*domain.TokenClaims, error) {
	token, err := m.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return m.inspector.Claims(token)
}

// refreshFrom joins or starts the shared refresh. stale is the token the
// caller found unusable; if another flight already replaced it with a valid
// token, that token is returned without a network call.
//
// The flight runs detached from the caller's cancellation and is bounded only
// by the identity client's timeout.
func (m *SessionManager) refreshFrom(ctx context.Context, stale string) (string, error) {
	flightCtx := context.WithoutCancel(ctx)
	v, err, shared := m.flights.Do(refreshFlight, func() (any, error) {
		return m.refresh(flightCtx, stale)
	})
	if shared {
		logger.Debug("refresh: joined in-flight request")
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (m *SessionManager) refresh(ctx context.Context, stale string) (string, error) {
	logger.Section("Session refresh")

	cred, err := m.Current(ctx)
	if err != nil {
		logger.Error("refresh: %v", err)
		m.Clear(ctx)
		return "", domain.ErrNoSession
	}

	if cred.IsEmpty() {
		logger.Debug("refresh: not logged in")
		return "", domain.ErrNoSession
	}

	if cred.AccessToken != stale && m.valid(ctx, cred) {
		logger.Debug("refresh: token already replaced")
		return cred.AccessToken, nil
	}

	if !cred.IsComplete() {
		logger.Warn("refresh: partial credential, clearing session")
		m.Clear(ctx)
		return "", domain.ErrNoSession
	}

	token, err := m.identity.Refresh(ctx, cred.RefreshToken)
	if err == nil {
		if _, err = m.inspector.Claims(token); err != nil {
			err = fmt.Errorf("%w: refreshed token: %w", domain.ErrTokenRefreshFailed, err)
		}
	}
	if err != nil {
		logger.Error("refresh: %v", err)
		m.clearIfRefreshToken(ctx, cred.RefreshToken)
		return "", domain.ErrNoSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.loadLocked(ctx)
	if err != nil {
		logger.Error("refresh: %v", err)
		m.clearLocked(ctx)
		return "", domain.ErrNoSession
	}
	if current.RefreshToken != cred.RefreshToken {
		// A logout or a new login won the race. The refreshed token belongs
		// to neither, so it is dropped and the store is left as is.
		logger.Warn("refresh: session changed while refreshing, discarding token")
		return "", domain.ErrNoSession
	}

	if err := m.store.Set(ctx, domain.KeyAccessToken, token); err != nil {
		logger.Error("refresh: save access token: %v", err)
		m.clearLocked(ctx)
		return "", domain.ErrNoSession
	}

	logger.Info("refresh: access token replaced for %s", current.Username)
	return token, nil
}

// clearIfRefreshToken clears the store unless a different session was saved meanwhile.
func (m *SessionManager) clearIfRefreshToken(ctx context.Context, refreshToken string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, err := m.loadLocked(ctx)
	if err == nil && current.RefreshToken != "" && current.RefreshToken != refreshToken {
		logger.Warn("refresh: a new session was saved meanwhile, keeping it")
		return
	}
	m.clearLocked(ctx)
}

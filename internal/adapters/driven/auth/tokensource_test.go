package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// countingProvider returns a new token on every call.
type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) GetToken(_ context.Context) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return "token-" + string(rune('0'+p.calls)), nil
}

func TestTokenSource_Token(t *testing.T) {
	provider := &countingProvider{}
	src := NewTokenSource(context.Background(), provider)

	tok, err := src.Token()

	require.NoError(t, err)
	assert.Equal(t, "token-1", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
}

func TestTokenSource_Error(t *testing.T) {
	src := NewTokenSource(context.Background(), &countingProvider{err: domain.ErrNoSession})

	tok, err := src.Token()

	assert.Nil(t, tok)
	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestTokenSource_AsksProviderOnEveryRequest(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	provider := &countingProvider{}
	client := &http.Client{Transport: &oauth2.Transport{
		Source: NewTokenSource(context.Background(), provider),
	}}

	for i := 0; i < 3; i++ {
		resp, err := client.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close()
	}

	assert.Equal(t, 3, provider.calls)
	assert.Equal(t, []string{"Bearer token-1", "Bearer token-2", "Bearer token-3"}, seen)
}

func TestTokenSource_TransportSurfacesNoSession(t *testing.T) {
	client := &http.Client{Transport: &oauth2.Transport{
		Source: NewTokenSource(context.Background(), &countingProvider{err: domain.ErrNoSession}),
	}}

	_, err := client.Get("http://127.0.0.1:1")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoSession))
}

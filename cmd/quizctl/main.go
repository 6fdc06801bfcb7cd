// Command quizctl is a terminal client for the quiz service.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/custodia-labs/quizctl/internal/adapters/driven/api"
	"github.com/custodia-labs/quizctl/internal/adapters/driven/auth"
	"github.com/custodia-labs/quizctl/internal/adapters/driven/config/file"
	"github.com/custodia-labs/quizctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quizctl/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/quizctl/internal/adapters/driving/cli"
	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/services"
	"github.com/custodia-labs/quizctl/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	home, err := file.DefaultDir()
	if err != nil {
		return fmt.Errorf("resolving home directory: %w", err)
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, watcher, closer, err := openSessionStore(settings.Session.Store, home)
	if err != nil {
		return err
	}
	defer closer.Close()

	apiConfig := api.Config{
		BaseURL: settings.API.BaseURL,
		Timeout: settings.API.Timeout,
		Limiter: api.NewRateLimiter(settings.API.RateLimit, api.DefaultBurstSize),
	}

	identity := api.NewIdentityClient(apiConfig)
	inspector := auth.NewJWTInspector()
	validator, err := services.NewTokenValidator(settings.Session.Validation, inspector, identity)
	if err != nil {
		return err
	}
	session := services.NewSessionManager(store, identity, inspector, validator)

	tokens := auth.NewTokenSource(ctx, auth.NewSessionTokenProvider(session))
	quizAPI := api.NewQuizClient(apiConfig, tokens)

	logger.Debug("api=%s validation=%s store=%s",
		settings.API.BaseURL, settings.Session.Validation, settings.Session.Store)

	svc := cli.Services{
		Session:      session,
		Quiz:         services.NewQuizService(quizAPI, session, settings.Quiz.Duration),
		Admin:        services.NewAdminService(quizAPI),
		Registration: services.NewRegistrationService(identity),
		Settings:     settingsService,
		Watcher:      watcher,
	}
	cli.SetServices(svc)
	cli.SetVersion(version)

	return cli.Execute(ctx)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openSessionStore opens the configured credential backend under home.
func openSessionStore(backend domain.StoreBackend, home string) (driven.SessionStore, cli.SessionWatcher, io.Closer, error) {
	switch backend {
	case domain.StoreSQLite:
		s, err := sqlite.NewStore(filepath.Join(home, "data"))
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening session database: %w", err)
		}
		return s, nil, s, nil
	case domain.StoreMemory:
		return memory.NewSessionStore(), nil, nopCloser{}, nil
	default:
		s, err := file.NewSessionStore(home)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening session file: %w", err)
		}
		return s, s, nopCloser{}, nil
	}
}

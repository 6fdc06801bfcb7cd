// Package cli provides the cobra command tree for quizctl.
//
// Services are injected by main through SetServices before Execute runs.
// Every command that talks to the quiz API obtains its bearer token from the
// session service, which refreshes or clears the session as needed.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
	"github.com/custodia-labs/quizctl/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// SessionWatcher notifies when the persisted session changes outside this process.
type SessionWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// Services holds the driving ports the commands operate on.
type Services struct {
	Session      driving.SessionService
	Quiz         driving.QuizService
	Admin        driving.AdminService
	Registration driving.RegistrationService
	Settings     driving.SettingsService
	// Watcher is optional; status --watch is unavailable without it.
	Watcher SessionWatcher
}

var (
	sessionService      driving.SessionService
	quizService         driving.QuizService
	adminService        driving.AdminService
	registrationService driving.RegistrationService
	settingsService     driving.SettingsService
	sessionWatcher      SessionWatcher
)

var errNotLoggedIn = errors.New("not logged in, run 'quizctl login'")

var rootCmd = &cobra.Command{
	Use:   "quizctl",
	Short: "Take quizzes from your terminal",
	Long: `quizctl is a command-line client for the quiz service.

Log in once and quizctl keeps your session fresh: expired access tokens are
refreshed automatically, and you are asked to log in again only when the
session can no longer be renewed.

Examples:
  quizctl login -u alice
  quizctl categories
  quizctl tests --category 3
  quizctl take 12`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable diagnostic logging")
}

// SetServices injects the services used by all commands.
func SetServices(s Services) {
	sessionService = s.Session
	quizService = s.Quiz
	adminService = s.Admin
	registrationService = s.Registration
	settingsService = s.Settings
	sessionWatcher = s.Watcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// friendlyError rewrites session failures into an instruction for the user.
func friendlyError(err error) error {
	if errors.Is(err, domain.ErrNoSession) {
		return errNotLoggedIn
	}
	return err
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

var loginUsername string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the quiz service",
	Long: `Log in with your username and password.

The password is never stored. quizctl keeps the access token, the refresh
token and your username, and renews the access token automatically.

Examples:
  quizctl login
  quizctl login -u alice`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Check the stored session, refreshing the access token if it has expired.

With --watch, status is printed again whenever another quizctl process logs
in, logs out or refreshes the session. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a valid access token",
	Long: `Print a usable access token, refreshing it first if needed.

Useful for scripting:
  curl -H "Authorization: Bearer $(quizctl token)" ...`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	statusCmd.Flags().BoolVarP(&statusWatch, "watch", "w", false, "keep running and report session changes")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	username := loginUsername
	if username == "" {
		username = prompt(cmd, reader, "Username: ")
	}
	password := readPassword(cmd, in, reader, "Password: ")

	cred, err := sessionService.Login(cmd.Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthInvalid) {
			return errors.New("login failed: invalid username or password")
		}
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Println(style.Success.Render(fmt.Sprintf("Logged in as %s", cred.Username)))
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	sessionService.Logout(cmd.Context())
	cmd.Println("Logged out.")
	return nil
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	ctx := cmd.Context()
	printStatus(ctx, cmd)

	if !statusWatch {
		return nil
	}
	if sessionWatcher == nil {
		return errors.New("session watching is only available with the file store")
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	changes, err := sessionWatcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("watch session: %w", err)
	}

	cmd.Println(style.Muted.Render("Watching for session changes, Ctrl+C to stop."))
	for range changes {
		cmd.Println()
		cmd.Println(style.Muted.Render(time.Now().Format(time.TimeOnly)))
		printStatus(ctx, cmd)
	}
	return nil
}

func printStatus(ctx context.Context, cmd *cobra.Command) {
	ok := sessionService.CheckOnLoad(ctx, func() {
		cmd.Println(style.Warning.Render("Not logged in."))
	})
	if !ok {
		return
	}

	cred, err := sessionService.Current(ctx)
	if err != nil {
		cmd.Println(style.Error.Render(fmt.Sprintf("Reading session: %v", err)))
		return
	}

	cmd.Println(style.Success.Render("Logged in."))
	cmd.Printf("  %s %s\n", style.Label.Render("Username:"), cred.Username)
	cmd.Printf("  %s %s\n", style.Label.Render("Token:"), maskSecret(cred.AccessToken))

	claims, err := sessionService.Claims(ctx)
	if err != nil {
		return
	}
	if claims.Subject != "" {
		cmd.Printf("  %s %s\n", style.Label.Render("User ID:"), claims.Subject)
	}
	if claims.Scope != "" {
		cmd.Printf("  %s %s\n", style.Label.Render("Roles:"), claims.Scope)
	}
	cmd.Printf("  %s %s (in %s)\n", style.Label.Render("Expires:"),
		claims.ExpiresAt.Local().Format(time.DateTime),
		time.Until(claims.ExpiresAt).Round(time.Second))
}

func runToken(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	token, err := sessionService.GetValidToken(cmd.Context())
	if err != nil {
		return friendlyError(err)
	}
	cmd.Println(token)
	return nil
}

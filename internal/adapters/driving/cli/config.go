package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change quizctl settings.

Settings are stored in config.toml in the quizctl home directory. Environment
variables such as QUIZCTL_API_BASE_URL take precedence over stored values.

Keys:
  api.base_url        API root URL
  api.timeout         HTTP timeout in seconds
  api.rate_limit      requests per second
  session.validation  local or remote
  session.store       file, sqlite or memory
  quiz.duration       default test time limit in minutes`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List settings as key=value pairs",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset [key]",
	Short: "Restore a setting to its default",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigUnset,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the session settings step by step.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

// settingValues renders settings keyed by their config keys.
func settingValues(s *domain.AppSettings) map[string]string {
	return map[string]string{
		"api.base_url":       s.API.BaseURL,
		"api.timeout":        strconv.Itoa(int(s.API.Timeout.Seconds())),
		"api.rate_limit":     strconv.FormatFloat(s.API.RateLimit, 'f', -1, 64),
		"session.validation": s.Session.Validation.String(),
		"session.store":      s.Session.Store.String(),
		"quiz.duration":      strconv.Itoa(int(s.Quiz.Duration.Minutes())),
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	cmd.Printf("  Timeout: %s\n", settings.API.Timeout)
	cmd.Printf("  Rate limit: %g req/s\n", settings.API.RateLimit)
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Validation: %s\n", settings.Session.Validation.Description())
	cmd.Printf("  Store: %s\n", settings.Session.Store)
	cmd.Println()

	cmd.Println("[Quiz]")
	cmd.Printf("  Default duration: %s\n", settings.Quiz.Duration)
	cmd.Println()

	cmd.Println(style.Muted.Render("Config file: " + settingsService.Path()))
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := settingValues(settings)
	for _, key := range settingsService.Keys() {
		cmd.Printf("%s=%s\n", key, values[key])
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, ok := settingValues(settings)[args[0]]
	if !ok {
		return fmt.Errorf("unknown setting %q", args[0])
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s set to %s\n", args[0], strings.TrimSpace(args[1]))
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("%s restored to default\n", args[0])
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("quizctl Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: API
	cmd.Println("Step 1: API base URL")
	cmd.Println("--------------------")
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("Enter URL [%s]: ", settings.API.BaseURL)
	if input := readLine(reader); input != "" {
		if err := settingsService.Set("api.base_url", input); err != nil {
			return fmt.Errorf("failed to set base URL: %w", err)
		}
	}
	cmd.Println()

	// Step 2: Validation
	cmd.Println("Step 2: Select Token Validation")
	cmd.Println("-------------------------------")
	strategies := []domain.ValidationStrategy{domain.ValidationLocal, domain.ValidationRemote}
	for i, s := range strategies {
		cmd.Printf("  %d. %s\n", i+1, s.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	strategy := strategies[parseChoice(readLine(reader), len(strategies), 1)-1]
	if err := settingsService.Set("session.validation", strategy.String()); err != nil {
		return fmt.Errorf("failed to set validation: %w", err)
	}
	cmd.Println()

	// Step 3: Store
	cmd.Println("Step 3: Select Session Store")
	cmd.Println("----------------------------")
	backends := []domain.StoreBackend{domain.StoreFile, domain.StoreSQLite, domain.StoreMemory}
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b)
	}
	cmd.Print("\nEnter choice [1]: ")
	backend := backends[parseChoice(readLine(reader), len(backends), 1)-1]
	if err := settingsService.Set("session.store", backend.String()); err != nil {
		return fmt.Errorf("failed to set store: %w", err)
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("Settings saved to " + settingsService.Path())
	cmd.Println("A new store takes effect from the next login.")
	return nil
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

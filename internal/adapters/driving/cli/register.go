package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// Flags for register.
var (
	registerUsername  string
	registerFirstName string
	registerLastName  string
	registerDob       string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Create a new account on the quiz service.

Missing details are prompted for. The password is always prompted and must be
entered twice. Registering does not log you in.

Examples:
  quizctl register
  quizctl register -u alice --first-name Alice --last-name Liddell --dob 2000-05-04`,
	Args: cobra.NoArgs,
	RunE: runRegister,
}

func init() {
	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "account username")
	registerCmd.Flags().StringVar(&registerFirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerLastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerDob, "dob", "", "date of birth (YYYY-MM-DD)")
	rootCmd.AddCommand(registerCmd)
}

func runRegister(cmd *cobra.Command, _ []string) error {
	if registrationService == nil {
		return errors.New("registration service not configured")
	}

	in := cmd.InOrStdin()
	reader := bufio.NewReader(in)

	reg := domain.Registration{
		Username:  registerUsername,
		FirstName: registerFirstName,
		LastName:  registerLastName,
		Dob:       registerDob,
	}
	if reg.Username == "" {
		reg.Username = prompt(cmd, reader, "Username: ")
	}
	if reg.FirstName == "" {
		reg.FirstName = prompt(cmd, reader, "First name: ")
	}
	if reg.LastName == "" {
		reg.LastName = prompt(cmd, reader, "Last name: ")
	}
	if reg.Dob == "" {
		reg.Dob = prompt(cmd, reader, "Date of birth (YYYY-MM-DD): ")
	}

	reg.Password = readPassword(cmd, in, reader, "Password: ")
	confirm := readPassword(cmd, in, reader, "Confirm password: ")
	if reg.Password != confirm {
		return errors.New("passwords do not match")
	}

	user, err := registrationService.Register(cmd.Context(), reg)
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	cmd.Println(style.Success.Render(fmt.Sprintf("Account %s created.", user.Username)))
	cmd.Println("Run 'quizctl login' to start.")
	return nil
}

package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage categories, tests, questions and users",
	Long: `Administrative commands. The quiz service rejects them unless your
account has the admin role.

Examples:
  quizctl admin categories create --name science --title "Science"
  quizctl admin tests create --title "Physics 101" --category 3 --time 20
  quizctl admin questions create 12 --text "2+2?" -a 3 -b 4 -c 5 -d 6 --correct B
  quizctl admin users update 5f2c --roles USER,ADMIN`,
}

var adminCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Manage categories",
}

var adminCategoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Args:  cobra.NoArgs,
	RunE:  runAdminCategoryCreate,
}

var adminCategoryUpdateCmd = &cobra.Command{
	Use:   "update [category-id]",
	Short: "Replace a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoryUpdate,
}

var adminCategoryDeleteCmd = &cobra.Command{
	Use:   "delete [category-id]",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminCategoryDelete,
}

var adminTestsCmd = &cobra.Command{
	Use:   "tests",
	Short: "Manage tests",
}

var adminTestCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a test",
	Args:  cobra.NoArgs,
	RunE:  runAdminTestCreate,
}

var adminTestUpdateCmd = &cobra.Command{
	Use:   "update [test-id]",
	Short: "Replace a test",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminTestUpdate,
}

var adminTestDeleteCmd = &cobra.Command{
	Use:   "delete [test-id]",
	Short: "Delete a test",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminTestDelete,
}

var adminQuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Manage questions",
}

var adminQuestionListCmd = &cobra.Command{
	Use:   "list [test-id]",
	Short: "List a test's questions with their correct options",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminQuestionList,
}

var adminQuestionCreateCmd = &cobra.Command{
	Use:   "create [test-id]",
	Short: "Add a question to a test",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminQuestionCreate,
}

var adminQuestionUpdateCmd = &cobra.Command{
	Use:   "update [question-id]",
	Short: "Replace a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminQuestionUpdate,
}

var adminQuestionDeleteCmd = &cobra.Command{
	Use:   "delete [question-id]",
	Short: "Delete a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminQuestionDelete,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
}

var adminUserListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	Args:  cobra.NoArgs,
	RunE:  runAdminUserList,
}

var adminUserUpdateCmd = &cobra.Command{
	Use:   "update [user-id]",
	Short: "Edit a user account",
	Long: `Edit a user account. Only the flags given are sent.

--roles replaces the user's roles with the comma-separated list.`,
	Args: cobra.ExactArgs(1),
	RunE: runAdminUserUpdate,
}

// Flags for admin commands.
var (
	categoryName        string
	categoryTitle       string
	categoryDescription string

	testTitle       string
	testDescription string
	testTime        int
	testCategoryID  int64

	questionText    string
	questionOptionA string
	questionOptionB string
	questionOptionC string
	questionOptionD string
	questionCorrect string

	userPassword  string
	userFirstName string
	userLastName  string
	userDob       string
	userRoles     []string
)

func init() {
	for _, c := range []*cobra.Command{adminCategoryCreateCmd, adminCategoryUpdateCmd} {
		c.Flags().StringVar(&categoryName, "name", "", "category name")
		c.Flags().StringVar(&categoryTitle, "title", "", "display title")
		c.Flags().StringVar(&categoryDescription, "description", "", "description")
	}
	for _, c := range []*cobra.Command{adminTestCreateCmd, adminTestUpdateCmd} {
		c.Flags().StringVar(&testTitle, "title", "", "test title")
		c.Flags().StringVar(&testDescription, "description", "", "description")
		c.Flags().IntVar(&testTime, "time", 0, "time limit in minutes (0 for the default)")
		c.Flags().Int64Var(&testCategoryID, "category", 0, "category id")
	}
	for _, c := range []*cobra.Command{adminQuestionCreateCmd, adminQuestionUpdateCmd} {
		c.Flags().StringVar(&questionText, "text", "", "question text")
		c.Flags().StringVarP(&questionOptionA, "option-a", "a", "", "text of option A")
		c.Flags().StringVarP(&questionOptionB, "option-b", "b", "", "text of option B")
		c.Flags().StringVarP(&questionOptionC, "option-c", "c", "", "text of option C")
		c.Flags().StringVarP(&questionOptionD, "option-d", "d", "", "text of option D")
		c.Flags().StringVar(&questionCorrect, "correct", "", "correct option (A-D)")
	}
	adminUserUpdateCmd.Flags().StringVar(&userPassword, "password", "", "new password")
	adminUserUpdateCmd.Flags().StringVar(&userFirstName, "first-name", "", "first name")
	adminUserUpdateCmd.Flags().StringVar(&userLastName, "last-name", "", "last name")
	adminUserUpdateCmd.Flags().StringVar(&userDob, "dob", "", "date of birth (YYYY-MM-DD)")
	adminUserUpdateCmd.Flags().StringSliceVar(&userRoles, "roles", nil, "roles, comma separated")

	adminCategoriesCmd.AddCommand(adminCategoryCreateCmd, adminCategoryUpdateCmd, adminCategoryDeleteCmd)
	adminTestsCmd.AddCommand(adminTestCreateCmd, adminTestUpdateCmd, adminTestDeleteCmd)
	adminQuestionsCmd.AddCommand(adminQuestionListCmd, adminQuestionCreateCmd,
		adminQuestionUpdateCmd, adminQuestionDeleteCmd)
	adminUsersCmd.AddCommand(adminUserListCmd, adminUserUpdateCmd)

	adminCmd.AddCommand(adminCategoriesCmd, adminTestsCmd, adminQuestionsCmd, adminUsersCmd)
	rootCmd.AddCommand(adminCmd)
}

func requireAdmin(cmd *cobra.Command) error {
	if adminService == nil {
		return errors.New("admin service not configured")
	}
	warnIfNotAdmin(cmd)
	return nil
}

// warnIfNotAdmin flags a session whose token lacks the admin scope. The
// request still goes out because the server makes the final decision.
func warnIfNotAdmin(cmd *cobra.Command) {
	if sessionService == nil {
		return
	}
	claims, err := sessionService.Claims(cmd.Context())
	if err != nil || claims.HasScope(domain.AdminScope) {
		return
	}
	cmd.PrintErrln(style.Warning.Render(
		"Warning: your session has no admin scope; the server will likely reject this."))
}

func categoryFromFlags(id int64) domain.Category {
	return domain.Category{
		ID:          id,
		Name:        categoryName,
		Title:       categoryTitle,
		Description: categoryDescription,
	}
}

func runAdminCategoryCreate(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	created, err := adminService.CreateCategory(cmd.Context(), categoryFromFlags(0))
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Created category %d: %s\n", created.ID, created.DisplayName())
	return nil
}

func runAdminCategoryUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	id, err := parseID("category", args[0])
	if err != nil {
		return err
	}
	updated, err := adminService.UpdateCategory(cmd.Context(), categoryFromFlags(id))
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Updated category %d: %s\n", updated.ID, updated.DisplayName())
	return nil
}

func runAdminCategoryDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	id, err := parseID("category", args[0])
	if err != nil {
		return err
	}
	if err := adminService.DeleteCategory(cmd.Context(), id); err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Deleted category %d\n", id)
	return nil
}

func testFromFlags(id int64) domain.Test {
	return domain.Test{
		ID:          id,
		Title:       testTitle,
		Description: testDescription,
		Time:        testTime,
		CategoryID:  testCategoryID,
	}
}

func runAdminTestCreate(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	created, err := adminService.CreateTest(cmd.Context(), testFromFlags(0))
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Created test %d: %s\n", created.ID, created.Title)
	return nil
}

func runAdminTestUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	id, err := parseID("test", args[0])
	if err != nil {
		return err
	}
	updated, err := adminService.UpdateTest(cmd.Context(), testFromFlags(id))
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Updated test %d: %s\n", updated.ID, updated.Title)
	return nil
}

func runAdminTestDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	id, err := parseID("test", args[0])
	if err != nil {
		return err
	}
	if err := adminService.DeleteTest(cmd.Context(), id); err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Deleted test %d\n", id)
	return nil
}

func questionFromFlags(id int64) domain.Question {
	return domain.Question{
		ID:            id,
		QuestionText:  questionText,
		OptionA:       questionOptionA,
		OptionB:       questionOptionB,
		OptionC:       questionOptionC,
		OptionD:       questionOptionD,
		CorrectOption: domain.Option(strings.ToUpper(strings.TrimSpace(questionCorrect))),
	}
}

func runAdminQuestionList(cmd *cobra.Command, args []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}
	testID, err := parseID("test", args[0])
	if err != nil {
		return err
	}
	questions, err := quizService.Questions(cmd.Context(), testID)
	if err != nil {
		return friendlyError(err)
	}
	if len(questions) == 0 {
		cmd.Println("No questions found.")
		return nil
	}
	for _, q := range questions {
		cmd.Printf("[%d] %s\n", q.ID, q.QuestionText)
		for _, c := range q.Choices() {
			marker := " "
			if c.Option == q.CorrectOption {
				marker = "*"
			}
			cmd.Printf("  %s%s) %s\n", marker, c.Option, c.Text)
		}
	}
	return nil
}

func runAdminQuestionCreate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	testID, err := parseID("test", args[0])
	if err != nil {
		return err
	}
	created, err := adminService.CreateQuestion(cmd.Context(), testID, questionFromFlags(0))
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Created question %d in test %d\n", created.ID, testID)
	return nil
}

func runAdminQuestionUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	id, err := parseID("question", args[0])
	if err != nil {
		return err
	}
	updated, err := adminService.UpdateQuestion(cmd.Context(), questionFromFlags(id))
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Updated question %d\n", updated.ID)
	return nil
}

func runAdminQuestionDelete(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	id, err := parseID("question", args[0])
	if err != nil {
		return err
	}
	if err := adminService.DeleteQuestion(cmd.Context(), id); err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Deleted question %d\n", id)
	return nil
}

func runAdminUserList(cmd *cobra.Command, _ []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	users, err := adminService.Users(cmd.Context())
	if err != nil {
		return friendlyError(err)
	}
	if len(users) == 0 {
		cmd.Println("No users found.")
		return nil
	}
	for _, u := range users {
		name := strings.TrimSpace(u.FirstName + " " + u.LastName)
		cmd.Printf("  %s  %s", u.ID, u.Username)
		if name != "" {
			cmd.Printf(" (%s)", name)
		}
		if roles := u.RoleNames(); len(roles) > 0 {
			cmd.Printf(" %s", style.Muted.Render("["+strings.Join(roles, ", ")+"]"))
		}
		cmd.Println()
	}
	return nil
}

func runAdminUserUpdate(cmd *cobra.Command, args []string) error {
	if err := requireAdmin(cmd); err != nil {
		return err
	}
	update := domain.UserUpdate{
		Password:  userPassword,
		FirstName: userFirstName,
		LastName:  userLastName,
		Dob:       userDob,
		Roles:     userRoles,
	}
	updated, err := adminService.UpdateUser(cmd.Context(), args[0], update)
	if err != nil {
		return friendlyError(err)
	}
	cmd.Printf("Updated user %s\n", updated.Username)
	return nil
}

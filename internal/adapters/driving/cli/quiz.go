package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// clock is replaced in tests.
var clock = time.Now

var (
	listJSON     bool
	testCategory int64
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List quiz categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var testsCmd = &cobra.Command{
	Use:   "tests",
	Short: "List available tests",
	Long: `List available tests, optionally restricted to one category.

Examples:
  quizctl tests
  quizctl tests --category 3`,
	Args: cobra.NoArgs,
	RunE: runTests,
}

var takeCmd = &cobra.Command{
	Use:   "take [test-id]",
	Short: "Take a timed test",
	Long: `Start a timed attempt at a test.

Each question is shown with options A to D. Type a letter and press Enter to
answer, or press Enter alone to skip. When the time limit runs out, answers
given so far are submitted automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runTake,
}

func init() {
	categoriesCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	testsCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	testsCmd.Flags().Int64VarP(&testCategory, "category", "c", 0, "only show tests in this category")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(takeCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}

	categories, err := quizService.Categories(cmd.Context())
	if err != nil {
		return friendlyError(err)
	}

	if listJSON {
		return outputJSON(cmd, categories)
	}
	if len(categories) == 0 {
		cmd.Println("No categories found.")
		return nil
	}

	cmd.Println(style.Title.Render("Categories"))
	for _, c := range categories {
		cmd.Printf("  [%d] %s\n", c.ID, c.DisplayName())
		if c.Description != "" {
			cmd.Printf("      %s\n", style.Muted.Render(c.Description))
		}
	}
	return nil
}

func runTests(cmd *cobra.Command, _ []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}

	tests, err := quizService.Tests(cmd.Context(), testCategory)
	if err != nil {
		return friendlyError(err)
	}

	if listJSON {
		return outputJSON(cmd, tests)
	}
	if len(tests) == 0 {
		cmd.Println("No tests found.")
		return nil
	}

	cmd.Println(style.Title.Render("Tests"))
	for _, t := range tests {
		limit := "default time limit"
		if t.Time > 0 {
			limit = fmt.Sprintf("%d min", t.Time)
		}
		cmd.Printf("  [%d] %s %s\n", t.ID, t.Title, style.Muted.Render("("+limit+")"))
		if t.Description != "" {
			cmd.Printf("      %s\n", style.Muted.Render(t.Description))
		}
	}
	return nil
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// answerEvent is what ended a wait for input.
type answerEvent int

const (
	answerGiven answerEvent = iota
	answerSkipped
	answerTimeout
	answerEOF
)

func runTake(cmd *cobra.Command, args []string) error {
	if quizService == nil {
		return errors.New("quiz service not configured")
	}
	testID, err := parseID("test", args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	attempt, err := quizService.Start(ctx, testID)
	if err != nil {
		return friendlyError(err)
	}

	cmd.Println(style.Title.Render(attempt.Test.Title))
	cmd.Printf("%d questions, %s to answer.\n\n",
		len(attempt.Questions), attempt.Remaining(clock()).Round(time.Second))

	lines := scanLines(cmd.InOrStdin())
	deadline := time.NewTimer(attempt.Remaining(clock()))
	defer deadline.Stop()

	if !askAll(cmd, attempt, lines, deadline.C) {
		cmd.Println(style.Warning.Render("Time is up, submitting your answers."))
	}

	summary, err := quizService.Submit(ctx, attempt)
	if err != nil {
		return friendlyError(err)
	}
	printSummary(cmd, attempt, summary)
	return nil
}

// askAll walks the questions until all are answered or skipped.
// It returns false if the deadline fired first.
func askAll(cmd *cobra.Command, attempt *domain.Attempt, lines <-chan string, deadline <-chan time.Time) bool {
	for i, q := range attempt.Questions {
		printQuestion(cmd, i, len(attempt.Questions), q, attempt.Remaining(clock()))

		for {
			cmd.Print("Answer [A-D, Enter to skip]: ")
			line, event := waitAnswer(lines, deadline)
			switch event {
			case answerTimeout:
				cmd.Println()
				return false
			case answerEOF:
				cmd.Println()
				return true
			case answerSkipped:
			case answerGiven:
				opt, err := domain.ParseOption(line)
				if err != nil {
					cmd.Println(style.Error.Render("Please type A, B, C or D."))
					continue
				}
				if err := attempt.Answer(i, opt, clock()); err != nil {
					if errors.Is(err, domain.ErrTimeExpired) {
						return false
					}
					cmd.Println(style.Error.Render(err.Error()))
					continue
				}
			}
			break
		}
		cmd.Println()
	}
	return true
}

func waitAnswer(lines <-chan string, deadline <-chan time.Time) (string, answerEvent) {
	select {
	case <-deadline:
		return "", answerTimeout
	case line, ok := <-lines:
		if !ok {
			return "", answerEOF
		}
		if line == "" {
			return "", answerSkipped
		}
		return line, answerGiven
	}
}

// scanLines feeds trimmed input lines into a channel closed at EOF.
func scanLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- strings.TrimSpace(scanner.Text())
		}
	}()
	return lines
}

func printQuestion(cmd *cobra.Command, i, total int, q domain.Question, remaining time.Duration) {
	header := fmt.Sprintf("Question %d/%d", i+1, total)
	cmd.Printf("%s %s\n", style.Title.Render(header),
		style.Muted.Render(fmt.Sprintf("(%s left)", remaining.Round(time.Second))))
	cmd.Println(q.QuestionText)
	for _, c := range q.Choices() {
		cmd.Printf("  %s) %s\n", c.Option, c.Text)
	}
}

func printSummary(cmd *cobra.Command, attempt *domain.Attempt, summary *domain.ResultSummary) {
	box := fmt.Sprintf("Score: %d\nCorrect: %d/%d (%d%%)",
		summary.Score, summary.Correct, summary.Total, summary.Percentage)
	cmd.Println()
	cmd.Println(style.Box.Render(box))

	selected := make(map[int64]domain.Option, len(attempt.Questions))
	for i, q := range attempt.Questions {
		selected[q.ID] = attempt.Answers[i]
	}
	for i, r := range summary.Responses {
		answer := string(selected[r.QuestionID])
		if answer == "" {
			answer = "-"
		}
		mark := style.Error.Render("wrong")
		if r.IsCorrect {
			mark = style.Success.Render("correct")
		}
		cmd.Printf("  %2d. %s %s\n", i+1, answer, mark)
	}
}

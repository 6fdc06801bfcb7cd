package driving

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// QuizService lets a logged-in user browse and take tests.
type QuizService interface {
	// Categories lists all categories.
	Categories(ctx context.Context) ([]domain.Category, error)

	// Tests lists tests, restricted to categoryID when it is non-zero.
	Tests(ctx context.Context, categoryID int64) ([]domain.Test, error)

	// Test returns a single test by ID.
	Test(ctx context.Context, id int64) (*domain.Test, error)

	// Questions lists the questions of a test.
	Questions(ctx context.Context, testID int64) ([]domain.Question, error)

	// Start fetches a test's questions and begins a timed attempt.
	Start(ctx context.Context, testID int64) (*domain.Attempt, error)

	// Submit sends an attempt for grading and scores the result.
	Submit(ctx context.Context, attempt *domain.Attempt) (*domain.ResultSummary, error)
}

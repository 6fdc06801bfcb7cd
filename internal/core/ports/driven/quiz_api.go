package driven

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// QuizAPI is the remote service serving quiz content and scoring submissions.
// Every call is authenticated with a bearer token obtained per request.
type QuizAPI interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	ListTests(ctx context.Context) ([]domain.Test, error)
	CreateTest(ctx context.Context, t domain.Test) (*domain.Test, error)
	UpdateTest(ctx context.Context, t domain.Test) (*domain.Test, error)
	DeleteTest(ctx context.Context, id int64) error

	ListQuestions(ctx context.Context, testID int64) ([]domain.Question, error)
	CreateQuestion(ctx context.Context, testID int64, q domain.Question) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, q domain.Question) (*domain.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	// SubmitResult sends an attempt for scoring and returns the graded responses.
	SubmitResult(ctx context.Context, s domain.Submission) ([]domain.GradedResponse, error)

	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id string, u domain.UserUpdate) (*domain.User, error)
}

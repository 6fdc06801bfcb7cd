package driving

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// AdminService manages quiz content and user accounts.
// Authorisation is enforced by the remote API; the service validates input only.
type AdminService interface {
	CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreateTest(ctx context.Context, t domain.Test) (*domain.Test, error)
	UpdateTest(ctx context.Context, t domain.Test) (*domain.Test, error)
	DeleteTest(ctx context.Context, id int64) error

	CreateQuestion(ctx context.Context, testID int64, q domain.Question) (*domain.Question, error)
	UpdateQuestion(ctx context.Context, q domain.Question) (*domain.Question, error)
	DeleteQuestion(ctx context.Context, id int64) error

	Users(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id string, u domain.UserUpdate) (*domain.User, error)
}

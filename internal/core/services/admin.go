package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
)

// Ensure AdminService implements the interface.
var _ driving.AdminService = (*AdminService)(nil)

// AdminService manages quiz content and user accounts.
type AdminService struct {
	api driven.QuizAPI
}

// NewAdminService creates an admin service.
func NewAdminService(api driven.QuizAPI) *AdminService {
	return &AdminService{api: api}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func requireID(kind string, id int64) error {
	if id <= 0 {
		return invalid("%s id must be positive", kind)
	}
	return nil
}

func validateCategory(c domain.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("category name is required")
	}
	return nil
}

func validateTest(t domain.Test) error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("test title is required")
	}
	if t.CategoryID <= 0 {
		return invalid("test category is required")
	}
	if t.Time < 0 {
		return invalid("test time cannot be negative")
	}
	return nil
}

func validateQuestion(q domain.Question) error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return invalid("question text is required")
	}
	for _, c := range q.Choices() {
		if strings.TrimSpace(c.Text) == "" {
			return invalid("option %s is required", c.Option)
		}
	}
	if !q.CorrectOption.IsValid() {
		return invalid("correct option must be one of A, B, C, D")
	}
	return nil
}

// CreateCategory validates and creates a category.
func (s *AdminService) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	return s.api.CreateCategory(ctx, c)
}

// UpdateCategory validates and updates a category.
func (s *AdminService) UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	if err := requireID("category", c.ID); err != nil {
		return nil, err
	}
	if err := validateCategory(c); err != nil {
		return nil, err
	}
	return s.api.UpdateCategory(ctx, c)
}

// DeleteCategory deletes a category.
func (s *AdminService) DeleteCategory(ctx context.Context, id int64) error {
	if err := requireID("category", id); err != nil {
		return err
	}
	return s.api.DeleteCategory(ctx, id)
}

// CreateTest validates and creates a test.
func (s *AdminService) CreateTest(ctx context.Context, t domain.Test) (*domain.Test, error) {
	if err := validateTest(t); err != nil {
		return nil, err
	}
	return s.api.CreateTest(ctx, t)
}

// UpdateTest validates and updates a test.
func (s *AdminService) UpdateTest(ctx context.Context, t domain.Test) (*domain.Test, error) {
	if err := requireID("test", t.ID); err != nil {
		return nil, err
	}
	if err := validateTest(t); err != nil {
		return nil, err
	}
	return s.api.UpdateTest(ctx, t)
}

// DeleteTest deletes a test.
func (s *AdminService) DeleteTest(ctx context.Context, id int64) error {
	if err := requireID("test", id); err != nil {
		return err
	}
	return s.api.DeleteTest(ctx, id)
}

// CreateQuestion validates and adds a question to a test.
func (s *AdminService) CreateQuestion(ctx context.Context, testID int64, q domain.Question) (*domain.Question, error) {
	if err := requireID("test", testID); err != nil {
		return nil, err
	}
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	return s.api.CreateQuestion(ctx, testID, q)
}

// UpdateQuestion validates and updates a question.
func (s *AdminService) UpdateQuestion(ctx context.Context, q domain.Question) (*domain.Question, error) {
	if err := requireID("question", q.ID); err != nil {
		return nil, err
	}
	if err := validateQuestion(q); err != nil {
		return nil, err
	}
	return s.api.UpdateQuestion(ctx, q)
}

// DeleteQuestion deletes a question.
func (s *AdminService) DeleteQuestion(ctx context.Context, id int64) error {
	if err := requireID("question", id); err != nil {
		return err
	}
	return s.api.DeleteQuestion(ctx, id)
}

// Users lists all accounts.
func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	return s.api.ListUsers(ctx)
}

// UpdateUser edits an account.
func (s *AdminService) UpdateUser(ctx context.Context, id string, u domain.UserUpdate) (*domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return nil, invalid("user id is required")
	}
	return s.api.UpdateUser(ctx, id, u)
}

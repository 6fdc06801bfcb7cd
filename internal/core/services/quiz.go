package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
	"github.com/custodia-labs/quizctl/internal/logger"
)

// Ensure QuizService implements the interface.
var _ driving.QuizService = (*QuizService)(nil)

// QuizService lets a logged-in user browse and take tests.
type QuizService struct {
	api      driven.QuizAPI
	session  driving.SessionService
	duration time.Duration
	now      func() time.Time
}

// NewQuizService creates a quiz service.
// duration is the time limit for tests that do not declare their own.
func NewQuizService(api driven.QuizAPI, session driving.SessionService, duration time.Duration) *QuizService {
	return &QuizService{
		api:      api,
		session:  session,
		duration: duration,
		now:      time.Now,
	}
}

// Categories lists all categories.
func (s *QuizService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.api.ListCategories(ctx)
}

// Tests lists tests, restricted to categoryID when it is non-zero.
// The API has no category filter, so filtering happens here.
func (s *QuizService) Tests(ctx context.Context, categoryID int64) ([]domain.Test, error) {
	tests, err := s.api.ListTests(ctx)
	if err != nil {
		return nil, err
	}
	if categoryID == 0 {
		return tests, nil
	}

	filtered := make([]domain.Test, 0, len(tests))
	for _, t := range tests {
		if t.CategoryID == categoryID {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Test returns a single test by ID.
func (s *QuizService) Test(ctx context.Context, id int64) (*domain.Test, error) {
	tests, err := s.Tests(ctx, 0)
	if err != nil {
		return nil, err
	}
	for i := range tests {
		if tests[i].ID == id {
			return &tests[i], nil
		}
	}
	return nil, fmt.Errorf("test %d: %w", id, domain.ErrNotFound)
}

// Questions lists the questions of a test.
func (s *QuizService) Questions(ctx context.Context, testID int64) ([]domain.Question, error) {
	return s.api.ListQuestions(ctx, testID)
}

// Start fetches a test's questions and begins a timed attempt.
func (s *QuizService) Start(ctx context.Context, testID int64) (*domain.Attempt, error) {
	test, err := s.Test(ctx, testID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions(ctx, testID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("test %d has no questions: %w", testID, domain.ErrNotFound)
	}

	attempt := domain.NewAttempt(*test, questions, test.Duration(s.duration), s.now())
	logger.Debug("attempt started: test=%d questions=%d deadline=%s",
		testID, len(questions), attempt.Deadline.Format(time.RFC3339))
	return attempt, nil
}

// Submit sends an attempt for grading and scores the result.
// The user ID is the subject of the current access token.
func (s *QuizService) Submit(ctx context.Context, attempt *domain.Attempt) (*domain.ResultSummary, error) {
	if attempt == nil {
		return nil, fmt.Errorf("%w: no attempt to submit", domain.ErrInvalidInput)
	}

	claims, err := s.session.Claims(ctx)
	if err != nil {
		return nil, err
	}

	graded, err := s.api.SubmitResult(ctx, attempt.Submission(claims.Subject))
	if err != nil {
		return nil, fmt.Errorf("submit result: %w", err)
	}

	summary := domain.NewResultSummary(graded)
	logger.Info("result: test=%d correct=%d/%d score=%d",
		attempt.Test.ID, summary.Correct, summary.Total, summary.Score)
	return &summary, nil
}

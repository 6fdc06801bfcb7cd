package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
)

// mockQuizAPI implements driven.QuizAPI for testing.
type mockQuizAPI struct {
	categories []domain.Category
	tests      []domain.Test
	questions  map[int64][]domain.Question
	graded     []domain.GradedResponse
	users      []domain.User
	err        error

	submitted []domain.Submission
	created   []any
	updated   []any
	deleted   []int64
	userEdits map[string]domain.UserUpdate
}

func (m *mockQuizAPI) ListCategories(_ context.Context) ([]domain.Category, error) {
	return m.categories, m.err
}

func (m *mockQuizAPI) CreateCategory(_ context.Context, c domain.Category) (*domain.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.created = append(m.created, c)
	c.ID = int64(len(m.created))
	return &c, nil
}

func (m *mockQuizAPI) UpdateCategory(_ context.Context, c domain.Category) (*domain.Category, error) {
	m.updated = append(m.updated, c)
	return &c, m.err
}

func (m *mockQuizAPI) DeleteCategory(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockQuizAPI) ListTests(_ context.Context) ([]domain.Test, error) {
	return m.tests, m.err
}

func (m *mockQuizAPI) CreateTest(_ context.Context, t domain.Test) (*domain.Test, error) {
	m.created = append(m.created, t)
	return &t, m.err
}

func (m *mockQuizAPI) UpdateTest(_ context.Context, t domain.Test) (*domain.Test, error) {
	m.updated = append(m.updated, t)
	return &t, m.err
}

func (m *mockQuizAPI) DeleteTest(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockQuizAPI) ListQuestions(_ context.Context, testID int64) ([]domain.Question, error) {
	return m.questions[testID], m.err
}

func (m *mockQuizAPI) CreateQuestion(_ context.Context, _ int64, q domain.Question) (*domain.Question, error) {
	m.created = append(m.created, q)
	return &q, m.err
}

func (m *mockQuizAPI) UpdateQuestion(_ context.Context, q domain.Question) (*domain.Question, error) {
	m.updated = append(m.updated, q)
	return &q, m.err
}

func (m *mockQuizAPI) DeleteQuestion(_ context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return m.err
}

func (m *mockQuizAPI) SubmitResult(_ context.Context, s domain.Submission) ([]domain.GradedResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.submitted = append(m.submitted, s)
	return m.graded, nil
}

func (m *mockQuizAPI) ListUsers(_ context.Context) ([]domain.User, error) {
	return m.users, m.err
}

func (m *mockQuizAPI) UpdateUser(_ context.Context, id string, u domain.UserUpdate) (*domain.User, error) {
	if m.userEdits == nil {
		m.userEdits = make(map[string]domain.UserUpdate)
	}
	m.userEdits[id] = u
	return &domain.User{ID: id, FirstName: u.FirstName}, m.err
}

// claimsSession implements the parts of driving.SessionService the quiz service uses.
type claimsSession struct {
	driving.SessionService
	claims *domain.TokenClaims
	err    error
}

func (s *claimsSession) Claims(_ context.Context) (*domain.TokenClaims, error) {
	return s.claims, s.err
}

func sampleQuizAPI() *mockQuizAPI {
	return &mockQuizAPI{
		categories: []domain.Category{{ID: 1, Name: "go"}, {ID: 2, Name: "sql"}},
		tests: []domain.Test{
			{ID: 10, Title: "Go basics", CategoryID: 1, Time: 15},
			{ID: 11, Title: "Go channels", CategoryID: 1},
			{ID: 20, Title: "Joins", CategoryID: 2},
		},
		questions: map[int64][]domain.Question{
			10: {
				{ID: 100, QuestionText: "q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d"},
				{ID: 101, QuestionText: "q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d"},
			},
			11: {{ID: 110, QuestionText: "q", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d"}},
		},
	}
}

func TestQuizService_Categories(t *testing.T) {
	svc := NewQuizService(sampleQuizAPI(), nil, 0)

	cats, err := svc.Categories(context.Background())

	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestQuizService_Tests_FiltersByCategory(t *testing.T) {
	svc := NewQuizService(sampleQuizAPI(), nil, 0)

	all, err := svc.Tests(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	goTests, err := svc.Tests(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, goTests, 2)
	assert.Equal(t, int64(10), goTests[0].ID)
	assert.Equal(t, int64(11), goTests[1].ID)

	none, err := svc.Tests(context.Background(), 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestQuizService_Test_NotFound(t *testing.T) {
	svc := NewQuizService(sampleQuizAPI(), nil, 0)

	_, err := svc.Test(context.Background(), 404)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuizService_PropagatesNoSession(t *testing.T) {
	svc := NewQuizService(&mockQuizAPI{err: domain.ErrNoSession}, nil, 0)

	_, err := svc.Categories(context.Background())

	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestQuizService_Start(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc := NewQuizService(sampleQuizAPI(), nil, 20*time.Minute)
	svc.now = func() time.Time { return now }

	declared, err := svc.Start(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, declared.Questions, 2)
	assert.Equal(t, now.Add(15*time.Minute), declared.Deadline)

	fallback, err := svc.Start(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, now.Add(20*time.Minute), fallback.Deadline)
}

func TestQuizService_Start_NoQuestions(t *testing.T) {
	svc := NewQuizService(sampleQuizAPI(), nil, 0)

	_, err := svc.Start(context.Background(), 20)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestQuizService_Submit(t *testing.T) {
	api := sampleQuizAPI()
	api.graded = []domain.GradedResponse{
		{QuestionID: 100, SelectedOption: domain.OptionA, IsCorrect: true},
		{QuestionID: 101, SelectedOption: domain.OptionNone, IsCorrect: false},
	}
	session := &claimsSession{claims: &domain.TokenClaims{Subject: "user-7"}}
	now := time.Now()
	svc := NewQuizService(api, session, 0)

	attempt, err := svc.Start(context.Background(), 10)
	require.NoError(t, err)
	require.NoError(t, attempt.Answer(0, domain.OptionA, now))

	summary, err := svc.Submit(context.Background(), attempt)

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Correct)
	assert.Equal(t, 5, summary.Score)
	assert.Equal(t, 50, summary.Percentage)

	require.Len(t, api.submitted, 1)
	sub := api.submitted[0]
	assert.Equal(t, int64(10), sub.TestID)
	assert.Equal(t, "user-7", sub.UserID)
	assert.Equal(t, []domain.Response{
		{QuestionID: 100, SelectedOption: domain.OptionA},
		{QuestionID: 101, SelectedOption: domain.OptionNone},
	}, sub.Responses)
}

func TestQuizService_Submit_NoSession(t *testing.T) {
	api := sampleQuizAPI()
	svc := NewQuizService(api, &claimsSession{err: domain.ErrNoSession}, 0)
	attempt := domain.NewAttempt(api.tests[0], api.questions[10], time.Minute, time.Now())

	_, err := svc.Submit(context.Background(), attempt)

	assert.ErrorIs(t, err, domain.ErrNoSession)
	assert.Empty(t, api.submitted)
}

func TestQuizService_Submit_APIError(t *testing.T) {
	api := &mockQuizAPI{err: errors.New("status 500")}
	svc := NewQuizService(api, &claimsSession{claims: &domain.TokenClaims{Subject: "u"}}, 0)
	attempt := domain.NewAttempt(domain.Test{ID: 1}, nil, time.Minute, time.Now())

	_, err := svc.Submit(context.Background(), attempt)

	assert.Error(t, err)
}

func TestQuizService_Submit_NilAttempt(t *testing.T) {
	svc := NewQuizService(sampleQuizAPI(), nil, 0)

	_, err := svc.Submit(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
)

// Ensure QuizClient implements the interface.
var _ driven.QuizAPI = (*QuizClient)(nil)

// QuizClient calls the authenticated quiz and admin endpoints.
type QuizClient struct {
	c *client
}

// NewQuizClient creates a quiz API client.
//
// tokens is consulted on every request; it must not cache tokens itself, so
// that expiry is checked immediately before each call.
func NewQuizClient(cfg Config, tokens oauth2.TokenSource) *QuizClient {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &QuizClient{c: newClient(cfg, &oauth2.Transport{Source: tokens, Base: base})}
}

type questionList struct {
	Questions []domain.Question `json:"questions"`
}

type gradedList struct {
	Responses []domain.GradedResponse `json:"responses"`
}

// call sends a request whose response is a bare JSON document.
func (q *QuizClient) call(ctx context.Context, method, path string, in, out any) error {
	resp, err := q.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if err := resp.decodePlain(out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

// callEnvelope sends a request whose response is wrapped in {code, message, result}.
func (q *QuizClient) callEnvelope(ctx context.Context, method, path string, in, out any) error {
	resp, err := q.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	if err := resp.decodeEnvelope(out); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	return nil
}

// send maps a rejected bearer token to domain.ErrNoSession.
func (q *QuizClient) send(ctx context.Context, method, path string, in any) (*response, error) {
	resp, err := q.c.send(ctx, method, path, in)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %w", domain.ErrNoSession, resp.apiError())
	}
	return resp, nil
}

// ListCategories returns every category.
func (q *QuizClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var cats []domain.Category
	if err := q.call(ctx, http.MethodGet, "/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CreateCategory creates a category.
func (q *QuizClient) CreateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := q.call(ctx, http.MethodPost, "/categories", c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory replaces a category.
func (q *QuizClient) UpdateCategory(ctx context.Context, c domain.Category) (*domain.Category, error) {
	var out domain.Category
	if err := q.call(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", c.ID), c, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory deletes a category.
func (q *QuizClient) DeleteCategory(ctx context.Context, id int64) error {
	return q.call(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil)
}

// ListTests returns every test.
func (q *QuizClient) ListTests(ctx context.Context) ([]domain.Test, error) {
	var tests []domain.Test
	if err := q.call(ctx, http.MethodGet, "/tests", nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// CreateTest creates a test.
func (q *QuizClient) CreateTest(ctx context.Context, t domain.Test) (*domain.Test, error) {
	var out domain.Test
	if err := q.call(ctx, http.MethodPost, "/tests", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTest replaces a test.
func (q *QuizClient) UpdateTest(ctx context.Context, t domain.Test) (*domain.Test, error) {
	var out domain.Test
	if err := q.call(ctx, http.MethodPut, fmt.Sprintf("/tests/%d", t.ID), t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTest deletes a test.
func (q *QuizClient) DeleteTest(ctx context.Context, id int64) error {
	return q.call(ctx, http.MethodDelete, fmt.Sprintf("/tests/%d", id), nil, nil)
}

// ListQuestions returns the questions of a test.
func (q *QuizClient) ListQuestions(ctx context.Context, testID int64) ([]domain.Question, error) {
	var list questionList
	if err := q.call(ctx, http.MethodGet, fmt.Sprintf("/tests/%d/questions", testID), nil, &list); err != nil {
		return nil, err
	}
	return list.Questions, nil
}

// CreateQuestion adds a question to a test.
func (q *QuizClient) CreateQuestion(ctx context.Context, testID int64, question domain.Question) (*domain.Question, error) {
	var out domain.Question
	if err := q.call(ctx, http.MethodPost, fmt.Sprintf("/tests/%d/questions", testID), question, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateQuestion replaces a question.
func (q *QuizClient) UpdateQuestion(ctx context.Context, question domain.Question) (*domain.Question, error) {
	var out domain.Question
	if err := q.call(ctx, http.MethodPut, fmt.Sprintf("/questions/%d", question.ID), question, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteQuestion deletes a question.
func (q *QuizClient) DeleteQuestion(ctx context.Context, id int64) error {
	return q.call(ctx, http.MethodDelete, fmt.Sprintf("/questions/%d", id), nil, nil)
}

// SubmitResult sends an attempt for scoring.
func (q *QuizClient) SubmitResult(ctx context.Context, s domain.Submission) ([]domain.GradedResponse, error) {
	var list gradedList
	if err := q.call(ctx, http.MethodPost, "/results", s, &list); err != nil {
		return nil, err
	}
	return list.Responses, nil
}

// ListUsers returns every account.
func (q *QuizClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := q.callEnvelope(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser edits an account.
func (q *QuizClient) UpdateUser(ctx context.Context, id string, u domain.UserUpdate) (*domain.User, error) {
	var out domain.User
	if err := q.callEnvelope(ctx, http.MethodPut, "/users/"+url.PathEscape(id), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// PointsPerCorrectAnswer is the score awarded for each correct response.
const PointsPerCorrectAnswer = 5

// DefaultAttemptDuration is used when a test does not declare its own time limit.
const DefaultAttemptDuration = 30 * time.Minute

// Category groups tests by subject.
type Category struct {
	ID          int64  `json:"id,omitempty"`
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// DisplayName returns the title if set, otherwise the name.
func (c Category) DisplayName() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Test is a timed multiple-choice quiz within a category.
type Test struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	// Time is the time limit in minutes. Zero means the default limit applies.
	Time       int   `json:"time,omitempty"`
	CategoryID int64 `json:"categoryId"`
}

// Duration returns the time limit for an attempt at this test.
func (t Test) Duration(fallback time.Duration) time.Duration {
	if t.Time > 0 {
		return time.Duration(t.Time) * time.Minute
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultAttemptDuration
}

// Option is a multiple-choice answer letter.
type Option string

// Available options.
const (
	OptionNone Option = ""
	OptionA    Option = "A"
	OptionB    Option = "B"
	OptionC    Option = "C"
	OptionD    Option = "D"
)

// IsValid returns true for A through D.
func (o Option) IsValid() bool {
	switch o {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	default:
		return false
	}
}

// ParseOption parses an answer letter, ignoring case and surrounding space.
func ParseOption(s string) (Option, error) {
	o := Option(strings.ToUpper(strings.TrimSpace(s)))
	if !o.IsValid() {
		return OptionNone, fmt.Errorf("%w: option %q must be one of A, B, C, D", ErrInvalidInput, s)
	}
	return o, nil
}

// Question is a single multiple-choice question.
type Question struct {
	ID           int64  `json:"id,omitempty"`
	QuestionText string `json:"questionText"`
	OptionA      string `json:"optionA"`
	OptionB      string `json:"optionB"`
	OptionC      string `json:"optionC"`
	OptionD      string `json:"optionD"`
	// CorrectOption is only populated for administrators.
	CorrectOption Option `json:"correctOption,omitempty"`
}

// Choice pairs an option letter with its answer text.
type Choice struct {
	Option Option
	Text   string
}

// Choices returns the answer texts in display order.
func (q Question) Choices() []Choice {
	return []Choice{
		{OptionA, q.OptionA},
		{OptionB, q.OptionB},
		{OptionC, q.OptionC},
		{OptionD, q.OptionD},
	}
}

// Response is the answer given to one question.
type Response struct {
	QuestionID     int64  `json:"questionId"`
	SelectedOption Option `json:"selectedOption"`
}

// GradedResponse is a response as scored by the API.
type GradedResponse struct {
	QuestionID     int64  `json:"questionId"`
	SelectedOption Option `json:"selectedOption"`
	IsCorrect      bool   `json:"isCorrect"`
}

// Submission is the payload sent when a test attempt is finished.
type Submission struct {
	TestID    int64      `json:"testId"`
	UserID    string     `json:"userId"`
	Responses []Response `json:"responses"`
}

// ResultSummary aggregates graded responses into a score.
type ResultSummary struct {
	Total      int
	Correct    int
	Score      int
	Percentage int
	Responses  []GradedResponse
}

// NewResultSummary scores graded responses.
func NewResultSummary(responses []GradedResponse) ResultSummary {
	summary := ResultSummary{
		Total:     len(responses),
		Responses: responses,
	}
	for _, r := range responses {
		if r.IsCorrect {
			summary.Correct++
		}
	}
	summary.Score = summary.Correct * PointsPerCorrectAnswer
	if summary.Total > 0 {
		summary.Percentage = int(math.Round(float64(summary.Correct) / float64(summary.Total) * 100))
	}
	return summary
}

// Role is a named set of permissions granted to a user.
type Role struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// User is an account managed by administrators.
type User struct {
	ID        string `json:"id,omitempty"`
	Username  string `json:"username"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Dob       string `json:"dob,omitempty"`
	Roles     []Role `json:"roles,omitempty"`
}

// RoleNames returns the names of the user's roles.
func (u User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Registration is the input for creating an account.
type Registration struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Dob       string `json:"dob"`
}

// UserUpdate is the input for an administrator editing an account.
type UserUpdate struct {
	Password  string   `json:"password,omitempty"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Dob       string   `json:"dob,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

package domain

import (
	"fmt"
	"time"
)

// Attempt is a timed run through a test's questions.
// Answers are recorded locally and only sent to the API on submission.
type Attempt struct {
	Test      Test
	Questions []Question
	Answers   []Option
	StartedAt time.Time
	Deadline  time.Time
}

// NewAttempt starts an attempt at now with the given time limit.
func NewAttempt(test Test, questions []Question, limit time.Duration, now time.Time) *Attempt {
	return &Attempt{
		Test:      test,
		Questions: questions,
		Answers:   make([]Option, len(questions)),
		StartedAt: now,
		Deadline:  now.Add(limit),
	}
}

// Answer records the option chosen for question i.
// Answers after the deadline are rejected with ErrTimeExpired.
func (a *Attempt) Answer(i int, opt Option, now time.Time) error {
	if a.Expired(now) {
		return ErrTimeExpired
	}
	if i < 0 || i >= len(a.Questions) {
		return fmt.Errorf("%w: question %d out of range", ErrInvalidInput, i+1)
	}
	if !opt.IsValid() {
		return fmt.Errorf("%w: option %q", ErrInvalidInput, opt)
	}
	a.Answers[i] = opt
	return nil
}

// Remaining returns the time left, never negative.
func (a *Attempt) Remaining(now time.Time) time.Duration {
	if d := a.Deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Expired returns true once the deadline has passed.
func (a *Attempt) Expired(now time.Time) bool {
	return !now.Before(a.Deadline)
}

// Answered returns how many questions have an answer.
func (a *Attempt) Answered() int {
	n := 0
	for _, o := range a.Answers {
		if o != OptionNone {
			n++
		}
	}
	return n
}

// Submission builds the payload for the results endpoint.
// Unanswered questions are sent with an empty selected option.
func (a *Attempt) Submission(userID string) Submission {
	responses := make([]Response, len(a.Questions))
	for i, q := range a.Questions {
		responses[i] = Response{QuestionID: q.ID, SelectedOption: a.Answers[i]}
	}
	return Submission{
		TestID:    a.Test.ID,
		UserID:    userID,
		Responses: responses,
	}
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// errMissingResult is returned when a successful envelope carries no result.
var errMissingResult = errors.New("response has no result")

// APIError is a failed API response.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Code is the application code from the response envelope, if any.
	Code int
	// Message is the server's message, or the status text when there is none.
	Message string
}

// Error implements error.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("api error (status %d, code %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

// Is maps statuses onto domain errors so callers can use errors.Is.
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrRateLimited:
		return e.Status == http.StatusTooManyRequests
	case domain.ErrNotFound:
		return e.Status == http.StatusNotFound
	default:
		return false
	}
}

package driving

import (
	"context"

	"github.com/custodia-labs/quizctl/internal/core/domain"
)

// RegistrationService creates accounts. A new account must still log in.
type RegistrationService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.User, error)
}

package services

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
)

// Ensure RegistrationService implements the interface.
var _ driving.RegistrationService = (*RegistrationService)(nil)

// dobLayout is the date of birth format the API accepts.
const dobLayout = "2006-01-02"

// RegistrationService creates accounts.
type RegistrationService struct {
	identity driven.IdentityAPI
}

// NewRegistrationService creates a registration service.
func NewRegistrationService(identity driven.IdentityAPI) *RegistrationService {
	return &RegistrationService{identity: identity}
}

// Register validates the form and creates the account.
func (s *RegistrationService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	required := []struct {
		name  string
		value string
	}{
		{"username", reg.Username},
		{"password", reg.Password},
		{"first name", reg.FirstName},
		{"last name", reg.LastName},
		{"date of birth", reg.Dob},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, invalid("%s is required", f.name)
		}
	}
	if _, err := time.Parse(dobLayout, reg.Dob); err != nil {
		return nil, invalid("date of birth must be YYYY-MM-DD")
	}
	return s.identity.Register(ctx, reg)
}

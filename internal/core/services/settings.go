package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/quizctl/internal/core/domain"
	"github.com/custodia-labs/quizctl/internal/core/ports/driven"
	"github.com/custodia-labs/quizctl/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyAPIBaseURL        = "api.base_url"
	keyAPITimeout        = "api.timeout"
	keyAPIRateLimit      = "api.rate_limit"
	keySessionValidation = "session.validation"
	keySessionStore      = "session.store"
	keyQuizDuration      = "quiz.duration"
)

var settingKeys = []string{
	keyAPIBaseURL,
	keyAPITimeout,
	keyAPIRateLimit,
	keySessionValidation,
	keySessionStore,
	keyQuizDuration,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL:   s.getBaseURL(defaults.API.BaseURL),
			Timeout:   s.getDuration(keyAPITimeout, time.Second, defaults.API.Timeout),
			RateLimit: s.getRate(defaults.API.RateLimit),
		},
		Session: domain.SessionSettings{
			Validation: s.getValidation(defaults.Session.Validation),
			Store:      s.getStore(defaults.Session.Store),
		},
		Quiz: domain.QuizSettings{
			Duration: s.getDuration(keyQuizDuration, time.Minute, defaults.Quiz.Duration),
		},
	}

	return settings, nil
}

// Set validates and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyAPIBaseURL:
		if err := validateBaseURL(value); err != nil {
			return err
		}
		return s.configStore.Set(key, strings.TrimRight(value, "/"))
	case keyAPITimeout, keyQuizDuration:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, int64(n))
	case keyAPIRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, f)
	case keySessionValidation:
		if !domain.ValidationStrategy(value).IsValid() {
			return fmt.Errorf("%w: %s must be local or remote", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	case keySessionStore:
		if !domain.StoreBackend(value).IsValid() {
			return fmt.Errorf("%w: %s must be file, sqlite or memory", domain.ErrInvalidInput, key)
		}
		return s.configStore.Set(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
}

// Unset removes a persisted setting.
func (s *SettingsService) Unset(key string) error {
	for _, k := range settingKeys {
		if k == key {
			return s.configStore.Unset(key)
		}
	}
	return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
}

// Keys returns the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Path returns the configuration file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidInput, keyAPIBaseURL)
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBaseURL(defaultVal string) string {
	val := s.configStore.GetString(keyAPIBaseURL)
	if val == "" || validateBaseURL(val) != nil {
		return defaultVal
	}
	return strings.TrimRight(val, "/")
}

func (s *SettingsService) getDuration(key string, unit, defaultVal time.Duration) time.Duration {
	n := s.configStore.GetInt(key)
	if n <= 0 {
		return defaultVal
	}
	return time.Duration(n) * unit
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	f := s.configStore.GetFloat(keyAPIRateLimit)
	if f <= 0 {
		return defaultVal
	}
	return f
}

func (s *SettingsService) getValidation(defaultVal domain.ValidationStrategy) domain.ValidationStrategy {
	v := domain.ValidationStrategy(s.configStore.GetString(keySessionValidation))
	if !v.IsValid() {
		return defaultVal
	}
	return v
}

func (s *SettingsService) getStore(defaultVal domain.StoreBackend) domain.StoreBackend {
	b := domain.StoreBackend(s.configStore.GetString(keySessionStore))
	if !b.IsValid() {
		return defaultVal
	}
	return b
}

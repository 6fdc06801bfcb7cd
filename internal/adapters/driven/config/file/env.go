package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/custodia-labs/quizctl/internal/logger"
)

// HomeEnvVar overrides the quizctl home directory.
const HomeEnvVar = "QUIZCTL_HOME"

// Env holds environment overrides. Values set here take precedence over
// config.toml but are never written back to it.
type Env struct {
	Home         string `env:"QUIZCTL_HOME"`
	BaseURL      string `env:"QUIZCTL_API_BASE_URL"`
	Timeout      string `env:"QUIZCTL_HTTP_TIMEOUT"`
	RateLimit    string `env:"QUIZCTL_RATE_LIMIT"`
	Validation   string `env:"QUIZCTL_VALIDATION"`
	Store        string `env:"QUIZCTL_STORE"`
	QuizDuration string `env:"QUIZCTL_QUIZ_DURATION"`
}

// ReadEnv reads overrides from the process environment.
func ReadEnv() (Env, error) {
	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return Env{}, fmt.Errorf("read environment: %w", err)
	}
	return env, nil
}

// DefaultDir returns the quizctl home directory: $QUIZCTL_HOME, else ~/.quizctl.
func DefaultDir() (string, error) {
	env, err := ReadEnv()
	if err != nil {
		return "", err
	}
	if env.Home != "" {
		return env.Home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quizctl"), nil
}

// overrides converts set variables into config keys, typed as TOML would decode them.
func (e Env) overrides() map[string]any {
	out := make(map[string]any)

	strs := map[string]string{
		"api.base_url":       e.BaseURL,
		"session.validation": e.Validation,
		"session.store":      e.Store,
	}
	for key, v := range strs {
		if v != "" {
			out[key] = v
		}
	}

	ints := map[string]string{
		"api.timeout":   e.Timeout,
		"quiz.duration": e.QuizDuration,
	}
	for key, v := range ints {
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			logger.Warn("ignoring environment override for %s: %q is not an integer", key, v)
			continue
		}
		out[key] = n
	}

	if e.RateLimit != "" {
		f, err := strconv.ParseFloat(e.RateLimit, 64)
		if err != nil {
			logger.Warn("ignoring environment override for api.rate_limit: %q is not a number", e.RateLimit)
		} else {
			out["api.rate_limit"] = f
		}
	}

	return out
}

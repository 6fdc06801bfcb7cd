package domain

import "time"

const unknownDescription = "Unknown"

// DefaultAPIBaseURL is the identity and quiz API root.
const DefaultAPIBaseURL = "https://final-quiz-server.onrender.com/identity"

// ValidationStrategy selects how the session manager decides whether an access token is usable.
// A manager uses exactly one strategy for its whole lifetime.
type ValidationStrategy string

// Available validation strategies.
const (
	// ValidationLocal decodes the token's expiry claim and compares it with the clock.
	ValidationLocal ValidationStrategy = "local"

	// ValidationRemote asks the identity API's introspection endpoint on every check.
	ValidationRemote ValidationStrategy = "remote"
)

// IsValid returns true if the strategy is recognised.
func (v ValidationStrategy) IsValid() bool {
	return v == ValidationLocal || v == ValidationRemote
}

// String returns the string representation.
func (v ValidationStrategy) String() string {
	return string(v)
}

// Description returns a human-readable description of the strategy.
func (v ValidationStrategy) Description() string {
	switch v {
	case ValidationLocal:
		return "Local (token expiry claim, 60s margin)"
	case ValidationRemote:
		return "Remote (introspection on every check)"
	default:
		return unknownDescription
	}
}

// StoreBackend selects where the credential is persisted.
type StoreBackend string

// Available store backends.
const (
	// StoreFile keeps the credential in a TOML file in the quizctl home directory.
	StoreFile StoreBackend = "file"

	// StoreSQLite keeps the credential in a SQLite key-value table.
	StoreSQLite StoreBackend = "sqlite"

	// StoreMemory keeps the credential for the lifetime of the process only.
	StoreMemory StoreBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StoreBackend) IsValid() bool {
	switch b {
	case StoreFile, StoreSQLite, StoreMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StoreBackend) String() string {
	return string(b)
}

// AppSettings holds user configuration.
type AppSettings struct {
	API     APISettings
	Session SessionSettings
	Quiz    QuizSettings
}

// APISettings configures the remote API client.
type APISettings struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
	// Timeout bounds every HTTP request, including refreshes.
	Timeout time.Duration
	// RateLimit is the sustained requests per second.
	RateLimit float64
}

// SessionSettings configures the session manager.
type SessionSettings struct {
	Validation ValidationStrategy
	Store      StoreBackend
}

// QuizSettings configures timed attempts.
type QuizSettings struct {
	// Duration is the time limit for tests that do not declare one.
	Duration time.Duration
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		API: APISettings{
			BaseURL:   DefaultAPIBaseURL,
			Timeout:   30 * time.Second,
			RateLimit: 5,
		},
		Session: SessionSettings{
			Validation: ValidationLocal,
			Store:      StoreFile,
		},
		Quiz: QuizSettings{
			Duration: DefaultAttemptDuration,
		},
	}
}

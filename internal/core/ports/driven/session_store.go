package driven

import "context"

// SessionStore is the key-value space the session manager persists its credential in.
// Keys are the fixed names in domain.CredentialKeys. Each key is read, written and
// removed independently; no multi-key transaction is assumed.
type SessionStore interface {
	// Get returns the value for key and whether it exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

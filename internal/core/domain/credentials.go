package domain

// Storage keys for the persisted credential.
// The store is keyed by these fixed names with no versioning.
const (
	KeyAccessToken  = "token"
	KeyRefreshToken = "refreshToken"
	KeyUsername     = "username"
)

// CredentialKeys lists every key owned by a session.
var CredentialKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUsername}

// Credential is the session held for the current user.
// It is created on login, has its access token replaced on refresh,
// and is removed entirely on logout or an unrecoverable failure.
type Credential struct {
	// AccessToken is the short-lived bearer token. Its payload carries the expiry claim.
	AccessToken string `json:"token"`
	// RefreshToken is used solely to obtain a new access token.
	RefreshToken string `json:"refreshToken,omitempty"`
	// Username is a display label, not used for authorisation.
	Username string `json:"username,omitempty"`
}

// IsEmpty returns true if no field is set.
func (c Credential) IsEmpty() bool {
	return c.AccessToken == "" && c.RefreshToken == "" && c.Username == ""
}

// HasRefreshToken returns true if a refresh token is available.
func (c Credential) HasRefreshToken() bool {
	return c.RefreshToken != ""
}

// IsComplete returns true if all three fields are present.
// Anything between empty and complete is a partial credential.
func (c Credential) IsComplete() bool {
	return c.AccessToken != "" && c.RefreshToken != "" && c.Username != ""
}

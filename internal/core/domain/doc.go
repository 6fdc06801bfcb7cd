// Package domain defines the core business entities for quizctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Credential: The locally cached session (access token, refresh token, username)
//   - TokenClaims: The claims read from an access token payload
//   - Category, Test, Question: Quiz content served by the remote API
//   - Attempt, ResultSummary: A timed test run and its score
//   - AppSettings: User configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

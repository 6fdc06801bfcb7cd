// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SessionStore: Key-value persistence for the cached credential
//   - IdentityAPI: Login, registration, refresh, introspection and logout
//   - TokenInspector: Reads the expiry claim from an access token
//   - QuizAPI: Categories, tests, questions, results and users
//   - ConfigStore: Application configuration
//
// # Provided By Core
//
//   - TokenProvider: Implemented over the session manager and handed to
//     the QuizAPI adapter so every request carries a fresh token.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

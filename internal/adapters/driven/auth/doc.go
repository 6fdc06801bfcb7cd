// Package auth adapts the session manager to the shapes HTTP clients need.
//
// JWTInspector decodes access token claims without verifying signatures.
// SessionTokenProvider and TokenSource hand a fresh bearer token to every
// authenticated request.
package auth

// Package api provides HTTP clients for the remote quiz service.
//
// IdentityClient talks to the unauthenticated token endpoints and implements
// driven.IdentityAPI. QuizClient implements driven.QuizAPI and attaches a
// bearer token, obtained from an oauth2.TokenSource, to every request.
//
// Both clients share the same request plumbing: JSON bodies, an
// X-Request-ID header per request, a token-bucket rate limiter with 429
// backoff, and explicit decoding into typed results or *APIError.
package api

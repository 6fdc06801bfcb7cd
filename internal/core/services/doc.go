// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The session manager is the heart of the package: every authenticated
// call made by the other services obtains its token through it.
//
// Services are pure Go with no CGO. Beyond the standard library they
// only use golang.org/x extensions.
package services

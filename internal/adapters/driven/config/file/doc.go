// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data under the quizctl home directory.
//
// Adapters:
//   - ConfigStore: TOML configuration with environment overrides
//   - SessionStore: TOML credential file, optionally watched for changes
package file

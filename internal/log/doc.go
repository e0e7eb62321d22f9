// Package log provides secure logging functionality with automatic
// sanitization of sensitive information, built on top of the standard slog
// package.
//
// The detection service credential passes through several layers of the
// application (config, provider client, request logging). The SecureHandler
// masks credential-bearing attributes so a verbose log can be shared without
// leaking the key:
//   - Authorization and API-key style headers
//   - Attributes whose keys look credential-related (password, token, ...)
//   - String values matching bearer-token or JWT shapes
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log

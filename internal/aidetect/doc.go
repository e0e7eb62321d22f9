// Package aidetect implements the client for the external AI-generation
// detection service.
//
// # Purpose
//
// The scoring engine can blend its heuristic signals with a third-party
// probability that an image is synthetically generated. This package owns
// that network boundary: payload encoding, authentication, timeouts, and
// failure containment.
//
// # Failure Containment
//
// The provider contract is that callers never see an error and never block
// past the request timeout. Every failure path - network error, non-success
// status, malformed response body, timeout, open circuit breaker - resolves
// to the neutral probability 0.5. A sony/gobreaker circuit breaker stops
// hammering a failing service; while the breaker is open, requests resolve
// to neutral immediately.
//
// Credentials are injected through configuration and are never logged; the
// sanitizing slog handler in internal/log masks them as a second line of
// defense.
package aidetect

package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoListenAddress is returned when the HTTP bind address is empty.
	ErrNoListenAddress = errors.New("no listen address: provide an address via --listen or the config file")

	// ErrInvalidDetectionTimeout is returned when the detection timeout is
	// not positive. A zero timeout would fail every external request.
	ErrInvalidDetectionTimeout = errors.New("invalid detection timeout: must be positive")

	// ErrInvalidMaxUploadSize is returned when the upload cap is not
	// positive. A zero cap would reject every upload.
	ErrInvalidMaxUploadSize = errors.New("invalid max upload size: must be positive")

	// ErrMissingDetectionKey is returned when a detection URL is configured
	// without an API key. The service rejects unauthenticated requests, so
	// this is always a misconfiguration.
	ErrMissingDetectionKey = errors.New("detection service configured without an API key: set " + DetectionAPIKeyEnv)
)

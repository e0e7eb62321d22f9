package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultListenAddress is where the HTTP API listens. Binding to all
	// interfaces matches the container deployment the service ships in;
	// production deployments sit behind a reverse proxy.
	DefaultListenAddress = ":8000"

	// DefaultDetectionTimeout bounds each external detection request.
	// 15 seconds is generous for an image upload round trip; the analysis
	// proceeds with the neutral probability if the budget is exceeded.
	DefaultDetectionTimeout = 15 * time.Second

	// DefaultMaxUploadSize limits uploaded document size. 20MB covers
	// multi-page scans and phone photos while bounding memory per request,
	// since the whole upload is decoded into an uncompressed pixel plane.
	DefaultMaxUploadSize = 20 * 1024 * 1024

	// DefaultShutdownTimeout is how long the server waits for in-flight
	// analyses to finish on shutdown. Analyses are CPU bound and finish in
	// seconds; anything still running after this window is abandoned.
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultHistoryLimit is the number of recent reports shown by the
	// history command when no explicit limit is given.
	DefaultHistoryLimit = 20

	// DefaultBatchSize is the number of files analyzed concurrently by
	// the scan command. Each analysis is CPU bound across four signals,
	// so a small batch keeps all cores busy without oversubscribing.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "veridoc"

	// DetectionAPIKeyEnv is the environment variable consulted for the
	// detection service API key. Environment injection keeps the credential
	// out of config files and process argument lists.
	DetectionAPIKeyEnv = "VERIDOC_DETECTION_API_KEY"
)

// Config holds all configuration options for VeriDoc.
// This struct is populated from CLI flags and the optional YAML file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ServerConfig, DetectionConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// ListenAddress is the HTTP API bind address in "host:port" format.
	ListenAddress string

	// DetectionURL is the external AI-detection service endpoint.
	// Empty disables the external signal: the engine runs heuristic-only.
	DetectionURL string

	// DetectionAPIKey authenticates against the detection service.
	// Populated from the config file or the environment, never hard-coded.
	DetectionAPIKey string

	// DetectionTimeout bounds each external detection request.
	DetectionTimeout time.Duration

	// MaxUploadSize is the maximum accepted upload size in bytes.
	MaxUploadSize int64

	// HistoryDir is the directory holding the analysis history database.
	// Empty means the XDG data directory for the application.
	HistoryDir string

	// DisableHistory turns off report persistence entirely.
	DisableHistory bool

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool
}

// Default returns a Config populated with the built-in defaults.
func Default() *Config {
	return &Config{
		ListenAddress:    DefaultListenAddress,
		DetectionTimeout: DefaultDetectionTimeout,
		MaxUploadSize:    DefaultMaxUploadSize,
	}
}

// Validate checks the configuration for consistency.
// It returns one of the package sentinel errors on failure.
func (c *Config) Validate() error {
	if c.ListenAddress == "" {
		return ErrNoListenAddress
	}
	if c.DetectionTimeout <= 0 {
		return ErrInvalidDetectionTimeout
	}
	if c.MaxUploadSize <= 0 {
		return ErrInvalidMaxUploadSize
	}
	if c.DetectionURL != "" && c.DetectionAPIKey == "" {
		return ErrMissingDetectionKey
	}
	return nil
}

// ExternalDetectionEnabled reports whether the external AI-detection signal
// is configured.
func (c *Config) ExternalDetectionEnabled() bool {
	return c.DetectionURL != ""
}

// ResolveHistoryDir returns the directory for the history database,
// defaulting to the XDG data directory for the application.
func (c *Config) ResolveHistoryDir() string {
	if c.HistoryDir != "" {
		return c.HistoryDir
	}
	return filepath.Join(xdg.DataHome, AppName)
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".veridoc.yml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML representation of the configuration file.
// Only a subset of Config is file-configurable; flags cover the rest.
type File struct {
	// Listen is the HTTP bind address.
	Listen string `yaml:"listen"`

	// Detection configures the external AI-detection service.
	Detection struct {
		// URL is the service endpoint. Empty disables the external signal.
		URL string `yaml:"url"`

		// APIKey authenticates requests. Prefer the environment variable;
		// this field exists for setups where the file itself is secret.
		APIKey string `yaml:"api_key"`

		// TimeoutSeconds bounds each request, in whole seconds.
		TimeoutSeconds int `yaml:"timeout_seconds"`
	} `yaml:"detection"`

	// MaxUploadSize is the upload cap in bytes.
	MaxUploadSize int64 `yaml:"max_upload_size"`

	// HistoryDir overrides the analysis history location.
	HistoryDir string `yaml:"history_dir"`
}

// LoadConfigFile loads configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error appropriately based on whether the config file path was
// explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .veridoc.yml in the current directory
//  3. Look for .veridoc.yml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// Apply merges file values into the config. Flag handling happens after
// this, so flags win over the file.
func (c *Config) Apply(cf *File) {
	if cf == nil {
		return
	}
	if cf.Listen != "" {
		c.ListenAddress = cf.Listen
	}
	if cf.Detection.URL != "" {
		c.DetectionURL = cf.Detection.URL
	}
	if cf.Detection.APIKey != "" {
		c.DetectionAPIKey = cf.Detection.APIKey
	}
	if cf.Detection.TimeoutSeconds > 0 {
		c.DetectionTimeout = time.Duration(cf.Detection.TimeoutSeconds) * time.Second
	}
	if cf.MaxUploadSize > 0 {
		c.MaxUploadSize = cf.MaxUploadSize
	}
	if cf.HistoryDir != "" {
		c.HistoryDir = cf.HistoryDir
	}
}

// ApplyEnvironment overlays environment-supplied secrets onto the config.
// The environment wins over the file so a deployment can rotate the key
// without touching files.
func (c *Config) ApplyEnvironment() {
	if key := os.Getenv(DetectionAPIKeyEnv); key != "" {
		c.DetectionAPIKey = key
	}
}

// Package config defines configuration management for VeriDoc.
//
// Configuration is resolved in priority order: command-line flags override
// values from the optional YAML configuration file (.veridoc.yml in the
// current directory, then the user's home directory), which override the
// built-in defaults. The detection service API key may additionally be
// supplied via the VERIDOC_DETECTION_API_KEY environment variable so it
// never has to live in a file.
//
// The resolved Config is an immutable value constructed once at startup and
// passed explicitly into the components that need it; nothing reads
// configuration through ambient global state.
package config

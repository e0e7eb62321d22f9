package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc/internal/aidetect"
	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/engine"
	"github.com/veridoc/veridoc/internal/history"
	"github.com/veridoc/veridoc/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the authenticity analysis HTTP API",
		Long: `Serve starts the HTTP API for image authenticity analysis.

Endpoints:
  POST /api/v1/analyze   multipart document upload, returns a JSON report
  GET  /api/v1/health    liveness probe
  GET  /metrics          Prometheus metrics
  GET  /                 service status

Examples:
  # Listen on the default address
  veridoc serve

  # Custom listen address with external AI detection
  veridoc serve --listen :9000 --detection-url https://detector.example.com/v1/detect

The detection API key is read from the ` + config.DetectionAPIKeyEnv + `
environment variable or the configuration file, never from flags.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("listen", "l", config.DefaultListenAddress,
		"HTTP listen address in host:port format")
	cmd.Flags().String("detection-url", "",
		"External AI-detection service endpoint (empty disables the external signal)")
	cmd.Flags().Duration("detection-timeout", config.DefaultDetectionTimeout,
		"Timeout for each external detection request")
	cmd.Flags().Int64("max-upload-size", config.DefaultMaxUploadSize,
		"Maximum accepted upload size in bytes")
	cmd.Flags().String("history-dir", "",
		"Directory for the analysis history database (default: XDG data directory)")
	cmd.Flags().Bool("no-history", false,
		"Disable report persistence")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildServeConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []server.Option{
		server.WithLogger(logger),
		server.WithVersion(getVersion()),
	}

	if !cfg.DisableHistory {
		store, err := history.Open(cfg.ResolveHistoryDir())
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close() //nolint:errcheck // best-effort close on shutdown
		logger.Info("history store opened", "path", store.Path())
		opts = append(opts, server.WithHistory(store))
	}

	srv := server.New(cfg, newEngine(cfg, logger), opts...)
	return srv.ListenAndServe(ctx)
}

// buildServeConfig layers serve flags over the file and environment
// configuration.
func buildServeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("listen") {
		if cfg.ListenAddress, err = flags.GetString("listen"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("detection-url") {
		if cfg.DetectionURL, err = flags.GetString("detection-url"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("detection-timeout") {
		if cfg.DetectionTimeout, err = flags.GetDuration("detection-timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-upload-size") {
		if cfg.MaxUploadSize, err = flags.GetInt64("max-upload-size"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("history-dir") {
		if cfg.HistoryDir, err = flags.GetString("history-dir"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("no-history") {
		if cfg.DisableHistory, err = flags.GetBool("no-history"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// newEngine builds the analysis engine, attaching the external detection
// provider when one is configured.
func newEngine(cfg *config.Config, logger *slog.Logger) *engine.Engine {
	opts := []engine.Option{engine.WithLogger(logger)}

	if cfg.ExternalDetectionEnabled() {
		client := aidetect.NewClient(cfg.DetectionURL, cfg.DetectionAPIKey,
			aidetect.WithTimeout(cfg.DetectionTimeout),
			aidetect.WithLogger(logger),
		)
		opts = append(opts, engine.WithProvider(client))
		logger.Info("external AI detection enabled", "endpoint", cfg.DetectionURL)
	}

	return engine.New(opts...)
}

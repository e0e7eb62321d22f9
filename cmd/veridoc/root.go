// Package main provides the entry point for the VeriDoc CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/log"
)

// NewRootCmd creates the root command for VeriDoc.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "veridoc",
		Short: "Heuristic image authenticity analysis",
		Long: `VeriDoc analyzes images and documents for signs of AI generation or
manipulation. Four statistical signals (metadata shape, local noise
uniformity, edge consistency, color dispersion) are fused with an
optional external AI-detection probability into a single authenticity
score, label, and confidence.

Run a one-off analysis with "veridoc scan", or start the HTTP API with
"veridoc serve".`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: "+config.DefaultConfigFile+" in current or home directory)")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger with credential masking.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewSecureLogger(os.Stderr, verbose)
}

// loadConfig builds a Config from the optional YAML file, the
// environment, and shared flags. Precedence: defaults < file < env.
// Command-specific flags are applied by the caller afterwards so they
// win over all other sources.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	explicit := configPath != ""
	found := config.FindConfigFile(configPath)

	if found != "" {
		cf, err := config.LoadConfigFile(found)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", found, err)
		}
		cfg.Apply(cf)
	} else if explicit {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configPath)
	}

	cfg.ApplyEnvironment()
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

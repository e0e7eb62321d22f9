package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/history"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent analysis results",
		Long: `History lists the most recent authenticity analysis results stored in
the local history database.

Examples:
  # Show the last 20 analyses
  veridoc history

  # Show the last 5 analyses as JSON
  veridoc history --limit 5 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of entries to show")
	cmd.Flags().BoolP("json", "j", false,
		"Output entries as JSON")
	cmd.Flags().String("history-dir", "",
		"Directory for the analysis history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("history-dir") {
		if cfg.HistoryDir, err = flags.GetString("history-dir"); err != nil {
			return err
		}
	}

	limit, err := flags.GetInt("limit")
	if err != nil {
		return err
	}
	jsonOut, err := flags.GetBool("json")
	if err != nil {
		return err
	}

	store, err := history.Open(cfg.ResolveHistoryDir())
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close() //nolint:errcheck // read-only access

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	out := cmd.OutOrStdout()

	if jsonOut {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "no analyses recorded")
		return nil
	}

	for _, entry := range entries {
		name := entry.Report.Metadata.Filename
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(out, "%s  %-14s score=%5.1f  confidence=%.2f  %s\n",
			entry.Report.AnalyzedAt.Format("2006-01-02 15:04:05"),
			entry.Report.Label,
			entry.Report.Score,
			entry.Report.Confidence,
			name,
		)
	}

	return nil
}

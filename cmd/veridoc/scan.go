package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veridoc/veridoc/internal/config"
	"github.com/veridoc/veridoc/internal/engine"
	"github.com/veridoc/veridoc/internal/history"
	"github.com/veridoc/veridoc/internal/imaging"
	"github.com/veridoc/veridoc/internal/report"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <file> [file...]",
		Short: "Analyze local files for authenticity",
		Long: `Scan analyzes one or more local image or PDF files and prints an
authenticity report for each.

Supported formats: JPEG, PNG, WEBP, PDF (first page rendered).

Examples:
  # Analyze a single image
  veridoc scan photo.jpg

  # Analyze several files
  veridoc scan photo.jpg scan.pdf screenshot.png

  # Output JSON report
  veridoc scan --json photo.jpg

  # Write a Markdown report to a file
  veridoc scan --markdown --output report.md photo.jpg

  # Analyze with external AI detection
  veridoc scan --detection-url https://detector.example.com/v1/detect photo.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runScanCmd,
	}

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().String("detection-url", "",
		"External AI-detection service endpoint (empty disables the external signal)")
	cmd.Flags().Bool("no-history", false,
		"Do not record results in the analysis history")
	cmd.Flags().String("history-dir", "",
		"Directory for the analysis history database (default: XDG data directory)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent analyses when scanning multiple files")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildScanConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return errors.New("--json and --markdown are mutually exclusive")
	}

	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *history.Store
	if !cfg.DisableHistory {
		store, err = history.Open(cfg.ResolveHistoryDir())
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close() //nolint:errcheck // best-effort close on exit
	}

	writer, closeOutput, err := buildWriter(cmd.OutOrStdout(), outputPath, jsonOut, markdownOut)
	if err != nil {
		return err
	}
	defer closeOutput()

	batchSize, err := cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}

	rasters := make([]*imaging.Raster, 0, len(args))
	for _, path := range args {
		raster, err := loadFile(path)
		if err != nil {
			return err
		}
		rasters = append(rasters, raster)
	}

	bp := engine.NewBatchProcessor(newEngine(cfg, logger),
		engine.WithConcurrency(batchSize),
		engine.WithBatchLogger(logger),
	)

	results, err := bp.ProcessBatch(ctx, rasters)
	if err != nil {
		return fmt.Errorf("batch analysis aborted: %w", err)
	}

	for i, result := range results {
		if result.Err != nil {
			return fmt.Errorf("analysis of %s failed: %w", args[i], result.Err)
		}

		if store != nil {
			if _, err := store.Save(ctx, result.Report); err != nil {
				logger.Warn("failed to save report to history", "file", args[i], "error", err)
			}
		}

		if _, err := writer.Write(result.Report); err != nil {
			return fmt.Errorf("failed to write report for %s: %w", args[i], err)
		}
	}

	return nil
}

// buildScanConfig layers scan flags over the file and environment
// configuration.
func buildScanConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("detection-url") {
		if cfg.DetectionURL, err = flags.GetString("detection-url"); err != nil {
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

// buildWriter selects the report writer for the requested format and
// destination. The returned cleanup function closes the output file when
// one was opened.
func buildWriter(stdout io.Writer, outputPath string, jsonOut, markdownOut bool) (report.Writer, func(), error) {
	out := stdout
	closeOutput := func() {}

	if outputPath != "" {
		if dir := filepath.Dir(outputPath); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		out = f
		closeOutput = func() { f.Close() } //nolint:errcheck // output flushed by Write
	}

	switch {
	case jsonOut:
		return report.NewJSONWriter(out, report.WithPrettyPrint()), closeOutput, nil
	case markdownOut:
		return report.NewMarkdownWriter(out), closeOutput, nil
	default:
		return report.NewSimpleWriter(out), closeOutput, nil
	}
}

// loadFile reads and decodes a single file into a raster.
func loadFile(path string) (*imaging.Raster, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the CLI user
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	contentType := contentTypeForFile(path, data)
	if !imaging.SupportedContentType(contentType) {
		return nil, fmt.Errorf("%w: %s", imaging.ErrUnsupportedContentType, path)
	}

	raster, err := imaging.Decode(data, contentType, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	return raster, nil
}

// contentTypeForFile maps a filename extension to an upload content type,
// falling back to content sniffing for unknown extensions.
func contentTypeForFile(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return imaging.ContentTypeJPEG
	case ".png":
		return imaging.ContentTypePNG
	case ".webp":
		return imaging.ContentTypeWEBP
	case ".pdf":
		return imaging.ContentTypePDF
	default:
		return http.DetectContentType(data)
	}
}

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/veridoc/veridoc/internal/model"
)

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display with clear section
// formatting.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.AuthenticityReport) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeVerdict(&sb, report)
	w.writeBreakdown(&sb, report)
	w.writeMetadata(&sb, report)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the report header with analysis information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.AuthenticityReport) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                       AUTHENTICITY REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	if report.Metadata.Filename != "" {
		sb.WriteString(fmt.Sprintf("File:           %s\n", report.Metadata.Filename))
	}
	sb.WriteString(fmt.Sprintf("Analyzed:       %s\n", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString("\n")
}

// writeVerdict writes the score, label, and confidence section.
func (w *SimpleWriter) writeVerdict(sb *strings.Builder, report *model.AuthenticityReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("VERDICT\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Score:      %.1f / 100\n", report.Score))
	sb.WriteString(fmt.Sprintf("  Label:      %s\n", report.Label))
	sb.WriteString(fmt.Sprintf("  Confidence: %.2f\n", report.Confidence))

	if report.AIModelProbability != nil {
		sb.WriteString(fmt.Sprintf("  AI Model:   %.2f probability (external detector)\n", *report.AIModelProbability))
	}
	sb.WriteString("\n")
}

// writeBreakdown writes the per-signal suspicion breakdown.
// Each signal is reported on a 0-100 scale where higher means more
// suspicious.
func (w *SimpleWriter) writeBreakdown(sb *strings.Builder, report *model.AuthenticityReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("SIGNAL BREAKDOWN (higher = more suspicious)\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Metadata anomaly:      %5.1f\n", report.Breakdown.MetadataAnomaly))
	sb.WriteString(fmt.Sprintf("  Noise uniformity:      %5.1f\n", report.Breakdown.NoiseUniformity))
	sb.WriteString(fmt.Sprintf("  Edge consistency:      %5.1f\n", report.Breakdown.EdgeConsistency))
	sb.WriteString(fmt.Sprintf("  Compression artifacts: %5.1f\n", report.Breakdown.CompressionArtifacts))
	sb.WriteString("\n")
}

// writeMetadata writes the image metadata section.
func (w *SimpleWriter) writeMetadata(sb *strings.Builder, report *model.AuthenticityReport) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("IMAGE METADATA\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Format:     %s\n", report.Metadata.Format))
	sb.WriteString(fmt.Sprintf("  Mode:       %s\n", report.Metadata.Mode))
	sb.WriteString(fmt.Sprintf("  Dimensions: %dx%d\n", report.Metadata.Size[0], report.Metadata.Size[1]))

	if report.Metadata.HasEXIF {
		sb.WriteString(fmt.Sprintf("  EXIF:       present (%d fields)\n", report.Metadata.EXIFFields))
	} else {
		sb.WriteString("  EXIF:       absent\n")
	}

	if w.verbose {
		sb.WriteString(fmt.Sprintf("  Timestamp:  %s\n", report.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00")))
	}
	sb.WriteString("\n")
}

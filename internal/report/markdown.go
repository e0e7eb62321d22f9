package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/veridoc/veridoc/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.AuthenticityReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeVerdict(md, report)
	w.writeBreakdown(md, report)
	w.writeMetadata(md, report)
	w.writeFooter(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the report title and analysis summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.AuthenticityReport) {
	md.H1("Image Authenticity Report")
	md.PlainText("")

	rows := [][]string{
		{"Score", fmt.Sprintf("%.1f / 100", report.Score)},
		{"Label", report.Label.String()},
		{"Confidence", fmt.Sprintf("%.2f", report.Confidence)},
	}
	if report.AIModelProbability != nil {
		rows = append(rows, []string{
			"AI model probability", fmt.Sprintf("%.2f", *report.AIModelProbability),
		})
	}
	rows = append(rows, []string{
		"Analyzed at", report.AnalyzedAt.Format("2006-01-02 15:04:05 MST"),
	})

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeVerdict writes an alert whose severity matches the verdict label.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, report *model.AuthenticityReport) {
	switch report.Label {
	case model.LabelAIGenerated:
		md.Cautionf(
			"This image is likely AI generated (authenticity score %.1f).",
			report.Score,
		)
	case model.LabelSuspicious:
		md.Importantf(
			"This image shows suspicious characteristics (authenticity score %.1f). Manual review recommended.",
			report.Score,
		)
	default:
		md.Tip("No significant manipulation indicators detected.")
	}
	md.PlainText("")
}

// writeBreakdown writes the per-signal suspicion table.
func (w *MarkdownWriter) writeBreakdown(md *markdown.Markdown, report *model.AuthenticityReport) {
	md.H2("Signal Breakdown")
	md.PlainText("")
	md.PlainText("Each signal is scored 0-100. Higher values indicate stronger manipulation evidence.")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Signal", "Suspicion"},
		Rows: [][]string{
			{"Metadata anomaly", formatSignal(report.Breakdown.MetadataAnomaly)},
			{"Noise uniformity", formatSignal(report.Breakdown.NoiseUniformity)},
			{"Edge consistency", formatSignal(report.Breakdown.EdgeConsistency)},
			{"Compression artifacts", formatSignal(report.Breakdown.CompressionArtifacts)},
		},
	})
	md.PlainText("")
}

// writeMetadata writes the image metadata section.
func (w *MarkdownWriter) writeMetadata(md *markdown.Markdown, report *model.AuthenticityReport) {
	md.H2("Image Metadata")
	md.PlainText("")

	exif := "absent"
	if report.Metadata.HasEXIF {
		exif = fmt.Sprintf("present (%d fields)", report.Metadata.EXIFFields)
	}

	rows := [][]string{
		{"Format", report.Metadata.Format},
		{"Mode", report.Metadata.Mode},
		{"Width", strconv.Itoa(report.Metadata.Size[0])},
		{"Height", strconv.Itoa(report.Metadata.Size[1])},
		{"EXIF", exif},
	}
	if report.Metadata.Filename != "" {
		rows = append([][]string{{"Filename", report.Metadata.Filename}}, rows...)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, report *model.AuthenticityReport) {
	md.HorizontalRule()
	md.PlainTextf("Generated by veridoc at %s", report.AnalyzedAt.Format("2006-01-02T15:04:05Z07:00"))
}

// formatSignal renders a breakdown value with one decimal place.
func formatSignal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// Package report renders authenticity analysis results in multiple
// output formats.
//
// Three writers are provided:
//   - SimpleWriter: human-readable text for terminal display
//   - JSONWriter: machine-readable JSON for tool integration
//   - MarkdownWriter: GitHub-flavored markdown for documentation
//
// All writers implement the Writer interface, and MultiWriter fans a
// single report out to several destinations at once.
package report

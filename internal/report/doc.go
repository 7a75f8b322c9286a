// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: Human-readable text output for terminal display
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for sharing and documentation
//
// Design decision: We separate report writing from the result types (which
// are in the model package) so new output formats never touch the
// segmentation code.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably by the CLI.
package report

package report

import (
	"io"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// Writer defines the interface for report output.
// Implementations write segmentation results in various formats.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same API.
type Writer interface {
	// Write outputs one page result.
	// Returns the number of bytes written and any error encountered.
	Write(result *model.PageResult) (int, error)

	// WriteComparison outputs a per-mode comparison of one page.
	WriteComparison(c *Comparison) (int, error)
}

// Format names an output format.
type Format string

const (
	// FormatText is the human-readable terminal format.
	FormatText Format = "text"
	// FormatJSON is machine-readable JSON.
	FormatJSON Format = "json"
	// FormatMarkdown is Markdown.
	FormatMarkdown Format = "markdown"
)

// New returns the Writer for format. Unknown formats fall back to text.
func New(format Format, output io.Writer) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// JSONWriter outputs one JSON document per result.
// Consecutive documents can be read back with a json.Decoder, which is how
// a batch of pages is consumed by other tools.
//
// Design decision: HTML escaping is turned off. Article links routinely
// carry query strings, and "&" written as \u0026 makes the output harder
// to grep and diff without changing its meaning.
type JSONWriter struct {
	baseWriter

	// pretty indents nested values by two spaces.
	pretty bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.pretty = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the page result.
func (w *JSONWriter) Write(result *model.PageResult) (int, error) {
	return w.encode(result)
}

// WriteComparison outputs the comparison.
func (w *JSONWriter) WriteComparison(c *Comparison) (int, error) {
	return w.encode(c)
}

// encode buffers the whole document so a failed encode writes nothing.
func (w *JSONWriter) encode(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if w.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}

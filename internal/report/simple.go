package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// lineWidth is the width of separator lines and truncated rows.
const lineWidth = 70

// SimpleWriter outputs human-readable text reports.
// This format is designed for terminal display.
//
// Design decision: We measure text in terminal cells rather than runes.
// Many target pages are Chinese, and a CJK character takes two cells, so
// rune-based truncation would overflow the line.
type SimpleWriter struct {
	baseWriter

	// verbose lists every article instead of the first few per group.
	verbose bool

	// preview is the number of articles listed per group when not verbose.
	preview int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose lists every article of every group.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithPreview sets how many articles are listed per group when not verbose.
func WithPreview(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n > 0 {
			w.preview = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
		preview:    5,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the page result in human-readable format.
func (w *SimpleWriter) Write(result *model.PageResult) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeGroups(&sb, result)
	w.writeFooter(&sb)

	return io.WriteString(w.output, sb.String())
}

// WriteComparison outputs the comparison as an aligned table.
func (w *SimpleWriter) WriteComparison(c *Comparison) (int, error) {
	var sb strings.Builder

	rule(&sb, "=")
	fmt.Fprintf(&sb, "Mode comparison: %s\n", c.URL)
	if c.SuggestedTitle != "" {
		fmt.Fprintf(&sb, "Title: %s\n", c.SuggestedTitle)
	}
	rule(&sb, "=")
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "  %-9s %6s %8s %10s %8s  %s\n", "MODE", "GROUPS", "ARTICLES", "BEFORE CAP", "RENDERED", "TOP LABELS")
	for _, row := range c.Rows {
		labels := strings.Join(row.TopLabels, ", ")
		if labels == "" {
			labels = "-"
		}
		fmt.Fprintf(&sb, "  %-9s %6d %8d %10d %8s  %s\n",
			row.Mode, row.Groups, row.Articles, row.TotalGroupsBeforeCap, yesNo(row.Rendered),
			runewidth.Truncate(labels, 28, "..."))
	}
	sb.WriteString("\n")

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the report header with page information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, result *model.PageResult) {
	sb.WriteString("\n")
	rule(sb, "=")
	fmt.Fprintf(sb, "%s\n", runewidth.Truncate(orDash(result.SuggestedTitle), lineWidth, "..."))
	rule(sb, "=")
	sb.WriteString("\n")

	fmt.Fprintf(sb, "URL:       %s\n", result.URL)
	fmt.Fprintf(sb, "Mode:      %s\n", result.Mode)
	fmt.Fprintf(sb, "Groups:    %d", len(result.Groups))
	if result.TotalGroupsBeforeCap > len(result.Groups) {
		fmt.Fprintf(sb, " (of %d)", result.TotalGroupsBeforeCap)
	}
	sb.WriteString("\n")
	fmt.Fprintf(sb, "Articles:  %d\n", result.ArticleCount())
	if result.Rendered {
		sb.WriteString("Source:    rendered page\n")
	} else {
		sb.WriteString("Source:    static page\n")
	}
	sb.WriteString("\n")
}

// writeGroups writes every group with a preview of its articles.
func (w *SimpleWriter) writeGroups(sb *strings.Builder, result *model.PageResult) {
	if len(result.Groups) == 0 {
		sb.WriteString("  No article groups found\n\n")
		return
	}

	for _, g := range result.Groups {
		rule(sb, "-")
		fmt.Fprintf(sb, "%s  [%s, score %.3f, %d articles]\n", g.Label, g.Strategy, g.Score, g.Len())
		rule(sb, "-")

		shown := g.Articles
		if !w.verbose && len(shown) > w.preview {
			shown = shown[:w.preview]
		}
		for _, a := range shown {
			title := runewidth.Truncate(a.Title, lineWidth-14, "...")
			fmt.Fprintf(sb, "  %s  %s\n", a.PublishedAt.Format(dateLayout), title)
			if w.verbose {
				fmt.Fprintf(sb, "              %s\n", a.Link)
			}
		}
		if hidden := len(g.Articles) - len(shown); hidden > 0 {
			fmt.Fprintf(sb, "  ... and %d more\n", hidden)
		}
		sb.WriteString("\n")
	}
}

// writeFooter writes the report footer.
func (w *SimpleWriter) writeFooter(sb *strings.Builder) {
	rule(sb, "=")
}

func rule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, lineWidth))
	sb.WriteString("\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

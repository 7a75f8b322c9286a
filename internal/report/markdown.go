package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// dateLayout formats article dates in reports.
const dateLayout = "2006-01-02"

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, alerts and mermaid charts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the page result in Markdown format.
func (w *MarkdownWriter) Write(result *model.PageResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeDistribution(md, result)
	w.writeGroups(md, result)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteComparison outputs the comparison in Markdown format.
func (w *MarkdownWriter) WriteComparison(c *Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Mode comparison")
	md.PlainText("")
	md.PlainTextf("Page: `%s`", c.URL)
	md.PlainText("")

	rows := make([][]string, len(c.Rows))
	for i, row := range c.Rows {
		rows[i] = []string{
			string(row.Mode),
			strconv.Itoa(row.Groups),
			strconv.Itoa(row.Articles),
			strconv.Itoa(row.TotalGroupsBeforeCap),
			yesNo(row.Rendered),
			escapeCell(strings.Join(row.TopLabels, ", ")),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Mode", "Groups", "Articles", "Before cap", "Rendered", "Top labels"},
		Rows:   rows,
	})
	md.PlainText("")
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the result properties.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.PageResult) {
	heading := result.SuggestedTitle
	if heading == "" {
		heading = "pagefeed report"
	}
	md.H1(heading)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + result.URL + "`"},
			{"Mode", string(result.Mode)},
			{"Groups", fmt.Sprintf("%d of %d", len(result.Groups), result.TotalGroupsBeforeCap)},
			{"Articles", strconv.Itoa(result.ArticleCount())},
			{"Rendered", yesNo(result.Rendered)},
		},
	})
	md.PlainText("")

	switch {
	case len(result.Groups) == 0:
		md.Note("No article groups were found on this page.")
	case result.TotalGroupsBeforeCap > len(result.Groups):
		md.Warningf("Showing %d of %d groups.", len(result.Groups), result.TotalGroupsBeforeCap)
	case result.Rendered:
		md.Tip("Groups were found in the rendered page.")
	default:
		return
	}
	md.PlainText("")
}

// writeDistribution writes a mermaid pie chart of articles per group.
func (w *MarkdownWriter) writeDistribution(md *markdown.Markdown, result *model.PageResult) {
	if len(result.Groups) < 2 {
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Articles per group"),
		piechart.WithShowData(true),
	)
	for _, g := range result.Groups {
		chart.LabelAndIntValue(g.Label, uint64(g.Len()))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeGroups writes one section per group.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, result *model.PageResult) {
	for _, g := range result.Groups {
		md.H2(g.Label)
		md.PlainText("")
		md.PlainTextf("Strategy: `%s`, score: %.3f, articles: %d", g.Strategy, g.Score, g.Len())
		md.PlainText("")

		rows := make([][]string, len(g.Articles))
		for i, a := range g.Articles {
			rows[i] = []string{
				"[" + escapeCell(truncateString(a.Title, 80)) + "](" + a.Link + ")",
				a.PublishedAt.Format(dateLayout),
			}
		}
		md.Table(markdown.TableSet{
			Header: []string{"Title", "Published"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by pagefeed*")
}

// escapeCell keeps table cells from breaking the table or a link.
func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "[", `\[`, "]", `\]`, "\n", " ").Replace(s)
}

// truncateString truncates s to maxLen runes with an ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

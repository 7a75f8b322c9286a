package report

import (
	"github.com/Sumluvv/pagefeed/internal/model"
)

// topLabelCount is the number of group labels listed per mode.
const topLabelCount = 3

// ComparisonRow summarises the result of one mode.
type ComparisonRow struct {
	Mode                 model.Mode `json:"mode"`
	Groups               int        `json:"groups"`
	Articles             int        `json:"articles"`
	TotalGroupsBeforeCap int        `json:"totalGroupsBeforeCap"`
	Rendered             bool       `json:"rendered"`
	TopLabels            []string   `json:"topLabels"`
}

// Comparison shows how each mode segments the same page.
type Comparison struct {
	URL            string          `json:"url"`
	SuggestedTitle string          `json:"suggestedTitle"`
	Rows           []ComparisonRow `json:"rows"`
}

// NewComparison builds a Comparison from results of the same page, one per
// mode, in the order given. Nil results are skipped.
func NewComparison(pageURL string, results []*model.PageResult) *Comparison {
	c := &Comparison{
		URL:  pageURL,
		Rows: make([]ComparisonRow, 0, len(results)),
	}
	for _, r := range results {
		if r == nil {
			continue
		}
		if c.SuggestedTitle == "" {
			c.SuggestedTitle = r.SuggestedTitle
		}

		labels := make([]string, 0, topLabelCount)
		for i := 0; i < len(r.Groups) && i < topLabelCount; i++ {
			labels = append(labels, r.Groups[i].Label)
		}
		c.Rows = append(c.Rows, ComparisonRow{
			Mode:                 r.Mode,
			Groups:               len(r.Groups),
			Articles:             r.ArticleCount(),
			TotalGroupsBeforeCap: r.TotalGroupsBeforeCap,
			Rendered:             r.Rendered,
			TopLabels:            labels,
		})
	}
	return c
}

package model

import "time"

// Candidate is an anchor considered for group membership prior to filtering.
// Candidates exist only while a segmenter runs.
type Candidate struct {
	// Text is the anchor text with whitespace collapsed.
	Text string

	// URL is the canonical absolute URL of the anchor.
	// Candidates are only created for links on the page's own host.
	URL string

	// Container is the class attribute of the nearest block ancestor.
	// Together with the path prefix it forms the cluster key.
	Container string

	// DOMPath is a coarse signature of the anchor element ("a.title").
	DOMPath string

	// Context is the text of the anchor's parent element.
	// It is where dates that sit next to a link are usually found.
	Context string
}

// Article is an extracted, same-host link to a piece of content.
type Article struct {
	// Title is the anchor text of the link.
	Title string `json:"title"`

	// Link is the canonical absolute URL.
	Link string `json:"link"`

	// PublishedAt is best-effort. It is parsed from a date in the link text
	// or its surrounding text and falls back to the extraction time.
	PublishedAt time.Time `json:"publishedAt"`
}

// Group is a labeled set of articles believed to share a topical origin.
type Group struct {
	// Label is the human-meaningful name of the group.
	Label string `json:"label"`

	// Articles are the unique members in document order.
	Articles []Article `json:"articles"`

	// Strategy names the segmenter(s) that produced the group.
	// Merged groups list every contributing strategy joined by "+".
	Strategy string `json:"strategy"`

	// Score is the strategy-specific confidence, higher is better.
	Score float64 `json:"score"`
}

// Len returns the number of articles in the group.
func (g Group) Len() int {
	return len(g.Articles)
}

// Valid reports whether the group has enough members to be emitted.
func (g Group) Valid() bool {
	return len(g.Articles) >= MinGroupSize
}

// MinGroupSize is the minimum number of articles a group needs to be emitted.
const MinGroupSize = 2

// PageResult is the answer for one segmentation call.
//
// Design decision: PageResult is the sole contract with callers. The route
// layer serializes it and a subscription builder receives one group's
// Articles verbatim, so it carries no internal bookkeeping.
type PageResult struct {
	// URL is the page that was segmented.
	URL string `json:"url"`

	// Groups are the emitted groups after capping.
	Groups []Group `json:"groups"`

	// SuggestedTitle is a page-level title for a subscription.
	SuggestedTitle string `json:"suggestedTitle"`

	// Mode is the mode the call ran in.
	Mode Mode `json:"mode"`

	// TotalGroupsBeforeCap is the number of groups before the group cap.
	TotalGroupsBeforeCap int `json:"totalGroupsBeforeCap"`

	// Rendered is true when the groups came from headless-rendered markup.
	Rendered bool `json:"rendered"`
}

// NewPageResult creates an empty result for the given page and mode.
// Groups is never nil so that JSON output is always an array.
func NewPageResult(pageURL string, mode Mode) *PageResult {
	return &PageResult{
		URL:    pageURL,
		Groups: make([]Group, 0),
		Mode:   mode,
	}
}

// ApplyCaps limits the result to maxGroups groups of at most maxArticles
// articles each and records the pre-cap group count. A non-positive limit
// disables that cap.
func (r *PageResult) ApplyCaps(maxGroups, maxArticles int) {
	r.TotalGroupsBeforeCap = len(r.Groups)

	if maxGroups > 0 && len(r.Groups) > maxGroups {
		r.Groups = r.Groups[:maxGroups]
	}
	if maxArticles <= 0 {
		return
	}
	for i := range r.Groups {
		if len(r.Groups[i].Articles) > maxArticles {
			r.Groups[i].Articles = r.Groups[i].Articles[:maxArticles]
		}
	}
}

// ArticleCount returns the number of articles across all groups.
func (r *PageResult) ArticleCount() int {
	total := 0
	for _, g := range r.Groups {
		total += len(g.Articles)
	}
	return total
}

// DedupArticles returns articles with repeated links removed, keeping the
// first occurrence. The input slice is not modified.
func DedupArticles(articles []Article) []Article {
	seen := make(map[string]bool, len(articles))
	unique := make([]Article, 0, len(articles))
	for _, a := range articles {
		if seen[a.Link] {
			continue
		}
		seen[a.Link] = true
		unique = append(unique, a)
	}
	return unique
}

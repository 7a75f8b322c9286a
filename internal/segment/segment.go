package segment

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/title"
	"github.com/Sumluvv/pagefeed/internal/urlutil"
)

// ErrInvalidPage is returned when a Page lacks a base URL or a document.
var ErrInvalidPage = errors.New("invalid page: base URL and document are required")

// Segmenter is one grouping strategy.
type Segmenter interface {
	// Name returns the strategy name recorded on emitted groups.
	Name() string

	// Segment returns the groups found on the page. Labels are raw; title
	// inference is applied by the caller.
	Segment(page *Page) ([]model.Group, error)
}

// Page is the input shared by all segmenters of one call.
type Page struct {
	// URL is the base URL for resolving links and the host every article must share.
	URL *url.URL

	// Doc is the parsed markup.
	Doc dom.Analyzer

	// Now is the extraction time, used when an article shows no date.
	Now time.Time
}

// NewPage builds a Page for pageURL.
func NewPage(pageURL string, doc dom.Analyzer, now time.Time) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	p := &Page{URL: u, Doc: doc, Now: now}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Page) validate() error {
	if p == nil || p.URL == nil || p.URL.Host == "" || p.Doc == nil {
		return ErrInvalidPage
	}
	return nil
}

// anchor is a candidate link together with its element.
type anchor struct {
	model.Candidate
	el dom.Element
}

// containerBlocks are the ancestors whose class forms the container signature.
const containerBlocks = "div, section, article, ul, ol"

// candidate turns an element into a same-host candidate. It reports false for
// anchors without text or href, breadcrumb-shaped text, unresolvable links
// and links to other hosts.
func (p *Page) candidate(el dom.Element) (anchor, bool) {
	text := el.Text()
	href, _ := el.Attr("href")
	if text == "" || strings.TrimSpace(href) == "" || title.IsBreadcrumb(text) {
		return anchor{}, false
	}

	link := urlutil.Canonicalize(href, p.URL)
	if link == "" || !urlutil.SameHost(link, p.URL) {
		return anchor{}, false
	}

	c := model.Candidate{Text: text, URL: link, DOMPath: domPath(el)}
	if block, ok := el.Closest(containerBlocks); ok {
		c.Container, _ = block.Attr("class")
	}
	return anchor{Candidate: c, el: el}, true
}

// anchors collects every same-host candidate with at least minText runes of text.
func (p *Page) anchors(minText int) []anchor {
	elements := p.Doc.Query("a[href]")
	out := make([]anchor, 0, len(elements))
	for _, el := range elements {
		a, ok := p.candidate(el)
		if !ok || runeLen(a.Text) < minText {
			continue
		}
		out = append(out, a)
	}
	return out
}

// context returns the text around the anchor, computed on first use.
func (a *anchor) context() string {
	if a.Context == "" {
		if parent, ok := a.el.Parent(); ok {
			a.Context = parent.Text()
		}
	}
	return a.Context
}

// article converts a candidate to an article. The date comes from the link
// text, then from the text around it, then from the extraction time.
func (p *Page) article(a *anchor) model.Article {
	published, ok := ParseDate(a.Text)
	if !ok {
		published, ok = ParseDate(a.context())
	}
	if !ok {
		published = p.Now
	}
	return model.Article{Title: a.Text, Link: a.URL, PublishedAt: published}
}

// domPath is a coarse element signature: the tag plus its first class.
func domPath(el dom.Element) string {
	sig := el.Tag()
	if class, ok := el.Attr("class"); ok {
		if fields := strings.Fields(class); len(fields) > 0 {
			sig += "." + fields[0]
		}
	}
	return sig
}

// dedupe keeps the first anchor for each URL.
func dedupe(anchors []anchor) []anchor {
	seen := make(map[string]bool, len(anchors))
	out := make([]anchor, 0, len(anchors))
	for _, a := range anchors {
		if seen[a.URL] {
			continue
		}
		seen[a.URL] = true
		out = append(out, a)
	}
	return out
}

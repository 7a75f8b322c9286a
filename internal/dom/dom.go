package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Analyzer is the read-only query capability over one parsed document.
type Analyzer interface {
	// Query returns all elements matching the CSS selector in document order.
	Query(selector string) []Element

	// First returns the first element matching the selector.
	First(selector string) (Element, bool)
}

// Element is a single element node.
type Element interface {
	// Tag returns the lowercased tag name.
	Tag() string

	// Text returns the element's text content with whitespace runs collapsed
	// to single spaces and surrounding whitespace trimmed.
	Text() string

	// Attr returns the value of the named attribute.
	Attr(name string) (string, bool)

	// Find returns descendants matching the selector in document order.
	Find(selector string) []Element

	// Is reports whether the element itself matches the selector.
	Is(selector string) bool

	// Closest returns the element itself or its nearest ancestor matching
	// the selector.
	Closest(selector string) (Element, bool)

	// Parent returns the parent element.
	Parent() (Element, bool)

	// Ancestors returns all ancestor elements from the parent upwards.
	Ancestors() []Element

	// Next returns the next element sibling.
	Next() (Element, bool)
}

// Document is a parsed HTML document backed by goquery.
type Document struct {
	doc *goquery.Document
}

// Parse parses markup into a Document.
// Malformed markup is tolerated by the HTML5 parsing algorithm; an error is
// only returned when the reader itself fails.
func Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}
	return &Document{doc: doc}, nil
}

// Query implements Analyzer.
func (d *Document) Query(selector string) []Element {
	return wrap(d.doc.Find(selector))
}

// First implements Analyzer.
func (d *Document) First(selector string) (Element, bool) {
	return single(d.doc.Find(selector).First())
}

// selection adapts a single-node goquery selection to Element.
type selection struct {
	s *goquery.Selection
}

func (e selection) Tag() string {
	if len(e.s.Nodes) == 0 || e.s.Nodes[0].Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(e.s.Nodes[0].Data)
}

func (e selection) Text() string {
	return CollapseSpace(e.s.Text())
}

func (e selection) Attr(name string) (string, bool) {
	return e.s.Attr(name)
}

func (e selection) Find(selector string) []Element {
	return wrap(e.s.Find(selector))
}

func (e selection) Is(selector string) bool {
	return e.s.Is(selector)
}

func (e selection) Closest(selector string) (Element, bool) {
	return single(e.s.Closest(selector))
}

func (e selection) Parent() (Element, bool) {
	return single(e.s.Parent())
}

func (e selection) Ancestors() []Element {
	return wrap(e.s.Parents())
}

func (e selection) Next() (Element, bool) {
	return single(e.s.Next())
}

func wrap(s *goquery.Selection) []Element {
	out := make([]Element, 0, s.Length())
	s.Each(func(_ int, item *goquery.Selection) {
		out = append(out, selection{s: item})
	})
	return out
}

func single(s *goquery.Selection) (Element, bool) {
	if s.Length() == 0 {
		return nil, false
	}
	return selection{s: s.First()}, true
}

// CollapseSpace trims s and replaces every run of whitespace with one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HeadingLevel returns 1..6 for h1..h6 elements and 0 otherwise.
func HeadingLevel(e Element) int {
	tag := e.Tag()
	if len(tag) != 2 || tag[0] != 'h' || tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}

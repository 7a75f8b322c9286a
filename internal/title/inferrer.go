package title

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/model"
)

// Untitled is returned when no label can be derived at all.
const Untitled = "Untitled group"

// Inferrer refines raw labels.
// It is safe for concurrent use once created.
type Inferrer struct {
	stopwords map[string]bool
	minLen    int
	maxLen    int
}

// Option configures an Inferrer.
type Option func(*Inferrer)

// WithStopwords adds labels that are always treated as uninformative.
// Matching is case-insensitive on the whole label.
func WithStopwords(words ...string) Option {
	return func(in *Inferrer) {
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				in.stopwords[w] = true
			}
		}
	}
}

// WithLabelBounds sets the accepted label length in runes.
func WithLabelBounds(minLen, maxLen int) Option {
	return func(in *Inferrer) {
		in.minLen = minLen
		in.maxLen = maxLen
	}
}

// NewInferrer creates an Inferrer.
func NewInferrer(opts ...Option) *Inferrer {
	tuning := config.DefaultTuning()
	in := &Inferrer{
		stopwords: make(map[string]bool),
		minLen:    tuning.LabelMinLen,
		maxLen:    tuning.LabelMaxLen,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// isStop reports whether label is on the stoplist for a page on host.
func (in *Inferrer) isStop(label, host string) bool {
	if IsBoilerplate(label) || IsNavigation(label) {
		return true
	}
	lower := strings.ToLower(label)
	if in.stopwords[lower] {
		return true
	}
	for _, fragment := range hostFragments(host) {
		if lower == fragment {
			return true
		}
	}
	return false
}

// Infer returns the label to publish for a group found on a page of host.
//
// A stoplisted label is replaced by one derived from the articles. A short
// breadcrumb-shaped label is reduced to its last segment. A label outside
// the accepted length is re-derived as well.
func (in *Inferrer) Infer(label string, articles []model.Article, host string) string {
	label = dom.CollapseSpace(label)
	if len(articles) == 0 {
		return label
	}
	if label == "" || in.isStop(label, host) {
		return in.FromArticles(articles, host)
	}

	if IsBreadcrumb(label) {
		tail := BreadcrumbTail(label)
		if n := runeLen(tail); n > 2 && n < 30 {
			return tail
		}
	}

	if n := runeLen(label); n < in.minLen || n > in.maxLen {
		return in.FromArticles(articles, host)
	}
	return label
}

// FromArticles derives a label from member titles, trying in order:
//  1. a short title (2..10 runes) repeated by at least two members
//  2. the most common keyword shared by at least two titles
//  3. a title of 4..19 runes that is not a bare category word
//  4. the first title, truncated to 30 runes
func (in *Inferrer) FromArticles(articles []model.Article, host string) string {
	titles := make([]string, 0, len(articles))
	for _, a := range articles {
		if t := dom.CollapseSpace(a.Title); t != "" {
			titles = append(titles, t)
		}
	}
	if len(titles) == 0 {
		return Untitled
	}

	if short := in.repeatedShortTitle(titles, host); short != "" {
		return short
	}

	if keywords := CommonKeywords(titles); len(keywords) > 0 {
		return keywords[0]
	}

	for _, t := range titles {
		if n := runeLen(t); n >= 4 && n < 20 && !categoryRe.MatchString(t) && !IsNavigation(t) {
			return t
		}
	}

	return Truncate(titles[0], 30)
}

// repeatedShortTitle returns the most frequent 2..10 rune title that occurs
// at least twice. Ties go to the title seen first.
func (in *Inferrer) repeatedShortTitle(titles []string, host string) string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, t := range titles {
		if n := runeLen(t); n < 2 || n > 10 || in.isStop(t, host) {
			continue
		}
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	best, bestCount := "", 1
	for _, t := range order {
		if counts[t] > bestCount {
			best, bestCount = t, counts[t]
		}
	}
	return best
}

// nonWordRe matches everything that is not a Han character, ASCII letter or digit.
var nonWordRe = regexp.MustCompile(`[^\p{Han}a-zA-Z0-9]+`)

// CommonKeywords returns up to three keywords that appear in at least two
// titles, most frequent first. Keywords are the 2..10 rune tokens left after
// replacing punctuation with spaces.
func CommonKeywords(titles []string) []string {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, t := range titles {
		seen := make(map[string]bool)
		for _, word := range strings.Fields(nonWordRe.ReplaceAllString(t, " ")) {
			if n := runeLen(word); n < 2 || n > 10 || seen[word] {
				continue
			}
			seen[word] = true
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	keywords := make([]string, 0, len(order))
	for _, word := range order {
		if counts[word] >= 2 {
			keywords = append(keywords, word)
		}
	}
	sort.SliceStable(keywords, func(i, j int) bool {
		return counts[keywords[i]] > counts[keywords[j]]
	})
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	return keywords
}

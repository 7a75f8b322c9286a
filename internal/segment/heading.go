package segment

import (
	"regexp"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/title"
)

// headingBlacklistRe rejects headings of site furniture: home, about, login,
// contact, sitemap and link directories ("友情链接" is "friendly links",
// "业务网站" is "business sites").
var headingBlacklistRe = regexp.MustCompile(`(?i)^(home|首页)$|\babout\b|关于|\blog ?in\b|\bsign ?in\b|登录|\bcontact\b|联系我们|site ?map|网站地图|friendly links|友情链接|上级政府网站|各省市人社部门网站|各地市人社部门网站|业务网站`)

// headingSelector lists the headings that own a region.
const headingSelector = "h1, h2, h3"

// Heading groups the links that follow each h1..h3 heading.
// A heading owns its following siblings up to the next heading of the same
// or a higher level, or until the walk bound is reached.
type Heading struct {
	tuning   config.Tuning
	policies PolicyResolver
}

// HeadingOption configures a Heading segmenter.
type HeadingOption func(*Heading)

// WithPolicies sets the per-site admission policies.
func WithPolicies(r PolicyResolver) HeadingOption {
	return func(h *Heading) {
		h.policies = r
	}
}

// NewHeading creates a Heading segmenter.
func NewHeading(tuning config.Tuning, opts ...HeadingOption) *Heading {
	h := &Heading{tuning: tuning}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Name implements Segmenter.
func (h *Heading) Name() string {
	return model.StrategyHeadings
}

// Segment implements Segmenter.
func (h *Heading) Segment(page *Page) ([]model.Group, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}

	var admit Admission
	if h.policies != nil {
		admit = h.policies.Resolve(page.URL)
	}

	groups := make([]model.Group, 0)
	for _, heading := range page.Doc.Query(headingSelector) {
		name := heading.Text()
		if n := runeLen(name); n < h.tuning.HeadingMinLen || n > h.tuning.HeadingMaxLen {
			continue
		}
		if headingBlacklistRe.MatchString(name) {
			continue
		}

		members := dedupe(h.region(page, heading, admit))
		if len(members) > h.tuning.HeadingMaxLinks {
			members = members[:h.tuning.HeadingMaxLinks]
		}
		if len(members) < model.MinGroupSize {
			continue
		}

		articles := make([]model.Article, len(members))
		for i := range members {
			articles[i] = page.article(&members[i])
		}
		groups = append(groups, model.Group{
			Label:    name,
			Articles: articles,
			Strategy: h.Name(),
			Score:    float64(len(articles)) / float64(h.tuning.HeadingMaxLinks),
		})
	}
	return groups, nil
}

// region walks the siblings owned by heading and returns the admitted anchors.
func (h *Heading) region(page *Page, heading dom.Element, admit Admission) []anchor {
	level := dom.HeadingLevel(heading)
	var found []anchor

	sibling, ok := heading.Next()
	for steps := 0; ok && steps < h.tuning.HeadingWalk; steps++ {
		if l := dom.HeadingLevel(sibling); l >= 1 && l <= 3 && l <= level {
			break
		}

		elements := sibling.Find("a[href]")
		if sibling.Tag() == "a" {
			if _, has := sibling.Attr("href"); has {
				elements = append([]dom.Element{sibling}, elements...)
			}
		}
		for _, el := range elements {
			if a, keep := h.admit(page, el, admit); keep {
				found = append(found, a)
			}
		}

		sibling, ok = sibling.Next()
	}
	return found
}

// admit applies the candidate filters of the heading strategy.
func (h *Heading) admit(page *Page, el dom.Element, admit Admission) (anchor, bool) {
	a, ok := page.candidate(el)
	if !ok {
		return anchor{}, false
	}
	if n := runeLen(a.Text); n < h.tuning.HeadingLinkMinLen || n > h.tuning.HeadingLinkMaxLen {
		return anchor{}, false
	}
	if title.IsNavigation(a.Text) || title.IsBoilerplate(a.Text) {
		return anchor{}, false
	}
	if admit != nil {
		a.context()
		if !admit(a.Candidate) {
			return anchor{}, false
		}
	}
	return a, true
}

package segment

import (
	"regexp"
	"sort"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/title"
	"github.com/Sumluvv/pagefeed/internal/urlutil"
)

// navContainerRe matches class names of navigation-like containers.
var navContainerRe = regexp.MustCompile(`(?i)nav|menu|footer|header|sidebar|breadcrumb|pagination`)

// Pattern groups links by the first two segments of their URL path.
//
// Design decision: A whole pattern is vetoed as soon as one contributing link
// sits in a navigation-like container. Menus repeat the same path prefixes as
// the content lists, and a wrong group costs more than a missing one.
type Pattern struct {
	tuning config.Tuning
}

// NewPattern creates a Pattern segmenter.
func NewPattern(tuning config.Tuning) *Pattern {
	return &Pattern{tuning: tuning}
}

// Name implements Segmenter.
func (p *Pattern) Name() string {
	return model.StrategyPattern
}

type pathGroup struct {
	pattern string
	members []anchor
	vetoed  bool
}

// Segment implements Segmenter.
func (p *Pattern) Segment(page *Page) ([]model.Group, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}

	anchors := page.anchors(p.tuning.PatternMinText)
	total := len(anchors)

	byPattern := make(map[string]*pathGroup)
	ordered := make([]*pathGroup, 0)
	for _, a := range anchors {
		if len(urlutil.Segments(a.URL)) < 2 {
			continue
		}
		pattern := urlutil.PathPrefix(a.URL, 2)
		pg, ok := byPattern[pattern]
		if !ok {
			pg = &pathGroup{pattern: pattern}
			byPattern[pattern] = pg
			ordered = append(ordered, pg)
		}
		if inNavigation(a) {
			pg.vetoed = true
		}
		pg.members = append(pg.members, a)
	}

	kept := make([]*pathGroup, 0, len(ordered))
	for _, pg := range ordered {
		if pg.vetoed {
			continue
		}
		pg.members = dedupe(pg.members)
		if len(pg.members) >= p.tuning.PatternMinSize {
			kept = append(kept, pg)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return len(kept[i].members) > len(kept[j].members)
	})
	if len(kept) > p.tuning.PatternTop {
		kept = kept[:p.tuning.PatternTop]
	}

	groups := make([]model.Group, 0, len(kept))
	for _, pg := range kept {
		score := float64(len(pg.members)) / float64(total)
		members := pg.members
		if len(members) > p.tuning.PatternMaxMembers {
			members = members[:p.tuning.PatternMaxMembers]
		}
		articles := make([]model.Article, len(members))
		for i := range members {
			articles[i] = page.article(&members[i])
		}
		groups = append(groups, model.Group{
			Label:    title.PathLabel(pg.pattern),
			Articles: articles,
			Strategy: p.Name(),
			Score:    score,
		})
	}
	return groups, nil
}

// inNavigation reports whether the nearest element carrying a class, the
// anchor itself included, has a navigation-like class.
func inNavigation(a anchor) bool {
	classed, ok := a.el.Closest("[class]")
	if !ok {
		return false
	}
	class, _ := classed.Attr("class")
	return navContainerRe.MatchString(class)
}

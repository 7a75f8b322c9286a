package segment

import (
	"sort"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/title"
	"github.com/Sumluvv/pagefeed/internal/urlutil"
)

// clusterLabelBlocks are searched upwards from the first member for a heading.
const clusterLabelBlocks = "div, section, article, h1, h2, h3"

// Cluster groups links that share a container class and a two-segment path
// prefix, then scores each cluster:
//
//	score = wL*linkDensity + wS*sameHost + wD*dateHit + wT*titleDensity
//
// sameHost is always 1 because only same-host links are collected.
type Cluster struct {
	tuning config.Tuning
}

// NewCluster creates a Cluster segmenter.
func NewCluster(tuning config.Tuning) *Cluster {
	return &Cluster{tuning: tuning}
}

// Name implements Segmenter.
func (c *Cluster) Name() string {
	return model.StrategyCluster
}

type cluster struct {
	key     string
	members []anchor
	seen    map[string]bool
	score   float64
}

// Segment implements Segmenter.
func (c *Cluster) Segment(page *Page) ([]model.Group, error) {
	if err := page.validate(); err != nil {
		return nil, err
	}

	anchors := page.anchors(c.tuning.ClusterMinText)
	total := len(anchors)

	// Clusters keep first-seen order so equal scores sort deterministically.
	byKey := make(map[string]*cluster)
	ordered := make([]*cluster, 0)
	for _, a := range anchors {
		key := a.Container + "-" + urlutil.PathPrefix(a.URL, 2)
		cl, ok := byKey[key]
		if !ok {
			cl = &cluster{key: key, seen: make(map[string]bool)}
			byKey[key] = cl
			ordered = append(ordered, cl)
		}
		if cl.seen[a.URL] {
			continue
		}
		cl.seen[a.URL] = true
		cl.members = append(cl.members, a)
	}

	kept := make([]*cluster, 0, len(ordered))
	for _, cl := range ordered {
		cl.score = c.score(cl.members, total)
		if cl.score > c.tuning.ClusterMinScore && len(cl.members) >= c.tuning.ClusterMinSize {
			kept = append(kept, cl)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].score > kept[j].score
	})
	if len(kept) > c.tuning.ClusterTop {
		kept = kept[:c.tuning.ClusterTop]
	}

	groups := make([]model.Group, 0, len(kept))
	for _, cl := range kept {
		articles := make([]model.Article, len(cl.members))
		for i := range cl.members {
			articles[i] = page.article(&cl.members[i])
		}
		groups = append(groups, model.Group{
			Label:    clusterLabel(cl.members[0]),
			Articles: articles,
			Strategy: c.Name(),
			Score:    cl.score,
		})
	}
	return groups, nil
}

// score computes the weighted cluster score.
func (c *Cluster) score(members []anchor, total int) float64 {
	if len(members) == 0 {
		return 0
	}
	if total < 1 {
		total = 1
	}

	linkDensity := float64(len(members)) / float64(total)
	sameHost := 1.0

	dateHit := 0.0
	titled := 0
	for _, m := range members {
		if HasYearToken(m.Text) {
			dateHit = 1
		}
		if n := runeLen(m.Text); n >= c.tuning.TitleMinLen && n < c.tuning.TitleMaxLen {
			titled++
		}
	}
	titleDensity := float64(titled) / float64(len(members))

	return c.tuning.WeightLinkDensity*linkDensity +
		c.tuning.WeightSameHost*sameHost +
		c.tuning.WeightDateHit*dateHit +
		c.tuning.WeightTitleDensity*titleDensity
}

// clusterLabel uses the heading of the first member's container when it is
// plausible, otherwise the first member's text.
func clusterLabel(first anchor) string {
	if block, ok := first.el.Closest(clusterLabelBlocks); ok {
		var heading string
		if level := dom.HeadingLevel(block); level >= 1 && level <= 3 {
			heading = block.Text()
		} else if found := block.Find("h1, h2, h3"); len(found) > 0 {
			heading = found[0].Text()
		}
		if n := runeLen(heading); n > 2 && n < 50 {
			return heading
		}
	}
	return title.Truncate(first.Text, 50)
}

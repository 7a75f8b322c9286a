// Package merge unions the groups found by several strategies.
package merge

import (
	"sort"
	"strings"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// Groups merges groups that carry the same label.
//
// Articles of merged groups are combined in input order with duplicate links
// removed. The merged strategy lists each contributing strategy once, joined
// by "+", and the merged score is the highest contributing score. Groups left
// with fewer than two articles are dropped. The result is sorted by article
// count, largest first, with ties broken by label so the order does not
// depend on which strategy finished first.
func Groups(groups []model.Group) []model.Group {
	type entry struct {
		group      model.Group
		strategies []string
	}

	byLabel := make(map[string]*entry)
	order := make([]string, 0)
	for _, g := range groups {
		e, ok := byLabel[g.Label]
		if !ok {
			e = &entry{group: model.Group{Label: g.Label, Score: g.Score}}
			byLabel[g.Label] = e
			order = append(order, g.Label)
		}

		if g.Score > e.group.Score {
			e.group.Score = g.Score
		}
		if g.Strategy != "" && !contains(e.strategies, g.Strategy) {
			e.strategies = append(e.strategies, g.Strategy)
		}
		e.group.Articles = append(e.group.Articles, g.Articles...)
	}

	merged := make([]model.Group, 0, len(order))
	for _, label := range order {
		e := byLabel[label]
		e.group.Articles = model.DedupArticles(e.group.Articles)
		if !e.group.Valid() {
			continue
		}
		e.group.Strategy = strings.Join(e.strategies, "+")
		merged = append(merged, e.group)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].Len() != merged[j].Len() {
			return merged[i].Len() > merged[j].Len()
		}
		return merged[i].Label < merged[j].Label
	})
	return merged
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

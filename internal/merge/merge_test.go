package merge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumluvv/pagefeed/internal/model"
)

func group(label, strategy string, score float64, links ...string) model.Group {
	g := model.Group{Label: label, Strategy: strategy, Score: score}
	for _, l := range links {
		g.Articles = append(g.Articles, model.Article{Title: "title " + l, Link: "https://example.com/" + l})
	}
	return g
}

func links(g model.Group) []string {
	out := make([]string, len(g.Articles))
	for i, a := range g.Articles {
		out[i] = a.Link
	}
	return out
}

func TestGroups(t *testing.T) {
	t.Parallel()

	t.Run("same label merges into the deduplicated union", func(t *testing.T) {
		t.Parallel()

		got := Groups([]model.Group{
			group("News", model.StrategyHeadings, 0.2, "a", "b", "c"),
			group("News", model.StrategyPattern, 0.5, "b", "c", "d"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, "News", got[0].Label)
		assert.Equal(t, []string{
			"https://example.com/a", "https://example.com/b",
			"https://example.com/c", "https://example.com/d",
		}, links(got[0]))
		assert.Equal(t, "headings+pattern", got[0].Strategy)
		assert.InDelta(t, 0.5, got[0].Score, 1e-9)
	})

	t.Run("groups below two articles are dropped", func(t *testing.T) {
		t.Parallel()

		got := Groups([]model.Group{
			group("Solo", model.StrategyCluster, 0.9, "a"),
			group("Dup", model.StrategyCluster, 0.9, "x", "x"),
			group("Pair", model.StrategyCluster, 0.3, "p", "q"),
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Pair", got[0].Label)
	})

	t.Run("sorted by size then label", func(t *testing.T) {
		t.Parallel()

		got := Groups([]model.Group{
			group("Beta", model.StrategyHeadings, 0.1, "1", "2"),
			group("Alpha", model.StrategyHeadings, 0.1, "3", "4"),
			group("Gamma", model.StrategyHeadings, 0.1, "5", "6", "7"),
		})
		labels := make([]string, len(got))
		for i, g := range got {
			labels[i] = g.Label
		}
		assert.Equal(t, []string{"Gamma", "Alpha", "Beta"}, labels)
	})

	t.Run("membership does not depend on input order", func(t *testing.T) {
		t.Parallel()

		a := group("Events", model.StrategyHeadings, 0.1, "e1", "e2")
		b := group("Events", model.StrategyCluster, 0.4, "e2", "e3")
		c := group("Jobs", model.StrategyPattern, 0.3, "j1", "j2", "j3")

		forward := Groups([]model.Group{a, b, c})
		backward := Groups([]model.Group{c, b, a})
		require.Len(t, forward, 2)
		require.Len(t, backward, 2)

		for i := range forward {
			assert.Equal(t, forward[i].Label, backward[i].Label)
			assert.ElementsMatch(t, links(forward[i]), links(backward[i]))
			assert.InDelta(t, forward[i].Score, backward[i].Score, 1e-9)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, Groups(nil))
	})

	t.Run("many strategies are listed once", func(t *testing.T) {
		t.Parallel()

		in := make([]model.Group, 0, 6)
		for i := 0; i < 6; i++ {
			in = append(in, group("Feed", model.Modes[1+i%3].String(), 0.1, fmt.Sprint(i), fmt.Sprint(i+1)))
		}
		got := Groups(in)
		require.Len(t, got, 1)
		assert.Equal(t, "headings+cluster+pattern", got[0].Strategy)
		assert.Equal(t, 7, got[0].Len())
	})
}

package config

import (
	"fmt"
	"time"
)

// Tuning holds the named constants that shape segmentation.
// Every value has a default from DefaultTuning, and the configuration file
// may override any subset of them in its "tuning" block.
type Tuning struct {
	// HeadingMinLen and HeadingMaxLen bound heading text length in runes.
	HeadingMinLen int `yaml:"headingMinLen"`
	HeadingMaxLen int `yaml:"headingMaxLen"`
	// HeadingWalk is the number of following siblings visited per heading.
	HeadingWalk int `yaml:"headingWalk"`
	// HeadingLinkMinLen and HeadingLinkMaxLen bound anchor text length.
	HeadingLinkMinLen int `yaml:"headingLinkMinLen"`
	HeadingLinkMaxLen int `yaml:"headingLinkMaxLen"`
	// HeadingMaxLinks caps the articles collected under one heading.
	HeadingMaxLinks int `yaml:"headingMaxLinks"`

	// ClusterMinText is the minimum anchor text length for clustering.
	ClusterMinText int `yaml:"clusterMinText"`
	// Scoring weights. They are expected to sum to 1.
	WeightLinkDensity  float64 `yaml:"weightLinkDensity"`
	WeightSameHost     float64 `yaml:"weightSameHost"`
	WeightDateHit      float64 `yaml:"weightDateHit"`
	WeightTitleDensity float64 `yaml:"weightTitleDensity"`
	// ClusterMinScore is the exclusive lower bound on a kept cluster's score.
	ClusterMinScore float64 `yaml:"clusterMinScore"`
	// ClusterMinSize is the minimum member count of a kept cluster.
	ClusterMinSize int `yaml:"clusterMinSize"`
	// ClusterTop caps the number of clusters emitted.
	ClusterTop int `yaml:"clusterTop"`
	// TitleMinLen and TitleMaxLen bound "title-like" text for title density.
	// The upper bound is exclusive.
	TitleMinLen int `yaml:"titleMinLen"`
	TitleMaxLen int `yaml:"titleMaxLen"`

	// PatternMinText is the minimum anchor text length for path grouping.
	PatternMinText int `yaml:"patternMinText"`
	// PatternMinSize is the minimum member count of a kept pattern.
	PatternMinSize int `yaml:"patternMinSize"`
	// PatternTop caps the number of patterns emitted.
	PatternTop int `yaml:"patternTop"`
	// PatternMaxMembers caps the articles emitted per pattern.
	PatternMaxMembers int `yaml:"patternMaxMembers"`

	// LabelMinLen and LabelMaxLen bound an acceptable group label.
	LabelMinLen int `yaml:"labelMinLen"`
	LabelMaxLen int `yaml:"labelMaxLen"`

	// MaxGroups and MaxArticles are the output caps.
	MaxGroups   int `yaml:"maxGroups"`
	MaxArticles int `yaml:"maxArticles"`

	// RenderTimeout bounds navigation in the headless browser.
	RenderTimeout time.Duration `yaml:"renderTimeout"`
	// RenderSettle is the fixed wait after the body becomes ready.
	RenderSettle time.Duration `yaml:"renderSettle"`
}

// DefaultTuning returns the tuning used when nothing is overridden.
func DefaultTuning() Tuning {
	return Tuning{
		HeadingMinLen:     2,
		HeadingMaxLen:     30,
		HeadingWalk:       25,
		HeadingLinkMinLen: 4,
		HeadingLinkMaxLen: 100,
		HeadingMaxLinks:   30,

		ClusterMinText:     3,
		WeightLinkDensity:  0.3,
		WeightSameHost:     0.2,
		WeightDateHit:      0.3,
		WeightTitleDensity: 0.2,
		ClusterMinScore:    0.1,
		ClusterMinSize:     3,
		ClusterTop:         10,
		TitleMinLen:        10,
		TitleMaxLen:        100,

		PatternMinText:    3,
		PatternMinSize:    3,
		PatternTop:        8,
		PatternMaxMembers: 50,

		LabelMinLen: 2,
		LabelMaxLen: 50,

		MaxGroups:   15,
		MaxArticles: 50,

		RenderTimeout: 5 * time.Second,
		RenderSettle:  time.Second,
	}
}

// Validate reports the first out-of-range value.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"headingMaxLen", t.HeadingMaxLen},
		{"headingWalk", t.HeadingWalk},
		{"headingLinkMaxLen", t.HeadingLinkMaxLen},
		{"headingMaxLinks", t.HeadingMaxLinks},
		{"clusterMinSize", t.ClusterMinSize},
		{"clusterTop", t.ClusterTop},
		{"patternMinSize", t.PatternMinSize},
		{"patternTop", t.PatternTop},
		{"patternMaxMembers", t.PatternMaxMembers},
		{"labelMaxLen", t.LabelMaxLen},
		{"maxGroups", t.MaxGroups},
		{"maxArticles", t.MaxArticles},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidTuning, p.name)
		}
	}

	if t.HeadingMinLen > t.HeadingMaxLen {
		return fmt.Errorf("%w: headingMinLen exceeds headingMaxLen", ErrInvalidTuning)
	}
	if t.HeadingLinkMinLen > t.HeadingLinkMaxLen {
		return fmt.Errorf("%w: headingLinkMinLen exceeds headingLinkMaxLen", ErrInvalidTuning)
	}
	if t.LabelMinLen > t.LabelMaxLen {
		return fmt.Errorf("%w: labelMinLen exceeds labelMaxLen", ErrInvalidTuning)
	}
	for _, w := range []float64{t.WeightLinkDensity, t.WeightSameHost, t.WeightDateHit, t.WeightTitleDensity} {
		if w < 0 {
			return fmt.Errorf("%w: weights must be non-negative", ErrInvalidTuning)
		}
	}
	if t.RenderTimeout <= 0 {
		return fmt.Errorf("%w: renderTimeout must be positive", ErrInvalidTuning)
	}
	if t.RenderSettle < 0 {
		return fmt.Errorf("%w: renderSettle must be non-negative", ErrInvalidTuning)
	}
	return nil
}

package model

import (
	"fmt"
	"strings"
)

// Mode selects which segmentation strategies run for a page.
type Mode string

const (
	// ModeAuto runs every strategy and merges their groups.
	ModeAuto Mode = "auto"

	// ModeHeadings runs only the heading-proximity strategy.
	ModeHeadings Mode = "headings"

	// ModeCluster runs only the link-clustering strategy.
	ModeCluster Mode = "cluster"

	// ModePattern runs only the URL path-pattern strategy.
	ModePattern Mode = "pattern"
)

// Modes lists all valid modes in the order they are documented.
var Modes = []Mode{ModeAuto, ModeHeadings, ModeCluster, ModePattern}

// ParseMode converts a user-supplied token to a Mode.
// An empty token means ModeAuto.
func ParseMode(s string) (Mode, error) {
	token := Mode(strings.ToLower(strings.TrimSpace(s)))
	if token == "" {
		return ModeAuto, nil
	}
	for _, m := range Modes {
		if m == token {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// String returns the mode token.
func (m Mode) String() string {
	return string(m)
}

// Strategy names the segmenter that produced a group.
// For a single-strategy mode the strategy name equals the mode token.
const (
	StrategyHeadings = string(ModeHeadings)
	StrategyCluster  = string(ModeCluster)
	StrategyPattern  = string(ModePattern)
)

// State is a stage of the segmentation state machine.
//
// The orchestrator always walks Idle -> StaticExtraction -> (FallbackRender ->)
// Formatting -> Done. FallbackRender is entered only when static extraction
// produced zero groups.
type State int

const (
	// StateIdle is the initial state before markup has been fetched.
	StateIdle State = iota

	// StateStaticExtraction runs the chosen strategies against fetched markup.
	StateStaticExtraction

	// StateFallbackRender re-runs the strategies against headless-rendered markup.
	StateFallbackRender

	// StateFormatting applies output caps and attaches page-level metadata.
	StateFormatting

	// StateDone is terminal.
	StateDone
)

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStaticExtraction:
		return "static_extraction"
	case StateFallbackRender:
		return "fallback_render"
	case StateFormatting:
		return "formatting"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

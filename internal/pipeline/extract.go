package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/merge"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/segment"
	"github.com/Sumluvv/pagefeed/internal/title"
)

// Extractor runs the strategies of a mode over one parsed document and
// turns their output into labeled groups.
//
// Design decision: Strategies run in parallel on the shared read-only
// document, but each writes into its own slot. Results are read back in
// strategy order, so the merge input never depends on which goroutine
// finished first.
type Extractor struct {
	segmenters []segment.Segmenter
	inferrer   *title.Inferrer
	now        func() time.Time
	logger     *slog.Logger
}

// NewExtractor creates an Extractor. A nil inferrer uses title.NewInferrer()
// and a nil clock uses time.Now.
func NewExtractor(segmenters []segment.Segmenter, inferrer *title.Inferrer, now func() time.Time, logger *slog.Logger) *Extractor {
	if inferrer == nil {
		inferrer = title.NewInferrer()
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		segmenters: segmenters,
		inferrer:   inferrer,
		now:        now,
		logger:     logger,
	}
}

// selected returns the strategies that mode runs.
func (x *Extractor) selected(mode model.Mode) []segment.Segmenter {
	if mode == model.ModeAuto {
		return x.segmenters
	}
	out := make([]segment.Segmenter, 0, 1)
	for _, s := range x.segmenters {
		if s.Name() == string(mode) {
			out = append(out, s)
		}
	}
	return out
}

// Extract returns the groups found in doc for a page at baseURL.
// In auto mode the output of all strategies is merged; a single mode
// returns its strategy's groups unmerged. Strategy failures are logged and
// contribute nothing, so Extract never fails.
func (x *Extractor) Extract(ctx context.Context, baseURL string, doc dom.Analyzer, mode model.Mode) []model.Group {
	page, err := segment.NewPage(baseURL, doc, x.now())
	if err != nil {
		x.logger.Warn("cannot segment page", "url", baseURL, "error", err)
		return make([]model.Group, 0)
	}

	segmenters := x.selected(mode)
	slots := make([][]model.Group, len(segmenters))

	var g errgroup.Group
	for i, s := range segmenters {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			slots[i] = x.run(s, page)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // strategies never return errors to the group

	host := page.URL.Hostname()
	groups := make([]model.Group, 0)
	for _, slot := range slots {
		for _, grp := range slot {
			grp.Label = x.inferrer.Infer(grp.Label, grp.Articles, host)
			groups = append(groups, grp)
		}
	}

	if mode == model.ModeAuto {
		return merge.Groups(groups)
	}
	return groups
}

// run executes one strategy, converting a panic or an error into no groups.
func (x *Extractor) run(s segment.Segmenter, page *segment.Page) (groups []model.Group) {
	defer func() {
		if r := recover(); r != nil {
			x.logger.Error("segmenter panicked",
				"strategy", s.Name(),
				"panic", fmt.Sprint(r),
			)
			groups = nil
		}
	}()

	found, err := s.Segment(page)
	if err != nil {
		x.logger.Warn("segmenter failed",
			"strategy", s.Name(),
			"error", err,
		)
		return nil
	}
	x.logger.Debug("segmenter finished",
		"strategy", s.Name(),
		"groups", len(found),
	)
	return found
}

package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/fetch"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/render"
	"github.com/Sumluvv/pagefeed/internal/segment"
	"github.com/Sumluvv/pagefeed/internal/title"
)

// Engine segments pages into groups of article links.
//
// Design decision: Every collaborator is injected. The engine holds no
// caches or mutable package state, so one Engine is safe for concurrent
// use and tests can swap the network and the browser for fakes.
type Engine struct {
	fetcher    Fetcher
	renderer   render.Renderer
	segmenters []segment.Segmenter
	policies   segment.PolicyResolver
	inferrer   *title.Inferrer
	tuning     config.Tuning
	now        func() time.Time
	logger     *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithRenderer sets the renderer used for the fallback. Nil disables it.
func WithRenderer(r render.Renderer) EngineOption {
	return func(e *Engine) {
		e.renderer = r
	}
}

// WithSegmenters replaces the default strategies. Their order is the merge
// input order.
func WithSegmenters(segmenters ...segment.Segmenter) EngineOption {
	return func(e *Engine) {
		e.segmenters = segmenters
	}
}

// WithPolicies sets the per-site admission policies used by the default
// heading strategy.
func WithPolicies(r segment.PolicyResolver) EngineOption {
	return func(e *Engine) {
		e.policies = r
	}
}

// WithInferrer sets the title inferrer.
func WithInferrer(in *title.Inferrer) EngineOption {
	return func(e *Engine) {
		e.inferrer = in
	}
}

// WithTuning sets the thresholds used by the default strategies and the caps.
func WithTuning(t config.Tuning) EngineOption {
	return func(e *Engine) {
		e.tuning = t
	}
}

// WithClock sets the time source used for undated articles.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		e.now = now
	}
}

// WithEngineLogger sets the logger.
func WithEngineLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine that fetches pages with fetcher.
func NewEngine(fetcher Fetcher, opts ...EngineOption) *Engine {
	e := &Engine{
		fetcher:  fetcher,
		renderer: render.Disabled{},
		tuning:   config.DefaultTuning(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.inferrer == nil {
		e.inferrer = title.NewInferrer(
			title.WithLabelBounds(e.tuning.LabelMinLen, e.tuning.LabelMaxLen),
		)
	}
	if e.segmenters == nil {
		e.segmenters = DefaultSegmenters(e.tuning, e.policies)
	}

	return e
}

// DefaultSegmenters returns the heading, cluster and pattern strategies in
// merge order. policies may be nil.
func DefaultSegmenters(tuning config.Tuning, policies segment.PolicyResolver) []segment.Segmenter {
	var headingOpts []segment.HeadingOption
	if policies != nil {
		headingOpts = append(headingOpts, segment.WithPolicies(policies))
	}
	return []segment.Segmenter{
		segment.NewHeading(tuning, headingOpts...),
		segment.NewCluster(tuning),
		segment.NewPattern(tuning),
	}
}

// Segment fetches pageURL and splits it into groups using mode.
//
// A page that was fetched always yields a PageResult, possibly with no
// groups. The returned error is a *fetch.FetchError when the page could not
// be fetched, model.ErrUnknownMode for an invalid mode, or the context's
// error when ctx ends between stages.
func (e *Engine) Segment(ctx context.Context, pageURL string, mode model.Mode) (*model.PageResult, error) {
	if _, err := model.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	run := NewRun(pageURL, mode)
	return e.execute(ctx, run, true)
}

// SegmentPage splits an already fetched page using mode. It runs every
// stage but the fetch, so a page can be compared across modes with a
// single request.
func (e *Engine) SegmentPage(ctx context.Context, page *fetch.Page, mode model.Mode) (*model.PageResult, error) {
	if _, err := model.ParseMode(string(mode)); err != nil {
		return nil, err
	}

	run := NewRun(page.URL, mode)
	run.Page = page
	run.State = model.StateStaticExtraction
	return e.execute(ctx, run, false)
}

func (e *Engine) execute(ctx context.Context, run *Run, withFetch bool) (*model.PageResult, error) {
	logger := e.logger.With(
		"run_id", run.ID,
		"url", run.URL,
		"mode", string(run.Mode),
	)
	extractor := NewExtractor(e.segmenters, e.inferrer, e.now, logger)

	p := New(WithLogger(logger))
	if withFetch {
		p.AddStep(NewFetchStep(e.fetcher))
	}
	p.AddSteps(
		NewExtractStep(extractor, logger),
		NewFallbackStep(e.renderer, extractor, logger),
		NewFormatStep(e.tuning),
	)

	logger.Debug("starting segmentation", "steps", p.StepNames())
	start := e.now()
	if err := p.Execute(ctx, run); err != nil {
		return nil, err
	}

	logger.Info("segmentation complete",
		"groups", len(run.Result.Groups),
		"total_groups", run.Result.TotalGroupsBeforeCap,
		"rendered", run.Result.Rendered,
		"elapsed", e.now().Sub(start),
	)
	return run.Result, nil
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/fetch"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/render"
	"github.com/Sumluvv/pagefeed/internal/title"
	"github.com/Sumluvv/pagefeed/internal/urlutil"
)

// Fetcher retrieves a page and decodes its markup.
// *fetch.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Page, error)
}

// Step names, also used as log values.
const (
	StepFetch            = "fetch"
	StepStaticExtraction = "static_extraction"
	StepFallbackRender   = "fallback_render"
	StepFormatting       = "formatting"
)

// FetchStep retrieves the page markup. It is the only step whose error
// stops the run: without markup there is nothing to segment.
type FetchStep struct {
	fetcher Fetcher
}

// NewFetchStep creates a FetchStep.
func NewFetchStep(fetcher Fetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return StepFetch
}

// Do executes the fetch step.
func (s *FetchStep) Do(ctx context.Context, run *Run) error {
	page, err := s.fetcher.Fetch(ctx, run.URL)
	if err != nil {
		return err
	}
	run.Page = page
	run.State = model.StateStaticExtraction
	return nil
}

// ExtractStep runs the strategies against the fetched markup.
type ExtractStep struct {
	extractor *Extractor
	logger    *slog.Logger
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(extractor *Extractor, logger *slog.Logger) *ExtractStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractStep{extractor: extractor, logger: logger}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return StepStaticExtraction
}

// Do executes the static extraction step. Zero groups moves the run to
// fallback rendering, anything else straight to formatting.
func (s *ExtractStep) Do(ctx context.Context, run *Run) error {
	run.State = model.StateStaticExtraction
	run.Groups = make([]model.Group, 0)

	if run.Page != nil {
		doc, err := dom.Parse(run.Page.Markup)
		if err != nil {
			s.logger.Warn("cannot parse fetched markup", "error", err)
		} else {
			run.Static = doc
			run.Groups = s.extractor.Extract(ctx, run.BaseURL(), doc, run.Mode)
		}
	}

	s.logger.Debug("static extraction finished", "groups", len(run.Groups))

	if len(run.Groups) == 0 {
		run.State = model.StateFallbackRender
		return nil
	}
	run.State = model.StateFormatting
	return nil
}

// FallbackStep renders the page in a headless browser and reruns the same
// strategies once when static extraction found nothing.
//
// Design decision: Render failures are downgraded to warnings. A page the
// browser cannot render yields an empty result, which is still a valid
// answer for the caller.
type FallbackStep struct {
	renderer  render.Renderer
	extractor *Extractor
	logger    *slog.Logger
}

// NewFallbackStep creates a FallbackStep. A nil renderer disables the fallback.
func NewFallbackStep(renderer render.Renderer, extractor *Extractor, logger *slog.Logger) *FallbackStep {
	if renderer == nil {
		renderer = render.Disabled{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStep{renderer: renderer, extractor: extractor, logger: logger}
}

// Name returns the step name.
func (s *FallbackStep) Name() string {
	return StepFallbackRender
}

// Do executes the fallback step. It does nothing unless the run is in
// the fallback state.
func (s *FallbackStep) Do(ctx context.Context, run *Run) error {
	if run.State != model.StateFallbackRender {
		return nil
	}
	defer func() {
		run.State = model.StateFormatting
	}()

	markup, err := s.renderer.Render(ctx, run.BaseURL())
	if err != nil {
		s.logger.Warn("render fallback failed", "error", err)
		return nil
	}

	doc, err := dom.Parse(markup)
	if err != nil {
		s.logger.Warn("cannot parse rendered markup", "error", err)
		return nil
	}
	run.Snapshot = doc

	groups := s.extractor.Extract(ctx, run.BaseURL(), doc, run.Mode)
	s.logger.Debug("fallback extraction finished", "groups", len(groups))
	if len(groups) > 0 {
		run.Groups = groups
		run.Rendered = true
	}
	return nil
}

// FormatStep builds the PageResult: it applies the output caps and
// attaches the suggested title.
type FormatStep struct {
	maxGroups   int
	maxArticles int
}

// NewFormatStep creates a FormatStep with the caps from tuning.
func NewFormatStep(tuning config.Tuning) *FormatStep {
	return &FormatStep{
		maxGroups:   tuning.MaxGroups,
		maxArticles: tuning.MaxArticles,
	}
}

// Name returns the step name.
func (s *FormatStep) Name() string {
	return StepFormatting
}

// Do executes the formatting step.
func (s *FormatStep) Do(_ context.Context, run *Run) error {
	run.State = model.StateFormatting

	result := model.NewPageResult(run.URL, run.Mode)
	result.Groups = append(result.Groups, run.Groups...)
	result.ApplyCaps(s.maxGroups, s.maxArticles)
	result.Rendered = run.Rendered
	result.SuggestedTitle = suggestedTitle(run)

	run.Result = result
	run.State = model.StateDone
	return nil
}

// suggestedTitle reads the title from the markup the groups came from. The
// static markup is used unless the groups were found in the rendered
// markup or the static markup could not be parsed.
func suggestedTitle(run *Run) string {
	doc := run.Static
	if run.Snapshot != nil && (run.Rendered || doc == nil) {
		doc = run.Snapshot
	}
	if doc == nil {
		return urlutil.Host(run.BaseURL())
	}
	return title.SuggestedTitle(doc, run.BaseURL())
}

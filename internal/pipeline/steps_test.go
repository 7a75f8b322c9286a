package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/fetch"
	"github.com/Sumluvv/pagefeed/internal/model"
)

type fakeFetcher struct {
	page *fetch.Page
	err  error
}

func (f fakeFetcher) Fetch(context.Context, string) (*fetch.Page, error) {
	return f.page, f.err
}

func TestStepNames(t *testing.T) {
	t.Parallel()

	x := NewExtractor(nil, nil, nil, nil)
	steps := []Step{
		NewFetchStep(fakeFetcher{}),
		NewExtractStep(x, nil),
		NewFallbackStep(nil, x, nil),
		NewFormatStep(config.DefaultTuning()),
	}

	p := New()
	p.AddSteps(steps...)
	assert.Equal(t, []string{"fetch", "static_extraction", "fallback_render", "formatting"}, p.StepNames())
}

func TestFetchStep_Do(t *testing.T) {
	t.Parallel()

	t.Run("stores the page and advances", func(t *testing.T) {
		t.Parallel()

		page := &fetch.Page{URL: "https://example.com/a", FinalURL: "https://example.com/b", Markup: "<html></html>"}
		run := NewRun("https://example.com/a", model.ModeAuto)

		require.NoError(t, NewFetchStep(fakeFetcher{page: page}).Do(context.Background(), run))

		assert.Same(t, page, run.Page)
		assert.Equal(t, model.StateStaticExtraction, run.State)
		assert.Equal(t, "https://example.com/b", run.BaseURL())
	})

	t.Run("returns the fetch error", func(t *testing.T) {
		t.Parallel()

		fetchErr := &fetch.FetchError{Kind: fetch.KindTransport, URL: "https://example.com/", Err: errors.New("refused")}
		run := NewRun("https://example.com/", model.ModeAuto)

		err := NewFetchStep(fakeFetcher{err: fetchErr}).Do(context.Background(), run)

		assert.ErrorIs(t, err, fetch.ErrTransport)
		assert.Equal(t, model.StateIdle, run.State)
	})
}

func TestExtractStep_Do(t *testing.T) {
	t.Parallel()

	x := NewExtractor(DefaultSegmenters(config.DefaultTuning(), nil), nil, fixedClock, nil)

	t.Run("groups found move to formatting", func(t *testing.T) {
		t.Parallel()

		run := NewRun("https://news.example.com/", model.ModeAuto)
		run.Page = &fetch.Page{URL: run.URL, Markup: newsPage("City Desk")}

		require.NoError(t, NewExtractStep(x, nil).Do(context.Background(), run))

		assert.Equal(t, model.StateFormatting, run.State)
		assert.Len(t, run.Groups, 1)
		assert.NotNil(t, run.Static)
	})

	t.Run("no groups move to fallback", func(t *testing.T) {
		t.Parallel()

		run := NewRun("https://news.example.com/", model.ModeAuto)
		run.Page = &fetch.Page{URL: run.URL, Markup: quietPage}

		require.NoError(t, NewExtractStep(x, nil).Do(context.Background(), run))

		assert.Equal(t, model.StateFallbackRender, run.State)
		assert.Empty(t, run.Groups)
	})
}

func TestFallbackStep_Do(t *testing.T) {
	t.Parallel()

	x := NewExtractor(DefaultSegmenters(config.DefaultTuning(), nil), nil, fixedClock, nil)

	t.Run("skipped outside the fallback state", func(t *testing.T) {
		t.Parallel()

		renderer := &fakeRenderer{markup: newsPage("City Desk")}
		run := NewRun("https://news.example.com/", model.ModeAuto)
		run.State = model.StateFormatting

		require.NoError(t, NewFallbackStep(renderer, x, nil).Do(context.Background(), run))

		assert.Equal(t, int32(0), renderer.calls.Load())
		assert.False(t, run.Rendered)
	})

	t.Run("render failure is downgraded", func(t *testing.T) {
		t.Parallel()

		renderer := &fakeRenderer{err: errors.New("browser crashed")}
		run := NewRun("https://news.example.com/", model.ModeAuto)
		run.State = model.StateFallbackRender

		require.NoError(t, NewFallbackStep(renderer, x, nil).Do(context.Background(), run))

		assert.Equal(t, int32(1), renderer.calls.Load())
		assert.Equal(t, model.StateFormatting, run.State)
		assert.Nil(t, run.Snapshot)
	})
}

func TestFormatStep_Do(t *testing.T) {
	t.Parallel()

	t.Run("falls back to the host without markup", func(t *testing.T) {
		t.Parallel()

		run := NewRun("https://News.Example.com/list", model.ModeCluster)

		require.NoError(t, NewFormatStep(config.DefaultTuning()).Do(context.Background(), run))

		require.NotNil(t, run.Result)
		assert.Equal(t, "news.example.com", run.Result.SuggestedTitle)
		assert.Equal(t, model.ModeCluster, run.Result.Mode)
		assert.Equal(t, model.StateDone, run.State)
		assert.NotNil(t, run.Result.Groups)
	})
}

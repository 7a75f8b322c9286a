package pipeline

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// PageSegmenter segments one page. *Engine implements it.
type PageSegmenter interface {
	Segment(ctx context.Context, pageURL string, mode model.Mode) (*model.PageResult, error)
}

// BatchResult is the outcome for one URL of a batch.
type BatchResult struct {
	// URL is the requested page.
	URL string

	// Result is nil when Err is set.
	Result *model.PageResult

	// Err is the segmentation error, typically a *fetch.FetchError.
	Err error
}

// BatchProcessor segments multiple pages concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate BatchProcessor rather than adding batch
// functionality to Engine because:
// 1. It keeps the Engine focused on a single page
// 2. A failed page must not cancel the others, which the processor enforces
type BatchProcessor struct {
	// segmenter handles each page.
	segmenter PageSegmenter

	// concurrency is the maximum number of pages processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent pages.
// Non-positive values keep the default of 4.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(segmenter PageSegmenter, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		segmenter:   segmenter,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch segments every URL with mode and returns one BatchResult per
// URL, in input order.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because it's simpler and errgroup handles the concurrency correctly.
// Each result is written to its own index, so no lock is needed.
//
// Per-page failures are recorded in the results. The returned error is
// only set when ctx ends before every page started.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, urls []string, mode model.Mode) ([]BatchResult, error) {
	bp.logger.Info("starting batch processing",
		"total_pages", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	results := make([]BatchResult, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, pageURL := range urls {
		results[i].URL = pageURL
		g.Go(func() error {
			select {
			case <-ctx.Done():
				results[i].Err = ctx.Err()
				return ctx.Err()
			default:
			}

			result, err := bp.segmenter.Segment(ctx, pageURL, mode)
			if err != nil {
				bp.logger.Warn("segmentation failed",
					"url", pageURL,
					"error", err,
				)
				results[i].Err = err
				return nil
			}
			results[i].Result = result
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch processing complete",
		"total_pages", len(urls),
		"elapsed", time.Since(startTime),
	)

	return results, err
}

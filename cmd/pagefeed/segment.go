package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/pipeline"
	"github.com/Sumluvv/pagefeed/internal/report"
)

// NewSegmentCmd creates the segment command.
func NewSegmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "segment [url]...",
		Short: "Split pages into labeled groups of article links",
		Long: `Segment fetches each page and splits it into groups of article links.

Modes:
  auto      run every strategy and merge groups with the same label (default)
  headings  links that follow an h1..h3 heading
  cluster   links sharing a container class and path prefix
  pattern   links sharing their first two URL path segments

Only links on the page's own host are considered. At most 15 groups of 50
articles are reported; the total number of groups found is always shown.

Examples:
  # Segment a page
  pagefeed segment https://news.example.com/

  # Use only the heading strategy and print JSON
  pagefeed segment --mode headings --json https://news.example.com/

  # Segment several pages, two at a time, into a Markdown file
  pagefeed segment -b 2 -m -o feeds.md https://a.example.com/ https://b.example.com/

  # Never start a headless browser
  pagefeed segment --no-render https://news.example.com/

Configuration file (.pagefeed) example:
  sites:
    news.example.com:
      cookie: "session_id=abc123"
      headers:
        Accept-Language: "zh-CN"
      policy:
        paths: ["/notices"]
        keywords: ["招聘"]
        requireDate: true`,
		Args: cobra.ArbitraryArgs,
		RunE: runSegmentCmd,
	}

	cmd.Flags().StringP("mode", "M", string(model.ModeAuto),
		"Segmentation mode: auto, headings, cluster or pattern")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of pages segmented concurrently")
	addFetchFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// runSegmentCmd executes the segment command.
func runSegmentCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}
	cfg.Mode = model.Mode(mode)

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return runSegment(ctx, cmd, cfg, logger)
}

// runSegment segments every target and writes the reports in target order.
func runSegment(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting segmentation",
		"targets", len(cfg.Targets),
		"mode", string(cfg.Mode),
		"batchSize", cfg.BatchSize,
		"render", cfg.RenderEnabled,
	)

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}
	engine := newEngine(cfg, fetcher, logger)

	output, closeOutput, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // best effort on the error path
	writer := report.New(reportFormat(cfg), output)

	var results []pipeline.BatchResult
	if len(cfg.Targets) > 1 && cfg.BatchSize > 1 {
		results, err = runBatch(ctx, cmd, cfg, engine, logger)
	} else {
		results, err = runSequential(ctx, cmd, cfg, engine)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "Segmentation error for %s: %v\n", r.URL, r.Err)
			continue
		}
		if r.Result == nil {
			continue
		}
		if _, werr := writer.Write(r.Result); werr != nil {
			return fmt.Errorf("failed to write report: %w", werr)
		}
	}

	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errPagesFailed, failed, len(results))
	}
	return nil
}

// runSequential segments the targets one at a time.
func runSequential(ctx context.Context, cmd *cobra.Command, cfg *config.Config, engine *pipeline.Engine) ([]pipeline.BatchResult, error) {
	results := make([]pipeline.BatchResult, 0, len(cfg.Targets))
	for _, target := range cfg.Targets {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Segmenting %s...\n", target)
		start := time.Now()

		result, err := engine.Segment(ctx, target, cfg.Mode)
		results = append(results, pipeline.BatchResult{URL: target, Result: result, Err: err})
		if err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Found %d groups in %s\n", len(result.Groups), time.Since(start).Round(time.Millisecond))
		}
	}
	return results, nil
}

// runBatch segments the targets concurrently.
func runBatch(ctx context.Context, cmd *cobra.Command, cfg *config.Config, engine *pipeline.Engine, logger *slog.Logger) ([]pipeline.BatchResult, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Segmenting %d pages (concurrency: %d)...\n", len(cfg.Targets), cfg.BatchSize)
	start := time.Now()

	bp := pipeline.NewBatchProcessor(engine,
		pipeline.WithConcurrency(cfg.BatchSize),
		pipeline.WithBatchLogger(logger),
	)
	results, err := bp.ProcessBatch(ctx, cfg.Targets, cfg.Mode)

	fmt.Fprintf(cmd.ErrOrStderr(), "Batch completed in %s\n", time.Since(start).Round(time.Millisecond))
	return results, err
}

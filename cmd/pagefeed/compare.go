package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/report"
)

// NewCompareCmd creates the compare command.
// This command shows how each segmentation mode splits the same page.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [url]",
		Short: "Compare segmentation modes on one page",
		Long: `Compare fetches a page once and segments it with every mode.

For each mode it reports the number of groups and articles, the number of
groups found before the output cap, whether the rendered page was used, and
the first group labels. Use it to choose a mode for a site.

Examples:
  # Compare all modes on a page
  pagefeed compare https://news.example.com/

  # Output the comparison as JSON
  pagefeed compare --json https://news.example.com/`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	addFetchFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cmd, cfg)
	slog.SetDefault(logger)
	ctx := cmd.Context()

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create fetcher: %w", err)
	}
	engine := newEngine(cfg, fetcher, logger)

	target := cfg.Targets[0]
	page, err := fetcher.Fetch(ctx, target)
	if err != nil {
		return err
	}

	results := make([]*model.PageResult, 0, len(model.Modes))
	for _, mode := range model.Modes {
		result, err := engine.SegmentPage(ctx, page, mode)
		if err != nil {
			return fmt.Errorf("mode %s: %w", mode, err)
		}
		results = append(results, result)
	}

	output, closeOutput, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeOutput() //nolint:errcheck // best effort on the error path

	comparison := report.NewComparison(target, results)
	if _, err := report.New(reportFormat(cfg), output).WriteComparison(comparison); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return closeOutput()
}

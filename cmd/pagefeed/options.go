package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/fetch"
	pflog "github.com/Sumluvv/pagefeed/internal/log"
	"github.com/Sumluvv/pagefeed/internal/pipeline"
	"github.com/Sumluvv/pagefeed/internal/render"
	"github.com/Sumluvv/pagefeed/internal/report"
	"github.com/Sumluvv/pagefeed/internal/segment"
	"github.com/Sumluvv/pagefeed/internal/title"
)

// addFetchFlags registers the flags shared by every command that loads pages.
func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each page fetch")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")
	cmd.Flags().StringP("proxy", "x", "",
		"Fetch through a SOCKS5 proxy at host:port")
	cmd.Flags().Bool("no-render", false,
		"Disable the headless browser fallback for pages without static structure")
	cmd.Flags().Bool("render-scripts", false,
		"Execute page scripts in the headless browser")
	cmd.Flags().String("chrome-path", "",
		"Chrome or Chromium executable used for rendering (default: auto-detect)")
}

// addOutputFlags registers the report format flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
}

// getPersistentBool reads a global flag from the command or the root.
func getPersistentBool(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getPersistentString reads a global flag from the command or the root.
func getPersistentString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// buildConfig creates a Config from the shared flags and the configuration file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Targets = args
	cfg.Verbose = getPersistentBool(cmd, "verbose")
	cfg.LogJSON = getPersistentBool(cmd, "log-json")
	cfg.ConfigFilePath = getPersistentString(cmd, "config")

	var err error

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.ProxyAddress, err = cmd.Flags().GetString("proxy")
	if err != nil {
		return nil, err
	}

	noRender, err := cmd.Flags().GetBool("no-render")
	if err != nil {
		return nil, err
	}
	cfg.RenderEnabled = !noRender

	cfg.RenderScripts, err = cmd.Flags().GetBool("render-scripts")
	if err != nil {
		return nil, err
	}

	cfg.ChromePath, err = cmd.Flags().GetString("chrome-path")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	// Load the configuration file. An explicit path that does not exist is
	// an error; a missing default file is not.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cfg.SiteConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Tuning = cfg.SiteConfigs.Tuning
	case explicitConfigPath:
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	default:
		cfg.SiteConfigs = &config.File{
			Sites:  make(map[string]config.SiteConfig),
			Tuning: config.DefaultTuning(),
		}
	}

	return cfg, nil
}

// setupLogger creates the sanitizing logger for a command.
func setupLogger(cmd *cobra.Command, cfg *config.Config) *slog.Logger {
	return pflog.New(cmd.ErrOrStderr(), cfg.Verbose, cfg.LogJSON)
}

// newFetcher creates the page fetcher for cfg.
func newFetcher(cfg *config.Config, logger *slog.Logger) (*fetch.Fetcher, error) {
	return fetch.New(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithProxy(cfg.ProxyAddress),
		fetch.WithSiteConfigs(cfg.SiteConfigs),
		fetch.WithLogger(logger),
	)
}

// newEngine wires the segmentation engine for cfg around fetcher.
func newEngine(cfg *config.Config, fetcher pipeline.Fetcher, logger *slog.Logger) *pipeline.Engine {
	var renderer render.Renderer = render.Disabled{}
	if cfg.RenderEnabled {
		renderer = render.NewChrome(
			render.WithExecPath(cfg.ChromePath),
			render.WithUserAgent(cfg.UserAgent),
			render.WithTimeout(cfg.Tuning.RenderTimeout),
			render.WithSettle(cfg.Tuning.RenderSettle),
			render.WithScripts(cfg.RenderScripts),
			render.WithLogger(logger),
		)
	}

	inferrer := title.NewInferrer(
		title.WithStopwords(cfg.SiteConfigs.Stopwords...),
		title.WithLabelBounds(cfg.Tuning.LabelMinLen, cfg.Tuning.LabelMaxLen),
	)

	return pipeline.NewEngine(fetcher,
		pipeline.WithRenderer(renderer),
		pipeline.WithTuning(cfg.Tuning),
		pipeline.WithPolicies(segment.NewSitePolicies(cfg.SiteConfigs)),
		pipeline.WithInferrer(inferrer),
		pipeline.WithEngineLogger(logger),
	)
}

// reportFormat returns the report format selected by cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// openOutput returns the report destination: the report file when set,
// stdout otherwise. The returned close function is always safe to call.
func openOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// errPagesFailed is returned when at least one page could not be segmented.
var errPagesFailed = errors.New("some pages could not be segmented")

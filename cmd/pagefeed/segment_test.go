package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/model"
	"github.com/Sumluvv/pagefeed/internal/report"
)

func TestNewSegmentCmd(t *testing.T) {
	t.Parallel()

	cmd := NewSegmentCmd()

	for _, tt := range []struct {
		name      string
		shorthand string
		def       string
	}{
		{"mode", "M", "auto"},
		{"batch", "b", "4"},
		{"timeout", "t", "30s"},
		{"proxy", "x", ""},
		{"json", "j", "false"},
		{"markdown", "m", "false"},
		{"output", "o", ""},
		{"no-render", "", "false"},
		{"render-scripts", "", "false"},
		{"chrome-path", "", ""},
	} {
		flag := cmd.Flags().Lookup(tt.name)
		require.NotNil(t, flag, tt.name)
		assert.Equal(t, tt.shorthand, flag.Shorthand, tt.name)
		assert.Equal(t, tt.def, flag.DefValue, tt.name)
	}
}

func TestRunSegmentCmd(t *testing.T) {
	t.Parallel()

	t.Run("writes a JSON result", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		cfg := writeConfig(t)

		stdout, stderr, err := execute(t, "segment", "-c", cfg, "--no-render", "--json", srv.URL+"/")
		require.NoError(t, err, stderr)

		var result model.PageResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &result))
		require.Len(t, result.Groups, 1)
		assert.Equal(t, "News", result.Groups[0].Label)
		assert.Equal(t, 5, result.Groups[0].Len())
		assert.Equal(t, "City Desk", result.SuggestedTitle)
		assert.Equal(t, model.ModeAuto, result.Mode)
		assert.Contains(t, stderr, "Segmenting "+srv.URL)
	})

	t.Run("single mode", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		cfg := writeConfig(t)

		stdout, _, err := execute(t, "segment", "-c", cfg, "--no-render", "-j", "-M", "pattern", srv.URL+"/")
		require.NoError(t, err)

		var result model.PageResult
		require.NoError(t, json.Unmarshal([]byte(stdout), &result))
		require.Len(t, result.Groups, 1)
		assert.Equal(t, model.StrategyPattern, result.Groups[0].Strategy)
	})

	t.Run("batch keeps target order and reports failures", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		cfg := writeConfig(t)

		stdout, stderr, err := execute(t, "segment", "-c", cfg, "--no-render", "-j", "-b", "2",
			srv.URL+"/", srv.URL+"/missing", srv.URL+"/")
		require.ErrorIs(t, err, errPagesFailed)
		assert.Contains(t, err.Error(), "1 of 3")
		assert.Contains(t, stderr, srv.URL+"/missing")

		dec := json.NewDecoder(strings.NewReader(stdout))
		count := 0
		for {
			var result model.PageResult
			if err := dec.Decode(&result); errors.Is(err, io.EOF) {
				break
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, srv.URL+"/", result.URL)
			count++
		}
		assert.Equal(t, 2, count)
	})

	t.Run("writes Markdown to a file", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		cfg := writeConfig(t)
		out := filepath.Join(t.TempDir(), "reports", "feed.md")

		stdout, _, err := execute(t, "segment", "-c", cfg, "--no-render", "-m", "-o", out, srv.URL+"/")
		require.NoError(t, err)
		assert.Empty(t, stdout)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# City Desk")
		assert.Contains(t, string(data), "## News")
	})

	t.Run("text output by default", func(t *testing.T) {
		t.Parallel()

		srv := newSite(t)
		cfg := writeConfig(t)

		stdout, _, err := execute(t, "segment", "-c", cfg, "--no-render", srv.URL+"/")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Mode:      auto")
		assert.Contains(t, stdout, "Harbor bridge reopens after repairs")
	})

	t.Run("validation errors", func(t *testing.T) {
		t.Parallel()

		cfg := writeConfig(t)

		_, _, err := execute(t, "segment", "-c", cfg)
		assert.ErrorIs(t, err, config.ErrNoTarget)

		_, _, err = execute(t, "segment", "-c", cfg, "ftp://example.com/")
		assert.ErrorIs(t, err, config.ErrInvalidTarget)

		_, _, err = execute(t, "segment", "-c", cfg, "-M", "semantic", "https://example.com/")
		assert.ErrorIs(t, err, model.ErrUnknownMode)

		_, _, err = execute(t, "segment", "-c", cfg, "-j", "-m", "https://example.com/")
		assert.ErrorIs(t, err, config.ErrConflictingReportFormats)

		_, _, err = execute(t, "segment", "-c", cfg, "-x", "localhost", "https://example.com/")
		assert.ErrorIs(t, err, config.ErrInvalidProxyAddress)
	})

	t.Run("missing explicit config file", func(t *testing.T) {
		t.Parallel()

		_, _, err := execute(t, "segment", "-c", filepath.Join(t.TempDir(), "nope.yaml"), "https://example.com/")
		assert.ErrorIs(t, err, config.ErrConfigNotFound)
	})
}

func TestReportFormat(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	assert.Equal(t, report.FormatText, reportFormat(cfg))

	cfg.JSONReport = true
	assert.Equal(t, report.FormatJSON, reportFormat(cfg))

	cfg.JSONReport = false
	cfg.MarkdownReport = true
	assert.Equal(t, report.FormatMarkdown, reportFormat(cfg))
}

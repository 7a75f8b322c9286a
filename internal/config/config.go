package config

import (
	"fmt"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"

	"github.com/Sumluvv/pagefeed/internal/model"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "pagefeed"

	// DefaultTimeout bounds a single page fetch, including reading the body.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent mimics a desktop browser. Many list pages serve a
	// stripped or blocked response to obvious bot user agents.
	DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// DefaultMaxBodySize limits the response body read by the fetcher.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultBatchSize is the number of pages segmented concurrently.
	DefaultBatchSize = 4

	// DefaultMaxRedirects caps redirect hops for one fetch.
	DefaultMaxRedirects = 5
)

// Config holds all configuration options for pagefeed.
// It is populated from CLI flags and the optional configuration file and
// passed down through constructors rather than read from global state.
//
// Design decision: We keep a single flat struct for the operational options,
// like the flag surface of the CLI. Only the segmentation constants live in
// their own Tuning struct because they are overridden as one block from the
// configuration file.
type Config struct {
	// Targets are the page URLs to segment.
	Targets []string

	// Mode selects the segmentation strategies.
	Mode model.Mode

	// Timeout bounds each page fetch.
	Timeout time.Duration

	// UserAgent is sent with every fetch.
	UserAgent string

	// MaxBodySize is the maximum number of response bytes read.
	// Set to 0 to use DefaultMaxBodySize.
	MaxBodySize int64

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" form.
	ProxyAddress string

	// RenderEnabled allows the headless render fallback.
	RenderEnabled bool

	// RenderScripts enables script execution in the headless browser.
	// It is off by default, matching the behavior the fallback was designed with.
	RenderScripts bool

	// ChromePath overrides the browser executable used for rendering.
	// Empty means chromedp's lookup of a locally installed Chrome or Chromium.
	ChromePath string

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches log output to JSON lines.
	LogJSON bool

	// BatchSize is the number of pages segmented concurrently.
	BatchSize int

	// ConfigFilePath is the explicit path to the configuration file.
	ConfigFilePath string

	// SiteConfigs holds the configuration file contents.
	SiteConfigs *File

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// Tuning holds the segmentation constants.
	Tuning Tuning
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Mode:          model.ModeAuto,
		Timeout:       DefaultTimeout,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
		RenderEnabled: true,
		BatchSize:     DefaultBatchSize,
		Tuning:        DefaultTuning(),
	}
}

// XDGConfigDir returns the XDG config directory for pagefeed.
// On Linux: ~/.config/pagefeed
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns the first
// problem found.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return ErrNoTarget
	}
	for _, target := range c.Targets {
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidTarget, target)
		}
	}

	if _, err := model.ParseMode(string(c.Mode)); err != nil {
		return err
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.ProxyAddress != "" && !isValidProxyAddress(c.ProxyAddress) {
		return ErrInvalidProxyAddress
	}

	return c.Tuning.Validate()
}

// isValidProxyAddress checks for "host:port" with a port in 1..65535.
func isValidProxyAddress(address string) bool {
	host, port, err := net.SplitHostPort(address)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}

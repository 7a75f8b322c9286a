package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/Sumluvv/pagefeed/internal/config"
)

// ErrUnavailable is wrapped by every render failure: no browser, launch
// failure, navigation timeout or an empty document.
var ErrUnavailable = errors.New("render unavailable")

// DefaultLaunchTimeout bounds starting the browser process. It is separate
// from the navigation timeout so a cold start does not eat the page budget.
const DefaultLaunchTimeout = 10 * time.Second

// Renderer returns the rendered markup of a page.
type Renderer interface {
	Render(ctx context.Context, pageURL string) (string, error)
}

// Disabled is a Renderer that never renders.
type Disabled struct{}

// Render implements Renderer.
func (Disabled) Render(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: rendering disabled", ErrUnavailable)
}

// Chrome renders pages in a headless Chrome or Chromium.
//
// Design decision: We launch one browser per call instead of keeping a pool.
// The fallback only runs for pages with no static result, so launches are
// rare, and a fresh profile means no state leaks between pages.
type Chrome struct {
	execPath  string
	userAgent string
	launch    time.Duration
	timeout   time.Duration
	settle    time.Duration
	scripts   bool
	logger    *slog.Logger
}

// Option configures Chrome.
type Option func(*Chrome)

// WithExecPath sets the browser executable. Empty uses chromedp's lookup.
func WithExecPath(path string) Option {
	return func(c *Chrome) {
		c.execPath = path
	}
}

// WithUserAgent sets the browser User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Chrome) {
		c.userAgent = ua
	}
}

// WithLaunchTimeout bounds starting the browser.
func WithLaunchTimeout(d time.Duration) Option {
	return func(c *Chrome) {
		c.launch = d
	}
}

// WithTimeout bounds navigation and readiness.
func WithTimeout(d time.Duration) Option {
	return func(c *Chrome) {
		c.timeout = d
	}
}

// WithSettle sets the fixed wait after the body is ready.
func WithSettle(d time.Duration) Option {
	return func(c *Chrome) {
		c.settle = d
	}
}

// WithScripts enables script execution in the page.
func WithScripts(enabled bool) Option {
	return func(c *Chrome) {
		c.scripts = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chrome) {
		c.logger = logger
	}
}

// NewChrome creates a Chrome renderer with defaults taken from config.DefaultTuning.
func NewChrome(opts ...Option) *Chrome {
	tuning := config.DefaultTuning()
	c := &Chrome{
		userAgent: config.DefaultUserAgent,
		launch:    DefaultLaunchTimeout,
		timeout:   tuning.RenderTimeout,
		settle:    tuning.RenderSettle,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// allocatorOptions returns the exec allocator flags for one launch.
func (c *Chrome) allocatorOptions() []chromedp.ExecAllocatorOption {
	blink := "imagesEnabled=false"
	if !c.scripts {
		blink = "scriptEnabled=false," + blink
	}

	opts := make([]chromedp.ExecAllocatorOption, 0, len(chromedp.DefaultExecAllocatorOptions)+5)
	opts = append(opts, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("blink-settings", blink),
		chromedp.WindowSize(1200, 800),
		chromedp.UserAgent(c.userAgent),
		chromedp.DisableGPU,
	)
	if c.execPath != "" {
		opts = append(opts, chromedp.ExecPath(c.execPath))
	}
	return opts
}

// Render implements Renderer. The browser lives for the duration of the call.
// Launch, navigation and settle each have their own budget, and ctx ends
// the call at any point.
func (c *Chrome) Render(ctx context.Context, pageURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.launch+c.timeout+c.settle)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, c.allocatorOptions()...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, args ...any) {
		c.logger.Debug(fmt.Sprintf(format, args...), "component", "chromedp")
	}))
	defer cancelBrowser()

	c.logger.Debug("rendering page", "url", pageURL, "scripts", c.scripts)
	started := time.Now()

	// An empty run starts the browser on browserCtx, so the navigation
	// deadline below only stops the actions, not the browser.
	if err := c.start(browserCtx); err != nil {
		return "", fmt.Errorf("%w: launch: %w", ErrUnavailable, err)
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, c.timeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	var markup string
	if err := chromedp.Run(browserCtx,
		chromedp.Sleep(c.settle),
		chromedp.OuterHTML("html", &markup, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if markup == "" {
		return "", fmt.Errorf("%w: empty document", ErrUnavailable)
	}

	c.logger.Debug("rendered page", "url", pageURL, "bytes", len(markup), "elapsed", time.Since(started))
	return markup, nil
}

// start launches the browser, giving up after the launch timeout.
func (c *Chrome) start(browserCtx context.Context) error {
	done := make(chan error, 1)
	go func() { done <- chromedp.Run(browserCtx) }()

	timer := time.NewTimer(c.launch)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("browser did not start within %s", c.launch)
	}
}

package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Sumluvv/pagefeed/internal/config"
)

// Page is a fetched page with its markup decoded to UTF-8.
type Page struct {
	// URL is the requested URL.
	URL string
	// FinalURL is the URL after redirects. Relative links resolve against it.
	FinalURL string
	// StatusCode is the HTTP status of the final response.
	StatusCode int
	// ContentType is the raw Content-Type header.
	ContentType string
	// Charset is the charset used for decoding (utf-8, gbk or gb18030).
	Charset string
	// Markup is the decoded body.
	Markup string
}

// Fetcher retrieves pages over HTTP.
// A Fetcher is safe for concurrent use.
type Fetcher struct {
	client       *http.Client
	userAgent    string
	timeout      time.Duration
	maxBodySize  int64
	maxRedirects int
	proxyAddress string
	sites        *config.File
	logger       *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each fetch, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum number of body bytes read.
// Values <= 0 keep the default.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithMaxRedirects sets the number of redirect hops followed.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithProxy routes requests through a SOCKS5 proxy at "host:port".
func WithProxy(address string) Option {
	return func(f *Fetcher) {
		f.proxyAddress = address
	}
}

// WithSiteConfigs adds per-host cookies and headers from the configuration file.
func WithSiteConfigs(sites *config.File) Option {
	return func(f *Fetcher) {
		f.sites = sites
	}
}

// WithHTTPClient replaces the HTTP client. The proxy and site settings are
// not applied to a client supplied this way. The Fetcher works on a copy, so
// client itself is never modified.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher.
func New(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		userAgent:    config.DefaultUserAgent,
		timeout:      config.DefaultTimeout,
		maxBodySize:  config.DefaultMaxBodySize,
		maxRedirects: config.DefaultMaxRedirects,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		transport, err := newTransport(f.proxyAddress)
		if err != nil {
			return nil, err
		}
		var rt http.RoundTripper = transport
		if f.sites != nil {
			rt = &siteTransport{base: transport, sites: f.sites}
		}
		f.client = &http.Client{Transport: rt}
	} else {
		// The caller keeps its client as given.
		client := *f.client
		f.client = &client
	}
	f.client.CheckRedirect = f.checkRedirect

	return f, nil
}

func (f *Fetcher) checkRedirect(_ *http.Request, via []*http.Request) error {
	if len(via) > f.maxRedirects {
		return fmt.Errorf("%w: stopped after %d", ErrTooManyRedirects, f.maxRedirects)
	}
	return nil
}

// Fetch performs one GET for rawURL and returns the decoded page.
// Every failure is a *FetchError. No retries are made.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, transportError(rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, transportError(rawURL, ErrUnsupportedURL)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, transportError(rawURL, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	f.logger.Debug("fetching page", "url", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, transportError(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, statusError(rawURL, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, transportError(rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	charset := CharsetFromContentType(contentType)
	if charset == "" {
		charset = sniffCharset(body)
	}
	if charset == "" {
		charset = CharsetUTF8
	}

	page := &Page{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Charset:     charset,
		Markup:      Decode(body, charset),
	}
	f.logger.Debug("fetched page",
		"url", rawURL,
		"final_url", page.FinalURL,
		"status", page.StatusCode,
		"charset", charset,
		"bytes", len(body),
	)
	return page, nil
}

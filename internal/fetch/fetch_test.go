package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/Sumluvv/pagefeed/internal/config"
)

func newTestFetcher(t *testing.T, opts ...Option) *Fetcher {
	t.Helper()
	f, err := New(opts...)
	require.NoError(t, err)
	return f
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns UTF-8 markup and request headers are browser-like", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			fmt.Fprintf(w, "<html><body><h2>最新动态</h2><p>%s|%s</p></body></html>",
				r.Header.Get("User-Agent"), r.Header.Get("Accept"))
		}))
		defer srv.Close()

		page, err := newTestFetcher(t).Fetch(context.Background(), srv.URL+"/list")
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, page.StatusCode)
		assert.Equal(t, CharsetUTF8, page.Charset)
		assert.Contains(t, page.Markup, "最新动态")
		assert.Contains(t, page.Markup, "Mozilla/5.0")
		assert.Contains(t, page.Markup, "|text/html")
	})

	t.Run("decodes GBK bodies", func(t *testing.T) {
		t.Parallel()

		body, err := simplifiedchinese.GBK.NewEncoder().String("<html><body><h2>新闻中心</h2></body></html>")
		require.NoError(t, err)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=GBK")
			fmt.Fprint(w, body)
		}))
		defer srv.Close()

		page, err := newTestFetcher(t).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, CharsetGBK, page.Charset)
		assert.Contains(t, page.Markup, "新闻中心")
	})

	t.Run("decodes GB2312 declared in a meta tag", func(t *testing.T) {
		t.Parallel()

		body, err := simplifiedchinese.GBK.NewEncoder().String(
			`<html><head><meta http-equiv="Content-Type" content="text/html; charset=gb2312"></head><body>通知公告</body></html>`)
		require.NoError(t, err)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			fmt.Fprint(w, body)
		}))
		defer srv.Close()

		page, err := newTestFetcher(t).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, CharsetGBK, page.Charset)
		assert.Contains(t, page.Markup, "通知公告")
	})

	t.Run("non-2xx is a status error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newTestFetcher(t).Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrStatus)
		assert.False(t, errors.Is(err, ErrTransport))

		var fe *FetchError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, KindStatus, fe.Kind)
		assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	})

	t.Run("connection refused is a transport error", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		addr := srv.URL
		srv.Close()

		_, err := newTestFetcher(t).Fetch(context.Background(), addr)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("unsupported scheme is a transport error", func(t *testing.T) {
		t.Parallel()

		_, err := newTestFetcher(t).Fetch(context.Background(), "ftp://example.com/file")
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, ErrUnsupportedURL)
	})

	t.Run("body is truncated at the size limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, strings.Repeat("a", 1000))
		}))
		defer srv.Close()

		page, err := newTestFetcher(t, WithMaxBodySize(100)).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Len(t, page.Markup, 100)
	})

	t.Run("follows redirects up to the limit", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/final", http.StatusFound)
		})
		mux.HandleFunc("/final", func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprint(w, "<html>ok</html>")
		})
		mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/loop", http.StatusFound)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := newTestFetcher(t, WithMaxRedirects(2))

		page, err := f.Fetch(context.Background(), srv.URL+"/start")
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/final", page.FinalURL)

		_, err = f.Fetch(context.Background(), srv.URL+"/loop")
		assert.ErrorIs(t, err, ErrTransport)
		assert.ErrorIs(t, err, ErrTooManyRedirects)
	})

	t.Run("timeout is a transport error", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer srv.Close()
		defer close(release)

		_, err := newTestFetcher(t, WithTimeout(50*time.Millisecond)).Fetch(context.Background(), srv.URL)
		assert.ErrorIs(t, err, ErrTransport)
	})

	t.Run("site cookie and headers are sent", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintf(w, "%s|%s", r.Header.Get("Cookie"), r.Header.Get("Referer"))
		}))
		defer srv.Close()

		sites := &config.File{
			Sites: map[string]config.SiteConfig{
				"127.0.0.1": {
					Cookie:  "session=abc",
					Headers: map[string]string{"Referer": "https://portal.example.com/"},
				},
			},
		}

		page, err := newTestFetcher(t, WithSiteConfigs(sites)).Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "session=abc|https://portal.example.com/", page.Markup)
	})
}

func TestFetchError(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("wrapped: %w", transportError("https://example.com/", cause))

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "https://example.com/")

	status := statusError("https://example.com/", 503)
	assert.ErrorIs(t, status, ErrStatus)
	assert.Contains(t, status.Error(), "503")
}

func TestNew_Proxy(t *testing.T) {
	t.Parallel()

	f, err := New(WithProxy("127.0.0.1:1080"))
	require.NoError(t, err)

	transport, ok := f.client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.NotNil(t, transport.DialContext)
	assert.Nil(t, transport.Proxy)
}

func TestNew_HTTPClientIsNotModified(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer srv.Close()

	client := &http.Client{Timeout: 5 * time.Second}
	f := newTestFetcher(t, WithHTTPClient(client), WithMaxRedirects(1))

	assert.Nil(t, client.CheckRedirect)
	assert.NotSame(t, client, f.client)
	assert.NotNil(t, f.client.CheckRedirect)

	page, err := f.Fetch(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	assert.Contains(t, page.Markup, "ok")
}

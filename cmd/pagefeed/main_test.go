package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const newsMarkup = `<html><head><title>City Desk | Example Times</title></head><body>
<div class="box"><h2>News</h2><ul>
<li><a href="/news/2024/harbor">Harbor bridge reopens after repairs</a></li>
<li><a href="/news/2024/library">Central library extends opening hours</a></li>
<li><a href="/news/2024/market">Farmers market returns to the square</a></li>
<li><a href="/news/2024/transit">New night bus routes announced</a></li>
<li><a href="/news/2024/schools">Schools open registration for autumn</a></li>
</ul></div></body></html>`

// newSite serves newsMarkup at "/" and 404 everywhere else.
func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, newsMarkup)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// writeConfig creates a configuration file from the init template so
// tests never pick up a file from the working or home directory.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".pagefeed")
	cmd := NewInitCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"-o", path})
	require.NoError(t, cmd.Execute())
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

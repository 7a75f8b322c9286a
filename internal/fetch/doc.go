// Package fetch retrieves page markup over HTTP and resolves its text encoding.
//
// A Fetcher performs a single GET per call with a browser-like User-Agent,
// bounded redirects and a bounded body size. Bodies declared as GBK or GB2312
// are decoded with GBK, GB18030 with GB18030, and everything else is treated
// as UTF-8 with invalid sequences replaced by U+FFFD. The returned markup is
// always valid UTF-8.
//
// Failures are reported as *FetchError, which distinguishes a non-2xx status
// from a transport failure:
//
//	page, err := f.Fetch(ctx, "https://news.example.com/list")
//	if errors.Is(err, fetch.ErrStatus) {
//	    // the server answered, but not with 2xx
//	}
//
// Requests can be routed through a SOCKS5 proxy, and per-host cookies and
// headers from the configuration file are added to every request for that
// host, redirects included.
package fetch

// Package urlutil resolves, canonicalizes and compares page links.
//
// Design decision: All same-origin checks go through SameHost so that the
// invariant "every article shares the page's host" is enforced in exactly one
// place, at candidate collection time.
package urlutil

import (
	"net/url"
	"strings"
)

// skipPrefixes are href schemes that never point at an article.
var skipPrefixes = []string{"javascript:", "mailto:", "tel:", "data:", "#"}

// Canonicalize resolves href against base and returns the absolute URL with
// the fragment removed and scheme and host lowercased. It returns "" for
// hrefs that cannot be resolved or that are not http(s).
func Canonicalize(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || base == nil {
		return ""
	}
	lower := strings.ToLower(href)
	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return ""
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	resolved.Scheme = strings.ToLower(resolved.Scheme)
	resolved.Host = strings.ToLower(resolved.Host)
	if resolved.Path == "" {
		resolved.Path = "/"
	}
	return resolved.String()
}

// SameHost reports whether link has the same hostname as base.
// Ports are ignored, matching how browsers label a site.
func SameHost(link string, base *url.URL) bool {
	if base == nil {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return u.Hostname() != "" && strings.EqualFold(u.Hostname(), base.Hostname())
}

// Segments returns the non-empty path segments of link.
func Segments(link string) []string {
	u, err := url.Parse(link)
	if err != nil {
		return nil
	}
	parts := strings.Split(u.Path, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// PathPrefix returns "/" followed by at most n leading path segments of link
// joined by "/". A link with no path returns "/".
func PathPrefix(link string, n int) string {
	segments := Segments(link)
	if len(segments) > n {
		segments = segments[:n]
	}
	return "/" + strings.Join(segments, "/")
}

// Host returns the lowercased hostname of rawURL, or "" if it cannot be parsed.
func Host(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

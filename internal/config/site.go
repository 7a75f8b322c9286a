package config

import "strings"

// Policy is an admission rule for the heading segmenter.
// When a page matches the policy, an anchor is kept only if it satisfies
// every configured requirement.
type Policy struct {
	// Paths are page path prefixes the policy applies to.
	// An empty list applies the policy to every page of the host.
	Paths []string `yaml:"paths,omitempty"`

	// Keywords, when non-empty, require the anchor text to contain at least one.
	Keywords []string `yaml:"keywords,omitempty"`

	// RequireDate requires a date token in the anchor text or its parent text.
	RequireDate bool `yaml:"requireDate,omitempty"`
}

// IsZero reports whether the policy imposes no requirement.
func (p *Policy) IsZero() bool {
	return p == nil || (len(p.Keywords) == 0 && !p.RequireDate)
}

// Matches reports whether the policy covers the given page path.
func (p *Policy) Matches(path string) bool {
	if p.IsZero() {
		return false
	}
	if len(p.Paths) == 0 {
		return true
	}
	for _, prefix := range p.Paths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SiteConfig holds site-specific configuration for a single host.
// This allows customizing fetch and admission behavior per site.
type SiteConfig struct {
	// Cookie is an HTTP cookie to send when fetching pages of this site.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are custom HTTP headers to include in requests to this site.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Policy restricts which anchors the heading segmenter admits.
	Policy *Policy `yaml:"policy,omitempty"`
}

// File represents the structure of the .pagefeed configuration file.
type File struct {
	// Sites maps hostnames to their site-specific configurations.
	// Keys are bare hostnames without scheme or port (e.g., "news.example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains default site configuration applied to all sites
	// unless overridden in the site-specific configuration.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Stopwords are extra labels treated as generic by title inference.
	Stopwords []string `yaml:"stopwords,omitempty"`

	// Tuning overrides segmentation constants. Omitted keys keep their defaults.
	Tuning Tuning `yaml:"tuning,omitempty"`
}

// GetSiteConfig returns the configuration for a specific host.
// It merges the site-specific configuration with defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	if cf == nil {
		return SiteConfig{}
	}

	// Start with defaults
	result := cf.Defaults
	if len(cf.Defaults.Headers) > 0 {
		result.Headers = make(map[string]string, len(cf.Defaults.Headers))
		for k, v := range cf.Defaults.Headers {
			result.Headers[k] = v
		}
	}

	siteConfig, ok := cf.Sites[strings.ToLower(host)]
	if !ok {
		return result
	}

	if siteConfig.Cookie != "" {
		result.Cookie = siteConfig.Cookie
	}
	if len(siteConfig.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range siteConfig.Headers {
			result.Headers[k] = v
		}
	}
	if siteConfig.Policy != nil {
		result.Policy = siteConfig.Policy
	}

	return result
}

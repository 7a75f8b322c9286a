package segment

import (
	"net/url"
	"strings"

	"github.com/Sumluvv/pagefeed/internal/config"
	"github.com/Sumluvv/pagefeed/internal/model"
)

// Admission decides whether a heading candidate is kept.
// Candidate.Context holds the text around the link when Admission runs.
type Admission func(c model.Candidate) bool

// PolicyResolver returns the admission rule for a page, or nil when every
// candidate is admitted.
type PolicyResolver interface {
	Resolve(pageURL *url.URL) Admission
}

// SitePolicies resolves admission rules from the per-host policies of the
// configuration file.
//
// Design decision: Site-specific rules live in configuration keyed by host
// and path prefix, never in code, so supporting a new portal with a stricter
// list layout is an edit to .pagefeed rather than a release.
type SitePolicies struct {
	sites *config.File
}

// NewSitePolicies creates a resolver over the configuration file.
// A nil file resolves to no policy for every page.
func NewSitePolicies(sites *config.File) *SitePolicies {
	return &SitePolicies{sites: sites}
}

// Resolve implements PolicyResolver.
func (p *SitePolicies) Resolve(pageURL *url.URL) Admission {
	if p == nil || p.sites == nil || pageURL == nil {
		return nil
	}
	site := p.sites.GetSiteConfig(pageURL.Hostname())
	if !site.Policy.Matches(pageURL.Path) {
		return nil
	}
	return PolicyAdmission(*site.Policy)
}

// PolicyAdmission builds the Admission for a policy. A candidate must contain
// one of the keywords (when any are set) and, when RequireDate is set, show a
// date in its text or the text around it.
func PolicyAdmission(policy config.Policy) Admission {
	keywords := make([]string, 0, len(policy.Keywords))
	for _, k := range policy.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}

	return func(c model.Candidate) bool {
		if len(keywords) > 0 && !containsAny(strings.ToLower(c.Text), keywords) {
			return false
		}
		if policy.RequireDate && !HasDate(c.Text) && !HasDate(c.Context) {
			return false
		}
		return true
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

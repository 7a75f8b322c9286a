package title

import (
	"regexp"
	"strings"

	"github.com/Sumluvv/pagefeed/internal/dom"
	"github.com/Sumluvv/pagefeed/internal/urlutil"
)

// breadcrumbSelectors locate the current item of a breadcrumb trail.
// Government sites often mark the trail with Chinese class names
// ("当前位置" is "current location").
var breadcrumbSelectors = []string{
	`.breadcrumb a:last-child`,
	`[class*="breadcrumb"] a:last-child`,
	`[class*="crumb"] a:last-child`,
	`[class*="当前位置"] a:last-child`,
	`[class*="当前位置"] span:last-child`,
	`[class*="位置"] a:last-child`,
	`[class*="导航"] a:last-child`,
	`[class*="路径"] a:last-child`,
}

// trailBlocks are the elements searched for a textual breadcrumb trail.
const trailBlocks = "div, p, span, td, li, nav"

// trailMaxLen skips blocks too long to be a single trail.
const trailMaxLen = 120

// trailRe matches a textual trail introduced by a location prefix or a home link,
// such as "当前位置：首页 > 政务公开 > 通知公告" or "Home > Newsroom".
var trailRe = regexp.MustCompile(`(?i)^(?:(?:当前位置|您的位置|您现在的位置|现在位置|位置|current location|you are here)\s*[：:]?\s*)?(?:首页|home)?\s*(?:[^>»]+\s*[>»]\s*)+([^>»]+)$`)

// spacedSuffixRe and bareSuffixRe find the separator before a trailing
// site name, as in "Notices - Example Ministry", "News | Example" or
// "通知公告_某某厅". A spaced separator wins over a bare "|" or "_", so
// "my_page - Example" keeps "my_page".
var (
	spacedSuffixRe = regexp.MustCompile(`\s+[-–—|_]\s+`)
	bareSuffixRe   = regexp.MustCompile(`[|_]`)
)

// stripSiteSuffix removes the site name after the first separator. The
// title is kept whole when the remainder would not be a plausible title.
func stripSiteSuffix(title string) string {
	title = strings.TrimSpace(title)
	loc := spacedSuffixRe.FindStringIndex(title)
	if loc == nil {
		loc = bareSuffixRe.FindStringIndex(title)
	}
	if loc == nil {
		return title
	}
	if head := strings.TrimSpace(title[:loc[0]]); plausible(head) {
		return head
	}
	return title
}

// SuggestedTitle derives a page-level title. It tries, in order, the current
// item of a breadcrumb trail, a textual trail in the page body, the document
// title without its site-name suffix, the first h1, and finally the host name.
// Candidates must be 3..49 runes long.
func SuggestedTitle(doc dom.Analyzer, pageURL string) string {
	if doc != nil {
		for _, candidate := range []func(dom.Analyzer) string{
			fromBreadcrumbElement,
			fromBreadcrumbText,
			fromDocumentTitle,
			fromFirstH1,
		} {
			if t := candidate(doc); plausible(t) {
				return t
			}
		}
	}
	return urlutil.Host(pageURL)
}

func plausible(t string) bool {
	n := runeLen(t)
	return n > 2 && n < 50
}

func fromBreadcrumbElement(doc dom.Analyzer) string {
	for _, selector := range breadcrumbSelectors {
		if el, ok := doc.First(selector); ok {
			if t := el.Text(); plausible(t) {
				return t
			}
		}
	}
	return ""
}

func fromBreadcrumbText(doc dom.Analyzer) string {
	for _, el := range doc.Query(trailBlocks) {
		text := el.Text()
		if !strings.ContainsAny(text, ">»") || runeLen(text) > trailMaxLen {
			continue
		}
		m := trailRe.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if t := strings.TrimSpace(m[1]); plausible(t) {
			return t
		}
	}
	return ""
}

func fromDocumentTitle(doc dom.Analyzer) string {
	el, ok := doc.First("title")
	if !ok {
		return ""
	}
	return stripSiteSuffix(el.Text())
}

func fromFirstH1(doc dom.Analyzer) string {
	if el, ok := doc.First("h1"); ok {
		return el.Text()
	}
	return ""
}

package title

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"
)

// boilerplateRe matches labels that carry no information about a group.
// It covers path tokens used as labels, generic site furniture and
// pagination phrases.
var boilerplateRe = regexp.MustCompile(`(?i)^(zwgk|gsgg|zwgk\s+gsgg|年度|广东省|人力资源|社会保障|部门|网站|首页|导航|菜单|链接|更多|返回|上一页|下一页|第.*页|共.*页|home|homepage|index|menu|navigation|links?|more|read more|back|next|prev|previous|next page|previous page|page \d+|page \d+ of \d+|untitled)$`)

// navigationRe matches anchor or label text that is site navigation rather than content.
var navigationRe = regexp.MustCompile(`(?i)首页|上一页|下一页|更多|返回|^(home|next|prev|previous|more|back|read more|next page|previous page|first|last)\s*[»›>]*$`)

// categoryRe matches bare category words that make poor group labels on
// their own because every list on a page could carry them.
var categoryRe = regexp.MustCompile(`(?i)^(通知|公告|公示|招聘|拟聘|集中公开招聘|高校毕业生|notice|notices|announcement|announcements|news|article|articles|post|posts)$`)

// breadcrumbRe matches a chain of segments joined by ">".
var breadcrumbRe = regexp.MustCompile(`^(.+\s*>\s*)+(.+)$`)

// breadcrumbMaxLen is the rune length below which a ">" chain counts as a breadcrumb.
const breadcrumbMaxLen = 50

// IsBoilerplate reports whether s is a generic, low-information label.
func IsBoilerplate(s string) bool {
	return boilerplateRe.MatchString(strings.TrimSpace(s))
}

// IsNavigation reports whether s looks like a navigation link text.
func IsNavigation(s string) bool {
	return navigationRe.MatchString(strings.TrimSpace(s))
}

// IsBreadcrumb reports whether s is breadcrumb-shaped: segments joined by
// ">" with fewer than 50 runes in total.
func IsBreadcrumb(s string) bool {
	s = strings.TrimSpace(s)
	return utf8.RuneCountInString(s) < breadcrumbMaxLen && breadcrumbRe.MatchString(s)
}

// BreadcrumbTail returns the last segment of a ">" chain.
func BreadcrumbTail(s string) string {
	i := strings.LastIndex(s, ">")
	if i < 0 {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[i+1:])
}

// runeLen is the length used for every label and title bound.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens s to at most max runes, replacing the tail with "...".
func Truncate(s string, max int) string {
	if max <= 3 || runeLen(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-3]) + "..."
}

// genericHostLabels are host labels that never name a site.
var genericHostLabels = map[string]bool{
	"www": true, "m": true, "com": true, "cn": true, "net": true, "org": true,
	"gov": true, "edu": true, "co": true, "io": true, "info": true,
}

// hostFragments returns the lowercased host and the name of its
// registrable domain. "news.example.com" yields news.example.com and
// example. Subdomain labels such as "news" or "blog" often name a section
// and are not site names.
func hostFragments(host string) []string {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == "" {
		return nil
	}
	fragments := []string{host}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return fragments
	}
	name, _, _ := strings.Cut(site, ".")
	if len(name) >= 2 && !genericHostLabels[name] && name != host {
		fragments = append(fragments, name)
	}
	return fragments
}

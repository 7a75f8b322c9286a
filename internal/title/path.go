package title

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// pathLabels maps well-known list paths to labels. Keys are looked up by
// the full pattern first and then by its first segment.
var pathLabels = map[string]string{
	"/news":    "News",
	"/article": "Articles",
	"/notice":  "Announcements",
	"/policy":  "Policies",
	"/zwgk":    "Government Affairs",
	"/gsgg":    "Public Notices",
	"/sydwzp":  "Recruitment",
	"/content": "Content",
	"/list":    "Listings",
}

// DefaultPathLabel is used when a pattern has no readable words.
const DefaultPathLabel = "Article group"

// PathLabel converts a path pattern such as "/news/2024" to a label.
// Unknown patterns become their title-cased words: "/press-room/2024" is
// "Press Room 2024".
func PathLabel(pattern string) string {
	key := strings.ToLower(strings.TrimRight(pattern, "/"))
	if label, ok := pathLabels[key]; ok {
		return label
	}

	segments := strings.FieldsFunc(key, func(r rune) bool { return r == '/' })
	if len(segments) > 0 {
		if label, ok := pathLabels["/"+segments[0]]; ok {
			return label
		}
	}

	words := strings.FieldsFunc(pattern, func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.'
	})
	if len(words) == 0 {
		return DefaultPathLabel
	}
	// A Caser keeps state, so each call gets its own.
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

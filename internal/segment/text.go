package segment

import (
	"regexp"
	"strconv"
	"time"
	"unicode/utf8"
)

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// yearTokenRe is the cheap date evidence used by cluster scoring.
var yearTokenRe = regexp.MustCompile(`20\d{2}[-./年]`)

// dateRe matches year-month[-day] dates such as 2024-03-05, 2024.3.5,
// 2024/03 and 2024年3月5日.
var dateRe = regexp.MustCompile(`(20\d{2})\s*[-./年]\s*(\d{1,2})(?:\s*[-./月]\s*(\d{1,2}))?`)

// HasYearToken reports whether s contains a year followed by a date separator.
func HasYearToken(s string) bool {
	return yearTokenRe.MatchString(s)
}

// HasDate reports whether s contains a year-month[-day] date.
func HasDate(s string) bool {
	_, ok := ParseDate(s)
	return ok
}

// ParseDate returns the first valid date in s as midnight UTC.
// A date without a day resolves to the first of the month.
func ParseDate(s string) (time.Time, bool) {
	for _, m := range dateRe.FindAllStringSubmatch(s, -1) {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day := 1
		if m[3] != "" {
			day, _ = strconv.Atoi(m[3])
		}
		if month < 1 || month > 12 || day < 1 {
			continue
		}
		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if t.Day() != day {
			// Rolled over, e.g. 2024-02-30.
			continue
		}
		return t, true
	}
	return time.Time{}, false
}

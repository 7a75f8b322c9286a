package fetch

import (
	"mime"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// Charset names reported in Page.Charset.
const (
	CharsetUTF8    = "utf-8"
	CharsetGBK     = "gbk"
	CharsetGB18030 = "gb18030"
)

// sniffLimit is how many leading bytes are searched for a meta charset.
const sniffLimit = 2048

var metaCharsetRe = regexp.MustCompile(`(?i)<meta[^>]+charset\s*=\s*["']?\s*([a-z0-9_-]+)`)

// CharsetFromContentType returns the normalized charset declared in a
// Content-Type header value, or "" when none is declared.
func CharsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Tolerate malformed headers such as "text/html;charset=gbk;".
		lower := strings.ToLower(contentType)
		if i := strings.Index(lower, "charset="); i >= 0 {
			value := strings.Trim(lower[i+len("charset="):], `"' ;`)
			if j := strings.IndexAny(value, "; "); j >= 0 {
				value = value[:j]
			}
			return normalizeCharset(value)
		}
		return ""
	}
	return normalizeCharset(params["charset"])
}

// sniffCharset looks for a meta charset declaration near the start of the body.
// It only reports the GB family; every other declaration resolves to UTF-8.
func sniffCharset(body []byte) string {
	head := body
	if len(head) > sniffLimit {
		head = head[:sniffLimit]
	}
	m := metaCharsetRe.FindSubmatch(head)
	if m == nil {
		return ""
	}
	return normalizeCharset(string(m[1]))
}

func normalizeCharset(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return ""
	case "gbk", "gb2312", "x-gbk", "cp936", "gb_2312-80":
		return CharsetGBK
	case "gb18030":
		return CharsetGB18030
	default:
		return CharsetUTF8
	}
}

// Decode converts body to a valid UTF-8 string using the given charset.
// Unknown or empty charsets are treated as UTF-8 and invalid byte sequences
// are replaced with U+FFFD.
func Decode(body []byte, charset string) string {
	var enc encoding.Encoding
	switch normalizeCharset(charset) {
	case CharsetGBK:
		enc = simplifiedchinese.GBK
	case CharsetGB18030:
		enc = simplifiedchinese.GB18030
	}

	if enc != nil {
		if out, err := enc.NewDecoder().Bytes(body); err == nil {
			return strings.ToValidUTF8(string(out), "\uFFFD")
		}
	}
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

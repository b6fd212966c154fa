package parser

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var tagExpr = regexp.MustCompile(`<[^>]*>`)

// CleanTitle strips markup, decodes entities and collapses whitespace.
func CleanTitle(raw string) string {
	text := tagExpr.ReplaceAllString(raw, " ")
	text = html.UnescapeString(text)
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeURL resolves href against the source base URL. Protocol-relative
// links take the base scheme, root-relative links take the base origin; the
// result must be an absolute http(s) URL.
func NormalizeURL(href, base string) (string, bool) {
	href = strings.TrimSpace(strings.ReplaceAll(href, "&amp;", "&"))
	if href == "" {
		return "", false
	}

	switch {
	case strings.HasPrefix(href, "//"):
		scheme := "https"
		if b, err := url.Parse(base); err == nil && b.Scheme != "" {
			scheme = b.Scheme
		}
		href = scheme + ":" + href
	case strings.HasPrefix(href, "/"):
		b, err := url.Parse(base)
		if err != nil || b.Host == "" {
			return "", false
		}
		href = b.Scheme + "://" + b.Host + href
	}

	lower := strings.ToLower(href)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "", false
	}
	return href, true
}

package httpfetch

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultEncodings is the fallback chain tried after the declared charset.
var DefaultEncodings = []string{"utf-8", "gbk", "gb18030", "latin-1"}

// LossyEncoding names the replacement-character decode used when the chain fails.
const LossyEncoding = "utf-8-lossy"

type decodeStrategy struct {
	name    string
	attempt func(raw []byte) (string, bool)
}

// Decode converts raw bytes to text. The charset declared in contentType (or
// by a BOM or meta tag) is tried first, then each entry of chain in order.
// It never fails: the last resort is a lossy UTF-8 decode.
func Decode(raw []byte, contentType string, chain []string) (string, string) {
	for _, s := range strategies(raw, contentType, chain) {
		if text, ok := s.attempt(raw); ok {
			return text, s.name
		}
	}
	return strings.ToValidUTF8(string(raw), string(utf8.RuneError)), LossyEncoding
}

func strategies(raw []byte, contentType string, chain []string) []decodeStrategy {
	out := make([]decodeStrategy, 0, len(chain)+1)
	seen := make(map[string]bool, len(chain)+1)

	if len(raw) > 0 {
		if _, name, certain := charset.DetermineEncoding(raw, contentType); certain {
			if s, ok := lookupStrategy(name); ok {
				out = append(out, s)
				seen[s.name] = true
			}
		}
	}
	for _, label := range chain {
		s, ok := lookupStrategy(label)
		if !ok || seen[s.name] {
			continue
		}
		out = append(out, s)
		seen[s.name] = true
	}
	return out
}

func lookupStrategy(label string) (decodeStrategy, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8":
		return decodeStrategy{name: "utf-8", attempt: decodeUTF8}, true
	case "latin-1", "latin1", "iso-8859-1":
		return decodeStrategy{name: "latin-1", attempt: lossless(charmap.ISO8859_1)}, true
	}
	enc, name := charset.Lookup(label)
	if enc == nil {
		return decodeStrategy{}, false
	}
	if name == "utf-8" {
		return decodeStrategy{name: name, attempt: decodeUTF8}, true
	}
	return decodeStrategy{name: name, attempt: strict(enc)}, true
}

func decodeUTF8(raw []byte) (string, bool) {
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// strict rejects output that contains replacement characters.
func strict(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(raw []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		if strings.ContainsRune(string(out), utf8.RuneError) {
			return "", false
		}
		return string(out), true
	}
}

func lossless(enc encoding.Encoding) func([]byte) (string, bool) {
	return func(raw []byte) (string, bool) {
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", false
		}
		return string(out), true
	}
}

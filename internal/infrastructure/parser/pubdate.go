package parser

import (
	"regexp"
	"strings"
	"time"
)

type dateLayout struct {
	layout string
	utc    bool
}

// Tried in order; the first layout that parses wins.
var dateLayouts = []dateLayout{
	{layout: time.RFC1123Z},
	{layout: "Mon, 02 Jan 2006 15:04:05 GMT", utc: true},
	{layout: time.RFC1123},
	{layout: "Mon, 2 Jan 2006 15:04:05 -0700"},
	{layout: "Mon, 2 Jan 2006 15:04:05 MST"},
	{layout: time.RFC3339},
	{layout: "2006-01-02T15:04:05-0700"},
	{layout: time.DateTime},
	{layout: time.DateOnly},
}

var bareDateExpr = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// ParsePubDate reads a feed date and converts it to loc. Layouts without a
// zone are read as loc wall-clock time. It returns nil when nothing parses.
func ParsePubDate(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, l := range dateLayouts {
		var (
			t   time.Time
			err error
		)
		if l.utc {
			t, err = time.Parse(l.layout, raw)
		} else {
			t, err = time.ParseInLocation(l.layout, raw, loc)
		}
		if err == nil {
			t = t.In(loc)
			return &t
		}
	}

	if m := bareDateExpr.FindString(raw); m != "" {
		if t, err := time.ParseInLocation(time.DateOnly, m, loc); err == nil {
			return &t
		}
	}
	return nil
}

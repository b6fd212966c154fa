package domain

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

// Priority ranks a source for scoring.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// FallbackCategory labels articles no category claimed.
const FallbackCategory = "unclassified"

// Source is a configured upstream site. The pipeline never mutates it.
type Source struct {
	Name       string
	URL        string
	Type       string
	Priority   Priority
	Categories []string
	FeedURL    string
}

// RawItem is a candidate pulled out of a page or feed before normalization.
type RawItem struct {
	Href        string
	DisplayText string
	Published   *time.Time
}

// Article is a core entity describing a normalized, validated item.
type Article struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	URL              string        `json:"url"`
	SourceName       string        `json:"source"`
	SourceType       string        `json:"source_type"`
	Priority         Priority      `json:"priority"`
	SourceCategories []string      `json:"categories"`
	PublishTime      *Timestamp    `json:"pub_date"`
	CrawlTime        time.Time     `json:"crawl_time"`
	BatchDate        string        `json:"date"`
	Categories       []string      `json:"auto_categories"`
	Score            int           `json:"importance_score"`
	MarketSignal     *MarketSignal `json:"market_signal,omitempty"`
	Entities         Entities      `json:"entities,omitempty"`
}

// Fingerprint returns the 12-char content hash over url and title.
func Fingerprint(url, title string) string {
	sum := md5.Sum([]byte(url + title))
	return hex.EncodeToString(sum[:])[:12]
}

// NewArticle builds an unclassified article from validated fields.
func NewArticle(src Source, title, url string, published *time.Time, crawled time.Time) Article {
	var pub *Timestamp
	if published != nil {
		ts := Timestamp(*published)
		pub = &ts
	}

	hints := make([]string, len(src.Categories))
	copy(hints, src.Categories)

	return Article{
		ID:               Fingerprint(url, title),
		Title:            title,
		URL:              url,
		SourceName:       src.Name,
		SourceType:       src.Type,
		Priority:         src.Priority,
		SourceCategories: hints,
		PublishTime:      pub,
		CrawlTime:        crawled,
		BatchDate:        crawled.Format(time.DateOnly),
	}
}

// Classified returns a copy carrying categories and score. An empty category
// list is replaced with fallback and the score is floored at 1.
func (a Article) Classified(categories []string, score int, fallback string) Article {
	out := a
	if len(categories) == 0 {
		out.Categories = []string{fallback}
	} else {
		out.Categories = append([]string(nil), categories...)
	}
	if score < 1 {
		score = 1
	}
	out.Score = score
	return out
}

// WithSignal returns a copy carrying finance enrichment.
func (a Article) WithSignal(signal MarketSignal, entities Entities) Article {
	out := a
	out.MarketSignal = &signal
	out.Entities = entities
	return out
}

// Sentiment is the direction derived from keyword evidence.
type Sentiment string

const (
	Bullish Sentiment = "bullish"
	Bearish Sentiment = "bearish"
	Neutral Sentiment = "neutral"
)

// MarketSignal holds the overall direction and the matched keywords.
type MarketSignal struct {
	Overall Sentiment `json:"overall"`
	Bullish []string  `json:"bullish"`
	Bearish []string  `json:"bearish"`
}

// Entities maps entity type (indices, sectors, companies) to matched names.
type Entities map[string][]string

// Timestamp is a publish time rendered in the reference zone without offset.
type Timestamp time.Time

const timestampLayout = time.DateTime

// Time converts back to time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// String renders the reference-zone wall clock.
func (t Timestamp) String() string {
	return time.Time(t).Format(timestampLayout)
}

// Anchor reads the wall clock of t as a time in loc. Stored timestamps carry
// no offset; loaders anchor them back into the reference zone.
func (t Timestamp) Anchor(loc *time.Location) Timestamp {
	if loc == nil {
		return t
	}
	tt := time.Time(t)
	return Timestamp(time.Date(tt.Year(), tt.Month(), tt.Day(), tt.Hour(), tt.Minute(), tt.Second(), tt.Nanosecond(), loc))
}

// MarshalText implements encoding.TextMarshaler.
func (t Timestamp) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts both full timestamps and bare dates.
func (t *Timestamp) UnmarshalText(b []byte) error {
	s := string(b)
	parsed, err := time.Parse(timestampLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.DateOnly, s)
		if err != nil {
			return err
		}
	}
	*t = Timestamp(parsed)
	return nil
}

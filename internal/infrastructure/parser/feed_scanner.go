package parser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/ports"
	"NewsHarvester/internal/scanner"
)

// ErrMalformed marks content that could not be parsed in the expected shape.
var ErrMalformed = errors.New("malformed content")

const defaultMaxFeedItems = 50

// prologEncoding matches the encoding attribute of a leading XML declaration.
var prologEncoding = regexp.MustCompile(`^(\x{FEFF}?\s*<\?xml[^>]*?)\s+encoding\s*=\s*["'][^"']*["']`)

// stripDeclaredEncoding drops the prolog's encoding attribute. The fetcher
// has already decoded the body to UTF-8, so the declared legacy charset must
// not be applied a second time.
func stripDeclaredEncoding(text string) string {
	return prologEncoding.ReplaceAllString(text, "$1")
}

// ExtractFeed parses RSS, Atom or JSON Feed text. At most maxItems entries
// are considered; entries without a title or link are skipped.
func ExtractFeed(text string, maxItems int, loc *time.Location) ([]domain.RawItem, error) {
	if maxItems <= 0 {
		maxItems = defaultMaxFeedItems
	}

	feed, err := gofeed.NewParser().ParseString(stripDeclaredEncoding(text))
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %w", ErrMalformed, err)
	}

	entries := feed.Items
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	items := make([]domain.RawItem, 0, len(entries))
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		if link == "" && len(entry.Links) > 0 {
			link = strings.TrimSpace(entry.Links[0])
		}
		if title == "" || link == "" {
			continue
		}

		raw := entry.Published
		if strings.TrimSpace(raw) == "" {
			raw = entry.Updated
		}

		items = append(items, domain.RawItem{
			Href:        link,
			DisplayText: title,
			Published:   ParsePubDate(raw, loc),
		})
	}
	return items, nil
}

// FeedScanner fetches and parses a source's feed URL.
type FeedScanner struct {
	fetcher  ports.Fetcher
	maxItems int
	loc      *time.Location
}

var _ scanner.Scanner = (*FeedScanner)(nil)

// NewFeedScanner wires the fetcher; maxItems defaults to 50 and loc to UTC.
func NewFeedScanner(fetcher ports.Fetcher, maxItems int, loc *time.Location) *FeedScanner {
	if maxItems <= 0 {
		maxItems = defaultMaxFeedItems
	}
	if loc == nil {
		loc = time.UTC
	}
	return &FeedScanner{fetcher: fetcher, maxItems: maxItems, loc: loc}
}

// Name identifies the strategy inside the registry.
func (f *FeedScanner) Name() string {
	return scanner.Feed
}

// Scan returns no items for sources without a feed URL.
func (f *FeedScanner) Scan(ctx context.Context, src domain.Source) (scanner.Result, error) {
	if src.FeedURL == "" {
		return scanner.Result{}, nil
	}

	res, err := f.fetcher.Fetch(ctx, src.FeedURL)
	if err != nil {
		return scanner.Result{}, fmt.Errorf("fetch feed: %w", err)
	}

	items, err := ExtractFeed(res.Text, f.maxItems, f.loc)
	if err != nil {
		return scanner.Result{}, err
	}
	return scanner.Result{Items: items}, nil
}

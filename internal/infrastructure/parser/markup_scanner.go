package parser

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/ports"
	"NewsHarvester/internal/scanner"
)

const defaultMaxAnchors = 200

// Concatenated in order, so one anchor may appear more than once before the
// per-page URL dedup.
var anchorSelectors = []string{
	"a[href]",
	"h1 a[href], h2 a[href], h3 a[href], h4 a[href], h5 a[href], h6 a[href]",
	"article a[href]",
}

var blockMarkers = []string{"验证码", "访问频繁", "人机验证", "blocked"}

// ExtractMarkup collects link candidates from an HTML listing page. At most
// maxAnchors anchors are considered and repeated URLs are dropped.
func ExtractMarkup(text, base string, maxAnchors int) ([]domain.RawItem, error) {
	if maxAnchors <= 0 {
		maxAnchors = defaultMaxAnchors
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: parse document: %w", ErrMalformed, err)
	}

	anchors := make([]*goquery.Selection, 0, maxAnchors)
	for _, sel := range anchorSelectors {
		doc.Find(sel).EachWithBreak(func(_ int, a *goquery.Selection) bool {
			if len(anchors) >= maxAnchors {
				return false
			}
			anchors = append(anchors, a)
			return true
		})
	}

	seen := map[string]struct{}{}
	items := make([]domain.RawItem, 0, len(anchors))
	for _, a := range anchors {
		href, _ := a.Attr("href")
		inner, err := a.Html()
		if err != nil || CleanTitle(inner) == "" {
			continue
		}
		link, ok := NormalizeURL(href, base)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}
		items = append(items, domain.RawItem{Href: link, DisplayText: inner})
	}
	return items, nil
}

// Blocked reports whether a page looks like an anti-bot interstitial.
func Blocked(text string) bool {
	for _, marker := range blockMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}

// MarkupScanner fetches a source's listing page and extracts its links.
type MarkupScanner struct {
	fetcher    ports.Fetcher
	maxAnchors int
}

var _ scanner.Scanner = (*MarkupScanner)(nil)

// NewMarkupScanner wires the fetcher; maxAnchors defaults to 200.
func NewMarkupScanner(fetcher ports.Fetcher, maxAnchors int) *MarkupScanner {
	if maxAnchors <= 0 {
		maxAnchors = defaultMaxAnchors
	}
	return &MarkupScanner{fetcher: fetcher, maxAnchors: maxAnchors}
}

// Name identifies the strategy inside the registry.
func (m *MarkupScanner) Name() string {
	return scanner.Markup
}

// Scan fetches src.URL. A blocked page still yields whatever links it holds.
func (m *MarkupScanner) Scan(ctx context.Context, src domain.Source) (scanner.Result, error) {
	res, err := m.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return scanner.Result{}, fmt.Errorf("fetch page: %w", err)
	}

	items, err := ExtractMarkup(res.Text, src.URL, m.maxAnchors)
	if err != nil {
		return scanner.Result{Blocked: Blocked(res.Text)}, err
	}
	return scanner.Result{Items: items, Blocked: Blocked(res.Text)}, nil
}

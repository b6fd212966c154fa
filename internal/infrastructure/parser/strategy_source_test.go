package parser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/infrastructure/httpfetch"
	"NewsHarvester/internal/scanner"
	"NewsHarvester/internal/validate"
)

var crawled = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type stubScanner struct {
	name  string
	res   scanner.Result
	err   error
	calls int
}

func (s *stubScanner) Name() string { return s.name }

func (s *stubScanner) Scan(ctx context.Context, _ domain.Source) (scanner.Result, error) {
	s.calls++
	if s.err == nil && ctx.Err() != nil {
		return scanner.Result{}, ctx.Err()
	}
	return s.res, s.err
}

func items(pairs ...string) []domain.RawItem {
	out := make([]domain.RawItem, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.RawItem{DisplayText: pairs[i], Href: pairs[i+1]})
	}
	return out
}

var feedSource = domain.Source{
	Name:     "example",
	URL:      "https://x.com",
	Type:     "media",
	Priority: domain.PriorityHigh,
	FeedURL:  "https://x.com/feed",
}

func TestHarvestPrefersFeed(t *testing.T) {
	t.Parallel()

	feed := &stubScanner{name: scanner.Feed, res: scanner.Result{Items: items("Feed headline number one", "/a")}}
	markup := &stubScanner{name: scanner.Markup, res: scanner.Result{Items: items("Markup headline", "/b")}}
	src := NewStrategySource(scanner.NewRegistry(feed, markup), validate.New(validate.Rules{}), 0, nil)

	got := src.Harvest(context.Background(), feedSource, crawled)

	assert.Equal(t, scanner.Feed, got.Strategy)
	assert.Equal(t, 0, markup.calls)
	require.Len(t, got.Articles, 1)
	assert.Equal(t, "https://x.com/a", got.Articles[0].URL)
	assert.Equal(t, "example", got.Articles[0].SourceName)
	assert.Empty(t, got.Errors)
}

func TestHarvestFallsBackToMarkup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		feed *stubScanner
	}{
		{name: "empty feed", feed: &stubScanner{name: scanner.Feed}},
		{name: "malformed feed", feed: &stubScanner{name: scanner.Feed, err: ErrMalformed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			markup := &stubScanner{name: scanner.Markup, res: scanner.Result{Items: items("Markup headline one", "/b")}}
			src := NewStrategySource(scanner.NewRegistry(tt.feed, markup), validate.New(validate.Rules{}), 0, nil)

			got := src.Harvest(context.Background(), feedSource, crawled)
			assert.Equal(t, scanner.Markup, got.Strategy)
			assert.Len(t, got.Articles, 1)
			assert.Empty(t, got.Errors)
		})
	}
}

func TestHarvestReportsEveryFailedStrategy(t *testing.T) {
	t.Parallel()

	feed := &stubScanner{name: scanner.Feed, err: &httpfetch.FetchError{
		URL: "https://x.com/feed", Attempts: 3, Outcome: httpfetch.OutcomeThrottled, Status: http.StatusTooManyRequests,
	}}
	markup := &stubScanner{name: scanner.Markup, err: &httpfetch.FetchError{
		URL: "https://x.com", Attempts: 1, Outcome: httpfetch.OutcomeFatal, Status: http.StatusNotFound,
	}}
	src := NewStrategySource(scanner.NewRegistry(feed, markup), nil, 0, nil)

	got := src.Harvest(context.Background(), feedSource, crawled)

	assert.Empty(t, got.Strategy)
	assert.Empty(t, got.Articles)
	require.Len(t, got.Errors, 2)
	assert.Equal(t, domain.ErrorThrottled, got.Errors[0].Kind)
	assert.Equal(t, 3, got.Errors[0].Attempts)
	assert.Equal(t, scanner.Feed, got.Errors[0].Stage)
	assert.Equal(t, domain.ErrorRejected, got.Errors[1].Kind)
	assert.Equal(t, scanner.Markup, got.Errors[1].Stage)
}

func TestHarvestErrorKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want domain.ErrorKind
	}{
		{name: "transport", err: &httpfetch.FetchError{Outcome: httpfetch.OutcomeTransport, Attempts: 3}, want: domain.ErrorTransient},
		{name: "empty body", err: &httpfetch.FetchError{Outcome: httpfetch.OutcomeEmpty, Attempts: 3}, want: domain.ErrorTransient},
		{name: "malformed", err: ErrMalformed, want: domain.ErrorMalformed},
		{name: "unknown", err: errors.New("boom"), want: domain.ErrorTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := sourceError(context.Background(), "x", scanner.Markup, tt.err)
			assert.Equal(t, tt.want, e.Kind)
			assert.Equal(t, "x", e.Source)
		})
	}
}

func TestHarvestDeadline(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	feed := &stubScanner{name: scanner.Feed}
	markup := &stubScanner{name: scanner.Markup}
	src := NewStrategySource(scanner.NewRegistry(feed, markup), nil, 0, nil)

	got := src.Harvest(ctx, feedSource, crawled)

	require.Len(t, got.Errors, 1)
	assert.Equal(t, domain.ErrorDeadline, got.Errors[0].Kind)
	assert.Equal(t, 0, markup.calls)
}

func TestHarvestKeepsBlockedWarning(t *testing.T) {
	t.Parallel()

	markup := &stubScanner{name: scanner.Markup, res: scanner.Result{Items: items("Visible headline", "/a"), Blocked: true}}
	src := NewStrategySource(scanner.NewRegistry(markup), nil, 0, nil)

	got := src.Harvest(context.Background(), domain.Source{Name: "x", URL: "https://x.com"}, crawled)

	assert.Len(t, got.Articles, 1)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, domain.ErrorBlocked, got.Errors[0].Kind)
}

func TestHarvestCountsAndCaps(t *testing.T) {
	t.Parallel()

	raw := items(
		"首页", "/home",
		"Valid headline one", "/1",
		"Valid headline two", "javascript:void(0)",
		"Valid headline three", "/3",
		"Valid headline four", "/4",
		"Valid headline five", "/5",
	)
	markup := &stubScanner{name: scanner.Markup, res: scanner.Result{Items: raw}}
	src := NewStrategySource(scanner.NewRegistry(markup), validate.New(validate.Rules{}), 3, nil)

	got := src.Harvest(context.Background(), domain.Source{Name: "x", URL: "https://x.com"}, crawled)

	require.Len(t, got.Articles, 3)
	assert.Equal(t, "https://x.com/4", got.Articles[2].URL)
	assert.Equal(t, 5, got.Stats.Candidates)
	assert.Equal(t, 3, got.Stats.Valid)
	assert.Equal(t, 2, got.Stats.Rejected)
}

func TestHarvestOverHTTPFallsBackFromEmptyFeed(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte(`<rss version="2.0"><channel><title>empty</title></channel></rss>`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><h3><a href="/story/1">OpenAI 发布 GPT-5，性能大幅突破</a></h3></body></html>`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := httpfetch.New(httpfetch.Options{Client: server.Client(), MinBodyBytes: 1})
	reg := scanner.NewRegistry(
		NewFeedScanner(fetcher, 50, time.UTC),
		NewMarkupScanner(fetcher, 200),
	)
	src := NewStrategySource(reg, validate.New(validate.Rules{}), 100, nil)

	got := src.Harvest(context.Background(), domain.Source{
		Name:    "jiqizhixin",
		URL:     server.URL,
		FeedURL: server.URL + "/feed",
	}, crawled)

	assert.Equal(t, scanner.Markup, got.Strategy)
	require.Len(t, got.Articles, 1)
	assert.Equal(t, server.URL+"/story/1", got.Articles[0].URL)
	assert.Equal(t, "OpenAI 发布 GPT-5，性能大幅突破", got.Articles[0].Title)
	assert.True(t, strings.HasPrefix(got.Articles[0].URL, "http://"))
	assert.Empty(t, got.Errors)
}

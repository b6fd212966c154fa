package httpfetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedSleeps struct {
	waits []time.Duration
}

func (r *recordedSleeps) sleep(ctx context.Context, d time.Duration) error {
	r.waits = append(r.waits, d)
	return ctx.Err()
}

func newTestFetcher(t *testing.T, opts Options) (*Fetcher, *recordedSleeps) {
	t.Helper()
	if opts.MinBodyBytes == 0 {
		opts.MinBodyBytes = 10
	}
	f := New(opts)
	rec := &recordedSleeps{}
	f.sleep = rec.sleep
	return f, rec
}

func TestFetchSuccessSendsBrowserHeaders(t *testing.T) {
	t.Parallel()

	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>hello world</body></html>"))
	}))
	t.Cleanup(srv.Close)

	f, rec := newTestFetcher(t, Options{})
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "utf-8", res.Encoding)
	assert.Contains(t, res.Text, "hello world")
	got := <-headers
	assert.Contains(t, DefaultUserAgents, got.Get("User-Agent"))
	assert.True(t, strings.HasPrefix(got.Get("Accept-Language"), "zh-CN"))
	assert.Equal(t, "no-cache", got.Get("Cache-Control"))
	assert.Empty(t, rec.waits)
}

func TestFetchThrottledIsBoundedByMaxAttempts(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	long := Window{Min: 3 * time.Second, Max: 6 * time.Second}
	f, rec := newTestFetcher(t, Options{MaxAttempts: 3, LongBackoff: long})

	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExhausted))

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, OutcomeThrottled, fe.Outcome)
	assert.Equal(t, 3, fe.Attempts)
	assert.Equal(t, http.StatusTooManyRequests, fe.Status)
	assert.EqualValues(t, 3, hits.Load())

	// no wait after the final attempt
	require.Len(t, rec.waits, 2)
	for _, w := range rec.waits {
		assert.GreaterOrEqual(t, w, long.Min)
		assert.Less(t, w, long.Max)
	}
}

func TestFetchRetriesShortBody(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			_, _ = w.Write([]byte("tiny"))
			return
		}
		_, _ = w.Write([]byte(strings.Repeat("x", 600)))
	}))
	t.Cleanup(srv.Close)

	short := Window{Min: time.Second, Max: 3 * time.Second}
	f, rec := newTestFetcher(t, Options{MinBodyBytes: 500, ShortBackoff: short})

	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Attempts)
	assert.Len(t, res.Text, 600)
	require.Len(t, rec.waits, 1)
	assert.GreaterOrEqual(t, rec.waits[0], short.Min)
	assert.Less(t, rec.waits[0], short.Max)
}

func TestFetchNotFoundIsTerminal(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	f, rec := newTestFetcher(t, Options{MaxAttempts: 5})
	_, err := f.Fetch(context.Background(), srv.URL)

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, OutcomeFatal, fe.Outcome)
	assert.Equal(t, 1, fe.Attempts)
	assert.EqualValues(t, 1, hits.Load())
	assert.Empty(t, rec.waits)
}

func TestFetchServerErrorUsesShortWindow(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	short := Window{Min: time.Second, Max: 2 * time.Second}
	f, rec := newTestFetcher(t, Options{MaxAttempts: 2, ShortBackoff: short})

	_, err := f.Fetch(context.Background(), srv.URL)
	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, OutcomeTransport, fe.Outcome)
	require.Len(t, rec.waits, 1)
	assert.Less(t, rec.waits[0], short.Max)
}

func TestFetchRejectsUnsupportedScheme(t *testing.T) {
	t.Parallel()

	f, _ := newTestFetcher(t, Options{})
	_, err := f.Fetch(context.Background(), "ftp://example.com/file")

	var fe *FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, OutcomeFatal, fe.Outcome)
	assert.Equal(t, 1, fe.Attempts)
}

func TestFetchStopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	f := New(Options{MaxAttempts: 10, LongBackoff: Window{Min: time.Hour, Max: 2 * time.Hour}})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestFetchObservesEveryAttempt(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	var seen []Outcome
	f, _ := newTestFetcher(t, Options{MaxAttempts: 2, Observe: func(o Outcome) { seen = append(seen, o) }})
	_, err := f.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, []Outcome{OutcomeThrottled, OutcomeThrottled}, seen)
}

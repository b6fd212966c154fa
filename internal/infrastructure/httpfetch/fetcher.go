package httpfetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"NewsHarvester/internal/ports"
)

// Outcome classifies a single attempt.
type Outcome string

const (
	OutcomeSuccess   Outcome = "success"
	OutcomeEmpty     Outcome = "retryable-empty"
	OutcomeThrottled Outcome = "retryable-throttled"
	OutcomeTransport Outcome = "transport-timeout"
	OutcomeFatal     Outcome = "fatal"
)

// ErrExhausted marks a fetch that ended without a successful attempt.
var ErrExhausted = errors.New("fetch attempts exhausted")

// FetchError is the terminal failure of a fetch; it carries the last classification.
type FetchError struct {
	URL      string
	Attempts int
	Outcome  Outcome
	Status   int
	Err      error
}

func (e *FetchError) Error() string {
	msg := fmt.Sprintf("fetch %s: %s after %d attempt(s)", e.URL, e.Outcome, e.Attempts)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExhausted}
	}
	return []error{ErrExhausted, e.Err}
}

// Window is a randomized backoff range.
type Window struct {
	Min time.Duration
	Max time.Duration
}

func (w Window) pick() time.Duration {
	if w.Max <= w.Min {
		return w.Min
	}
	return w.Min + time.Duration(rand.Int64N(int64(w.Max-w.Min)))
}

// DefaultUserAgents is the identity pool rotated per attempt.
var DefaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
}

// Options tunes the fetcher; zero values fall back to defaults.
type Options struct {
	Client         *http.Client
	UserAgents     []string
	MaxAttempts    int
	AttemptTimeout time.Duration
	MinBodyBytes   int
	MaxBodyBytes   int64
	ShortBackoff   Window
	LongBackoff    Window
	Encodings      []string
	Logger         *slog.Logger
	// Observe is called once per attempt with its outcome.
	Observe func(Outcome)
}

// Fetcher performs HTTP retrieval with bounded retries and encoding recovery.
type Fetcher struct {
	client         *http.Client
	userAgents     []string
	maxAttempts    int
	attemptTimeout time.Duration
	minBody        int
	maxBody        int64
	short          Window
	long           Window
	encodings      []string
	logger         *slog.Logger
	observe        func(Outcome)
	sleep          func(ctx context.Context, d time.Duration) error
}

var _ ports.Fetcher = (*Fetcher)(nil)

// New builds a fetcher; three attempts, 30s per attempt and 500 bytes minimum by default.
func New(opts Options) *Fetcher {
	f := &Fetcher{
		client:         opts.Client,
		userAgents:     opts.UserAgents,
		maxAttempts:    opts.MaxAttempts,
		attemptTimeout: opts.AttemptTimeout,
		minBody:        opts.MinBodyBytes,
		maxBody:        opts.MaxBodyBytes,
		short:          opts.ShortBackoff,
		long:           opts.LongBackoff,
		encodings:      opts.Encodings,
		logger:         opts.Logger,
		observe:        opts.Observe,
		sleep:          sleepContext,
	}
	if f.client == nil {
		f.client = &http.Client{}
	}
	if len(f.userAgents) == 0 {
		f.userAgents = DefaultUserAgents
	}
	if f.maxAttempts < 1 {
		f.maxAttempts = 3
	}
	if f.attemptTimeout <= 0 {
		f.attemptTimeout = 30 * time.Second
	}
	if f.minBody <= 0 {
		f.minBody = 500
	}
	if f.maxBody <= 0 {
		f.maxBody = 8 << 20
	}
	if f.short == (Window{}) {
		f.short = Window{Min: time.Second, Max: 3 * time.Second}
	}
	if f.long == (Window{}) {
		f.long = Window{Min: 3 * time.Second, Max: 6 * time.Second}
	}
	if len(f.encodings) == 0 {
		f.encodings = DefaultEncodings
	}
	return f
}

// Fetch retrieves url with the configured attempt budget.
func (f *Fetcher) Fetch(ctx context.Context, url string) (ports.FetchResult, error) {
	return f.FetchWith(ctx, url, f.maxAttempts, f.attemptTimeout)
}

type fetchState int

const (
	statePending fetchState = iota
	stateFetching
	stateRetryWait
	stateSuccess
	stateExhausted
)

type attemptResult struct {
	outcome     Outcome
	status      int
	body        []byte
	contentType string
	err         error
}

// FetchWith runs the retry state machine:
// Pending -> Fetching -> {Success | RetryWait -> Fetching | Exhausted}.
func (f *Fetcher) FetchWith(ctx context.Context, rawURL string, maxAttempts int, attemptTimeout time.Duration) (ports.FetchResult, error) {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var (
		state    = statePending
		attempts int
		last     attemptResult
	)

	for {
		switch state {
		case statePending:
			state = stateFetching

		case stateFetching:
			attempts++
			last = f.attempt(ctx, rawURL, attemptTimeout)
			if f.observe != nil {
				f.observe(last.outcome)
			}
			switch {
			case last.outcome == OutcomeSuccess:
				state = stateSuccess
			case last.outcome == OutcomeFatal, attempts >= maxAttempts:
				state = stateExhausted
			default:
				state = stateRetryWait
			}

		case stateRetryWait:
			wait := f.backoff(last.outcome)
			f.debug("retry scheduled", "url", rawURL, "outcome", last.outcome, "attempt", attempts, "wait", wait)
			if err := f.sleep(ctx, wait); err != nil {
				last.err = err
				state = stateExhausted
				continue
			}
			state = stateFetching

		case stateSuccess:
			text, enc := Decode(last.body, last.contentType, f.encodings)
			return ports.FetchResult{URL: rawURL, Text: text, Encoding: enc, Attempts: attempts}, nil

		case stateExhausted:
			return ports.FetchResult{}, &FetchError{
				URL:      rawURL,
				Attempts: attempts,
				Outcome:  last.outcome,
				Status:   last.status,
				Err:      last.err,
			}
		}
	}
}

func (f *Fetcher) attempt(ctx context.Context, rawURL string, timeout time.Duration) attemptResult {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return attemptResult{outcome: OutcomeFatal, err: fmt.Errorf("parse url: %w", err)}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return attemptResult{outcome: OutcomeFatal, err: fmt.Errorf("unsupported scheme %q", parsed.Scheme)}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return attemptResult{outcome: OutcomeFatal, err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgents[rand.IntN(len(f.userAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return attemptResult{outcome: OutcomeTransport, err: fmt.Errorf("request document: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return attemptResult{outcome: OutcomeTransport, status: resp.StatusCode, err: fmt.Errorf("read body: %w", err)}
	}

	res := attemptResult{status: resp.StatusCode, body: body, contentType: resp.Header.Get("Content-Type")}
	switch code := resp.StatusCode; {
	case code == http.StatusServiceUnavailable, code == http.StatusTooManyRequests, code == http.StatusForbidden:
		res.outcome = OutcomeThrottled
	case code >= 200 && code < 300:
		if len(body) < f.minBody {
			res.outcome = OutcomeEmpty
			res.err = fmt.Errorf("body too short: %d bytes", len(body))
		} else {
			res.outcome = OutcomeSuccess
		}
	case code >= 500:
		res.outcome = OutcomeTransport
	default:
		res.outcome = OutcomeFatal
		res.err = fmt.Errorf("unexpected status %s", resp.Status)
	}
	return res
}

func (f *Fetcher) backoff(outcome Outcome) time.Duration {
	if outcome == OutcomeThrottled {
		return f.long.pick()
	}
	return f.short.pick()
}

func (f *Fetcher) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

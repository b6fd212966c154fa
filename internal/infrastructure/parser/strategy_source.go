package parser

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/infrastructure/httpfetch"
	"NewsHarvester/internal/ports"
	"NewsHarvester/internal/scanner"
)

const defaultMaxItemsPerSource = 100

// Validator accepts or rejects a normalized candidate.
type Validator interface {
	Validate(title, url string) (string, bool)
}

// StrategySource implements ArticleSource by trying each registered scanner
// in the source's chain; the first one that yields items wins.
type StrategySource struct {
	registry  *scanner.Registry
	validator Validator
	maxItems  int
	logger    *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with the validator.
func NewStrategySource(reg *scanner.Registry, validator Validator, maxItems int, log *slog.Logger) *StrategySource {
	if maxItems <= 0 {
		maxItems = defaultMaxItemsPerSource
	}
	if log != nil {
		log = log.With("component", "strategy_source")
	}
	return &StrategySource{
		registry:  reg,
		validator: validator,
		maxItems:  maxItems,
		logger:    log,
	}
}

// Harvest runs the strategy chain for src. Errors of strategies that lost to
// a later winner are dropped; anti-bot warnings are always kept.
func (s *StrategySource) Harvest(ctx context.Context, src domain.Source, crawled time.Time) ports.SourceHarvest {
	out := ports.SourceHarvest{Source: src}
	var failures []domain.SourceError

	for _, name := range scanner.Chain(src) {
		strategy, err := s.registry.Resolve(name)
		if err != nil {
			failures = append(failures, sourceError(ctx, src.Name, name, err))
			continue
		}

		s.debug("scan source", "source", src.Name, "strategy", name)
		res, err := strategy.Scan(ctx, src)
		if res.Blocked {
			out.Errors = append(out.Errors, domain.SourceError{
				Source:  src.Name,
				Stage:   name,
				Kind:    domain.ErrorBlocked,
				Message: "page looks like an anti-bot interstitial",
			})
		}
		if err != nil {
			failures = append(failures, sourceError(ctx, src.Name, name, err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if len(res.Items) == 0 {
			s.debug("strategy yielded nothing", "source", src.Name, "strategy", name)
			continue
		}

		out.Strategy = name
		s.accept(&out, res.Items, crawled)
		s.debug("source harvested", "source", src.Name, "strategy", name,
			"candidates", out.Stats.Candidates, "valid", out.Stats.Valid)
		return out
	}

	out.Errors = append(out.Errors, failures...)
	return out
}

func (s *StrategySource) accept(out *ports.SourceHarvest, items []domain.RawItem, crawled time.Time) {
	for _, item := range items {
		if len(out.Articles) >= s.maxItems {
			return
		}
		out.Stats.Candidates++

		link, ok := NormalizeURL(item.Href, out.Source.URL)
		if !ok {
			out.Stats.Rejected++
			continue
		}
		title := CleanTitle(item.DisplayText)
		if s.validator != nil {
			title, ok = s.validator.Validate(title, link)
			if !ok {
				out.Stats.Rejected++
				continue
			}
		}

		out.Stats.Valid++
		out.Articles = append(out.Articles, domain.NewArticle(out.Source, title, link, item.Published, crawled))
	}
}

func sourceError(ctx context.Context, source, stage string, err error) domain.SourceError {
	e := domain.SourceError{
		Source:  source,
		Stage:   stage,
		Kind:    domain.ErrorTransient,
		Message: err.Error(),
	}

	var fetchErr *httpfetch.FetchError
	if errors.As(err, &fetchErr) {
		e.Attempts = fetchErr.Attempts
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		e.Kind = domain.ErrorDeadline
	case fetchErr != nil && fetchErr.Outcome == httpfetch.OutcomeThrottled:
		e.Kind = domain.ErrorThrottled
	case fetchErr != nil && fetchErr.Outcome == httpfetch.OutcomeFatal:
		e.Kind = domain.ErrorRejected
	case errors.Is(err, ErrMalformed):
		e.Kind = domain.ErrorMalformed
	}
	return e
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

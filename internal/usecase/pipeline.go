package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"NewsHarvester/internal/classify"
	"NewsHarvester/internal/dedupe"
	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/ports"
	"NewsHarvester/internal/signal"
)

// Recorder receives pipeline measurements. A nil Recorder is allowed.
type Recorder interface {
	ObserveRun(mode domain.Mode, d time.Duration)
	ObserveArticles(stage string, n int)
	ObserveSourceError(source string, kind domain.ErrorKind)
}

// Article stages reported to the Recorder.
const (
	StageCandidate = "candidate"
	StageValid     = "valid"
	StageRejected  = "rejected"
	StageDuplicate = "duplicate"
	StageEmitted   = "emitted"
)

// PipelineOptions tunes one batch run; zero values fall back to defaults.
type PipelineOptions struct {
	Mode           domain.Mode
	Concurrency    int
	SourceTimeout  time.Duration
	LaunchInterval time.Duration
	Location       *time.Location
	DedupePolicy   dedupe.Policy
	TitlePrefixLen int
	TopArticles    int
	RiskArticles   int
	RiskCategory   string
}

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Sources    []domain.Source
	Source     ports.ArticleSource
	History    ports.HistoryStore
	Notifier   ports.Notifier
	Classifier *classify.Classifier
	Signals    *signal.Extractor
	Metrics    Recorder
	Logger     *slog.Logger
	Options    PipelineOptions
}

// Pipeline implements the ingestion workflow: harvest every source, dedupe
// against the prior batch, classify, score and persist.
type Pipeline struct {
	sources    []domain.Source
	source     ports.ArticleSource
	history    ports.HistoryStore
	notifier   ports.Notifier
	classifier *classify.Classifier
	signals    *signal.Extractor
	metrics    Recorder
	logger     *slog.Logger
	opts       PipelineOptions
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	opts := deps.Options
	if opts.Mode == "" {
		opts.Mode = domain.ModeTech
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 4
	}
	if opts.SourceTimeout <= 0 {
		opts.SourceTimeout = 90 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}

	logger := deps.Logger
	if logger != nil {
		logger = logger.With("component", "pipeline")
	}

	return &Pipeline{
		sources:    deps.Sources,
		source:     deps.Source,
		history:    deps.History,
		notifier:   deps.Notifier,
		classifier: deps.Classifier,
		signals:    deps.Signals,
		metrics:    deps.Metrics,
		logger:     logger,
		opts:       opts,
	}
}

// Sources returns the configured source list.
func (p *Pipeline) Sources() []domain.Source {
	return p.sources
}

// Run executes one batch. Per-source failures end up in Batch.Errors; an
// error is returned only when the run was cancelled or could not be saved.
func (p *Pipeline) Run(ctx context.Context, trigger time.Time) (domain.Batch, error) {
	started := time.Now()
	crawled := trigger.In(p.opts.Location)

	batch := domain.Batch{
		RunID:     uuid.NewString(),
		Mode:      p.opts.Mode,
		BatchTime: crawled,
		BatchDate: crawled.Format(time.DateOnly),
		Errors:    make([]domain.SourceError, 0),
	}
	p.info("batch started", "run_id", batch.RunID, "mode", batch.Mode, "sources", len(p.sources))

	prior := p.loadPrior(ctx, &batch)

	harvests, err := p.harvest(ctx, crawled)
	if err != nil {
		return batch, fmt.Errorf("harvest sources: %w", err)
	}

	var collected []domain.Article
	for _, h := range harvests {
		batch.Stats.Sources++
		batch.Stats.Candidates += h.Stats.Candidates
		batch.Stats.Valid += h.Stats.Valid
		batch.Stats.Rejected += h.Stats.Rejected
		if h.Strategy == "" && len(h.Errors) > 0 {
			batch.Stats.SourcesFailed++
		}
		for _, e := range h.Errors {
			p.warn("source error", "source", e.Source, "stage", e.Stage, "kind", e.Kind, "error", e.Message)
			p.observeSourceError(e)
		}
		batch.Errors = append(batch.Errors, h.Errors...)
		collected = append(collected, h.Articles...)
	}

	d := dedupe.New(p.opts.DedupePolicy, p.opts.TitlePrefixLen)
	d.Seed(prior)
	unique := d.Dedupe(collected)
	batch.Stats.Duplicates = len(collected) - len(unique)
	batch.Stats.PriorSeeded = d.Seeded()

	for i, a := range unique {
		unique[i] = p.enrich(a)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].Score > unique[j].Score
	})

	p.summarize(&batch, unique)
	p.observeArticles(batch)

	if p.history != nil {
		if err := p.history.SaveBatch(ctx, batch); err != nil {
			return batch, fmt.Errorf("save batch: %w", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishSummary(ctx, Summary(batch, 5)); err != nil {
			p.warn("publish summary failed", "error", err)
		}
	}

	elapsed := time.Since(started)
	if p.metrics != nil {
		p.metrics.ObserveRun(p.opts.Mode, elapsed)
	}
	p.info("batch finished", "run_id", batch.RunID, "articles", batch.TotalArticles,
		"duplicates", batch.Stats.Duplicates, "errors", len(batch.Errors), "elapsed", elapsed)
	return batch, nil
}

func (p *Pipeline) loadPrior(ctx context.Context, batch *domain.Batch) []domain.Article {
	if p.history == nil {
		return nil
	}
	prior, err := p.history.LoadPrior(ctx)
	if err != nil {
		e := domain.SourceError{Source: "history", Stage: "load", Kind: domain.ErrorHistory, Message: err.Error()}
		p.warn("prior batch unavailable", "error", err)
		p.observeSourceError(e)
		batch.Errors = append(batch.Errors, e)
		return nil
	}
	p.debug("prior batch loaded", "articles", len(prior))
	return prior
}

// harvest fans sources out over a bounded pool. Every source writes its own
// slot, so the output order is the configured order.
func (p *Pipeline) harvest(ctx context.Context, crawled time.Time) ([]ports.SourceHarvest, error) {
	results := make([]ports.SourceHarvest, len(p.sources))
	if p.source == nil {
		for i, src := range p.sources {
			results[i] = ports.SourceHarvest{Source: src}
		}
		return results, nil
	}

	limit := rate.Inf
	if p.opts.LaunchInterval > 0 {
		limit = rate.Every(p.opts.LaunchInterval)
	}
	limiter := rate.NewLimiter(limit, 1)

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)

	var launchErr error
	for i, src := range p.sources {
		if err := limiter.Wait(ctx); err != nil {
			launchErr = err
			break
		}
		g.Go(func() error {
			sctx, cancel := context.WithTimeout(ctx, p.opts.SourceTimeout)
			defer cancel()
			results[i] = p.source.Harvest(sctx, src, crawled)
			return nil
		})
	}
	_ = g.Wait()

	if launchErr != nil {
		return nil, launchErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (p *Pipeline) enrich(a domain.Article) domain.Article {
	if p.signals != nil {
		a = p.signals.Enrich(a)
	}
	if p.classifier == nil {
		return a.Classified(nil, 1, domain.FallbackCategory)
	}
	return p.classifier.Apply(a)
}

func (p *Pipeline) observeSourceError(e domain.SourceError) {
	if p.metrics != nil {
		p.metrics.ObserveSourceError(e.Source, e.Kind)
	}
}

func (p *Pipeline) observeArticles(batch domain.Batch) {
	if p.metrics == nil {
		return
	}
	p.metrics.ObserveArticles(StageCandidate, batch.Stats.Candidates)
	p.metrics.ObserveArticles(StageValid, batch.Stats.Valid)
	p.metrics.ObserveArticles(StageRejected, batch.Stats.Rejected)
	p.metrics.ObserveArticles(StageDuplicate, batch.Stats.Duplicates)
	p.metrics.ObserveArticles(StageEmitted, batch.TotalArticles)
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

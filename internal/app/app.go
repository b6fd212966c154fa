package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"NewsHarvester/internal/classify"
	"NewsHarvester/internal/config"
	"NewsHarvester/internal/dedupe"
	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/infrastructure/httpfetch"
	"NewsHarvester/internal/infrastructure/metrics"
	"NewsHarvester/internal/infrastructure/parser"
	"NewsHarvester/internal/infrastructure/scheduler"
	"NewsHarvester/internal/infrastructure/storage"
	"NewsHarvester/internal/infrastructure/telegram"
	"NewsHarvester/internal/lexicon"
	"NewsHarvester/internal/logging"
	"NewsHarvester/internal/ports"
	"NewsHarvester/internal/scanner"
	"NewsHarvester/internal/signal"
	"NewsHarvester/internal/usecase"
	"NewsHarvester/internal/validate"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
	metrics   *metrics.Metrics
	db        *sql.DB
}

// New builds the runnable application. The caller must Close it.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(logging.Options{
			Level:      cfg.Logging.Level,
			File:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		})
	}

	lex, err := lexicon.Load(cfg.LexiconFile, lexicon.ForMode(cfg.Mode))
	if err != nil {
		return nil, err
	}

	m := metrics.New()

	fetcher := httpfetch.New(httpfetch.Options{
		UserAgents:     cfg.Fetch.UserAgents,
		MaxAttempts:    cfg.Fetch.MaxAttempts,
		AttemptTimeout: cfg.Fetch.AttemptTimeout,
		MinBodyBytes:   cfg.Fetch.MinBodyBytes,
		ShortBackoff:   httpfetch.Window(cfg.Fetch.ShortBackoff),
		LongBackoff:    httpfetch.Window(cfg.Fetch.LongBackoff),
		Encodings:      cfg.Fetch.Encodings,
		Logger:         baseLogger.With("component", "fetcher"),
		Observe:        m.ObserveFetch,
	})

	loc := cfg.Pipeline.Location()
	registry := scanner.NewRegistry(
		parser.NewFeedScanner(fetcher, cfg.Pipeline.MaxFeedItems, loc),
		parser.NewMarkupScanner(fetcher, cfg.Pipeline.MaxAnchors),
	)

	validator := validate.New(validate.Rules{
		MinTitleLen:      cfg.Validation.MinTitleLen,
		MaxTitleLen:      cfg.Validation.MaxTitleLen,
		MinURLLen:        cfg.Validation.MinURLLen,
		TruncateOverlong: cfg.Validation.OverlongPolicy == config.OverlongTruncate,
		Denylist:         append(append([]string(nil), lex.Denylist...), cfg.Validation.Denylist...),
		Required:         lex.Required,
	})

	source := parser.NewStrategySource(registry, validator, cfg.Pipeline.MaxItemsPerSource, baseLogger.With("component", "source"))

	history, db, err := newHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		tg := cfg.Notifications.Telegram
		notifier = telegram.NewNotifier(tg.BotToken, tg.ChatID, tg.Endpoint)
	}

	var signals *signal.Extractor
	if cfg.Mode == domain.ModeFinance {
		signals = signal.New(lex.Signals)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:    cfg.DomainSources(),
		Source:     source,
		History:    history,
		Notifier:   notifier,
		Classifier: classify.New(lex),
		Signals:    signals,
		Metrics:    m,
		Logger:     baseLogger,
		Options: usecase.PipelineOptions{
			Mode:           cfg.Mode,
			Concurrency:    cfg.Pipeline.Concurrency,
			SourceTimeout:  cfg.Pipeline.SourceTimeout,
			LaunchInterval: cfg.Pipeline.LaunchInterval,
			Location:       loc,
			DedupePolicy:   dedupe.Policy(cfg.Dedupe.Policy),
			TitlePrefixLen: cfg.Dedupe.TitlePrefixLen,
			TopArticles:    cfg.Pipeline.TopArticles,
			RiskArticles:   cfg.Pipeline.RiskArticles,
			RiskCategory:   lex.RiskCategory,
		},
	})

	cron := scheduler.NewCronScheduler(cfg.Scheduler.CronExpression, cfg.Scheduler.Location(), baseLogger)

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		pipeline:  pipeline,
		scheduler: usecase.NewScheduler(cron, pipeline, baseLogger),
		metrics:   m,
		db:        db,
	}, nil
}

func newHistory(ctx context.Context, cfg config.Config) (ports.HistoryStore, *sql.DB, error) {
	if cfg.Storage.Driver != config.StoragePostgres {
		return storage.NewFileStore(cfg.Storage.Dir, cfg.Mode, cfg.Pipeline.Location()), nil, nil
	}

	db, err := storage.OpenPostgres(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, nil, err
	}
	repo := storage.NewPostgresRepository(db, cfg.Mode, cfg.Database.HistoryDays, cfg.Pipeline.Location())
	if err := repo.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, db, nil
}

// Sources lists the configured sources in launch order.
func (a *Application) Sources() []domain.Source {
	return a.pipeline.Sources()
}

// Run performs a single batch and returns it.
func (a *Application) Run(ctx context.Context) (domain.Batch, error) {
	now := time.Now().In(a.cfg.Pipeline.Location())
	return a.pipeline.Run(ctx, now)
}

// Serve runs batches on the cron schedule and exposes metrics until ctx ends.
func (a *Application) Serve(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.cfg.Metrics.Addr != "" {
		g.Go(func() error {
			return a.metrics.Serve(gctx, a.cfg.Metrics.Addr, a.cfg.Metrics.Path, a.logger)
		})
	}

	g.Go(func() error {
		if err := a.scheduler.Start(gctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression, "mode", a.cfg.Mode)

		<-gctx.Done()

		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return a.scheduler.Stop(stopCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases the database handle, if any.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

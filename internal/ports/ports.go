package ports

import (
	"context"
	"time"

	"NewsHarvester/internal/domain"
)

// FetchResult is a decoded response body.
type FetchResult struct {
	URL      string
	Text     string
	Encoding string
	Attempts int
}

// Fetcher retrieves a single URL with retry and encoding recovery.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (FetchResult, error)
}

// ArticleSource turns one configured source into validated articles. Failures
// are reported in SourceHarvest.Errors and never abort the batch.
type ArticleSource interface {
	Harvest(ctx context.Context, src domain.Source, crawled time.Time) SourceHarvest
}

// SourceHarvest is the validated output of one source.
type SourceHarvest struct {
	Source   domain.Source
	Strategy string
	Articles []domain.Article
	Stats    HarvestStats
	Errors   []domain.SourceError
}

// HarvestStats counts candidates for one source.
type HarvestStats struct {
	Candidates int
	Valid      int
	Rejected   int
}

// HistoryStore reads prior batches for cross-run deduplication and persists new ones.
type HistoryStore interface {
	LoadPrior(ctx context.Context) ([]domain.Article, error)
	SaveBatch(ctx context.Context, batch domain.Batch) error
}

// Notifier publishes a short run summary.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}

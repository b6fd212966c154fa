package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/ports"
)

const (
	articlesTable   = "harvested_articles"
	insertChunkSize = 500
)

const schema = `CREATE TABLE IF NOT EXISTS harvested_articles (
    id          TEXT        NOT NULL,
    mode        TEXT        NOT NULL,
    run_id      TEXT        NOT NULL,
    title       TEXT        NOT NULL,
    url         TEXT        NOT NULL,
    source      TEXT        NOT NULL,
    categories  TEXT[]      NOT NULL DEFAULT '{}',
    score       INTEGER     NOT NULL,
    crawl_time  TIMESTAMPTZ NOT NULL,
    payload     JSONB       NOT NULL,
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (mode, id)
);
CREATE INDEX IF NOT EXISTS harvested_articles_crawl_time_idx ON harvested_articles (mode, crawl_time DESC);`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository keeps one row per article id and serves the recent
// window as the prior batch.
type PostgresRepository struct {
	db      *sql.DB
	mode    domain.Mode
	window  time.Duration
	loc     *time.Location
	nowFunc func() time.Time
}

var _ ports.HistoryStore = (*PostgresRepository)(nil)

// NewPostgresRepository wires a sql.DB implementation; historyDays bounds
// the prior window (default 7) and loc anchors stored publish times.
func NewPostgresRepository(db *sql.DB, mode domain.Mode, historyDays int, loc *time.Location) *PostgresRepository {
	if historyDays <= 0 {
		historyDays = 7
	}
	return &PostgresRepository{
		db:      db,
		mode:    mode,
		window:  time.Duration(historyDays) * 24 * time.Hour,
		loc:     loc,
		nowFunc: time.Now,
	}
}

// OpenPostgres opens and pings a lib/pq connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the articles table when missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// LoadPrior returns articles of this mode crawled inside the history window.
func (r *PostgresRepository) LoadPrior(ctx context.Context) ([]domain.Article, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := r.priorQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("build prior query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prior: %w", err)
	}

	var result []domain.Article
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan payload: %w", err)
		}
		var a domain.Article
		if err := json.Unmarshal(payload, &a); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		result = append(result, a)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return anchorPublishTimes(result, r.loc), nil
}

// SaveBatch upserts every article of the batch in one transaction.
func (r *PostgresRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	if r.db == nil || len(batch.Articles) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for start := 0; start < len(batch.Articles); start += insertChunkSize {
		end := min(start+insertChunkSize, len(batch.Articles))
		insert, err := r.upsert(batch.RunID, batch.Articles[start:end])
		if err != nil {
			return err
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build upsert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert articles: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *PostgresRepository) priorQuery() sq.SelectBuilder {
	since := r.nowFunc().Add(-r.window)
	return psql.Select("payload").
		From(articlesTable).
		Where(sq.Eq{"mode": string(r.mode)}).
		Where(sq.GtOrEq{"crawl_time": since}).
		OrderBy("crawl_time DESC")
}

func (r *PostgresRepository) upsert(runID string, articles []domain.Article) (sq.InsertBuilder, error) {
	insert := psql.Insert(articlesTable).
		Columns("id", "mode", "run_id", "title", "url", "source", "categories", "score", "crawl_time", "payload")

	for _, a := range articles {
		payload, err := json.Marshal(a)
		if err != nil {
			return insert, fmt.Errorf("encode article %s: %w", a.ID, err)
		}
		insert = insert.Values(a.ID, string(r.mode), runID, a.Title, a.URL, a.SourceName,
			pq.Array(a.Categories), a.Score, a.CrawlTime, string(payload))
	}

	return insert.Suffix(`ON CONFLICT (mode, id) DO UPDATE
SET run_id = EXCLUDED.run_id,
    categories = EXCLUDED.categories,
    score = EXCLUDED.score,
    payload = EXCLUDED.payload,
    updated_at = NOW()`), nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/ports"
)

const fileTimestamp = "20060102_150405"

// FileStore keeps each batch as an indented JSON file named after its mode
// and batch time. The newest file of the same mode is the prior batch.
type FileStore struct {
	dir    string
	prefix string
	loc    *time.Location
}

var _ ports.HistoryStore = (*FileStore)(nil)

// NewFileStore stores batches of mode under dir. Publish times read back
// are anchored in loc, the zone they were written in.
func NewFileStore(dir string, mode domain.Mode, loc *time.Location) *FileStore {
	return &FileStore{dir: dir, prefix: FilePrefix(mode), loc: loc}
}

// FilePrefix is "finance" for finance batches and "news" otherwise.
func FilePrefix(mode domain.Mode) string {
	if mode == domain.ModeFinance {
		return "finance"
	}
	return "news"
}

// LoadPrior returns the articles of the newest stored batch, or nothing when
// no batch exists yet.
func (s *FileStore) LoadPrior(ctx context.Context) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.latest()
	if err != nil || path == "" {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", path, err)
	}

	var batch struct {
		Articles []domain.Article `json:"articles"`
	}
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, fmt.Errorf("decode batch %s: %w", path, err)
	}
	return anchorPublishTimes(batch.Articles, s.loc), nil
}

// SaveBatch writes the batch atomically through a temp file and rename.
func (s *FileStore) SaveBatch(ctx context.Context, batch domain.Batch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create batch dir: %w", err)
	}

	raw, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("encode batch: %w", err)
	}

	path := s.Path(batch)
	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write batch: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish batch: %w", err)
	}
	return nil
}

// Path returns the file a batch is written to.
func (s *FileStore) Path(batch domain.Batch) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", s.prefix, batch.BatchTime.Format(fileTimestamp)))
}

func (s *FileStore) latest() (string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("list batch dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, s.prefix+"_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Strings(names)
	return filepath.Join(s.dir, names[len(names)-1]), nil
}

func anchorPublishTimes(articles []domain.Article, loc *time.Location) []domain.Article {
	if loc == nil {
		return articles
	}
	for i := range articles {
		if articles[i].PublishTime != nil {
			ts := articles[i].PublishTime.Anchor(loc)
			articles[i].PublishTime = &ts
		}
	}
	return articles
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsHarvester/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "harvester.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsUseBuiltInTechSources(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(modeEnv, "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, domain.ModeTech, cfg.Mode)
	assert.Equal(t, 3, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 500, cfg.Fetch.MinBodyBytes)
	assert.Equal(t, 4, cfg.Pipeline.Concurrency)
	assert.Equal(t, 90*time.Second, cfg.Pipeline.SourceTimeout)
	assert.Equal(t, DedupeFingerprintPrefix, cfg.Dedupe.Policy)
	assert.Equal(t, OverlongReject, cfg.Validation.OverlongPolicy)
	require.NotEmpty(t, cfg.Sources)
	assert.Equal(t, "IT之家", cfg.Sources[0].Name)

	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, cfg.Pipeline.Location()).Zone()
	assert.Equal(t, 8*3600, offset)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(modeEnv, "")
	t.Setenv(telegramTokenEnv, "token-from-env")

	path := writeConfig(t, `
mode: finance
fetch:
  maxAttempts: 5
  longBackoff:
    min: 2s
    max: 4s
pipeline:
  concurrency: 8
  sourceTimeout: 45s
dedupe:
  policy: fingerprint
  titlePrefixLen: 20
validation:
  overlongPolicy: truncate
notifications:
  telegram:
    chatId: "42"
sources:
  - name: Example
    url: https://example.com
    priority: HIGH
    categories: [股市]
    feedUrl: https://example.com/feed
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeFinance, cfg.Mode)
	assert.Equal(t, 5, cfg.Fetch.MaxAttempts)
	assert.Equal(t, BackoffWindow{Min: 2 * time.Second, Max: 4 * time.Second}, cfg.Fetch.LongBackoff)
	assert.Equal(t, BackoffWindow{Min: time.Second, Max: 3 * time.Second}, cfg.Fetch.ShortBackoff)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.Equal(t, 45*time.Second, cfg.Pipeline.SourceTimeout)
	assert.Equal(t, DedupeFingerprint, cfg.Dedupe.Policy)
	assert.Equal(t, 20, cfg.Dedupe.TitlePrefixLen)
	assert.Equal(t, OverlongTruncate, cfg.Validation.OverlongPolicy)
	assert.True(t, cfg.Notifications.Telegram.Enabled())

	sources := cfg.DomainSources()
	require.Len(t, sources, 1)
	assert.Equal(t, domain.PriorityHigh, sources[0].Priority)
	assert.Equal(t, "https://example.com/feed", sources[0].FeedURL)
}

func TestLoadFailsOnUnreadableFile(t *testing.T) {
	t.Setenv(configPathEnv, "")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestModeEnvSelectsFinanceDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(modeEnv, "FINANCE")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, domain.ModeFinance, cfg.Mode)
	assert.Equal(t, "新浪财经", cfg.Sources[0].Name)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() Config {
		cfg := defaultConfig()
		cfg.Sources = DefaultSources(domain.ModeTech)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "no sources", mutate: func(c *Config) { c.Sources = nil }, want: ErrNoSources},
		{name: "bad mode", mutate: func(c *Config) { c.Mode = "sports" }, want: ErrInvalid},
		{name: "relative url", mutate: func(c *Config) { c.Sources[0].URL = "/news" }, want: ErrInvalid},
		{name: "duplicate names", mutate: func(c *Config) { c.Sources[1].Name = c.Sources[0].Name }, want: ErrInvalid},
		{name: "zero attempts", mutate: func(c *Config) { c.Fetch.MaxAttempts = 0 }, want: ErrInvalid},
		{name: "unknown dedupe", mutate: func(c *Config) { c.Dedupe.Policy = "fuzzy" }, want: ErrInvalid},
		{name: "unknown overlong", mutate: func(c *Config) { c.Validation.OverlongPolicy = "wrap" }, want: ErrInvalid},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Storage.Driver = StoragePostgres }, want: ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestDefaultSourcesAreCopies(t *testing.T) {
	t.Parallel()

	a := DefaultSources(domain.ModeFinance)
	a[0].Categories[0] = "mutated"
	b := DefaultSources(domain.ModeFinance)
	assert.Equal(t, "宏观", b[0].Categories[0])
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"NewsHarvester/internal/domain"
)

const (
	defaultTimezone   = "Asia/Shanghai"
	configPathEnv     = "NEWS_HARVESTER_CONFIG"
	modeEnv           = "NEWS_HARVESTER_MODE"
	logLevelEnv       = "LOG_LEVEL"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
)

var (
	// ErrNoSources is returned when neither the file nor the defaults provide sources.
	ErrNoSources = errors.New("config: no sources configured")
	// ErrInvalid wraps every other validation failure.
	ErrInvalid = errors.New("config: invalid")
)

// Dedupe policies.
const (
	DedupeFingerprint       = "fingerprint"
	DedupeFingerprintPrefix = "fingerprint_prefix"
)

// Over-length title policies.
const (
	OverlongReject   = "reject"
	OverlongTruncate = "truncate"
)

// Storage drivers.
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
)

// Config holds high-level settings required across the application.
type Config struct {
	Mode          domain.Mode        `yaml:"mode"`
	Logging       LoggingConfig      `yaml:"logging"`
	Fetch         FetchConfig        `yaml:"fetch"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Validation    ValidationConfig   `yaml:"validation"`
	Dedupe        DedupeConfig       `yaml:"dedupe"`
	LexiconFile   string             `yaml:"lexiconFile"`
	Storage       StorageConfig      `yaml:"storage"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Metrics       MetricsConfig      `yaml:"metrics"`
	Notifications NotificationConfig `yaml:"notifications"`
	Sources       []SourceConfig     `yaml:"sources"`
}

// LoggingConfig selects level and optional rotating file output.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMb"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// BackoffWindow is a randomized wait range between attempts.
type BackoffWindow struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// FetchConfig tunes the HTTP fetcher.
type FetchConfig struct {
	MaxAttempts    int           `yaml:"maxAttempts"`
	AttemptTimeout time.Duration `yaml:"attemptTimeout"`
	MinBodyBytes   int           `yaml:"minBodyBytes"`
	UserAgents     []string      `yaml:"userAgents"`
	ShortBackoff   BackoffWindow `yaml:"shortBackoff"`
	LongBackoff    BackoffWindow `yaml:"longBackoff"`
	Encodings      []string      `yaml:"encodings"`
}

// PipelineConfig bounds concurrency and output sizes.
type PipelineConfig struct {
	Concurrency       int            `yaml:"concurrency"`
	SourceTimeout     time.Duration  `yaml:"sourceTimeout"`
	LaunchInterval    time.Duration  `yaml:"launchInterval"`
	Timezone          string         `yaml:"timezone"`
	MaxFeedItems      int            `yaml:"maxFeedItems"`
	MaxAnchors        int            `yaml:"maxAnchors"`
	MaxItemsPerSource int            `yaml:"maxItemsPerSource"`
	TopArticles       int            `yaml:"topArticles"`
	RiskArticles      int            `yaml:"riskArticles"`
	location          *time.Location `yaml:"-"`
}

// Location is the reference zone publish times are normalized to.
func (p PipelineConfig) Location() *time.Location {
	if p.location != nil {
		return p.location
	}
	return loadLocation(defaultTimezone)
}

// ValidationConfig holds the structural filter thresholds.
type ValidationConfig struct {
	MinTitleLen    int      `yaml:"minTitleLen"`
	MaxTitleLen    int      `yaml:"maxTitleLen"`
	MinURLLen      int      `yaml:"minUrlLen"`
	OverlongPolicy string   `yaml:"overlongPolicy"`
	Denylist       []string `yaml:"denylist"`
}

// DedupeConfig selects the dedup keys.
type DedupeConfig struct {
	Policy         string `yaml:"policy"`
	TitlePrefixLen int    `yaml:"titlePrefixLen"`
}

// StorageConfig selects where batches are persisted and prior batches are read.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	Dir    string `yaml:"dir"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN         string `yaml:"dsn"`
	HistoryDays int    `yaml:"historyDays"`
}

// SchedulerConfig defines when the pipeline should run.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	return loadLocation(defaultTimezone)
}

// MetricsConfig exposes the Prometheus endpoint; empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
	Endpoint string `yaml:"endpoint"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// SourceConfig describes a single upstream site.
type SourceConfig struct {
	Name       string   `yaml:"name"`
	URL        string   `yaml:"url"`
	Type       string   `yaml:"type"`
	Priority   string   `yaml:"priority"`
	Categories []string `yaml:"categories"`
	FeedURL    string   `yaml:"feedUrl"`
}

// Source converts the YAML entry into the domain value.
func (s SourceConfig) Source() domain.Source {
	return domain.Source{
		Name:       s.Name,
		URL:        s.URL,
		Type:       s.Type,
		Priority:   domain.Priority(strings.ToLower(s.Priority)),
		Categories: append([]string(nil), s.Categories...),
		FeedURL:    s.FeedURL,
	}
}

// DomainSources returns the configured sources in order.
func (c Config) DomainSources() []domain.Source {
	out := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		out = append(out, s.Source())
	}
	return out
}

// Load reads .env and the YAML file (path, else $NEWS_HARVESTER_CONFIG), merges
// it over defaults, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		var fileCfg Config
		if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		cfg = mergeConfig(cfg, fileCfg)
	}

	cfg.applyEnvOverrides()

	if len(cfg.Sources) == 0 {
		cfg.Sources = DefaultSources(cfg.Mode)
	}

	if err := cfg.bindTimezones(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(modeEnv); v != "" {
		c.Mode = domain.Mode(strings.ToLower(v))
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
}

func (c *Config) bindTimezones() error {
	loc, err := resolveLocation(c.Pipeline.Timezone)
	if err != nil {
		return fmt.Errorf("%w: pipeline timezone %q: %v", ErrInvalid, c.Pipeline.Timezone, err)
	}
	c.Pipeline.location = loc

	loc, err = resolveLocation(c.Scheduler.Timezone)
	if err != nil {
		return fmt.Errorf("%w: scheduler timezone %q: %v", ErrInvalid, c.Scheduler.Timezone, err)
	}
	c.Scheduler.location = loc
	return nil
}

// resolveLocation falls back to a fixed UTC+8 zone when the default zone is
// missing from the host tz database.
func resolveLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil && name == defaultTimezone {
		return time.FixedZone("UTC+8", 8*3600), nil
	}
	return loc, err
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Mode != domain.ModeTech && c.Mode != domain.ModeFinance {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalid, c.Mode)
	}
	if len(c.Sources) == 0 {
		return ErrNoSources
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, s := range c.Sources {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("%w: source #%d has no name", ErrInvalid, i)
		}
		if seen[s.Name] {
			return fmt.Errorf("%w: duplicate source %q", ErrInvalid, s.Name)
		}
		seen[s.Name] = true
		if !isHTTPURL(s.URL) {
			return fmt.Errorf("%w: source %q has invalid url %q", ErrInvalid, s.Name, s.URL)
		}
		if s.FeedURL != "" && !isHTTPURL(s.FeedURL) {
			return fmt.Errorf("%w: source %q has invalid feed url %q", ErrInvalid, s.Name, s.FeedURL)
		}
	}

	switch {
	case c.Fetch.MaxAttempts < 1:
		return fmt.Errorf("%w: fetch.maxAttempts must be >= 1", ErrInvalid)
	case c.Fetch.ShortBackoff.Max < c.Fetch.ShortBackoff.Min, c.Fetch.LongBackoff.Max < c.Fetch.LongBackoff.Min:
		return fmt.Errorf("%w: backoff max below min", ErrInvalid)
	case c.Pipeline.Concurrency < 1:
		return fmt.Errorf("%w: pipeline.concurrency must be >= 1", ErrInvalid)
	case c.Validation.MinTitleLen > c.Validation.MaxTitleLen:
		return fmt.Errorf("%w: validation.minTitleLen exceeds maxTitleLen", ErrInvalid)
	}

	switch c.Validation.OverlongPolicy {
	case OverlongReject, OverlongTruncate:
	default:
		return fmt.Errorf("%w: unknown overlong policy %q", ErrInvalid, c.Validation.OverlongPolicy)
	}

	switch c.Dedupe.Policy {
	case DedupeFingerprint, DedupeFingerprintPrefix:
	default:
		return fmt.Errorf("%w: unknown dedupe policy %q", ErrInvalid, c.Dedupe.Policy)
	}

	switch c.Storage.Driver {
	case StorageFile:
		if c.Storage.Dir == "" {
			return fmt.Errorf("%w: storage.dir is required for the file driver", ErrInvalid)
		}
	case StoragePostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("%w: database.dsn is required for the postgres driver", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalid, c.Storage.Driver)
	}

	return nil
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func loadLocation(name string) *time.Location {
	loc, err := resolveLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

func mergeConfig(base, override Config) Config {
	if override.Mode != "" {
		base.Mode = domain.Mode(strings.ToLower(string(override.Mode)))
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.File != "" {
		base.Logging.File = override.Logging.File
	}
	if override.Logging.MaxSizeMB > 0 {
		base.Logging.MaxSizeMB = override.Logging.MaxSizeMB
	}
	if override.Logging.MaxBackups > 0 {
		base.Logging.MaxBackups = override.Logging.MaxBackups
	}
	if override.Logging.MaxAgeDays > 0 {
		base.Logging.MaxAgeDays = override.Logging.MaxAgeDays
	}

	if override.Fetch.MaxAttempts != 0 {
		base.Fetch.MaxAttempts = override.Fetch.MaxAttempts
	}
	if override.Fetch.AttemptTimeout > 0 {
		base.Fetch.AttemptTimeout = override.Fetch.AttemptTimeout
	}
	if override.Fetch.MinBodyBytes > 0 {
		base.Fetch.MinBodyBytes = override.Fetch.MinBodyBytes
	}
	if len(override.Fetch.UserAgents) > 0 {
		base.Fetch.UserAgents = override.Fetch.UserAgents
	}
	if override.Fetch.ShortBackoff != (BackoffWindow{}) {
		base.Fetch.ShortBackoff = override.Fetch.ShortBackoff
	}
	if override.Fetch.LongBackoff != (BackoffWindow{}) {
		base.Fetch.LongBackoff = override.Fetch.LongBackoff
	}
	if len(override.Fetch.Encodings) > 0 {
		base.Fetch.Encodings = override.Fetch.Encodings
	}

	if override.Pipeline.Concurrency != 0 {
		base.Pipeline.Concurrency = override.Pipeline.Concurrency
	}
	if override.Pipeline.SourceTimeout > 0 {
		base.Pipeline.SourceTimeout = override.Pipeline.SourceTimeout
	}
	if override.Pipeline.LaunchInterval > 0 {
		base.Pipeline.LaunchInterval = override.Pipeline.LaunchInterval
	}
	if override.Pipeline.Timezone != "" {
		base.Pipeline.Timezone = override.Pipeline.Timezone
	}
	if override.Pipeline.MaxFeedItems > 0 {
		base.Pipeline.MaxFeedItems = override.Pipeline.MaxFeedItems
	}
	if override.Pipeline.MaxAnchors > 0 {
		base.Pipeline.MaxAnchors = override.Pipeline.MaxAnchors
	}
	if override.Pipeline.MaxItemsPerSource > 0 {
		base.Pipeline.MaxItemsPerSource = override.Pipeline.MaxItemsPerSource
	}
	if override.Pipeline.TopArticles > 0 {
		base.Pipeline.TopArticles = override.Pipeline.TopArticles
	}
	if override.Pipeline.RiskArticles > 0 {
		base.Pipeline.RiskArticles = override.Pipeline.RiskArticles
	}

	if override.Validation.MinTitleLen > 0 {
		base.Validation.MinTitleLen = override.Validation.MinTitleLen
	}
	if override.Validation.MaxTitleLen > 0 {
		base.Validation.MaxTitleLen = override.Validation.MaxTitleLen
	}
	if override.Validation.MinURLLen > 0 {
		base.Validation.MinURLLen = override.Validation.MinURLLen
	}
	if override.Validation.OverlongPolicy != "" {
		base.Validation.OverlongPolicy = strings.ToLower(override.Validation.OverlongPolicy)
	}
	if len(override.Validation.Denylist) > 0 {
		base.Validation.Denylist = override.Validation.Denylist
	}

	if override.Dedupe.Policy != "" {
		base.Dedupe.Policy = strings.ToLower(override.Dedupe.Policy)
	}
	if override.Dedupe.TitlePrefixLen > 0 {
		base.Dedupe.TitlePrefixLen = override.Dedupe.TitlePrefixLen
	}

	if override.LexiconFile != "" {
		base.LexiconFile = override.LexiconFile
	}

	if override.Storage.Driver != "" {
		base.Storage.Driver = strings.ToLower(override.Storage.Driver)
	}
	if override.Storage.Dir != "" {
		base.Storage.Dir = override.Storage.Dir
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}
	if override.Database.HistoryDays > 0 {
		base.Database.HistoryDays = override.Database.HistoryDays
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}
	if override.Metrics.Path != "" {
		base.Metrics.Path = override.Metrics.Path
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}
	if override.Notifications.Telegram.Endpoint != "" {
		base.Notifications.Telegram.Endpoint = override.Notifications.Telegram.Endpoint
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Mode:    domain.ModeTech,
		Logging: LoggingConfig{Level: "info", MaxSizeMB: 50, MaxBackups: 5, MaxAgeDays: 14},
		Fetch: FetchConfig{
			MaxAttempts:    3,
			AttemptTimeout: 30 * time.Second,
			MinBodyBytes:   500,
			ShortBackoff:   BackoffWindow{Min: time.Second, Max: 3 * time.Second},
			LongBackoff:    BackoffWindow{Min: 3 * time.Second, Max: 6 * time.Second},
			Encodings:      []string{"utf-8", "gbk", "gb18030", "latin-1"},
		},
		Pipeline: PipelineConfig{
			Concurrency:       4,
			SourceTimeout:     90 * time.Second,
			LaunchInterval:    500 * time.Millisecond,
			Timezone:          defaultTimezone,
			MaxFeedItems:      50,
			MaxAnchors:        200,
			MaxItemsPerSource: 100,
			TopArticles:       30,
			RiskArticles:      10,
		},
		Validation: ValidationConfig{
			MinTitleLen:    5,
			MaxTitleLen:    200,
			MinURLLen:      10,
			OverlongPolicy: OverlongReject,
		},
		Dedupe:    DedupeConfig{Policy: DedupeFingerprintPrefix, TitlePrefixLen: 30},
		Storage:   StorageConfig{Driver: StorageFile, Dir: "data/batches"},
		Database:  DatabaseConfig{HistoryDays: 7},
		Scheduler: SchedulerConfig{CronExpression: "0 */2 * * *", Timezone: defaultTimezone},
		Metrics:   MetricsConfig{Path: "/metrics"},
		Notifications: NotificationConfig{
			Telegram: TelegramConfig{Endpoint: "https://api.telegram.org"},
		},
	}
}

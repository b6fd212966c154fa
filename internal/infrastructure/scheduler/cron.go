package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"NewsHarvester/internal/ports"
)

// ErrRunning is returned when Start is called twice.
var ErrRunning = errors.New("scheduler already running")

// CronScheduler triggers jobs on a standard five-field cron expression.
// Overlapping runs are skipped rather than queued.
type CronScheduler struct {
	spec   string
	loc    *time.Location
	logger *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler; loc defaults to UTC.
func NewCronScheduler(spec string, loc *time.Location, logger *slog.Logger) *CronScheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger != nil {
		logger = logger.With("component", "cron")
	}
	return &CronScheduler{spec: spec, loc: loc, logger: logger}
}

// Validate parses the expression without scheduling anything.
func Validate(spec string) error {
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("parse cron expression %q: %w", spec, err)
	}
	return nil
}

// Start registers job and begins ticking. The scheduler stops on its own when
// ctx is cancelled.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return ErrRunning
	}

	var logger cron.Logger = cron.DiscardLogger
	if c.logger != nil {
		logger = cronLogger{c.logger}
	}

	runner := cron.New(cron.WithLocation(c.loc), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))
	if _, err := runner.AddFunc(c.spec, func() { job(time.Now().In(c.loc)) }); err != nil {
		return fmt.Errorf("schedule %q: %w", c.spec, err)
	}
	runner.Start()
	c.cron = runner

	if c.logger != nil {
		c.logger.Info("cron started", "spec", c.spec, "next", runner.Entries()[0].Next)
	}

	go func() {
		<-ctx.Done()
		_ = c.Stop(context.Background())
	}()
	return nil
}

// Stop halts scheduling and waits for a running job until ctx expires.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	runner := c.cron
	c.cron = nil
	c.mu.Unlock()

	if runner == nil {
		return nil
	}

	done := runner.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

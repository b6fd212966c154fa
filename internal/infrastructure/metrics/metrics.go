// Package metrics exposes pipeline counters on a dedicated Prometheus registry.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/infrastructure/httpfetch"
	"NewsHarvester/internal/usecase"
)

const namespace = "newsharvester"

// Metrics implements usecase.Recorder and observes fetch attempts.
type Metrics struct {
	registry      *prometheus.Registry
	fetchAttempts *prometheus.CounterVec
	articles      *prometheus.CounterVec
	sourceErrors  *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
	lastRun       *prometheus.GaugeVec
}

var _ usecase.Recorder = (*Metrics)(nil)

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_attempts_total",
			Help:      "HTTP fetch attempts by outcome.",
		}, []string{"outcome"}),
		articles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_total",
			Help:      "Articles counted at each pipeline stage.",
		}, []string{"stage"}),
		sourceErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_errors_total",
			Help:      "Per-source failures by kind.",
		}, []string{"source", "kind"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of one batch run.",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1200},
		}, []string{"mode"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last batch finished.",
		}, []string{"mode"}),
	}

	m.registry.MustRegister(
		m.fetchAttempts,
		m.articles,
		m.sourceErrors,
		m.runDuration,
		m.lastRun,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveFetch matches httpfetch.Options.Observe.
func (m *Metrics) ObserveFetch(outcome httpfetch.Outcome) {
	m.fetchAttempts.WithLabelValues(string(outcome)).Inc()
}

// ObserveRun records a finished batch.
func (m *Metrics) ObserveRun(mode domain.Mode, d time.Duration) {
	m.runDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
	m.lastRun.WithLabelValues(string(mode)).SetToCurrentTime()
}

// ObserveArticles adds n articles to a stage counter.
func (m *Metrics) ObserveArticles(stage string, n int) {
	if n > 0 {
		m.articles.WithLabelValues(stage).Add(float64(n))
	}
}

// ObserveSourceError counts one failure.
func (m *Metrics) ObserveSourceError(source string, kind domain.ErrorKind) {
	m.sourceErrors.WithLabelValues(source, string(kind)).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve exposes the handler on addr at path until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr, path string, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		if logger != nil {
			logger.Info("metrics listening", "addr", addr, "path", path)
		}
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve metrics: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown metrics: %w", err)
		}
		return nil
	}
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/infrastructure/httpfetch"
	"NewsHarvester/internal/usecase"
)

func TestCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveFetch(httpfetch.OutcomeThrottled)
	m.ObserveFetch(httpfetch.OutcomeThrottled)
	m.ObserveFetch(httpfetch.OutcomeSuccess)
	m.ObserveArticles(usecase.StageValid, 7)
	m.ObserveArticles(usecase.StageDuplicate, 0)
	m.ObserveSourceError("机器之心", domain.ErrorThrottled)
	m.ObserveRun(domain.ModeTech, 3*time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchAttempts.WithLabelValues(string(httpfetch.OutcomeThrottled))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchAttempts.WithLabelValues(string(httpfetch.OutcomeSuccess))))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.articles.WithLabelValues(usecase.StageValid)))
	assert.Equal(t, 1, testutil.CollectAndCount(m.articles))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sourceErrors.WithLabelValues("机器之心", string(domain.ErrorThrottled))))
	assert.Equal(t, 1, testutil.CollectAndCount(m.runDuration))
}

func TestHandlerExposesRegistry(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveArticles(usecase.StageEmitted, 3)

	server := httptest.NewServer(m.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `newsharvester_articles_total{stage="emitted"} 3`)
	assert.Contains(t, string(body), "go_goroutines")
}

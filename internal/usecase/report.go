package usecase

import (
	"fmt"
	"sort"
	"strings"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/signal"
)

const (
	topEntities = 20
	topSectors  = 15
)

// summarize fills the batch aggregates from the ranked articles.
func (p *Pipeline) summarize(batch *domain.Batch, ranked []domain.Article) {
	batch.Articles = ranked
	batch.TotalArticles = len(ranked)
	batch.Categories = map[string]int{}
	batch.SourceStats = map[string]int{}

	for _, a := range ranked {
		for _, c := range a.Categories {
			batch.Categories[c]++
		}
		batch.SourceStats[a.SourceName]++
	}

	if n := p.opts.TopArticles; n > 0 {
		batch.TopArticles = head(ranked, n)
	}
	if cat, n := p.opts.RiskCategory, p.opts.RiskArticles; cat != "" && n > 0 {
		var risk []domain.Article
		for _, a := range ranked {
			if len(risk) == n {
				break
			}
			if hasCategory(a, cat) {
				risk = append(risk, a)
			}
		}
		batch.RiskArticles = risk
	}

	if p.signals == nil {
		return
	}

	stats := &domain.SignalStats{}
	companies := newCounter()
	sectors := newCounter()
	for _, a := range ranked {
		if a.MarketSignal != nil {
			stats.Add(a.MarketSignal.Overall)
		}
		for _, name := range a.Entities[signal.EntityCompanies] {
			companies.add(name)
		}
		for _, name := range a.Entities[signal.EntitySectors] {
			sectors.add(name)
		}
	}
	batch.SignalStats = stats
	batch.EntityStats = companies.top(topEntities)
	batch.SectorStats = sectors.top(topSectors)
}

// Summary renders a short plain-text digest of batch with its n best articles.
func Summary(batch domain.Batch, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "NewsHarvester %s batch %s\n", batch.Mode, batch.BatchTime.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "articles: %d, sources: %d, failed: %d, duplicates: %d\n",
		batch.TotalArticles, batch.Stats.Sources, batch.Stats.SourcesFailed, batch.Stats.Duplicates)
	if s := batch.SignalStats; s != nil {
		fmt.Fprintf(&b, "signals: bullish %d, bearish %d, neutral %d\n", s.Bullish, s.Bearish, s.Neutral)
	}
	for i, a := range head(batch.Articles, n) {
		fmt.Fprintf(&b, "%d. [%d] %s\n%s\n", i+1, a.Score, a.Title, a.URL)
	}
	return strings.TrimRight(b.String(), "\n")
}

func head(articles []domain.Article, n int) []domain.Article {
	if len(articles) > n {
		articles = articles[:n]
	}
	out := make([]domain.Article, len(articles))
	copy(out, articles)
	return out
}

func hasCategory(a domain.Article, category string) bool {
	for _, c := range a.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// counter tallies names and ranks them by count, ties by first appearance.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) top(n int) []domain.NameCount {
	out := make([]domain.NameCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, domain.NameCount{Name: name, Count: c.counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Package signal derives the finance-only market direction and entity tags
// from article titles.
package signal

import (
	"strings"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/lexicon"
)

// Entity types reported by Entities.
const (
	EntityIndices   = "indices"
	EntitySectors   = "sectors"
	EntityCompanies = "companies"
)

// Extractor matches titles against a fixed signal vocabulary. It is safe for
// concurrent use.
type Extractor struct {
	bullish   []string
	bearish   []string
	indices   []lexicon.Alias
	sectors   []string
	companies []string
}

// New builds an extractor over sig.
func New(sig lexicon.Signals) *Extractor {
	return &Extractor{
		bullish:   sig.Bullish,
		bearish:   sig.Bearish,
		indices:   sig.Indices,
		sectors:   sig.Sectors,
		companies: sig.Companies,
	}
}

// Signal labels title bullish or bearish only when one side has strictly
// more keyword hits.
func (e *Extractor) Signal(title string) domain.MarketSignal {
	lower := strings.ToLower(title)
	bull := hits(lower, e.bullish)
	bear := hits(lower, e.bearish)

	overall := domain.Neutral
	switch {
	case len(bull) > len(bear):
		overall = domain.Bullish
	case len(bear) > len(bull):
		overall = domain.Bearish
	}

	return domain.MarketSignal{Overall: overall, Bullish: bull, Bearish: bear}
}

// Entities reports which indices, sectors and companies title mentions, in
// lexicon order. Every entity type is present, possibly empty.
func (e *Extractor) Entities(title string) domain.Entities {
	indices := make([]string, 0)
	for _, idx := range e.indices {
		for _, alias := range idx.Aliases {
			if strings.Contains(title, alias) {
				indices = append(indices, idx.Name)
				break
			}
		}
	}

	return domain.Entities{
		EntityIndices:   indices,
		EntitySectors:   present(title, e.sectors),
		EntityCompanies: present(title, e.companies),
	}
}

// Enrich attaches the signal and entities to a.
func (e *Extractor) Enrich(a domain.Article) domain.Article {
	return a.WithSignal(e.Signal(a.Title), e.Entities(a.Title))
}

func hits(lower string, words []string) []string {
	out := make([]string, 0)
	for _, w := range words {
		if w != "" && strings.Contains(lower, strings.ToLower(w)) {
			out = append(out, w)
		}
	}
	return out
}

func present(title string, names []string) []string {
	out := make([]string, 0)
	for _, n := range names {
		if n != "" && strings.Contains(title, n) {
			out = append(out, n)
		}
	}
	return out
}

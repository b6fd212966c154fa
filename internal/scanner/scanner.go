package scanner

import (
	"context"
	"fmt"

	"NewsHarvester/internal/domain"
)

// Strategy names registered by the parser package.
const (
	Feed   = "feed"
	Markup = "markup"
)

// Result is the raw output of one strategy against one source.
type Result struct {
	Items []domain.RawItem
	// Blocked is set when the page looks like an anti-bot interstitial.
	Blocked bool
}

// Scanner captures a single extraction strategy (feed, markup, etc.).
type Scanner interface {
	Name() string
	Scan(ctx context.Context, src domain.Source) (Result, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds a registry holding the given scanners.
func NewRegistry(scanners ...Scanner) *Registry {
	r := &Registry{scanners: map[string]Scanner{}}
	for _, s := range scanners {
		r.Register(s)
	}
	return r
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %s is not registered", name)
}

// Chain lists the strategies to try for src, in order: the feed first when
// the source declares one, then markup.
func Chain(src domain.Source) []string {
	if src.FeedURL != "" {
		return []string{Feed, Markup}
	}
	return []string{Markup}
}

package dedupe

import (
	"strings"

	"NewsHarvester/internal/domain"
)

// Policy selects which keys make an article a duplicate.
type Policy string

const (
	// Fingerprint drops articles whose id was already seen.
	Fingerprint Policy = "fingerprint"
	// FingerprintPrefix also drops articles whose lower-cased title prefix was seen.
	FingerprintPrefix Policy = "fingerprint_prefix"
)

const defaultPrefixLen = 30

// Deduplicator keeps the first-seen article for every key. It is not safe for
// concurrent use; the pipeline builds one per run.
type Deduplicator struct {
	policy    Policy
	prefixLen int
	ids       map[string]struct{}
	prefixes  map[string]struct{}
	seeded    int
}

// New builds an empty deduplicator.
func New(policy Policy, prefixLen int) *Deduplicator {
	if policy != Fingerprint {
		policy = FingerprintPrefix
	}
	if prefixLen <= 0 {
		prefixLen = defaultPrefixLen
	}
	return &Deduplicator{
		policy:    policy,
		prefixLen: prefixLen,
		ids:       map[string]struct{}{},
		prefixes:  map[string]struct{}{},
	}
}

// Seed marks prior-batch articles as seen. They are never emitted.
func (d *Deduplicator) Seed(prior []domain.Article) {
	for _, a := range prior {
		d.mark(a)
		d.seeded++
	}
}

// Seeded reports how many prior articles were registered.
func (d *Deduplicator) Seeded() int {
	return d.seeded
}

// Dedupe returns the unseen articles in input order and registers them.
func (d *Deduplicator) Dedupe(articles []domain.Article) []domain.Article {
	out := make([]domain.Article, 0, len(articles))
	for _, a := range articles {
		if d.seen(a) {
			continue
		}
		d.mark(a)
		out = append(out, a)
	}
	return out
}

// TitleKey is the secondary key: the first n runes of the lower-cased title.
func TitleKey(title string, n int) string {
	r := []rune(strings.ToLower(strings.TrimSpace(title)))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func (d *Deduplicator) seen(a domain.Article) bool {
	if _, ok := d.ids[a.ID]; ok {
		return true
	}
	if d.policy == FingerprintPrefix {
		if _, ok := d.prefixes[TitleKey(a.Title, d.prefixLen)]; ok {
			return true
		}
	}
	return false
}

func (d *Deduplicator) mark(a domain.Article) {
	d.ids[a.ID] = struct{}{}
	if d.policy == FingerprintPrefix {
		d.prefixes[TitleKey(a.Title, d.prefixLen)] = struct{}{}
	}
}

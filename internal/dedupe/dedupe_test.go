package dedupe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"NewsHarvester/internal/domain"
)

var crawled = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func article(title, url string) domain.Article {
	return domain.NewArticle(domain.Source{Name: "test"}, title, url, nil, crawled)
}

func titles(articles []domain.Article) []string {
	out := make([]string, len(articles))
	for i, a := range articles {
		out[i] = a.Title
	}
	return out
}

func TestTrackingParamsCollapseOnTitlePrefix(t *testing.T) {
	t.Parallel()

	first := article("Same headline everywhere", "https://x.com/a?utm=1")
	second := article("Same headline everywhere", "https://x.com/a?utm=2")
	assert.NotEqual(t, first.ID, second.ID)

	out := New(FingerprintPrefix, 30).Dedupe([]domain.Article{first, second})
	assert.Equal(t, []domain.Article{first}, out)

	out = New(Fingerprint, 30).Dedupe([]domain.Article{first, second})
	assert.Len(t, out, 2)
}

func TestPrefixIsCaseInsensitiveAndBounded(t *testing.T) {
	t.Parallel()

	a := article("Breaking: the quick brown fox jumps over the lazy dog", "https://x.com/1")
	b := article("BREAKING: THE QUICK BROWN FOX JUMPS over a different ending", "https://x.com/2")
	c := article("Breaking: the quick brown cat", "https://x.com/3")

	out := New(FingerprintPrefix, 30).Dedupe([]domain.Article{a, b, c})
	assert.Equal(t, []string{a.Title, c.Title}, titles(out))

	out = New(FingerprintPrefix, 60).Dedupe([]domain.Article{a, b, c})
	assert.Len(t, out, 3)
}

func TestDedupeIsIdempotentAndStable(t *testing.T) {
	t.Parallel()

	in := []domain.Article{
		article("First unique headline", "https://x.com/1"),
		article("Second unique headline", "https://x.com/2"),
		article("First unique headline", "https://x.com/1"),
		article("Third unique headline", "https://x.com/3"),
	}

	once := New(FingerprintPrefix, 30).Dedupe(in)
	twice := New(FingerprintPrefix, 30).Dedupe(once)

	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"First unique headline", "Second unique headline", "Third unique headline"}, titles(once))
}

func TestSeededArticlesAreNeverEmitted(t *testing.T) {
	t.Parallel()

	prior := []domain.Article{article("Yesterday's headline", "https://x.com/old")}
	d := New(FingerprintPrefix, 30)
	d.Seed(prior)

	out := d.Dedupe([]domain.Article{
		article("Yesterday's headline", "https://x.com/old"),
		article("Yesterday's headline", "https://x.com/old?ref=rss"),
		article("Today's headline", "https://x.com/new"),
	})

	assert.Equal(t, []string{"Today's headline"}, titles(out))
	assert.Equal(t, 1, d.Seeded())
}

func TestOutputIdsAreUnique(t *testing.T) {
	t.Parallel()

	in := []domain.Article{
		article("Alpha headline one", "https://x.com/a"),
		article("Alpha headline one", "https://x.com/a"),
		article("Beta headline two", "https://x.com/b"),
	}
	for _, policy := range []Policy{Fingerprint, FingerprintPrefix} {
		seen := map[string]bool{}
		for _, a := range New(policy, 30).Dedupe(in) {
			assert.False(t, seen[a.ID], policy)
			seen[a.ID] = true
		}
	}
}

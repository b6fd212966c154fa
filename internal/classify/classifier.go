package classify

import (
	"sort"
	"strings"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/lexicon"
)

const (
	hintWeight      = 3
	titleHitWeight  = 2
	urlHitWeight    = 1
	minCategoryVote = 2
	maxCategories   = 3
)

type category struct {
	name     string
	keywords []string
}

// Classifier assigns up to three categories and an importance score from a
// lexicon fixed at construction.
type Classifier struct {
	fallback   string
	categories []category
	index      map[string]int
	hints      map[string]string
	entities   []lexicon.EntityGroup
	boosts     []lexicon.Boost
	scorer     *Scorer
}

// New compiles lex into a classifier.
func New(lex lexicon.Lexicon) *Classifier {
	c := &Classifier{
		fallback: lex.Fallback,
		index:    make(map[string]int, len(lex.Categories)),
		hints:    lex.Hints,
		scorer:   NewScorer(lex),
	}
	for _, group := range lex.Entities {
		group.Members = lowerAll(group.Members)
		c.entities = append(c.entities, group)
	}
	for _, boost := range lex.Boosts {
		boost.Keywords = lowerAll(boost.Keywords)
		c.boosts = append(c.boosts, boost)
	}
	for i, cat := range lex.Categories {
		c.categories = append(c.categories, category{name: cat.Name, keywords: lowerAll(cat.Keywords)})
		c.index[cat.Name] = i
	}
	return c
}

// Fallback is the label used when no category clears the vote threshold.
func (c *Classifier) Fallback() string {
	return c.fallback
}

// Classify returns the ranked categories and the importance score of a.
func (c *Classifier) Classify(a domain.Article) ([]string, int) {
	return c.Categories(a), c.scorer.Score(a)
}

// Apply returns a copy of a carrying its categories and score.
func (c *Classifier) Apply(a domain.Article) domain.Article {
	cats, score := c.Classify(a)
	return a.Classified(cats, score, c.fallback)
}

// Categories ranks categories by summed votes; ties keep lexicon order.
func (c *Classifier) Categories(a domain.Article) []string {
	votes := c.votes(a)

	order := make([]int, len(votes))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return votes[order[i]] > votes[order[j]]
	})

	out := make([]string, 0, maxCategories)
	for _, i := range order {
		if len(out) == maxCategories || votes[i] < minCategoryVote {
			break
		}
		out = append(out, c.categories[i].name)
	}
	if len(out) == 0 {
		return []string{c.fallback}
	}
	return out
}

func (c *Classifier) votes(a domain.Article) []int {
	votes := make([]int, len(c.categories))

	for _, hint := range a.SourceCategories {
		mapped := hint
		if m, ok := c.hints[hint]; ok {
			mapped = m
		}
		if i, ok := c.index[mapped]; ok {
			votes[i] += hintWeight
		}
	}

	title := strings.ToLower(a.Title)
	text := title + " " + strings.ToLower(a.URL)
	for i, cat := range c.categories {
		for _, kw := range cat.keywords {
			if !strings.Contains(text, kw) {
				continue
			}
			if strings.Contains(title, kw) {
				votes[i] += titleHitWeight
			} else {
				votes[i] += urlHitWeight
			}
		}
	}

	for _, group := range c.entities {
		i, ok := c.index[group.Category]
		if !ok {
			continue
		}
		for _, member := range group.Members {
			if strings.Contains(title, member) {
				votes[i] += group.Weight
			}
		}
	}

	for _, boost := range c.boosts {
		i, ok := c.index[boost.Category]
		if !ok {
			continue
		}
		for _, kw := range boost.Keywords {
			if strings.Contains(title, kw) {
				votes[i] += boost.Weight
			}
		}
	}

	return votes
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, strings.ToLower(s))
		}
	}
	return out
}

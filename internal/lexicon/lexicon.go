// Package lexicon holds the weighted keyword tables driving validation,
// classification, scoring and signal extraction. A Lexicon is built once per
// process and treated as read-only afterwards.
package lexicon

import (
	"fmt"

	"NewsHarvester/internal/domain"
)

// Category is a label with the keywords voting for it.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// EntityGroup is a named set of entities; a hit in the title votes Weight for
// Category. An empty Category casts no vote.
type EntityGroup struct {
	Name     string   `yaml:"name"`
	Category string   `yaml:"category"`
	Weight   int      `yaml:"weight"`
	Members  []string `yaml:"members"`
}

// Boost adds Weight to Category for every keyword found in the title.
type Boost struct {
	Category string   `yaml:"category"`
	Weight   int      `yaml:"weight"`
	Keywords []string `yaml:"keywords"`
}

// Term is a weighted importance keyword.
type Term struct {
	Text   string `yaml:"text"`
	Weight int    `yaml:"weight"`
}

// Alias maps several spellings to one canonical entity name.
type Alias struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
}

// Signals is the finance-only market signal vocabulary.
type Signals struct {
	Bullish   []string `yaml:"bullish"`
	Bearish   []string `yaml:"bearish"`
	Indices   []Alias  `yaml:"indices"`
	Sectors   []string `yaml:"sectors"`
	Companies []string `yaml:"companies"`
}

// Empty reports whether no signal vocabulary is configured.
func (s Signals) Empty() bool {
	return len(s.Bullish) == 0 && len(s.Bearish) == 0 &&
		len(s.Indices) == 0 && len(s.Sectors) == 0 && len(s.Companies) == 0
}

// Lexicon is the complete vocabulary for one mode.
type Lexicon struct {
	Mode          domain.Mode       `yaml:"mode"`
	Fallback      string            `yaml:"fallback"`
	Categories    []Category        `yaml:"categories"`
	Hints         map[string]string `yaml:"hints"`
	Entities      []EntityGroup     `yaml:"entities"`
	Boosts        []Boost           `yaml:"boosts"`
	Importance    []Term            `yaml:"importance"`
	Urgency       []string          `yaml:"urgency"`
	UrgencyWeight int               `yaml:"urgencyWeight"`
	Reputation    map[string]int    `yaml:"reputation"`
	Denylist      []string          `yaml:"denylist"`
	Required      []string          `yaml:"required"`
	RiskCategory  string            `yaml:"riskCategory"`
	Signals       Signals           `yaml:"signals"`
}

// ForMode returns the built-in lexicon for mode.
func ForMode(mode domain.Mode) Lexicon {
	if mode == domain.ModeFinance {
		return Finance()
	}
	return Tech()
}

// HasCategory reports whether name is a registered category.
func (l Lexicon) HasCategory(name string) bool {
	for _, c := range l.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CategoryNames lists categories in registration order.
func (l Lexicon) CategoryNames() []string {
	out := make([]string, len(l.Categories))
	for i, c := range l.Categories {
		out[i] = c.Name
	}
	return out
}

// Validate checks internal references.
func (l Lexicon) Validate() error {
	if l.Fallback == "" {
		return fmt.Errorf("lexicon %s: fallback label is empty", l.Mode)
	}
	if len(l.Categories) == 0 {
		return fmt.Errorf("lexicon %s: no categories", l.Mode)
	}
	seen := make(map[string]bool, len(l.Categories))
	for _, c := range l.Categories {
		if c.Name == "" {
			return fmt.Errorf("lexicon %s: category without name", l.Mode)
		}
		if seen[c.Name] {
			return fmt.Errorf("lexicon %s: duplicate category %q", l.Mode, c.Name)
		}
		seen[c.Name] = true
	}
	for _, g := range l.Entities {
		if g.Category != "" && !seen[g.Category] {
			return fmt.Errorf("lexicon %s: entity group %q targets unknown category %q", l.Mode, g.Name, g.Category)
		}
	}
	for _, b := range l.Boosts {
		if !seen[b.Category] {
			return fmt.Errorf("lexicon %s: boost targets unknown category %q", l.Mode, b.Category)
		}
	}
	if l.RiskCategory != "" && !seen[l.RiskCategory] {
		return fmt.Errorf("lexicon %s: risk category %q is not registered", l.Mode, l.RiskCategory)
	}
	return nil
}

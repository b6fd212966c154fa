package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML lexicon file and overlays every non-empty section on base.
// An empty path returns base unchanged.
func Load(path string, base Lexicon) (Lexicon, error) {
	if path == "" {
		return base, base.Validate()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: read %s: %w", path, err)
	}

	var override Lexicon
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: parse %s: %w", path, err)
	}

	merged := overlay(base, override)
	if err := merged.Validate(); err != nil {
		return Lexicon{}, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return merged, nil
}

func overlay(base, o Lexicon) Lexicon {
	if o.Fallback != "" {
		base.Fallback = o.Fallback
	}
	if len(o.Categories) > 0 {
		base.Categories = o.Categories
	}
	if len(o.Hints) > 0 {
		base.Hints = o.Hints
	}
	if len(o.Entities) > 0 {
		base.Entities = o.Entities
	}
	if len(o.Boosts) > 0 {
		base.Boosts = o.Boosts
	}
	if len(o.Importance) > 0 {
		base.Importance = o.Importance
	}
	if len(o.Urgency) > 0 {
		base.Urgency = o.Urgency
	}
	if o.UrgencyWeight > 0 {
		base.UrgencyWeight = o.UrgencyWeight
	}
	if len(o.Reputation) > 0 {
		base.Reputation = o.Reputation
	}
	if len(o.Denylist) > 0 {
		base.Denylist = o.Denylist
	}
	if len(o.Required) > 0 {
		base.Required = o.Required
	}
	if o.RiskCategory != "" {
		base.RiskCategory = o.RiskCategory
	}
	if !o.Signals.Empty() {
		base.Signals = o.Signals
	}
	return base
}

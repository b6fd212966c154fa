package validate

import (
	"strings"
	"unicode/utf8"
)

// Rules configures the structural filter.
type Rules struct {
	MinTitleLen int
	MaxTitleLen int
	MinURLLen   int
	// TruncateOverlong caps long titles at MaxTitleLen instead of rejecting them.
	TruncateOverlong bool
	// Denylist phrases are matched case-sensitively against the title.
	Denylist []string
	// Required, when set, demands at least one case-insensitive hit in the title.
	Required []string
}

// Validator filters navigation noise and structurally invalid items.
type Validator struct {
	rules    Rules
	required []string
}

// New builds a validator; zero thresholds take the defaults 5, 200 and 10.
func New(rules Rules) *Validator {
	if rules.MinTitleLen <= 0 {
		rules.MinTitleLen = 5
	}
	if rules.MaxTitleLen <= 0 {
		rules.MaxTitleLen = 200
	}
	if rules.MinURLLen <= 0 {
		rules.MinURLLen = 10
	}
	required := make([]string, 0, len(rules.Required))
	for _, kw := range rules.Required {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			required = append(required, kw)
		}
	}
	return &Validator{rules: rules, required: required}
}

// Validate returns the (possibly truncated) title and whether the item is kept.
func (v *Validator) Validate(title, url string) (string, bool) {
	n := utf8.RuneCountInString(title)
	if title == "" || n < v.rules.MinTitleLen {
		return "", false
	}
	if len(url) < v.rules.MinURLLen {
		return "", false
	}
	if n > v.rules.MaxTitleLen {
		if !v.rules.TruncateOverlong {
			return "", false
		}
		title = string([]rune(title)[:v.rules.MaxTitleLen])
	}
	for _, phrase := range v.rules.Denylist {
		if phrase != "" && strings.Contains(title, phrase) {
			return "", false
		}
	}
	if len(v.required) > 0 && !containsAny(strings.ToLower(title), v.required) {
		return "", false
	}
	return title, true
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}

package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"NewsHarvester/internal/domain"
	"NewsHarvester/internal/lexicon"
)

const (
	defaultReputation = 1
	signalBonus       = 2
	lengthPenalty     = 1
	lowValuePenalty   = 2
	minTitleBand      = 10
	maxTitleBand      = 80
)

var (
	percentExpr  = regexp.MustCompile(`\d+(\.\d+)?\s*[%％]`)
	figureExpr   = regexp.MustCompile(`(?i)\d+(\.\d+)?\s*(万亿|亿|trillion|billion|million)|[$¥￥€£]\s?\d`)
	lowValueExpr = regexp.MustCompile(`(?i)/tags?/|/author/|/page/\d+|[?&]page=\d+`)
)

type term struct {
	text   string
	weight int
}

// Scorer computes the additive importance score.
type Scorer struct {
	importance    []term
	urgency       []string
	urgencyWeight int
	reputation    map[string]int
}

// NewScorer compiles the scoring tables of lex.
func NewScorer(lex lexicon.Lexicon) *Scorer {
	s := &Scorer{
		urgency:       lex.Urgency,
		urgencyWeight: lex.UrgencyWeight,
		reputation:    lex.Reputation,
	}
	for _, t := range lex.Importance {
		if t.Text != "" {
			s.importance = append(s.importance, term{text: strings.ToLower(t.Text), weight: t.Weight})
		}
	}
	return s
}

// Score returns the importance of a, floored at 1.
func (s *Scorer) Score(a domain.Article) int {
	score := PriorityBase(a.Priority) + s.Reputation(a.SourceName)

	lower := strings.ToLower(a.Title)
	for _, t := range s.importance {
		if strings.Contains(lower, t.text) {
			score += t.weight
		}
	}

	for _, w := range s.urgency {
		if strings.Contains(a.Title, w) {
			score += s.urgencyWeight
			break
		}
	}

	if percentExpr.MatchString(a.Title) {
		score++
	}
	if figureExpr.MatchString(a.Title) {
		score++
	}
	if strings.ContainsAny(a.Title, "!！") {
		score++
	}

	if sig := a.MarketSignal; sig != nil && sig.Overall != domain.Neutral && sig.Overall != "" {
		score += signalBonus
	}

	if n := utf8.RuneCountInString(a.Title); n < minTitleBand || n > maxTitleBand {
		score -= lengthPenalty
	}
	if lowValueExpr.MatchString(a.URL) {
		score -= lowValuePenalty
	}

	if score < 1 {
		score = 1
	}
	return score
}

// Reputation returns the weight of a source; unlisted sources weigh 1.
func (s *Scorer) Reputation(source string) int {
	if w, ok := s.reputation[source]; ok {
		return w
	}
	return defaultReputation
}

// PriorityBase maps high/medium/low to 3/2/1. An empty priority counts as
// medium and anything unrecognised as low.
func PriorityBase(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityMedium, "":
		return 2
	default:
		return 1
	}
}

package domain

import "time"

// Mode selects the lexicon family and the finance-only enrichment.
type Mode string

const (
	ModeTech    Mode = "tech"
	ModeFinance Mode = "finance"
)

// ErrorKind classifies per-source failures recorded in a batch.
type ErrorKind string

const (
	ErrorTransient ErrorKind = "transient-network"
	ErrorThrottled ErrorKind = "throttled"
	ErrorRejected  ErrorKind = "rejected"
	ErrorMalformed ErrorKind = "malformed-content"
	ErrorDeadline  ErrorKind = "deadline"
	ErrorBlocked   ErrorKind = "anti-bot"
	ErrorHistory   ErrorKind = "history"
)

// SourceError is a structured failure entry; it never aborts the batch.
type SourceError struct {
	Source   string    `json:"source"`
	Stage    string    `json:"stage"`
	Kind     ErrorKind `json:"kind"`
	Message  string    `json:"message"`
	Attempts int       `json:"attempts,omitempty"`
}

// RunStats counts items through each pipeline stage.
type RunStats struct {
	Sources       int `json:"sources"`
	SourcesFailed int `json:"sources_failed"`
	Candidates    int `json:"candidates"`
	Valid         int `json:"valid"`
	Rejected      int `json:"rejected"`
	Duplicates    int `json:"duplicates"`
	PriorSeeded   int `json:"prior_seeded"`
}

// SignalStats aggregates market signals over a batch.
type SignalStats struct {
	Bullish int `json:"bullish"`
	Bearish int `json:"bearish"`
	Neutral int `json:"neutral"`
}

// Add counts one sentiment.
func (s *SignalStats) Add(sentiment Sentiment) {
	switch sentiment {
	case Bullish:
		s.Bullish++
	case Bearish:
		s.Bearish++
	default:
		s.Neutral++
	}
}

// NameCount is one row of a frequency table.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Batch is the record handed to the report/storage layer.
type Batch struct {
	RunID         string         `json:"run_id"`
	Mode          Mode           `json:"mode"`
	BatchTime     time.Time      `json:"batch_time"`
	BatchDate     string         `json:"batch_date"`
	TotalArticles int            `json:"total_articles"`
	Categories    map[string]int `json:"categories"`
	SourceStats   map[string]int `json:"source_stats"`
	Articles      []Article      `json:"articles"`
	TopArticles   []Article      `json:"top_articles,omitempty"`
	RiskArticles  []Article      `json:"risk_articles,omitempty"`
	SignalStats   *SignalStats   `json:"signal_stats,omitempty"`
	EntityStats   []NameCount    `json:"entity_stats,omitempty"`
	SectorStats   []NameCount    `json:"sector_stats,omitempty"`
	Stats         RunStats       `json:"stats"`
	Errors        []SourceError  `json:"errors"`
}

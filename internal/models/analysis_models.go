package models

import "time"

type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// AnalyzedRecord is one row of the results table: the original record plus
// its classification and assigned aspects.
type AnalyzedRecord struct {
	Record
	Label   string   `json:"label"`
	Score   float64  `json:"score"`
	Aspects []string `json:"aspects"`
}

// AspectCount is one cell of the aspect breakdown table.
type AspectCount struct {
	Aspect string `json:"aspect"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type SummaryMetrics struct {
	TotalEntries    int     `json:"total_entries"`
	NetSentimentPct float64 `json:"net_sentiment_pct"`
	UniqueAspects   int     `json:"unique_aspects"`
}

// AnalysisReport is the complete output of one analysis run. A run either
// produces a full report or nothing; partial reports are never published.
type AnalysisReport struct {
	RunID       string           `json:"run_id"`
	CompletedAt time.Time        `json:"completed_at"`
	Rows        []AnalyzedRecord `json:"rows"`
	Breakdown   []AspectCount    `json:"breakdown"`
	Summary     SummaryMetrics   `json:"summary"`
	// Distribution feeds the sentiment bar chart: per-label counts across
	// all records, independent of aspects.
	Distribution []LabelCount `json:"distribution"`
}

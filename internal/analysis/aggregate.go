// Package analysis turns classified records into the aggregate tables and
// summary metrics the dashboard presents.
package analysis

import (
	"errors"
	"math"
	"strings"

	"github.com/lkumawat9176/sentimentscope/internal/aspect"
	"github.com/lkumawat9176/sentimentscope/internal/models"
)

// ErrShapeMismatch means the records and classifications sequences differ in
// length. In correct usage every record is classified exactly once, so this
// is an internal invariant violation rather than a user error.
var ErrShapeMismatch = errors.New("records and classifications length mismatch")

// AggregateTable counts (aspect, label) pairs. Cells keep first-insertion
// order so repeated runs over the same input render identically.
type AggregateTable struct {
	cells []models.AspectCount
	index map[cellKey]int
}

type cellKey struct {
	aspect string
	label  string
}

func NewAggregateTable() *AggregateTable {
	return &AggregateTable{index: make(map[cellKey]int)}
}

func (t *AggregateTable) Increment(aspect, label string) {
	key := cellKey{aspect: aspect, label: label}
	if i, ok := t.index[key]; ok {
		t.cells[i].Count++
		return
	}
	t.index[key] = len(t.cells)
	t.cells = append(t.cells, models.AspectCount{Aspect: aspect, Label: label, Count: 1})
}

func (t *AggregateTable) Count(aspect, label string) int {
	if i, ok := t.index[cellKey{aspect: aspect, label: label}]; ok {
		return t.cells[i].Count
	}
	return 0
}

// Cells returns the table in insertion order.
func (t *AggregateTable) Cells() []models.AspectCount {
	return append([]models.AspectCount(nil), t.cells...)
}

// Aspects returns the distinct aspect keys in first-seen order.
func (t *AggregateTable) Aspects() []string {
	var aspects []string
	seen := make(map[string]struct{})
	for _, cell := range t.cells {
		if _, ok := seen[cell.Aspect]; ok {
			continue
		}
		seen[cell.Aspect] = struct{}{}
		aspects = append(aspects, cell.Aspect)
	}
	return aspects
}

// Labels returns the distinct sentiment labels in first-seen order.
func (t *AggregateTable) Labels() []string {
	var labels []string
	seen := make(map[string]struct{})
	for _, cell := range t.cells {
		if _, ok := seen[cell.Label]; ok {
			continue
		}
		seen[cell.Label] = struct{}{}
		labels = append(labels, cell.Label)
	}
	return labels
}

// Aggregate builds the per-aspect per-label count table and summary metrics
// for one run. Records contributing to multiple aspects increment one cell
// per aspect, while TotalEntries counts each record exactly once.
func Aggregate(records []models.Record, classifications []models.Classification, vocabulary []string) (*AggregateTable, models.SummaryMetrics, error) {
	if len(records) != len(classifications) {
		return nil, models.SummaryMetrics{}, ErrShapeMismatch
	}

	table := NewAggregateTable()
	for i, record := range records {
		for _, a := range aspect.Tag(record.Text, vocabulary) {
			table.Increment(a, classifications[i].Label)
		}
	}

	summary := models.SummaryMetrics{
		TotalEntries:    len(records),
		NetSentimentPct: netSentimentPct(classifications),
		UniqueAspects:   len(table.Aspects()),
	}

	return table, summary, nil
}

// LabelCounts sums classifications per label across all records, ignoring
// aspects. Label order follows first appearance in the input.
func LabelCounts(classifications []models.Classification) []models.LabelCount {
	var counts []models.LabelCount
	index := make(map[string]int)

	for _, c := range classifications {
		if i, ok := index[c.Label]; ok {
			counts[i].Count++
			continue
		}
		index[c.Label] = len(counts)
		counts = append(counts, models.LabelCount{Label: c.Label, Count: 1})
	}

	return counts
}

// netSentimentPct is (positive - negative) / total * 100, rounded to two
// decimals, and 0.0 for an empty run. The classifier's label set is open, so
// positive and negative are matched by case-insensitive prefix: both the
// SST-2 style "POSITIVE" and the VADER style "positive" count.
func netSentimentPct(classifications []models.Classification) float64 {
	total := len(classifications)
	if total == 0 {
		return 0.0
	}

	var pos, neg int
	for _, c := range classifications {
		label := strings.ToLower(c.Label)
		switch {
		case strings.HasPrefix(label, "pos"):
			pos++
		case strings.HasPrefix(label, "neg"):
			neg++
		}
	}

	pct := float64(pos-neg) / float64(total) * 100
	return math.Round(pct*100) / 100
}

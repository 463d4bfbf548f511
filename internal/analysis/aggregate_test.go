package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkumawat9176/sentimentscope/internal/models"
)

func rec(text string) models.Record {
	return models.Record{Text: text}
}

func TestAggregate_EmptyRun(t *testing.T) {
	table, summary, err := Aggregate(nil, nil, []string{"food"})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalEntries)
	assert.Equal(t, 0.0, summary.NetSentimentPct)
	assert.Equal(t, 0, summary.UniqueAspects)
	assert.Empty(t, table.Cells())
}

func TestAggregate_ShapeMismatch(t *testing.T) {
	records := []models.Record{rec("great food"), rec("bad staff")}
	classifications := []models.Classification{{Label: "positive", Score: 0.9}}

	table, _, err := Aggregate(records, classifications, []string{"food"})
	assert.ErrorIs(t, err, ErrShapeMismatch)
	assert.Nil(t, table)
}

func TestAggregate_MultiAspectRecords(t *testing.T) {
	records := []models.Record{
		rec("great food and fast delivery"),
		rec("terrible parking, rude staff"),
	}
	classifications := []models.Classification{
		{Label: "Positive", Score: 0.9},
		{Label: "Negative", Score: 0.8},
	}
	vocab := []string{"food", "delivery", "parking", "staff"}

	table, summary, err := Aggregate(records, classifications, vocab)
	require.NoError(t, err)

	assert.Equal(t, 1, table.Count("food", "Positive"))
	assert.Equal(t, 1, table.Count("delivery", "Positive"))
	assert.Equal(t, 1, table.Count("parking", "Negative"))
	assert.Equal(t, 1, table.Count("staff", "Negative"))
	assert.Len(t, table.Cells(), 4)

	assert.Equal(t, 2, summary.TotalEntries)
	assert.Equal(t, 0.0, summary.NetSentimentPct)
	assert.Equal(t, 4, summary.UniqueAspects)
}

func TestAggregate_CatchAllAspect(t *testing.T) {
	records := []models.Record{rec("ok")}
	classifications := []models.Classification{{Label: "neutral", Score: 0.5}}

	table, summary, err := Aggregate(records, classifications, []string{"food"})
	require.NoError(t, err)

	assert.Equal(t, 1, table.Count("general", "neutral"))
	assert.Equal(t, []string{"general"}, table.Aspects())
	assert.Equal(t, 1, summary.UniqueAspects)
	assert.Equal(t, 1, summary.TotalEntries)
}

func TestAggregate_TotalEntriesIgnoresAspectFanout(t *testing.T) {
	// One record matching three aspects still counts once in the totals
	// but three times in the table.
	records := []models.Record{rec("food, staff and parking were all great")}
	classifications := []models.Classification{{Label: "POSITIVE", Score: 0.99}}
	vocab := []string{"food", "staff", "parking"}

	table, summary, err := Aggregate(records, classifications, vocab)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalEntries)
	total := 0
	for _, cell := range table.Cells() {
		total += cell.Count
	}
	assert.Equal(t, 3, total)
}

func TestAggregate_Deterministic(t *testing.T) {
	records := []models.Record{
		rec("great food and fast delivery"),
		rec("terrible parking, rude staff"),
		rec("ok"),
	}
	classifications := []models.Classification{
		{Label: "Positive", Score: 0.9},
		{Label: "Negative", Score: 0.8},
		{Label: "Neutral", Score: 0.6},
	}
	vocab := []string{"food", "delivery", "parking", "staff"}

	first, firstSummary, err := Aggregate(records, classifications, vocab)
	require.NoError(t, err)
	second, secondSummary, err := Aggregate(records, classifications, vocab)
	require.NoError(t, err)

	assert.Equal(t, first.Cells(), second.Cells())
	assert.Equal(t, firstSummary, secondSummary)
}

func TestNetSentimentPct_OpenLabelSet(t *testing.T) {
	// Both SST-2 style and VADER style labels count toward net sentiment.
	classifications := []models.Classification{
		{Label: "POSITIVE", Score: 0.9},
		{Label: "positive", Score: 0.8},
		{Label: "NEGATIVE", Score: 0.7},
		{Label: "mixed", Score: 0.5},
	}

	_, summary, err := Aggregate(
		[]models.Record{rec("a"), rec("b"), rec("c"), rec("d")},
		classifications,
		nil,
	)
	require.NoError(t, err)

	// (2 - 1) / 4 * 100 = 25.0
	assert.Equal(t, 25.0, summary.NetSentimentPct)
}

func TestNetSentimentPct_Rounding(t *testing.T) {
	classifications := []models.Classification{
		{Label: "positive", Score: 0.9},
		{Label: "neutral", Score: 0.5},
		{Label: "neutral", Score: 0.5},
	}

	_, summary, err := Aggregate(
		[]models.Record{rec("a"), rec("b"), rec("c")},
		classifications,
		nil,
	)
	require.NoError(t, err)

	// 1/3 * 100 rounded to two decimals.
	assert.Equal(t, 33.33, summary.NetSentimentPct)
}

func TestLabelCounts_SumEqualsTotal(t *testing.T) {
	classifications := []models.Classification{
		{Label: "positive"}, {Label: "negative"}, {Label: "positive"},
		{Label: "neutral"}, {Label: "positive"},
	}

	counts := LabelCounts(classifications)

	total := 0
	for _, lc := range counts {
		total += lc.Count
	}
	assert.Equal(t, len(classifications), total)

	assert.Equal(t, []models.LabelCount{
		{Label: "positive", Count: 3},
		{Label: "negative", Count: 1},
		{Label: "neutral", Count: 1},
	}, counts)
}

func TestAggregateTable_InsertionOrderStable(t *testing.T) {
	table := NewAggregateTable()
	table.Increment("food", "positive")
	table.Increment("staff", "negative")
	table.Increment("food", "positive")

	cells := table.Cells()
	require.Len(t, cells, 2)
	assert.Equal(t, models.AspectCount{Aspect: "food", Label: "positive", Count: 2}, cells[0])
	assert.Equal(t, models.AspectCount{Aspect: "staff", Label: "negative", Count: 1}, cells[1])

	assert.Equal(t, []string{"food", "staff"}, table.Aspects())
	assert.Equal(t, []string{"positive", "negative"}, table.Labels())
}

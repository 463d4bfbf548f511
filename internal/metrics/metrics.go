// Package metrics defines the prometheus instrumentation for analysis runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AnalysisRuns counts completed analysis runs by outcome
	// ("success" or "error").
	AnalysisRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentimentscope_analysis_runs_total",
		Help: "Total number of analysis runs by outcome",
	}, []string{"outcome"})

	// RecordsClassified counts records classified across all runs.
	RecordsClassified = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sentimentscope_records_classified_total",
		Help: "Total number of records classified",
	})

	// QuickChecks counts single-text checks by outcome.
	QuickChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sentimentscope_quick_checks_total",
		Help: "Total number of single-text quick checks by outcome",
	}, []string{"outcome"})

	// RunDuration observes wall-clock duration of analysis runs.
	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentimentscope_analysis_run_duration_seconds",
		Help:    "Duration of analysis runs in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

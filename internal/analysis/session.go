package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lkumawat9176/sentimentscope/internal/aspect"
	"github.com/lkumawat9176/sentimentscope/internal/classifier"
	"github.com/lkumawat9176/sentimentscope/internal/metrics"
	"github.com/lkumawat9176/sentimentscope/internal/models"
)

var (
	// ErrEmptyInput is returned by QuickCheck for blank text, before any
	// inference call is made.
	ErrEmptyInput = errors.New("text is empty")

	// ErrInvalidInput is returned when a loaded record has no usable text.
	ErrInvalidInput = errors.New("record text is empty")

	// ErrNoRecords is returned when a run is triggered with nothing loaded.
	ErrNoRecords = errors.New("no records loaded")
)

// Archiver receives completed reports. Archival is best-effort: failures are
// logged and never affect the run.
type Archiver interface {
	ArchiveReport(ctx context.Context, report *models.AnalysisReport) error
}

// Session holds the mutable state of one interactive analysis session: the
// configured vocabulary, the loaded records, and the last completed report.
// It is an explicit object rather than package globals so multiple
// independent sessions can coexist in one process.
type Session struct {
	id         uuid.UUID
	classifier classifier.Classifier
	archiver   Archiver

	mu         sync.Mutex
	vocabulary []string
	records    []models.Record
	last       *models.AnalysisReport
}

func NewSession(c classifier.Classifier) *Session {
	return &Session{
		id:         uuid.New(),
		classifier: c,
	}
}

// WithArchiver enables best-effort archival of completed reports.
func (s *Session) WithArchiver(a Archiver) *Session {
	s.archiver = a
	return s
}

func (s *Session) ID() uuid.UUID { return s.id }

// SetVocabulary replaces the aspect vocabulary from a comma-separated
// keyword list and returns the normalized result.
func (s *Session) SetVocabulary(input string) []string {
	vocab := aspect.NormalizeVocabulary(input)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.vocabulary = vocab

	return append([]string(nil), vocab...)
}

func (s *Session) Vocabulary() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.vocabulary...)
}

// LoadRecords replaces the loaded record set. Every record must carry
// non-blank text; a bad record rejects the whole load and keeps the
// previous set.
func (s *Session) LoadRecords(records []models.Record) error {
	for i, record := range records {
		if strings.TrimSpace(record.Text) == "" {
			return fmt.Errorf("%w: record %d", ErrInvalidInput, i)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]models.Record(nil), records...)

	return nil
}

func (s *Session) RecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// LastReport returns the most recent completed report, or nil if no run has
// succeeded yet.
func (s *Session) LastReport() *models.AnalysisReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// RunAnalysis classifies and tags every loaded record and publishes a fresh
// report. The report is committed wholesale: on any failure the previous
// report stays untouched.
func (s *Session) RunAnalysis(ctx context.Context) (*models.AnalysisReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) == 0 {
		return nil, ErrNoRecords
	}

	start := time.Now()

	texts := make([]string, len(s.records))
	for i, record := range s.records {
		texts[i] = strings.TrimSpace(record.Text)
	}

	classifications, err := s.classifier.ClassifyBatch(ctx, texts)
	if err != nil {
		metrics.AnalysisRuns.WithLabelValues("error").Inc()
		slog.Error("[Session] Classification failed, keeping previous report",
			slog.String("session_id", s.id.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	table, summary, err := Aggregate(s.records, classifications, s.vocabulary)
	if err != nil {
		metrics.AnalysisRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	rows := make([]models.AnalyzedRecord, len(s.records))
	for i, record := range s.records {
		rows[i] = models.AnalyzedRecord{
			Record:  record,
			Label:   classifications[i].Label,
			Score:   classifications[i].Score,
			Aspects: aspect.Tag(record.Text, s.vocabulary),
		}
	}

	report := &models.AnalysisReport{
		RunID:        uuid.NewString(),
		CompletedAt:  time.Now().UTC(),
		Rows:         rows,
		Breakdown:    table.Cells(),
		Summary:      summary,
		Distribution: LabelCounts(classifications),
	}
	s.last = report

	metrics.AnalysisRuns.WithLabelValues("success").Inc()
	metrics.RecordsClassified.Add(float64(len(s.records)))
	metrics.RunDuration.Observe(time.Since(start).Seconds())

	slog.Info("[Session] Analysis run completed",
		slog.String("session_id", s.id.String()),
		slog.String("run_id", report.RunID),
		slog.Int("records", summary.TotalEntries),
		slog.Int("unique_aspects", summary.UniqueAspects),
		slog.Duration("elapsed", time.Since(start)))

	if s.archiver != nil {
		if err := s.archiver.ArchiveReport(ctx, report); err != nil {
			slog.Warn("[Session] Failed to archive report",
				slog.String("run_id", report.RunID),
				slog.String("error", err.Error()))
		}
	}

	return report, nil
}

// QuickCheck classifies a single text against the same model as the batch
// run. Blank input is rejected before the classifier is invoked.
func (s *Session) QuickCheck(ctx context.Context, text string) (models.Classification, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		metrics.QuickChecks.WithLabelValues("error").Inc()
		return models.Classification{}, ErrEmptyInput
	}

	result, err := s.classifier.Classify(ctx, trimmed)
	if err != nil {
		metrics.QuickChecks.WithLabelValues("error").Inc()
		return models.Classification{}, err
	}

	metrics.QuickChecks.WithLabelValues("success").Inc()
	return result, nil
}

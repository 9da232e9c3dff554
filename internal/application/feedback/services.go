package feedback

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/feedback-analyzer/internal/application"
	"github.com/bryanwahyu/feedback-analyzer/internal/domain/ai"
	domain "github.com/bryanwahyu/feedback-analyzer/internal/domain/feedback"
)

// DefaultReportRows is how many non-empty rows the report summary reads.
const DefaultReportRows = 200

// Analyst port (application/ai.Service)
type Analyst interface {
	Analyze(ctx context.Context, corpus domain.Corpus, focus ai.Focus) ai.Outcome
}

// Renderer port (infra/report)
type Renderer interface {
	Render(summary string, stats domain.Stats) ([]byte, error)
}

// Service implements the dashboard use-cases over one text column.
// Service is safe for concurrent use; it keeps no per-request state.
type Service struct {
	Classifier *domain.Classifier
	Analyst    Analyst
	Renderer   Renderer
	Sources    map[domain.SourceKind]domain.Source
	Clock      application.Clock
	// MaxReportRows caps the rows sent to the model for the report summary.
	MaxReportRows int
	Log           *zap.Logger
}

//
// ==== RESULTS ====
//

type Overview struct {
	Stats     domain.Stats        `json:"stats"`
	Sentiment domain.Distribution `json:"sentiment"`
}

type Report struct {
	PDF         []byte
	Stats       domain.Stats
	Summary     ai.Outcome
	GeneratedAt time.Time
}

//
// ==== USE CASES ====
//

// Load resolve dataset dari source yang terdaftar (object storage / SQL)
func (s *Service) Load(ctx context.Context, ref domain.DatasetRef) (*domain.Table, error) {
	switch ref.Kind {
	case domain.SourceObject, domain.SourceSQL:
	default:
		return nil, &domain.InputError{Op: "load dataset", Err: domain.ErrInvalidReference, Detail: string(ref.Kind)}
	}
	src, ok := s.Sources[ref.Kind]
	if !ok || src == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrSourceDisabled, ref.Kind)
	}
	tbl, err := src.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	s.logger().Debug("dataset loaded",
		zap.String("source", string(ref.Kind)),
		zap.String("key", ref.Key),
		zap.Int("rows", len(tbl.Rows)))
	return tbl, nil
}

// Overview hitung statistik dan distribusi sentimen untuk semua baris kolom
func (s *Service) Overview(table *domain.Table, column string) (Overview, error) {
	corpus, err := table.Column(column)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Stats:     domain.ComputeStats(corpus),
		Sentiment: s.Classifier.Distribution(corpus),
	}, nil
}

// TopWords returns the k most frequent non-stopword tokens of the column.
func (s *Service) TopWords(table *domain.Table, column string, k int) ([]domain.WordCount, error) {
	corpus, err := table.Column(column)
	if err != nil {
		return nil, err
	}
	return domain.TopWords(corpus, k), nil
}

// Analyze never returns an error for model failures; those come back as the
// Outcome kind. Only a missing column is an error.
func (s *Service) Analyze(ctx context.Context, table *domain.Table, column string, focus ai.Focus) (ai.Outcome, error) {
	corpus, err := table.Column(column)
	if err != nil {
		return ai.Outcome{}, err
	}
	return s.Analyst.Analyze(ctx, corpus.NonEmpty(), focus), nil
}

// Report: statistik dari seluruh kolom, ringkasan AI dari baris non-empty
// pertama (maks MaxReportRows) dengan fokus All of the above.
func (s *Service) Report(ctx context.Context, table *domain.Table, column string) (Report, error) {
	corpus, err := table.Column(column)
	if err != nil {
		return Report{}, err
	}

	stats := domain.ComputeStats(corpus)
	summary := s.Analyst.Analyze(ctx, corpus.NonEmpty().Head(s.reportRows()), ai.FocusAll)

	pdf, err := s.Renderer.Render(summary.Display(), stats)
	if err != nil {
		return Report{}, fmt.Errorf("render report: %w", err)
	}
	s.logger().Info("report generated",
		zap.String("dataset", table.Name),
		zap.Int("rows", stats.RowCount),
		zap.String("summary_kind", string(summary.Kind)),
		zap.Int("bytes", len(pdf)))

	return Report{PDF: pdf, Stats: stats, Summary: summary, GeneratedAt: s.now()}, nil
}

func (s *Service) reportRows() int {
	if s.MaxReportRows > 0 {
		return s.MaxReportRows
	}
	return DefaultReportRows
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

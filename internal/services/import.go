package services

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/Justusveijk/mesa-eatsight-sub000/internal/importer"
	"github.com/Justusveijk/mesa-eatsight-sub000/internal/models"
)

// RowSaver persists the valid rows of an import run.
type RowSaver interface {
	SaveImportedRows(ctx context.Context, rows []models.ImportRow) (int, error)
}

// ImportService runs CSV menu imports and optionally persists the outcome.
type ImportService struct {
	store    RowSaver
	recorder Recorder
	logger   zerolog.Logger
}

// NewImportService creates a new import service.
func NewImportService(store RowSaver, recorder Recorder, logger zerolog.Logger) *ImportService {
	return &ImportService{
		store:    store,
		recorder: recorder,
		logger:   logger.With().Str("service", "import").Logger(),
	}
}

// Import parses a CSV upload and, when persist is set, saves the valid rows.
// Rows flagged invalid are reported but never stored; a structural failure
// (missing name/price column) persists nothing.
func (s *ImportService) Import(ctx context.Context, r io.Reader, persist bool) (models.ImportReport, error) {
	report, err := importer.Parse(r)
	if err != nil {
		return models.ImportReport{}, err
	}
	if len(report.GlobalErrors) > 0 {
		s.logger.Warn().Strs("errors", report.GlobalErrors).Msg("import rejected")
		return report, nil
	}

	s.logger.Info().
		Int("total", report.Summary.Total).
		Int("ready", report.Summary.Ready).
		Int("needs_review", report.Summary.NeedsReview).
		Int("invalid", report.Summary.Invalid).
		Bool("detailed", report.Detailed).
		Msg("parsed menu upload")

	if persist {
		saved, err := s.store.SaveImportedRows(ctx, report.Rows)
		if err != nil {
			return report, fmt.Errorf("failed to persist import: %w", err)
		}
		s.logger.Info().Int("saved", saved).Msg("persisted imported items")
	}

	s.recordImportEvent(report, persist)
	return report, nil
}

func (s *ImportService) recordImportEvent(report models.ImportReport, persisted bool) {
	event := models.Event{
		Name: "menu_import",
		Props: map[string]any{
			"total":        report.Summary.Total,
			"ready":        report.Summary.Ready,
			"needs_review": report.Summary.NeedsReview,
			"invalid":      report.Summary.Invalid,
			"detailed":     report.Detailed,
			"persisted":    persisted,
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		defer cancel()
		if err := s.recorder.RecordEvent(ctx, event); err != nil {
			s.logger.Warn().Err(err).Msg("failed to record import event")
		}
	}()
}

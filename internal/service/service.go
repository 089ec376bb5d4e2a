// ABOUTME: Intake service composing evaluation and storage.
// ABOUTME: Submit validates before persisting; ExportRows signals when a filter matches nothing.
package service

import (
	"fmt"
	"strings"

	"github.com/harperreed/itb/internal/export"
	"github.com/harperreed/itb/internal/models"
	"github.com/harperreed/itb/internal/storage"
)

// ErrNoDataToExport is returned by ExportRows when no rows match.
var ErrNoDataToExport = export.ErrNoDataToExport

// Service runs the submit and export flows against an injected repository.
type Service struct {
	repo storage.Repository
}

// New creates a Service backed by repo.
func New(repo storage.Repository) *Service {
	return &Service{repo: repo}
}

// SubmitInput is the raw form input for one measurement.
type SubmitInput struct {
	Name          string
	RecordID      string
	ArmPressure   string
	AnklePressure string
	Phase         string
}

// SubmitResult is returned after a measurement is stored.
type SubmitResult struct {
	Evaluation *models.Evaluation
	Record     *models.Measurement
	Summaries  []*models.Summary
}

// Evaluate validates and classifies without storing anything.
func (s *Service) Evaluate(in SubmitInput) (*models.Evaluation, models.Phase, error) {
	eval, err := models.Evaluate(in.Name, in.ArmPressure, in.AnklePressure)
	if err != nil {
		return nil, "", err
	}
	phase, err := models.ParsePhase(in.Phase)
	if err != nil {
		return nil, "", err
	}
	return eval, phase, nil
}

// Submit evaluates the input and, only if it is valid, stores a new record.
// Validation errors are returned unwrapped as *models.ValidationError.
func (s *Service) Submit(in SubmitInput) (*SubmitResult, error) {
	eval, phase, err := s.Evaluate(in)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.InsertMeasurement(models.NewDraft(eval, in.RecordID, phase))
	if err != nil {
		return nil, fmt.Errorf("save measurement: %w", err)
	}

	summaries, err := s.repo.ListSummaries()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	return &SubmitResult{
		Evaluation: eval,
		Record:     record,
		Summaries:  summaries,
	}, nil
}

// Summaries returns the history, most recent first.
func (s *Service) Summaries() ([]*models.Summary, error) {
	summaries, err := s.repo.ListSummaries()
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return summaries, nil
}

// History returns one patient's full rows, oldest first. No match is an
// empty slice.
func (s *Service) History(name string) ([]*models.Measurement, error) {
	rows, err := s.repo.ListMeasurements(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("list measurements: %w", err)
	}
	return rows, nil
}

// ExportRows returns full rows for nameFilter (all rows when empty), oldest
// first, or ErrNoDataToExport when nothing matches.
func (s *Service) ExportRows(nameFilter string) ([]*models.Measurement, error) {
	rows, err := s.History(nameFilter)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataToExport
	}
	return rows, nil
}

// Export renders the rows matching nameFilter in the given format.
func (s *Service) Export(format export.Format, nameFilter string, opts export.Options) ([]byte, error) {
	rows, err := s.ExportRows(nameFilter)
	if err != nil {
		return nil, err
	}
	opts.Name = strings.TrimSpace(nameFilter)
	return export.Render(format, rows, opts)
}

// Patients returns the distinct patient names.
func (s *Service) Patients() ([]string, error) {
	names, err := s.repo.ListPatients()
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return names, nil
}

// ABOUTME: Repository interface for measurement storage.
// ABOUTME: Append-only contract: insert and list, no update or delete.
package storage

import (
	"errors"

	"github.com/harperreed/itb/internal/models"
)

// ErrUnavailable wraps any failure of the underlying database.
var ErrUnavailable = errors.New("storage unavailable")

// Repository defines the storage interface for measurements.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// InsertMeasurement assigns ID and RecordedAt and persists the draft.
	InsertMeasurement(d *models.MeasurementDraft) (*models.Measurement, error)

	// ListSummaries returns every record, most recent first.
	ListSummaries() ([]*models.Summary, error)

	// ListMeasurements returns full rows for an exact patient name, oldest
	// first. An empty name returns every record.
	ListMeasurements(patientName string) ([]*models.Measurement, error)

	// ListPatients returns distinct patient names in sorted order.
	ListPatients() ([]string, error)

	// Lifecycle
	Close() error
}

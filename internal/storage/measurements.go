// ABOUTME: Measurement insert and query operations for SQLite storage.
// ABOUTME: Implements Repository methods; timestamps are store-assigned and never go backwards.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/itb/internal/models"
)

// timeLayout is fixed width in UTC so lexical order equals time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

const measurementColumns = `id, patient_name, record_id, recorded_at, arm_pressure, ankle_pressure, itb, phase`

// InsertMeasurement stores a new measurement and returns the final record.
// recorded_at is clamped to the latest stored stamp so that id order and
// time order agree even if the wall clock steps backwards.
func (d *DB) InsertMeasurement(draft *models.MeasurementDraft) (*models.Measurement, error) {
	phase := draft.Phase
	if phase == "" {
		phase = models.PhasePre
	}

	query := `
		INSERT INTO measurements (patient_name, record_id, recorded_at, arm_pressure, ankle_pressure, itb, phase)
		VALUES (?, ?, max(?, coalesce((SELECT max(recorded_at) FROM measurements), '')), ?, ?, ?, ?)
		RETURNING id, recorded_at
	`
	var (
		id         int64
		recordedAt string
	)
	err := d.db.QueryRow(query,
		draft.PatientName,
		draft.RecordID,
		d.now().UTC().Format(timeLayout),
		draft.ArmPressure,
		draft.AnklePressure,
		draft.ITB,
		string(phase),
	).Scan(&id, &recordedAt)
	if err != nil {
		return nil, unavailable("insert measurement", err)
	}

	at, err := time.Parse(timeLayout, recordedAt)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
	}

	return &models.Measurement{
		ID:            id,
		PatientName:   draft.PatientName,
		RecordID:      draft.RecordID,
		RecordedAt:    at,
		ArmPressure:   draft.ArmPressure,
		AnklePressure: draft.AnklePressure,
		ITB:           draft.ITB,
		Phase:         phase,
	}, nil
}

// ListSummaries retrieves every measurement's summary projection.
// Results are sorted by RecordedAt descending (most recent first).
func (d *DB) ListSummaries() ([]*models.Summary, error) {
	query := `
		SELECT patient_name, record_id, recorded_at, itb, phase
		FROM measurements
		ORDER BY recorded_at DESC, id DESC
	`
	rows, err := d.db.Query(query)
	if err != nil {
		return nil, unavailable("list summaries", err)
	}
	defer rows.Close()

	summaries := make([]*models.Summary, 0)
	for rows.Next() {
		var s models.Summary
		var recordedAt, phase string
		if err := rows.Scan(&s.PatientName, &s.RecordID, &recordedAt, &s.ITB, &phase); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.RecordedAt, _ = time.Parse(timeLayout, recordedAt)
		s.Phase = models.Phase(phase)
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list summaries", err)
	}
	return summaries, nil
}

// ListMeasurements retrieves full rows, optionally filtered by exact patient
// name. Results are sorted by RecordedAt ascending (oldest first).
func (d *DB) ListMeasurements(patientName string) ([]*models.Measurement, error) {
	var query string
	var args []interface{}

	if patientName != "" {
		query = `
			SELECT ` + measurementColumns + `
			FROM measurements
			WHERE patient_name = ?
			ORDER BY recorded_at ASC, id ASC
		`
		args = append(args, patientName)
	} else {
		query = `
			SELECT ` + measurementColumns + `
			FROM measurements
			ORDER BY recorded_at ASC, id ASC
		`
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, unavailable("list measurements", err)
	}
	defer rows.Close()

	return d.scanMeasurements(rows)
}

// ListPatients returns the distinct patient names in byte order.
func (d *DB) ListPatients() ([]string, error) {
	rows, err := d.db.Query(`SELECT DISTINCT patient_name FROM measurements ORDER BY patient_name`)
	if err != nil {
		return nil, unavailable("list patients", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan patient name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list patients", err)
	}
	return names, nil
}

// scanMeasurements scans multiple rows into a slice of Measurements.
func (d *DB) scanMeasurements(rows *sql.Rows) ([]*models.Measurement, error) {
	measurements := make([]*models.Measurement, 0)

	for rows.Next() {
		var m models.Measurement
		var recordedAt, phase string

		err := rows.Scan(&m.ID, &m.PatientName, &m.RecordID, &recordedAt,
			&m.ArmPressure, &m.AnklePressure, &m.ITB, &phase)
		if err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}

		m.RecordedAt, _ = time.Parse(timeLayout, recordedAt)
		m.Phase = models.Phase(phase)

		measurements = append(measurements, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("list measurements", err)
	}
	return measurements, nil
}

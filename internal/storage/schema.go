// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Single append-only measurements table with its ordering indexes.
package storage

// initSchema creates the schema if it is absent.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS measurements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		patient_name TEXT NOT NULL CHECK (length(trim(patient_name)) > 0),
		record_id TEXT NOT NULL DEFAULT '',
		recorded_at TEXT NOT NULL,
		arm_pressure REAL NOT NULL CHECK (arm_pressure <> 0),
		ankle_pressure REAL NOT NULL,
		itb REAL NOT NULL,
		phase TEXT NOT NULL DEFAULT 'pre' CHECK (phase IN ('pre', 'post'))
	);

	CREATE INDEX IF NOT EXISTS idx_measurements_recorded ON measurements(recorded_at, id);
	CREATE INDEX IF NOT EXISTS idx_measurements_patient_recorded ON measurements(patient_name, recorded_at, id);
	`

	_, err := d.db.Exec(schema)
	return err
}

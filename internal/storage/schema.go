// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines habits and trigger_events tables, tracked by PRAGMA user_version.
package storage

import "fmt"

const schemaVersion = 1

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	var version int
	if err := d.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		daily_limit INTEGER NOT NULL DEFAULT 5 CHECK (daily_limit > 0),
		created_date TEXT NOT NULL,
		is_active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS trigger_events (
		id TEXT PRIMARY KEY,
		habit_id TEXT NOT NULL,
		trigger_date TEXT NOT NULL,
		trigger_time TEXT NOT NULL,
		triggered_at DATETIME NOT NULL,
		description TEXT,
		sequence_number INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_habits_active ON habits(is_active);
	CREATE INDEX IF NOT EXISTS idx_trigger_events_habit_date ON trigger_events(habit_id, trigger_date);
	CREATE INDEX IF NOT EXISTS idx_trigger_events_triggered ON trigger_events(triggered_at DESC);
	`

	if _, err := d.db.Exec(schema); err != nil {
		return err
	}

	if version < schemaVersion {
		d.fresh = version == 0
		if _, err := d.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
			return fmt.Errorf("set schema version: %w", err)
		}
	}
	return nil
}

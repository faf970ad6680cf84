// Package migrations evolves the activity log schema. The applied version is
// kept in SQLite's user_version pragma.
package migrations

import (
	"database/sql"
	"fmt"
)

// Migration is one forward-only schema step
type Migration struct {
	Version int
	Name    string
	Up      string
}

// AllMigrations must stay ordered by Version with no gaps
var AllMigrations = []Migration{
	{
		Version: 1,
		Name:    "index activity by action",
		Up:      `CREATE INDEX IF NOT EXISTS idx_activity_action_timestamp ON activity(action, timestamp DESC)`,
	},
	{
		Version: 2,
		Name:    "record call duration",
		Up:      `ALTER TABLE activity ADD COLUMN duration_ms INTEGER NOT NULL DEFAULT 0`,
	},
}

const baseSchema = `
CREATE TABLE IF NOT EXISTS activity (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp DATETIME NOT NULL,
	action    TEXT NOT NULL,
	mode      TEXT,
	theme     TEXT,
	success   INTEGER NOT NULL,
	message   TEXT
);
CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity(timestamp DESC);
`

// Run creates the base table and applies every migration newer than the
// database's recorded version. Each step commits together with its version
// bump, so a failed step leaves the previous version in place.
func Run(db *sql.DB) error {
	if _, err := db.Exec(baseSchema); err != nil {
		return fmt.Errorf("failed to create activity table: %w", err)
	}

	current, err := GetCurrentVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range AllMigrations {
		if m.Version <= current {
			continue
		}
		if err := apply(db, m); err != nil {
			return err
		}
	}
	return nil
}

func apply(db *sql.DB, m Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.Up); err != nil {
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	// PRAGMA does not take bind parameters
	if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
		return fmt.Errorf("migration %d: failed to record version: %w", m.Version, err)
	}
	return tx.Commit()
}

// GetCurrentVersion returns the last applied migration, 0 for a fresh database
func GetCurrentVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

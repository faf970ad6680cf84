// Package history keeps a local SQLite log of user-triggered backend
// actions and their outcomes.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/lifeweeks/internal/migrations"
	"github.com/studiowebux/lifeweeks/internal/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// DefaultLimit is used by Recent when limit is not positive
const DefaultLimit = 50

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// The TUI records from several goroutines; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record stores one entry. A zero timestamp is replaced with now.
func (m *Manager) Record(entry types.ActivityEntry) error {
	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := m.db.Exec(`
		INSERT INTO activity (timestamp, action, mode, theme, success, message, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		ts.UTC().Format(timestampLayout),
		string(entry.Action),
		nullIfEmpty(string(entry.Mode)),
		nullIfEmpty(string(entry.Theme)),
		entry.Success,
		nullIfEmpty(entry.Message),
		entry.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to save activity entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first
func (m *Manager) Recent(limit int) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, action, mode, theme, success, message, duration_ms
		FROM activity
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ForAction returns up to limit entries of one action, newest first
func (m *Manager) ForAction(action types.Action, limit int) ([]types.ActivityEntry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, action, mode, theme, success, message, duration_ms
		FROM activity
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`, string(action), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]types.ActivityEntry, error) {
	var entries []types.ActivityEntry
	for rows.Next() {
		var (
			entry      types.ActivityEntry
			timestamp  string
			action     string
			mode       sql.NullString
			theme      sql.NullString
			message    sql.NullString
			durationMs int64
		)

		if err := rows.Scan(&entry.ID, &timestamp, &action, &mode, &theme, &entry.Success, &message, &durationMs); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}

		// Stored in UTC; go-sqlite3 hands DATETIME columns back as RFC3339
		parsed, err := time.Parse(time.RFC3339, timestamp)
		if err != nil {
			parsed, err = time.ParseInLocation(timestampLayout, timestamp, time.UTC)
			if err != nil {
				parsed = time.Time{}
			}
		}

		entry.Timestamp = parsed.Local()
		entry.Action = types.Action(action)
		entry.Mode = types.Mode(mode.String)
		entry.Theme = types.Theme(theme.String)
		entry.Message = message.String
		entry.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read activity rows: %w", err)
	}
	return entries, nil
}

// Clear removes every entry
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM activity"); err != nil {
		return fmt.Errorf("failed to clear activity: %w", err)
	}
	return nil
}

// Count returns the number of stored entries
func (m *Manager) Count() (int, error) {
	var count int
	if err := m.db.QueryRow("SELECT COUNT(*) FROM activity").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

package history

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/lifeweeks/internal/migrations"
	"github.com/studiowebux/lifeweeks/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "lifeweeks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestRecordAndRecent(t *testing.T) {
	m := newTestManager(t)

	when := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, m.Record(types.ActivityEntry{
		Timestamp: when,
		Action:    types.ActionPreview,
		Mode:      types.ModeYearEnd,
		Theme:     types.ThemeDark,
		Success:   true,
		Duration:  120 * time.Millisecond,
	}))
	require.NoError(t, m.Record(types.ActivityEntry{
		Action:  types.ActionApply,
		Mode:    types.ModeLife,
		Theme:   types.ThemeSunset,
		Success: false,
		Message: "DOB is required for life mode",
	}))

	entries, err := m.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	assert.Equal(t, types.ActionApply, entries[0].Action)
	assert.False(t, entries[0].Success)
	assert.Equal(t, "DOB is required for life mode", entries[0].Message)
	assert.False(t, entries[0].Timestamp.IsZero())

	assert.Equal(t, types.ActionPreview, entries[1].Action)
	assert.True(t, entries[1].Success)
	assert.Equal(t, types.ModeYearEnd, entries[1].Mode)
	assert.Equal(t, types.ThemeDark, entries[1].Theme)
	assert.Empty(t, entries[1].Message)
	assert.Equal(t, 120*time.Millisecond, entries[1].Duration)
	assert.True(t, when.Equal(entries[1].Timestamp), "got %v", entries[1].Timestamp)
}

func TestRecentLimit(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionPreview, Success: true}))
	}

	entries, err := m.Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	entries, err = m.Recent(0)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestForAction(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionPreview, Success: true}))
	require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionSchedule, Success: true, Message: "Weekly schedule installed"}))
	require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionPreview, Success: false}))

	entries, err := m.ForAction(types.ActionPreview, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, types.ActionPreview, e.Action)
	}
}

func TestClearAndCount(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionPersist, Success: true}))
	require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionPersist, Success: true}))

	count, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, m.Clear())
	count, err = m.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	entries, err := m.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReopenKeepsEntriesAndVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lifeweeks.db")

	m, err := NewManager(path)
	require.NoError(t, err)
	require.NoError(t, m.Record(types.ActivityEntry{Action: types.ActionApply, Success: true}))
	require.NoError(t, m.Close())

	m, err = NewManager(path)
	require.NoError(t, err)
	defer m.Close()

	count, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	version, err := migrations.GetCurrentVersion(m.db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations.AllMigrations), version)
}

func TestMigrationsRunTwice(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "m.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, migrations.Run(db))
	require.NoError(t, migrations.Run(db))

	version, err := migrations.GetCurrentVersion(db)
	require.NoError(t, err)
	assert.Equal(t, 2, version)
}

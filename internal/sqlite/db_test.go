package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestMigrations verifies that migrations run successfully and are repeatable
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", "snapshots").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "table snapshots not found")

	require.NoError(t, db.RunMigrations())
}

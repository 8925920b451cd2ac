package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithPragmas(t *testing.T) {
	assert.Equal(t, "x.db?"+sqlitePragmas, withPragmas("x.db"))
	assert.Equal(t, "file:x.db?mode=rwc&"+sqlitePragmas, withPragmas("file:x.db?mode=rwc"))
	assert.Equal(t, "x.db?_pragma=foreign_keys(1)", withPragmas("x.db?_pragma=foreign_keys(1)"))
}

func TestConnect_SQLite(t *testing.T) {
	db, err := Connect(filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

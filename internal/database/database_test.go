package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "dsn")
	assert.EqualError(t, err, `unsupported database driver "oracle"`)
}

func TestOpenMigratePing(t *testing.T) {
	db, err := Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	assert.NoError(t, Ping(context.Background(), db))

	var fk int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.Error(t, Ping(context.Background(), db))
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/songbook/internal/store"
)

func TestCheckSQLite(t *testing.T) {
	result := checkSQLite()
	assert.False(t, result.error, result.message)
	assert.NotEmpty(t, result.message)
}

func TestCheckDatabase(t *testing.T) {
	t.Run("not yet created", func(t *testing.T) {
		result := checkDatabase(filepath.Join(t.TempDir(), "nonexistent.db"))
		assert.False(t, result.error, result.message)
		assert.Contains(t, result.message, "will be created")
	})

	t.Run("existing", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "state.db")
		db, err := store.Open(dbPath)
		require.NoError(t, err)
		_, err = db.SaveSnapshot("https://example.com/songs.json", []byte(`[]`), 0)
		require.NoError(t, err)
		require.NoError(t, db.Close())

		result := checkDatabase(dbPath)
		assert.False(t, result.error, result.message)
		assert.Contains(t, result.message, "1 snapshots")
	})

	t.Run("directory", func(t *testing.T) {
		result := checkDatabase(t.TempDir())
		assert.True(t, result.error)
	})
}

func TestCheckSource(t *testing.T) {
	assert.True(t, checkSource("").error)
	assert.False(t, checkSource("https://example.com/songs.json").error)

	result := checkSource(writeCatalog(t))
	assert.False(t, result.error, result.message)
	assert.Contains(t, result.message, "3 records")

	empty := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`[]`), 0644))
	assert.True(t, checkSource(empty).warning)

	assert.True(t, checkSource(filepath.Join(t.TempDir(), "missing.json")).error)
}

func TestCheckAuditRoot(t *testing.T) {
	dir := t.TempDir()
	assert.False(t, checkAuditRoot(dir).warning)

	file := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.True(t, checkAuditRoot(file).warning)
}

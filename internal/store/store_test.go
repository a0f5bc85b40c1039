package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/songbook/internal/util"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreOpenAndMigrate(t *testing.T) {
	s := openTestStore(t)

	version, err := s.getSchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, currentSchemaVersion, version)

	for _, table := range []string{"snapshots", "schema_version"} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "expected table %s to exist", table)
	}

	var count int
	err = s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_snapshots_source_fetched'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStoreReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.SaveSnapshot("https://example.com/songs.json", []byte(`[]`), 0)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	snap, err := s.LatestSnapshot("https://example.com/songs.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), snap.Payload)
}

func TestSaveAndLatestSnapshot(t *testing.T) {
	s := openTestStore(t)
	src := "https://example.com/songs.json"

	_, err := s.LatestSnapshot(src)
	assert.True(t, errors.Is(err, util.ErrNoSnapshot))

	first, err := s.SaveSnapshot(src, []byte(`[{"Έτος":"1948"}]`), 1)
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, int64(len(`[{"Έτος":"1948"}]`)), first.SizeBytes)

	second, err := s.SaveSnapshot(src, []byte(`[{"Έτος":"1948"},{"Έτος":"1950"}]`), 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	latest, err := s.LatestSnapshot(src)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, 2, latest.RecordCount)
	assert.Equal(t, second.SHA256, latest.SHA256)
	assert.Equal(t, second.FetchedAt.UnixNano(), latest.FetchedAt.UnixNano())

	// other sources are independent
	_, err = s.LatestSnapshot("other")
	assert.True(t, errors.Is(err, util.ErrNoSnapshot))
}

func TestSaveSnapshotDeduplicatesUnchangedPayload(t *testing.T) {
	s := openTestStore(t)
	src := "catalog"

	first, err := s.SaveSnapshot(src, []byte(`[]`), 0)
	require.NoError(t, err)
	again, err := s.SaveSnapshot(src, []byte(`[]`), 0)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.False(t, again.FetchedAt.Before(first.FetchedAt))

	snaps, err := s.ListSnapshots(src)
	require.NoError(t, err)
	assert.Len(t, snaps, 1)
}

func TestListAndPruneSnapshots(t *testing.T) {
	s := openTestStore(t)

	var ids []string
	for _, payload := range []string{`[1]`, `[2]`, `[3]`, `[4]`} {
		snap, err := s.SaveSnapshot("a", []byte(payload), 1)
		require.NoError(t, err)
		ids = append(ids, snap.ID)
	}
	_, err := s.SaveSnapshot("b", []byte(`[]`), 0)
	require.NoError(t, err)

	snaps, err := s.ListSnapshots("a")
	require.NoError(t, err)
	require.Len(t, snaps, 4)
	assert.Equal(t, ids[3], snaps[0].ID, "newest first")
	assert.Nil(t, snaps[0].Payload)

	all, err := s.ListSnapshots("")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	deleted, err := s.PruneSnapshots("a", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	snaps, err = s.ListSnapshots("a")
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, []string{ids[3], ids[2]}, []string{snaps[0].ID, snaps[1].ID})

	_, err = s.PruneSnapshots("a", -1)
	assert.True(t, errors.Is(err, util.ErrInvalidConfig))
}

func TestSQLiteVersion(t *testing.T) {
	assert.NotEmpty(t, SQLiteVersion())
}

package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/store"
	"github.com/franz/songbook/internal/util"
)

const catalogJSON = `[
  {"Τίτλος τραγουδιού": "Φραγκοσυριανή", "Έτος": 1935, "Τραγουδιστής_1": "Μάρκος Βαμβακάρης", "LINK_YOUTUBE": "#"},
  {"Τίτλος τραγουδιού": "Συννεφιασμένη Κυριακή", "Έτος": "1948", "Τραγουδιστής_1": "Βασίλης Τσιτσάνης"}
]`

const catalogYAML = `
- Τίτλος τραγουδιού: Φραγκοσυριανή
  Έτος: 1935
  Τραγουδιστής_1: Μάρκος Βαμβακάρης
  Τραγουδιστής_2: ~
- Τίτλος τραγουδιού: Συννεφιασμένη Κυριακή
  Έτος: "1948"
`

func fastAPI(retries int) *APILoader {
	return NewAPILoader(APIOptions{
		Timeout:      2 * time.Second,
		RetryCount:   retries,
		RetryWait:    time.Millisecond,
		RetryMaxWait: 5 * time.Millisecond,
	})
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords([]byte(catalogJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1935", records[0][catalog.LabelYear])

	empty, err := DecodeRecords([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = DecodeRecords([]byte(`{"not": "an array"}`))
	assert.Error(t, err)
}

func TestFileLoader(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/songs.json", []byte(catalogJSON), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/songs.YML", []byte(catalogYAML), 0644))
	require.NoError(t, afero.WriteFile(fs, "/data/songs.csv", []byte("a,b"), 0644))

	loader := &FileLoader{Fs: fs}

	fromJSON, err := loader.Load("/data/songs.json")
	require.NoError(t, err)
	fromYAML, err := loader.Load("/data/songs.YML")
	require.NoError(t, err)

	require.Len(t, fromYAML, 2)
	assert.Equal(t, "1935", fromYAML[0][catalog.LabelYear])
	assert.NotContains(t, fromYAML[0], catalog.LabelSinger2)
	assert.Equal(t, catalog.Normalize(fromJSON[1]).Title, catalog.Normalize(fromYAML[1]).Title)

	_, err = loader.Load("/data/songs.csv")
	assert.True(t, errors.Is(err, util.ErrUnsupportedFormat))

	_, err = loader.Load("/data/missing.json")
	assert.True(t, errors.Is(err, util.ErrNotFound))
}

func TestAPILoaderFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	records, payload, err := fastAPI(0).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.JSONEq(t, catalogJSON, string(payload))
}

func TestAPILoaderRetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	records, _, err := fastAPI(3).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAPILoaderStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, _, err := fastAPI(0).Fetch(context.Background(), srv.URL)
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.True(t, errors.Is(err, util.ErrFetch))
	assert.Contains(t, err.Error(), "status 404")
}

func TestAPILoaderBadPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	_, _, err := fastAPI(0).Fetch(context.Background(), srv.URL)
	assert.True(t, errors.Is(err, util.ErrFetch))
}

func TestIsEndpoint(t *testing.T) {
	assert.True(t, IsEndpoint("https://example.com/songs.json"))
	assert.True(t, IsEndpoint("HTTP://example.com"))
	assert.False(t, IsEndpoint("data/songs.json"))
	assert.False(t, IsEndpoint("ftp://example.com/songs.json"))
}

func TestSourceSnapshotsAndFallsBack(t *testing.T) {
	snaps := openStore(t)

	var down atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	src := Source{Location: srv.URL, API: fastAPI(0), Snapshots: snaps}

	records, err := src.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	snap, err := snaps.LatestSnapshot(srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.RecordCount)

	down.Store(true)
	records, err = src.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSourceWithoutSnapshotFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := Source{Location: srv.URL, API: fastAPI(0), Snapshots: openStore(t)}.Records(context.Background())
	assert.True(t, errors.Is(err, util.ErrFetch))

	_, err = Source{}.Records(context.Background())
	assert.True(t, errors.Is(err, util.ErrInvalidConfig))
}

func TestLoadCatalog(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "songs.json", []byte(catalogJSON), 0644))

	songs := LoadCatalog(context.Background(), Source{Location: "songs.json", Files: &FileLoader{Fs: fs}})
	require.Len(t, songs, 2)
	assert.Equal(t, "Φραγκοσυριανή-1935-0", songs[0].UniqueKey)
}

func TestLoadCatalogFailureYieldsEmptyCatalog(t *testing.T) {
	util.SetQuiet(true)
	defer util.SetLogLevel(util.LevelInfo)

	songs := LoadCatalog(context.Background(), Source{Location: "missing.json", Files: &FileLoader{Fs: afero.NewMemMapFs()}})
	assert.NotNil(t, songs)
	assert.Empty(t, songs)
}

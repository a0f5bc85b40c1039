package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/franz/songbook/internal/catalog"
	"github.com/franz/songbook/internal/store"
	"github.com/franz/songbook/internal/util"
)

// Snapshots stores fetched payloads for offline fallback. *store.Store implements it.
type Snapshots interface {
	SaveSnapshot(source string, payload []byte, records int) (*store.Snapshot, error)
	LatestSnapshot(source string) (*store.Snapshot, error)
}

// Source describes where a catalog comes from.
type Source struct {
	// Location is a file path or an http(s) URL.
	Location  string
	Files     *FileLoader
	API       *APILoader
	Snapshots Snapshots // optional
	Processor catalog.Processor
}

// IsEndpoint reports whether location names an HTTP endpoint rather than a file.
func IsEndpoint(location string) bool {
	l := strings.ToLower(location)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

// Records retrieves the raw records of the source. Endpoint payloads are
// snapshotted on success; on failure the newest snapshot is used if one exists.
func (s Source) Records(ctx context.Context) ([]catalog.RawRecord, error) {
	if s.Location == "" {
		return nil, fmt.Errorf("%w: no catalog source configured", util.ErrInvalidConfig)
	}

	if !IsEndpoint(s.Location) {
		files := s.Files
		if files == nil {
			files = NewFileLoader()
		}
		return files.Load(s.Location)
	}

	api := s.API
	if api == nil {
		api = NewAPILoader(DefaultAPIOptions())
	}

	records, payload, err := api.Fetch(ctx, s.Location)
	if err == nil {
		if s.Snapshots != nil {
			if _, serr := s.Snapshots.SaveSnapshot(s.Location, payload, len(records)); serr != nil {
				util.WarnLog("Failed to store catalog snapshot: %v", serr)
			}
		}
		return records, nil
	}

	if s.Snapshots == nil {
		return nil, err
	}

	snap, serr := s.Snapshots.LatestSnapshot(s.Location)
	if serr != nil {
		util.DebugLog("No snapshot fallback: %v", serr)
		return nil, err
	}

	records, derr := DecodeRecords(snap.Payload)
	if derr != nil {
		return nil, fmt.Errorf("%w (snapshot %s unreadable: %v)", err, snap.ID, derr)
	}

	util.WarnLog("Catalog fetch failed (%v); using snapshot from %s", err, humanize.Time(snap.FetchedAt))
	return records, nil
}

// LoadCatalog retrieves and processes the source. Retrieval failures are
// logged and yield an empty catalog, which is a valid catalog.
func LoadCatalog(ctx context.Context, src Source) []catalog.DisplayableSong {
	records, err := src.Records(ctx)
	if err != nil {
		util.ErrorLog("Error loading songs: %v", err)
		return src.Processor.Process(nil)
	}
	return src.Processor.Process(records)
}

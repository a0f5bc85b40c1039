package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/franz/songbook/internal/util"
)

// Snapshot is one stored catalog payload
type Snapshot struct {
	ID          string
	Source      string
	FetchedAt   time.Time
	RecordCount int
	SizeBytes   int64
	SHA256      string
	Payload     []byte // nil when listed
}

// SaveSnapshot stores payload as the newest snapshot of source.
// If the newest stored snapshot has identical content, its timestamp is
// refreshed and that snapshot is returned instead of adding a row.
func (s *Store) SaveSnapshot(source string, payload []byte, records int) (*Snapshot, error) {
	sum := sha256.Sum256(payload)
	snap := &Snapshot{
		ID:          uuid.NewString(),
		Source:      source,
		FetchedAt:   time.Now(),
		RecordCount: records,
		SizeBytes:   int64(len(payload)),
		SHA256:      hex.EncodeToString(sum[:]),
		Payload:     payload,
	}

	latest, err := s.LatestSnapshot(source)
	if err != nil && !errors.Is(err, util.ErrNoSnapshot) {
		return nil, err
	}
	if latest != nil && latest.SHA256 == snap.SHA256 {
		latest.FetchedAt = snap.FetchedAt
		if _, err := s.db.Exec(`UPDATE snapshots SET fetched_at_unix = ? WHERE id = ?`,
			latest.FetchedAt.UnixNano(), latest.ID); err != nil {
			return nil, fmt.Errorf("failed to refresh snapshot: %w", err)
		}
		return latest, nil
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (id, source, fetched_at_unix, record_count, size_bytes, sha256, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, snap.ID, snap.Source, snap.FetchedAt.UnixNano(), snap.RecordCount, snap.SizeBytes, snap.SHA256, snap.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return snap, nil
}

// LatestSnapshot returns the newest snapshot of source, payload included.
// It returns util.ErrNoSnapshot when the source has never been stored.
func (s *Store) LatestSnapshot(source string) (*Snapshot, error) {
	snap := &Snapshot{}
	var fetched int64
	err := s.db.QueryRow(`
		SELECT id, source, fetched_at_unix, record_count, size_bytes, sha256, payload
		FROM snapshots WHERE source = ?
		ORDER BY fetched_at_unix DESC, rowid DESC
		LIMIT 1
	`, source).Scan(&snap.ID, &snap.Source, &fetched, &snap.RecordCount, &snap.SizeBytes, &snap.SHA256, &snap.Payload)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w for %s", util.ErrNoSnapshot, source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	snap.FetchedAt = time.Unix(0, fetched)
	return snap, nil
}

// ListSnapshots returns snapshot metadata for source, newest first.
// An empty source lists every source.
func (s *Store) ListSnapshots(source string) ([]*Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT id, source, fetched_at_unix, record_count, size_bytes, sha256
		FROM snapshots WHERE ? = '' OR source = ?
		ORDER BY fetched_at_unix DESC, rowid DESC
	`, source, source)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []*Snapshot
	for rows.Next() {
		snap := &Snapshot{}
		var fetched int64
		if err := rows.Scan(&snap.ID, &snap.Source, &fetched, &snap.RecordCount, &snap.SizeBytes, &snap.SHA256); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.FetchedAt = time.Unix(0, fetched)
		snaps = append(snaps, snap)
	}

	return snaps, rows.Err()
}

// PruneSnapshots keeps the newest keep snapshots of source and deletes the rest.
// It returns the number of deleted snapshots.
func (s *Store) PruneSnapshots(source string, keep int) (int, error) {
	if keep < 0 {
		return 0, fmt.Errorf("%w: keep must be >= 0, got %d", util.ErrInvalidConfig, keep)
	}

	result, err := s.db.Exec(`
		DELETE FROM snapshots
		WHERE source = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE source = ?
			ORDER BY fetched_at_unix DESC, rowid DESC
			LIMIT ?
		)
	`, source, source, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned snapshots: %w", err)
	}
	return int(n), nil
}

package store

// Schema v1 - catalog snapshots
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
  version INTEGER PRIMARY KEY,
  applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Raw catalog payloads as fetched from an endpoint
CREATE TABLE IF NOT EXISTS snapshots (
  id TEXT PRIMARY KEY,
  source TEXT NOT NULL,
  fetched_at_unix INTEGER NOT NULL,
  record_count INTEGER NOT NULL,
  size_bytes INTEGER NOT NULL,
  sha256 TEXT NOT NULL,
  payload BLOB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_source ON snapshots(source);
`

// Schema v2 - lookup index for latest-snapshot queries
const schemaV2 = `
CREATE INDEX IF NOT EXISTS idx_snapshots_source_fetched ON snapshots(source, fetched_at_unix DESC);
`

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SnapshotBackend stores one collection snapshot as a row of the snapshots table
type SnapshotBackend struct {
	db     *DB
	bucket string
}

// NewSnapshotBackend creates a backend for the named collection
func NewSnapshotBackend(db *DB, bucket string) *SnapshotBackend {
	return &SnapshotBackend{db: db, bucket: bucket}
}

func (b *SnapshotBackend) Name() string { return b.bucket }

// Load returns the stored payload, ok is false if the bucket has no row yet
func (b *SnapshotBackend) Load(ctx context.Context) ([]byte, bool, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM snapshots WHERE bucket = ?`, b.bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load snapshot %s: %w", b.bucket, err)
	}
	return payload, true, nil
}

// Save upserts the payload for the bucket
func (b *SnapshotBackend) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO snapshots (bucket, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`

	if _, err := b.db.ExecContext(ctx, query, b.bucket, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", b.bucket, err)
	}
	return nil
}

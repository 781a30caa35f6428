package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aurafin/aura-backend/internal/domain"
)

// Compile-time check: *snapshotRepository must satisfy domain.SnapshotRepository.
var _ domain.SnapshotRepository = (*snapshotRepository)(nil)

// snapshotRepository implements domain.SnapshotRepository on SQLite
type snapshotRepository struct {
	db *DB
}

// NewSnapshotRepository creates a new SQLite-backed snapshot repository
func NewSnapshotRepository(db *DB) domain.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Save serializes the snapshot to JSON and upserts it under key
func (r *snapshotRepository) Save(ctx context.Context, key string, snapshot *domain.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := r.db.ExecContext(ctx, query, key, string(raw)); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Load returns the snapshot stored under key, or domain.ErrSnapshotNotFound
func (r *snapshotRepository) Load(ctx context.Context, key string) (*domain.Snapshot, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snapshot, nil
}

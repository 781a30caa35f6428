package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aurafin/aura-backend/internal/domain"
)

var _ domain.SessionRepository = (*sessionRepository)(nil)

// sessionRepository implements domain.SessionRepository on PostgreSQL
type sessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new Postgres-backed session repository
func NewSessionRepository(db *DB) domain.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Put(ctx context.Context, identityID string) error {
	query := `
		INSERT INTO session (id, identity_id, updated_at)
		VALUES (1, $1, now())
		ON CONFLICT (id) DO UPDATE SET identity_id = EXCLUDED.identity_id, updated_at = now()
	`
	if _, err := r.db.ExecContext(ctx, query, identityID); err != nil {
		return fmt.Errorf("failed to store session marker: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context) (string, error) {
	var identityID string
	err := r.db.QueryRowContext(ctx, `SELECT identity_id FROM session WHERE id = 1`).Scan(&identityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNoSession
		}
		return "", fmt.Errorf("failed to read session marker: %w", err)
	}
	return identityID, nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to clear session marker: %w", err)
	}
	return nil
}

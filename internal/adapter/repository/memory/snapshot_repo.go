// Package memory provides in-memory implementations of the persistence
// interfaces. They serialize snapshots through JSON exactly like the durable
// backends, so tests exercise the same marshaling path, and they double as
// the no-persistence backend for ephemeral runs.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aurafin/aura-backend/internal/domain"
)

// snapshotRepository implements domain.SnapshotRepository
type snapshotRepository struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSnapshotRepository creates a new in-memory snapshot repository
func NewSnapshotRepository() domain.SnapshotRepository {
	return &snapshotRepository{data: make(map[string][]byte)}
}

// Save serializes the snapshot and stores it under key, overwriting any
// prior value
func (r *snapshotRepository) Save(_ context.Context, key string, snapshot *domain.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = raw
	return nil
}

// Load returns the snapshot stored under key, or domain.ErrSnapshotNotFound
func (r *snapshotRepository) Load(_ context.Context, key string) (*domain.Snapshot, error) {
	r.mu.RLock()
	raw, ok := r.data[key]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &snapshot, nil
}

// sessionRepository implements domain.SessionRepository
type sessionRepository struct {
	mu       sync.RWMutex
	identity string
}

// NewSessionRepository creates a new in-memory session repository
func NewSessionRepository() domain.SessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Put(_ context.Context, identityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = identityID
	return nil
}

func (r *sessionRepository) Get(_ context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.identity == "" {
		return "", domain.ErrNoSession
	}
	return r.identity, nil
}

func (r *sessionRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.identity = ""
	return nil
}

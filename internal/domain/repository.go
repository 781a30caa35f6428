package domain

import (
	"context"
	"errors"
)

// ErrSnapshotNotFound is returned by SnapshotRepository.Load when no snapshot
// has been saved under the given key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// ErrNoSession is returned by SessionRepository.Get when no identity session
// marker is stored.
var ErrNoSession = errors.New("no active session")

// SnapshotRepository defines the interface for snapshot persistence.
// Save overwrites any prior value under key; there is no transactionality and
// no versioning. Implementations are best-effort caches, not ledgers of
// record: callers are expected to swallow save failures.
type SnapshotRepository interface {
	// Save serializes the snapshot and stores it under key
	Save(ctx context.Context, key string, snapshot *Snapshot) error

	// Load returns the previously saved snapshot for key, or
	// ErrSnapshotNotFound
	Load(ctx context.Context, key string) (*Snapshot, error)
}

// SessionRepository stores the marker indicating which identity, if any, is
// currently authenticated
type SessionRepository interface {
	// Put records identityID as the active session
	Put(ctx context.Context, identityID string) error

	// Get returns the active session's identity id, or ErrNoSession
	Get(ctx context.Context) (string, error)

	// Clear removes the session marker. Clearing an absent session is not
	// an error.
	Clear(ctx context.Context) error
}

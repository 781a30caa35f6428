// Package identity implements authentication against the fixed demo profile
// and keeps track of the active session.
package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/aurafin/aura-backend/internal/domain"
	"github.com/aurafin/aura-backend/internal/usecase/seeder"
)

// ErrUnknownIdentity is returned by Login when the email does not belong to
// any registered identity.
var ErrUnknownIdentity = errors.New("unknown identity")

// ErrInvalidCredentials is returned by Login when the email is recognized but
// the password does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Service authenticates identities and owns the active session marker.
// There is exactly one registered identity, the master demo profile; anyone
// else is unknown.
type Service struct {
	Sessions domain.SessionRepository

	mu      sync.Mutex
	current *domain.Identity
}

// NewService creates a new identity service backed by the given session store
func NewService(sessions domain.SessionRepository) *Service {
	return &Service{Sessions: sessions}
}

// Login authenticates the email and password pair. On success the identity
// becomes the active session and is returned without its password.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	master := seeder.MasterIdentity()

	probe := domain.Identity{Email: email}
	if probe.EmailKey() != master.EmailKey() {
		return nil, ErrUnknownIdentity
	}
	if password != master.Password {
		return nil, ErrInvalidCredentials
	}

	master.Password = ""

	s.mu.Lock()
	s.current = master
	s.mu.Unlock()

	if err := s.Sessions.Put(ctx, master.ID); err != nil {
		zap.L().Warn("session marker not persisted", zap.Error(err))
	}

	zap.L().Info("identity authenticated", zap.String("identity_id", master.ID))
	return cloneIdentity(master), nil
}

// Resume restores the session recorded by a previous Login. It returns
// domain.ErrNoSession when no marker exists, and an error when the marker
// does not match any known identity.
func (s *Service) Resume(ctx context.Context) (*domain.Identity, error) {
	identityID, err := s.Sessions.Get(ctx)
	if err != nil {
		return nil, err
	}
	if identityID != seeder.MasterIdentityID {
		return nil, fmt.Errorf("session refers to unknown identity %s: %w", identityID, ErrUnknownIdentity)
	}

	master := seeder.MasterIdentity()
	master.Password = ""

	s.mu.Lock()
	s.current = master
	s.mu.Unlock()

	return cloneIdentity(master), nil
}

// Logout clears the active session. Logging out without a session is not an
// error.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.Sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns a copy of the active identity, or nil when logged out
func (s *Service) Current() *domain.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIdentity(s.current)
}

// UpdateRewardPoints sets the active identity's reward point balance. It
// satisfies the updater hook the financial store notifies after a reward
// claim.
func (s *Service) UpdateRewardPoints(_ context.Context, identityID string, points int) error {
	if points < 0 {
		return fmt.Errorf("reward points cannot be negative: %d", points)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.ID != identityID {
		return fmt.Errorf("identity %s is not the active session", identityID)
	}
	s.current.RewardPoints = points
	return nil
}

func cloneIdentity(identity *domain.Identity) *domain.Identity {
	if identity == nil {
		return nil
	}
	clone := *identity
	return &clone
}

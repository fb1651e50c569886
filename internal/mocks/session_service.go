package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// MockSessionService implements auth.SessionService with opaque tokens held
// in memory.
type MockSessionService struct {
	IssueFn    func(ctx context.Context, id domain.Identity) (string, error)
	ValidateFn func(ctx context.Context, token string) (*auth.Claims, error)
	LifetimeFn func() time.Duration

	mu     sync.Mutex
	issued map[string]domain.Identity
	seq    int
}

var _ auth.SessionService = (*MockSessionService)(nil)

// Issue implements auth.SessionService.
func (m *MockSessionService) Issue(ctx context.Context, id domain.Identity) (string, error) {
	if m.IssueFn != nil {
		return m.IssueFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.issued == nil {
		m.issued = make(map[string]domain.Identity)
	}
	m.seq++
	token := fmt.Sprintf("session-%d-%d", id.UserID, m.seq)
	m.issued[token] = id
	return token, nil
}

// Validate implements auth.SessionService.
func (m *MockSessionService) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	if m.ValidateFn != nil {
		return m.ValidateFn(ctx, token)
	}
	if token == "" {
		return nil, auth.ErrMissingToken
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.issued[token]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	now := time.Now().UTC()
	return &auth.Claims{
		UserID:    id.UserID,
		Username:  id.Username,
		Role:      id.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(m.Lifetime()),
		ID:        token,
	}, nil
}

// Lifetime implements auth.SessionService.
func (m *MockSessionService) Lifetime() time.Duration {
	if m.LifetimeFn != nil {
		return m.LifetimeFn()
	}
	return time.Hour
}

package mocks

import (
	"context"
	"sort"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MockUserStore implements store.UserStore over a Memory.
type MockUserStore struct {
	CreateFn         func(ctx context.Context, user *domain.User) error
	GetByIDFn        func(ctx context.Context, id int64) (*domain.User, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*domain.User, error)
	UpdatePasswordFn func(ctx context.Context, id int64, hashedPassword string) error
	DeleteFn         func(ctx context.Context, id int64) error
	ListRefsFn       func(ctx context.Context) ([]domain.UserRef, error)
	CountFn          func(ctx context.Context) (int, error)

	mem *Memory
}

// NewMockUserStore creates a user store backed by mem.
func NewMockUserStore(mem *Memory) *MockUserStore {
	return &MockUserStore{mem: mem}
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if user.HashedPassword == "" {
		return store.ErrInvalidEntity
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	for _, u := range m.mem.users {
		if u.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	m.mem.nextUserID++
	user.ID = m.mem.nextUserID
	user.Password = ""
	m.mem.users[user.ID] = copyUser(user)
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	u, ok := m.mem.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return copyUser(u), nil
}

// GetByUsername implements store.UserStore.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	for _, u := range m.mem.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// UpdatePassword implements store.UserStore.
func (m *MockUserStore) UpdatePassword(ctx context.Context, id int64, hashedPassword string) error {
	if m.UpdatePasswordFn != nil {
		return m.UpdatePasswordFn(ctx, id, hashedPassword)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	u, ok := m.mem.users[id]
	if !ok {
		return store.ErrUserNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

// Delete implements store.UserStore. Like the foreign keys in PostgreSQL,
// it refuses to delete a user still referenced by a task.
func (m *MockUserStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	if _, ok := m.mem.users[id]; !ok {
		return store.ErrUserNotFound
	}
	for _, t := range m.mem.tasks {
		if t.IsOwnedOrAssigned(id) {
			return store.ErrInvalidEntity
		}
	}
	delete(m.mem.users, id)
	return nil
}

// ListRefs implements store.UserStore.
func (m *MockUserStore) ListRefs(ctx context.Context) ([]domain.UserRef, error) {
	if m.ListRefsFn != nil {
		return m.ListRefsFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	refs := make([]domain.UserRef, 0, len(m.mem.users))
	for _, u := range m.mem.users {
		refs = append(refs, domain.UserRef{ID: u.ID, Username: u.Username})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Username < refs[j].Username })
	return refs, nil
}

// Count implements store.UserStore.
func (m *MockUserStore) Count(ctx context.Context) (int, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()
	return len(m.mem.users), nil
}

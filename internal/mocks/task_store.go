package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MockTaskStore implements store.TaskStore over a Memory.
type MockTaskStore struct {
	CreateFn           func(ctx context.Context, task *domain.Task) error
	GetByIDFn          func(ctx context.Context, id int64) (*domain.Task, error)
	GetForUpdateFn     func(ctx context.Context, id int64) (*domain.Task, error)
	UpdateFn           func(ctx context.Context, task *domain.Task) error
	UpdatePlacementFn  func(ctx context.Context, id, bucketID int64, status domain.Status) error
	UpdateStatusFn     func(ctx context.Context, id int64, status domain.Status) error
	DeleteFn           func(ctx context.Context, id int64) error
	DeleteAllForUserFn func(ctx context.Context, userID int64) (int64, error)
	ListForBoardFn     func(ctx context.Context) ([]*domain.TaskRow, error)
	ListForDashboardFn func(ctx context.Context, userID int64, q domain.DashboardQuery) ([]*domain.TaskRow, error)

	mem *Memory
}

// NewMockTaskStore creates a task store backed by mem.
func NewMockTaskStore(mem *Memory) *MockTaskStore {
	return &MockTaskStore{mem: mem}
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	if _, ok := m.mem.users[task.OwnerID]; !ok {
		return store.ErrInvalidEntity
	}
	m.mem.insertTaskLocked(task)
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	t, ok := m.mem.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return copyTask(t), nil
}

// GetForUpdate implements store.TaskStore. MockTxRunner serializes
// transactions, so no per-row lock is needed.
func (m *MockTaskStore) GetForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	existing, ok := m.mem.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	updated := copyTask(task)
	updated.OwnerID = existing.OwnerID
	updated.CreatedAt = existing.CreatedAt
	m.mem.tasks[task.ID] = updated
	return nil
}

// UpdatePlacement implements store.TaskStore.
func (m *MockTaskStore) UpdatePlacement(ctx context.Context, id, bucketID int64, status domain.Status) error {
	if m.UpdatePlacementFn != nil {
		return m.UpdatePlacementFn(ctx, id, bucketID, status)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	t, ok := m.mem.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	b := bucketID
	t.BucketID = &b
	t.Status = status
	return nil
}

// UpdateStatus implements store.TaskStore.
func (m *MockTaskStore) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	t, ok := m.mem.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	t.Status = status
	return nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	if _, ok := m.mem.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.mem.tasks, id)
	return nil
}

// DeleteAllForUser implements store.TaskStore.
func (m *MockTaskStore) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	if m.DeleteAllForUserFn != nil {
		return m.DeleteAllForUserFn(ctx, userID)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	var n int64
	for id, t := range m.mem.tasks {
		if t.IsOwnedOrAssigned(userID) {
			delete(m.mem.tasks, id)
			n++
		}
	}
	return n, nil
}

// ListForBoard implements store.TaskStore.
func (m *MockTaskStore) ListForBoard(ctx context.Context) ([]*domain.TaskRow, error) {
	if m.ListForBoardFn != nil {
		return m.ListForBoardFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	rows := make([]*domain.TaskRow, 0, len(m.mem.tasks))
	for _, t := range m.mem.tasks {
		rows = append(rows, m.joinLocked(t))
	}
	sort.Slice(rows, func(i, j int) bool { return newerFirst(rows[i], rows[j]) })
	return rows, nil
}

// ListForDashboard implements store.TaskStore.
func (m *MockTaskStore) ListForDashboard(ctx context.Context, userID int64, q domain.DashboardQuery) ([]*domain.TaskRow, error) {
	if m.ListForDashboardFn != nil {
		return m.ListForDashboardFn(ctx, userID, q)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	rows := make([]*domain.TaskRow, 0)
	for _, t := range m.mem.tasks {
		if t.IsOwnedOrAssigned(userID) && q.Matches(t) {
			rows = append(rows, m.joinLocked(t))
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch q.Sort {
		case domain.SortDueDate:
			if !sameDue(a.DueDate, b.DueDate) {
				return dueBefore(a.DueDate, b.DueDate)
			}
		case domain.SortPriority:
			if a.Priority.Rank() != b.Priority.Rank() {
				return a.Priority.Rank() < b.Priority.Rank()
			}
		}
		return newerFirst(a, b)
	})
	return rows, nil
}

func (m *MockTaskStore) joinLocked(t *domain.Task) *domain.TaskRow {
	row := &domain.TaskRow{Task: *copyTask(t)}
	if u, ok := m.mem.users[t.OwnerID]; ok {
		row.OwnerUsername = u.Username
	}
	if t.AssigneeID != nil {
		if u, ok := m.mem.users[*t.AssigneeID]; ok {
			row.AssigneeUsername = u.Username
		}
	}
	if t.BucketID != nil {
		if b, ok := m.mem.buckets[*t.BucketID]; ok {
			row.BucketName = b.Name
			row.BucketColor = b.Color
		}
	}
	return row
}

func newerFirst(a, b *domain.TaskRow) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func sameDue(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// dueBefore sorts ascending with missing due dates last, as PostgreSQL does
// for ASC ordering.
func dueBefore(a, b *time.Time) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return a.Before(*b)
}

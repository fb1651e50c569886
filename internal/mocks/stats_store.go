package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// MockStatsStore implements store.StatsStore over a Memory.
type MockStatsStore struct {
	TaskStatsFn     func(ctx context.Context, userID *int64, today time.Time) (domain.TaskStats, error)
	AdminStatsFn    func(ctx context.Context) (domain.AdminStats, error)
	UserSummariesFn func(ctx context.Context) ([]domain.UserSummary, error)

	mem *Memory
}

// NewMockStatsStore creates a stats store backed by mem.
func NewMockStatsStore(mem *Memory) *MockStatsStore {
	return &MockStatsStore{mem: mem}
}

var _ store.StatsStore = (*MockStatsStore)(nil)

// TaskStats implements store.StatsStore.
func (m *MockStatsStore) TaskStats(ctx context.Context, userID *int64, today time.Time) (domain.TaskStats, error) {
	if m.TaskStatsFn != nil {
		return m.TaskStatsFn(ctx, userID, today)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	tasks := make([]*domain.Task, 0, len(m.mem.tasks))
	for _, t := range m.mem.tasks {
		if userID == nil || t.IsOwnedOrAssigned(*userID) {
			tasks = append(tasks, t)
		}
	}
	return domain.ComputeTaskStats(tasks, today), nil
}

// AdminStats implements store.StatsStore.
func (m *MockStatsStore) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	if m.AdminStatsFn != nil {
		return m.AdminStatsFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	stats := domain.AdminStats{TotalUsers: len(m.mem.users), TotalTasks: len(m.mem.tasks)}
	for _, u := range m.mem.users {
		if u.Role.IsAdmin() {
			stats.AdminUsers++
		}
	}
	for _, t := range m.mem.tasks {
		if t.Status == domain.StatusCompleted {
			stats.CompletedTasks++
		}
	}
	return stats, nil
}

// UserSummaries implements store.StatsStore.
func (m *MockStatsStore) UserSummaries(ctx context.Context) ([]domain.UserSummary, error) {
	if m.UserSummariesFn != nil {
		return m.UserSummariesFn(ctx)
	}

	m.mem.mu.Lock()
	defer m.mem.mu.Unlock()

	out := make([]domain.UserSummary, 0, len(m.mem.users))
	for _, u := range m.mem.users {
		s := domain.UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
		for _, t := range m.mem.tasks {
			if !t.IsOwnedOrAssigned(u.ID) {
				continue
			}
			s.TaskCount++
			if t.Status == domain.StatusCompleted {
				s.CompletedTasks++
			}
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

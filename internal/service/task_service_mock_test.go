package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newMockedTaskService runs TaskService over testify mocks. Buckets come from
// an empty in-memory store.
func newMockedTaskService(t *testing.T) (*service.TaskService, *mockTaskStore, *mockUserStore) {
	t.Helper()

	tasks := &mockTaskStore{}
	users := &mockUserStore{}
	tx := mocks.NewMockTxRunner(mocks.NewMemory())
	tx.Stores = store.Stores{
		Users:   users,
		Buckets: mocks.NewMockBucketStore(mocks.NewMemory()),
		Tasks:   tasks,
	}

	_, log := logger.NewTestLogger(t)
	svc, err := service.NewTaskService(tasks, users, tx, log)
	require.NoError(t, err)
	return svc, tasks, users
}

func assertNoTaskWrites(t *testing.T, tasks *mockTaskStore) {
	t.Helper()
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "UpdatePlacement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	tasks.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTaskService_DeniedCallerNeverWrites(t *testing.T) {
	t.Parallel()

	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	carol := &domain.User{ID: 3, Username: "carol", Role: domain.RoleUser}
	owned := func() *domain.Task {
		return &domain.Task{
			ID:       7,
			OwnerID:  alice.ID,
			Title:    "quarterly report",
			Priority: domain.PriorityHigh,
			Status:   domain.StatusInProgress,
		}
	}

	tests := []struct {
		name string
		call func(ctx context.Context, svc *service.TaskService) error
	}{
		{"update", func(ctx context.Context, svc *service.TaskService) error {
			_, err := svc.Update(ctx, ident(carol), 7, domain.TaskFields{
				Title:    "hijacked",
				Priority: domain.PriorityLow,
				Status:   domain.StatusCompleted,
			})
			return err
		}},
		{"move", func(ctx context.Context, svc *service.TaskService) error {
			_, _, err := svc.Move(ctx, ident(carol), 7, 2)
			return err
		}},
		{"toggle", func(ctx context.Context, svc *service.TaskService) error {
			_, err := svc.Toggle(ctx, ident(carol), 7)
			return err
		}},
		{"delete", func(ctx context.Context, svc *service.TaskService) error {
			return svc.Delete(ctx, ident(carol), 7)
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc, tasks, users := newMockedTaskService(t)
			users.On("GetByID", mock.Anything, carol.ID).Return(carol, nil)
			tasks.On("GetForUpdate", mock.Anything, int64(7)).Return(owned(), nil).Once()

			err := tt.call(context.Background(), svc)

			assert.ErrorIs(t, err, service.ErrNotFoundOrForbidden)
			users.AssertExpectations(t)
			tasks.AssertExpectations(t)
			assertNoTaskWrites(t, tasks)
		})
	}
}

func TestTaskService_DeletedCallerNeverLoadsTask(t *testing.T) {
	t.Parallel()

	svc, tasks, users := newMockedTaskService(t)
	users.On("GetByID", mock.Anything, int64(9)).Return(nil, store.ErrUserNotFound)

	stale := domain.Identity{UserID: 9, Username: "gone", Role: domain.RoleAdmin}
	_, err := svc.Toggle(context.Background(), stale, 7)

	assert.ErrorIs(t, err, service.ErrNotFoundOrForbidden)
	users.AssertExpectations(t)
	tasks.AssertNotCalled(t, "GetForUpdate", mock.Anything, mock.Anything)
	assertNoTaskWrites(t, tasks)
}

func TestTaskService_ToggleWritesOnlyTheStatus(t *testing.T) {
	t.Parallel()

	alice := &domain.User{ID: 1, Username: "alice", Role: domain.RoleUser}
	svc, tasks, users := newMockedTaskService(t)
	users.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)
	tasks.On("GetForUpdate", mock.Anything, int64(7)).Return(&domain.Task{
		ID:       7,
		OwnerID:  alice.ID,
		Title:    "quarterly report",
		Priority: domain.PriorityHigh,
		Status:   domain.StatusInProgress,
	}, nil).Once()
	tasks.On("UpdateStatus", mock.Anything, int64(7), domain.StatusCompleted).Return(nil).Once()

	task, err := svc.Toggle(context.Background(), ident(alice), 7)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, task.Status)
	tasks.AssertExpectations(t)
	tasks.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

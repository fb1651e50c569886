package store

import (
	"context"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

// TaskStore defines the interface for task persistence.
// It performs no authorization; callers check domain.CanAccess.
type TaskStore interface {
	// Create saves a new task and populates its ID.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// GetForUpdate is GetByID with a row lock held until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id int64) (*domain.Task, error)

	// Update replaces every mutable field of the task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdatePlacement sets bucket and status together.
	UpdatePlacement(ctx context.Context, id int64, bucketID int64, status domain.Status) error

	// UpdateStatus sets only the status.
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error

	// Delete returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// DeleteAllForUser removes every task the user owns or is assigned.
	// It returns the number of rows removed.
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)

	// ListForBoard returns every task joined with owner, assignee and bucket
	// names, ordered by created_at descending. It is not scoped to a user.
	ListForBoard(ctx context.Context) ([]*domain.TaskRow, error)

	// ListForDashboard returns the tasks userID owns or is assigned, filtered
	// and sorted by q, joined with bucket name/color and assignee username.
	ListForDashboard(ctx context.Context, userID int64, q domain.DashboardQuery) ([]*domain.TaskRow, error)
}

// StatsStore computes aggregate counters in the database.
type StatsStore interface {
	// TaskStats counts all tasks, or only those userID owns or is assigned
	// when userID is non-nil. Overdue compares due dates against today.
	TaskStats(ctx context.Context, userID *int64, today time.Time) (domain.TaskStats, error)

	// AdminStats returns the global user and task counters.
	AdminStats(ctx context.Context) (domain.AdminStats, error)

	// UserSummaries returns every user with owned-or-assigned task counts,
	// ordered by username.
	UserSummaries(ctx context.Context) ([]domain.UserSummary, error)
}

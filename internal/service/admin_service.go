package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// AdminView is the administrator's overview.
type AdminView struct {
	Users   []domain.UserSummary `json:"users"`
	Tasks   []*domain.TaskRow    `json:"tasks"`
	Stats   domain.AdminStats    `json:"stats"`
	Buckets []*domain.Bucket     `json:"buckets"`
	Today   string               `json:"today"`
}

// AdminService implements the admin aggregator and the admin deletions,
// which bypass the task access predicate. Callers gate it with auth.Guard.
type AdminService struct {
	tasks   store.TaskStore
	buckets store.BucketStore
	stats   store.StatsStore
	tx      store.TxRunner
	clock   Clock
	logger  *slog.Logger
}

// NewAdminService creates an AdminService. A nil clock means SystemClock.
func NewAdminService(
	tasks store.TaskStore,
	buckets store.BucketStore,
	stats store.StatsStore,
	tx store.TxRunner,
	clock Clock,
	logger *slog.Logger,
) (*AdminService, error) {
	if tasks == nil || buckets == nil || stats == nil || tx == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminService{
		tasks:   tasks,
		buckets: buckets,
		stats:   stats,
		tx:      tx,
		clock:   clock,
		logger:  logger.With(slog.String("component", "admin_service")),
	}, nil
}

// View returns user summaries, every task, global counters and buckets by name.
func (s *AdminService) View(ctx context.Context) (*AdminView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.stats.UserSummaries(ctx)
	if err != nil {
		return nil, s.fail(log, "admin_view", err)
	}
	tasks, err := s.tasks.ListForBoard(ctx)
	if err != nil {
		return nil, s.fail(log, "admin_view", err)
	}
	stats, err := s.stats.AdminStats(ctx)
	if err != nil {
		return nil, s.fail(log, "admin_view", err)
	}
	buckets, err := s.buckets.ListByName(ctx)
	if err != nil {
		return nil, s.fail(log, "admin_view", err)
	}

	return &AdminView{
		Users:   users,
		Tasks:   tasks,
		Stats:   stats,
		Buckets: buckets,
		Today:   s.clock.today().Format(domain.DateLayout),
	}, nil
}

// DeleteUser removes a user and every task they own or are assigned, in one
// transaction. It returns the number of tasks removed.
func (s *AdminService) DeleteUser(ctx context.Context, admin domain.Identity, userID int64) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if admin.UserID == userID {
		return 0, ErrCannotDeleteSelf
	}

	var removed int64
	err := s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		if _, err := st.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		n, err := st.Tasks.DeleteAllForUser(ctx, userID)
		if err != nil {
			return err
		}
		removed = n
		return st.Users.Delete(ctx, userID)
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, s.fail(log, "delete_user", err)
	}

	log.Info("user deleted",
		slog.Int64("user_id", userID),
		slog.Int64("admin_id", admin.UserID),
		slog.Int64("tasks_removed", removed))
	return removed, nil
}

// DeleteTask removes any task.
func (s *AdminService) DeleteTask(ctx context.Context, admin domain.Identity, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return ErrTaskNotFound
		}
		return s.fail(log, "admin_delete_task", err)
	}

	log.Info("task deleted by admin",
		slog.Int64("task_id", taskID),
		slog.Int64("admin_id", admin.UserID))
	return nil
}

func (s *AdminService) fail(log *slog.Logger, op string, err error) error {
	log.Error("admin operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return operationFailed(op, err)
}

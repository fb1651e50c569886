package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/phrazzld/taskboard/internal/store"
)

// TaskService implements the task repository operations with the access
// predicate applied. Every mutation loads the task with a row lock, re-reads
// the caller's role and evaluates domain.CanAccess inside one transaction.
type TaskService struct {
	tasks  store.TaskStore
	users  store.UserStore
	tx     store.TxRunner
	logger *slog.Logger
}

// NewTaskService creates a TaskService.
func NewTaskService(tasks store.TaskStore, users store.UserStore, tx store.TxRunner, logger *slog.Logger) (*TaskService, error) {
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		tasks:  tasks,
		users:  users,
		tx:     tx,
		logger: logger.With(slog.String("component", "task_service")),
	}, nil
}

// Create adds a task owned by the caller. The status always starts as
// not_started.
func (s *TaskService) Create(ctx context.Context, id domain.Identity, fields domain.TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(id.UserID, fields)
	if err != nil {
		return nil, err
	}

	err = s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		if _, err := st.Users.GetByID(ctx, id.UserID); err != nil {
			if store.IsNotFoundError(err) {
				return auth.ErrRequireLogin
			}
			return err
		}
		if err := checkReferences(ctx, st, task.Fields()); err != nil {
			return err
		}
		return st.Tasks.Create(ctx, task)
	})
	if err != nil {
		return nil, s.fail(log, "create_task", err)
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", id.UserID))
	return task, nil
}

// Get returns a task the caller may access.
func (s *TaskService) Get(ctx context.Context, id domain.Identity, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fresh, err := freshIdentity(ctx, s.users, id)
	if err != nil {
		return nil, s.fail(log, "get_task", err)
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, s.fail(log, "get_task", err)
	}
	if !domain.CanAccess(task, fresh) {
		return nil, ErrNotFoundOrForbidden
	}
	return task, nil
}

// Update replaces every mutable field of the task, status included.
func (s *TaskService) Update(ctx context.Context, id domain.Identity, taskID int64, fields domain.TaskFields) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	var task *domain.Task
	err := s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		var err error
		task, err = lockAccessibleTask(ctx, st, id, taskID)
		if err != nil {
			return err
		}
		if err := checkReferences(ctx, st, fields); err != nil {
			return err
		}
		task.Apply(fields)
		return st.Tasks.Update(ctx, task)
	})
	if err != nil {
		return nil, s.fail(log, "update_task", err)
	}

	log.Info("task updated",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", id.UserID))
	return task, nil
}

// Move places the task in a bucket and sets the status the bucket's name
// maps to. An unknown bucket leaves the task untouched and is not an error;
// moved reports whether anything changed.
func (s *TaskService) Move(ctx context.Context, id domain.Identity, taskID, bucketID int64) (task *domain.Task, moved bool, err error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err = s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		var err error
		task, err = lockAccessibleTask(ctx, st, id, taskID)
		if err != nil {
			return err
		}

		bucket, err := st.Buckets.GetByID(ctx, bucketID)
		if err != nil {
			if store.IsNotFoundError(err) {
				log.Debug("move to unknown bucket ignored",
					slog.Int64("task_id", taskID),
					slog.Int64("bucket_id", bucketID))
				return nil
			}
			return err
		}

		status := domain.StatusForBucketName(bucket.Name)
		if err := st.Tasks.UpdatePlacement(ctx, taskID, bucket.ID, status); err != nil {
			return err
		}
		task.BucketID = &bucket.ID
		task.Status = status
		moved = true
		return nil
	})
	if err != nil {
		return nil, false, s.fail(log, "move_task", err)
	}

	if moved {
		log.Info("task moved",
			slog.Int64("task_id", taskID),
			slog.Int64("bucket_id", bucketID),
			slog.String("status", string(task.Status)))
	}
	return task, moved, nil
}

// Toggle flips the task between completed and not_started.
func (s *TaskService) Toggle(ctx context.Context, id domain.Identity, taskID int64) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var task *domain.Task
	err := s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		var err error
		task, err = lockAccessibleTask(ctx, st, id, taskID)
		if err != nil {
			return err
		}
		status := task.ToggledStatus()
		if err := st.Tasks.UpdateStatus(ctx, taskID, status); err != nil {
			return err
		}
		task.Status = status
		return nil
	})
	if err != nil {
		return nil, s.fail(log, "toggle_task", err)
	}

	log.Info("task toggled",
		slog.Int64("task_id", taskID),
		slog.String("status", string(task.Status)))
	return task, nil
}

// Delete removes a task the caller may access.
func (s *TaskService) Delete(ctx context.Context, id domain.Identity, taskID int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := s.tx.InTx(ctx, func(ctx context.Context, st store.Stores) error {
		if _, err := lockAccessibleTask(ctx, st, id, taskID); err != nil {
			return err
		}
		return st.Tasks.Delete(ctx, taskID)
	})
	if err != nil {
		return s.fail(log, "delete_task", err)
	}

	log.Info("task deleted",
		slog.Int64("task_id", taskID),
		slog.Int64("user_id", id.UserID))
	return nil
}

// fail passes through errors the caller can act on and hides everything else
// behind ErrOperationFailed.
func (s *TaskService) fail(log *slog.Logger, op string, err error) error {
	if errors.Is(err, ErrNotFoundOrForbidden) || errors.Is(err, auth.ErrRequireLogin) || domain.IsValidationError(err) {
		log.Debug("task operation rejected",
			slog.String("operation", op),
			slog.String("reason", err.Error()))
		return err
	}
	log.Error("task operation failed",
		slog.String("operation", op),
		slog.String("error", err.Error()))
	return operationFailed(op, err)
}

// freshIdentity re-reads the caller's role. A session for a deleted user
// yields ErrNotFoundOrForbidden.
func freshIdentity(ctx context.Context, users store.UserStore, id domain.Identity) (domain.Identity, error) {
	if id.IsZero() {
		return domain.Identity{}, ErrNotFoundOrForbidden
	}
	user, err := users.GetByID(ctx, id.UserID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.Identity{}, ErrNotFoundOrForbidden
		}
		return domain.Identity{}, err
	}
	return domain.IdentityFromUser(user), nil
}

// lockAccessibleTask loads and locks the task, then applies the access
// predicate with the caller's current role.
func lockAccessibleTask(ctx context.Context, st store.Stores, id domain.Identity, taskID int64) (*domain.Task, error) {
	fresh, err := freshIdentity(ctx, st.Users, id)
	if err != nil {
		return nil, err
	}

	task, err := st.Tasks.GetForUpdate(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	if !domain.CanAccess(task, fresh) {
		return nil, ErrNotFoundOrForbidden
	}
	return task, nil
}

// checkReferences rejects an assignee or bucket that does not exist.
func checkReferences(ctx context.Context, st store.Stores, f domain.TaskFields) error {
	if f.AssigneeID != nil {
		if _, err := st.Users.GetByID(ctx, *f.AssigneeID); err != nil {
			if store.IsNotFoundError(err) {
				return domain.NewValidationError("assigned_to", "does not exist", domain.ErrInvalidID)
			}
			return err
		}
	}
	if f.BucketID != nil {
		if _, err := st.Buckets.GetByID(ctx, *f.BucketID); err != nil {
			if store.IsNotFoundError(err) {
				return domain.NewValidationError("bucket_id", "does not exist", domain.ErrInvalidID)
			}
			return err
		}
	}
	return nil
}

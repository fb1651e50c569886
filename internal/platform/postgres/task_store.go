package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Create implements store.TaskStore.Create.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args, err := psql.Insert("tasks").
		Columns("user_id", "assigned_to", "bucket_id", "title", "description",
			"due_date", "priority", "status", "created_at").
		Values(task.OwnerID, nullInt64(task.AssigneeID), nullInt64(task.BucketID), task.Title,
			nullString(task.Description), nullDate(task.DueDate), string(task.Priority),
			string(task.Status), task.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert task: %w", err)
	}

	if err := s.db.GetContext(ctx, &task.ID, query, args...); err != nil {
		log.Error("failed to create task",
			slog.Int64("user_id", task.OwnerID),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "create", "failed to insert task", MapError(err))
	}

	log.Info("task created",
		slog.Int64("task_id", task.ID),
		slog.Int64("user_id", task.OwnerID))
	return nil
}

// GetByID implements store.TaskStore.GetByID.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return s.get(ctx, id, false)
}

// GetForUpdate implements store.TaskStore.GetForUpdate.
func (s *PostgresTaskStore) GetForUpdate(ctx context.Context, id int64) (*domain.Task, error) {
	return s.get(ctx, id, true)
}

func (s *PostgresTaskStore) get(ctx context.Context, id int64, lock bool) (*domain.Task, error) {
	b := psql.Select(taskColumns...).From("tasks").Where(squirrel.Eq{"id": id})
	if lock {
		b = b.Suffix("FOR UPDATE")
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select task: %w", err)
	}

	var row taskRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "get", "failed to query task", MapError(err))
	}
	return row.toDomain(), nil
}

// Update implements store.TaskStore.Update.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	return s.update(ctx, task.ID, map[string]any{
		"title":       task.Title,
		"description": nullString(task.Description),
		"due_date":    nullDate(task.DueDate),
		"priority":    string(task.Priority),
		"bucket_id":   nullInt64(task.BucketID),
		"assigned_to": nullInt64(task.AssigneeID),
		"status":      string(task.Status),
	})
}

// UpdatePlacement implements store.TaskStore.UpdatePlacement.
func (s *PostgresTaskStore) UpdatePlacement(ctx context.Context, id int64, bucketID int64, status domain.Status) error {
	return s.update(ctx, id, map[string]any{
		"bucket_id": bucketID,
		"status":    string(status),
	})
}

// UpdateStatus implements store.TaskStore.UpdateStatus.
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, id int64, status domain.Status) error {
	return s.update(ctx, id, map[string]any{"status": string(status)})
}

func (s *PostgresTaskStore) update(ctx context.Context, id int64, set map[string]any) error {
	query, args, err := psql.Update("tasks").SetMap(set).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build update task: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update task",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "update", "failed to update task", MapError(err))
	}
	return checkRowsAffected(result, store.ErrTaskNotFound)
}

// Delete implements store.TaskStore.Delete.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	query, args, err := psql.Delete("tasks").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete task: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return store.NewStoreError("task", "delete", "failed to delete task", MapError(err))
	}
	if err := checkRowsAffected(result, store.ErrTaskNotFound); err != nil {
		return err
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.Int64("task_id", id))
	return nil
}

// DeleteAllForUser implements store.TaskStore.DeleteAllForUser.
func (s *PostgresTaskStore) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	query, args, err := psql.Delete("tasks").Where(ownedOrAssigned("", userID)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete user tasks: %w", err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, store.NewStoreError("task", "delete", "failed to delete user tasks", MapError(err))
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

func joinedTasks() squirrel.SelectBuilder {
	return psql.Select(taskJoinedColumns...).
		From("tasks t").
		Join("users o ON o.id = t.user_id").
		LeftJoin("users a ON a.id = t.assigned_to").
		LeftJoin("buckets b ON b.id = t.bucket_id")
}

// ListForBoard implements store.TaskStore.ListForBoard.
func (s *PostgresTaskStore) ListForBoard(ctx context.Context) ([]*domain.TaskRow, error) {
	return s.selectRows(ctx, joinedTasks().OrderBy("t.created_at DESC", "t.id DESC"))
}

// ListForDashboard implements store.TaskStore.ListForDashboard.
func (s *PostgresTaskStore) ListForDashboard(
	ctx context.Context,
	userID int64,
	q domain.DashboardQuery,
) ([]*domain.TaskRow, error) {
	b := joinedTasks().Where(ownedOrAssigned("t.", userID))

	switch q.Status {
	case domain.StatusFilterCompleted:
		b = b.Where(squirrel.Eq{"t.status": string(domain.StatusCompleted)})
	case domain.StatusFilterPending:
		b = b.Where(squirrel.NotEq{"t.status": string(domain.StatusCompleted)})
	}

	if p, ok := q.Priority.Priority(); ok {
		b = b.Where(squirrel.Eq{"t.priority": string(p)})
	}

	switch q.Sort {
	case domain.SortDueDate:
		b = b.OrderBy("t.due_date ASC", "t.created_at DESC")
	case domain.SortPriority:
		b = b.OrderBy(priorityOrderExpr("t.priority"), "t.created_at DESC")
	default:
		b = b.OrderBy("t.created_at DESC")
	}

	return s.selectRows(ctx, b)
}

func (s *PostgresTaskStore) selectRows(ctx context.Context, b squirrel.SelectBuilder) ([]*domain.TaskRow, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tasks: %w", err)
	}

	var rows []taskRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list tasks",
			slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", "failed to list tasks", MapError(err))
	}

	out := make([]*domain.TaskRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toRow())
	}
	return out, nil
}

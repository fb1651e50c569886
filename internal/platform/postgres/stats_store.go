package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// with aggregate queries.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the StatsStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

var _ store.StatsStore = (*PostgresStatsStore)(nil)

type taskStatsRow struct {
	Total     int `db:"total"`
	Completed int `db:"completed"`
	Overdue   int `db:"overdue"`
}

// TaskStats implements store.StatsStore.TaskStats.
func (s *PostgresStatsStore) TaskStats(ctx context.Context, userID *int64, today time.Time) (domain.TaskStats, error) {
	completed := string(domain.StatusCompleted)

	b := psql.Select("COUNT(*) AS total").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE status = ?) AS completed", completed)).
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE due_date < ? AND status <> ?) AS overdue",
			domain.Today(today), completed)).
		From("tasks")
	if userID != nil {
		b = b.Where(ownedOrAssigned("", *userID))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("build task stats: %w", err)
	}

	var row taskStatsRow
	if err := s.db.GetContext(ctx, &row, query, args...); err != nil {
		return domain.TaskStats{}, store.NewStoreError("stats", "get", "failed to compute task stats", MapError(err))
	}
	return domain.NewTaskStats(row.Total, row.Completed, row.Overdue), nil
}

const adminStatsQuery = `
	SELECT
		(SELECT COUNT(*) FROM users) AS total_users,
		(SELECT COUNT(*) FROM users WHERE role = $1) AS admin_users,
		(SELECT COUNT(*) FROM tasks) AS total_tasks,
		(SELECT COUNT(*) FROM tasks WHERE status = $2) AS completed_tasks
`

type adminStatsRow struct {
	TotalUsers     int `db:"total_users"`
	AdminUsers     int `db:"admin_users"`
	TotalTasks     int `db:"total_tasks"`
	CompletedTasks int `db:"completed_tasks"`
}

// AdminStats implements store.StatsStore.AdminStats.
func (s *PostgresStatsStore) AdminStats(ctx context.Context) (domain.AdminStats, error) {
	var row adminStatsRow
	err := s.db.GetContext(ctx, &row, adminStatsQuery, string(domain.RoleAdmin), string(domain.StatusCompleted))
	if err != nil {
		return domain.AdminStats{}, store.NewStoreError("stats", "get", "failed to compute admin stats", MapError(err))
	}
	return domain.AdminStats(row), nil
}

type userSummaryRow struct {
	ID             int64  `db:"id"`
	Username       string `db:"username"`
	Role           string `db:"role"`
	TaskCount      int    `db:"task_count"`
	CompletedTasks int    `db:"completed_tasks"`
}

// UserSummaries implements store.StatsStore.UserSummaries.
// A task both owned and assigned to the same user is counted once.
func (s *PostgresStatsStore) UserSummaries(ctx context.Context) ([]domain.UserSummary, error) {
	query, args, err := psql.Select("u.id", "u.username", "u.role", "COUNT(t.id) AS task_count").
		Column(squirrel.Expr("COUNT(t.id) FILTER (WHERE t.status = ?) AS completed_tasks",
			string(domain.StatusCompleted))).
		From("users u").
		LeftJoin("tasks t ON t.user_id = u.id OR t.assigned_to = u.id").
		GroupBy("u.id", "u.username", "u.role").
		OrderBy("u.username").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user summaries: %w", err)
	}

	var rows []userSummaryRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, store.NewStoreError("stats", "list", "failed to list user summaries", MapError(err))
	}

	out := make([]domain.UserSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.UserSummary{
			ID:             r.ID,
			Username:       r.Username,
			Role:           domain.Role(r.Role),
			TaskCount:      r.TaskCount,
			CompletedTasks: r.CompletedTasks,
		})
	}
	return out, nil
}

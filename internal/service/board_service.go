package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// BucketColumn is one board column with its tasks, newest first.
type BucketColumn struct {
	Bucket *domain.Bucket    `json:"bucket"`
	Tasks  []*domain.TaskRow `json:"tasks"`
}

// BoardView is the kanban board projection.
type BoardView struct {
	Columns    []BucketColumn    `json:"columns"`
	Unbucketed []*domain.TaskRow `json:"unbucketed"`
	Users      []domain.UserRef  `json:"users"`
	Stats      domain.TaskStats  `json:"stats"`
	Today      string            `json:"today"`
}

// DashboardView is a user's filtered task list.
type DashboardView struct {
	Tasks   []*domain.TaskRow     `json:"tasks"`
	Stats   domain.TaskStats      `json:"stats"`
	Filters domain.DashboardQuery `json:"filters"`
	Today   string                `json:"today"`
}

// TaskFormOptions feeds the bucket and assignee pickers of the task form.
type TaskFormOptions struct {
	Buckets []*domain.Bucket `json:"buckets"`
	Users   []domain.UserRef `json:"users"`
}

// BoardService composes the board and dashboard projections.
type BoardService struct {
	tasks   store.TaskStore
	buckets store.BucketStore
	users   store.UserStore
	stats   store.StatsStore
	clock   Clock
	logger  *slog.Logger
}

// NewBoardService creates a BoardService. A nil clock means SystemClock.
func NewBoardService(
	tasks store.TaskStore,
	buckets store.BucketStore,
	users store.UserStore,
	stats store.StatsStore,
	clock Clock,
	logger *slog.Logger,
) (*BoardService, error) {
	if tasks == nil || buckets == nil || users == nil || stats == nil {
		return nil, domain.NewValidationError("stores", "cannot be nil", domain.ErrValidation)
	}
	if clock == nil {
		clock = SystemClock
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BoardService{
		tasks:   tasks,
		buckets: buckets,
		users:   users,
		stats:   stats,
		clock:   clock,
		logger:  logger.With(slog.String("component", "board_service")),
	}, nil
}

// Board returns every task grouped by bucket, in bucket creation order,
// plus the tasks with no bucket. Statistics are global.
func (s *BoardService) Board(ctx context.Context) (*BoardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.clock.today()

	buckets, err := s.buckets.List(ctx)
	if err != nil {
		return nil, s.fail(log, "board", err)
	}
	rows, err := s.tasks.ListForBoard(ctx)
	if err != nil {
		return nil, s.fail(log, "board", err)
	}
	users, err := s.users.ListRefs(ctx)
	if err != nil {
		return nil, s.fail(log, "board", err)
	}
	stats, err := s.stats.TaskStats(ctx, nil, today)
	if err != nil {
		return nil, s.fail(log, "board", err)
	}

	columns, unbucketed := groupByBucket(buckets, rows)
	return &BoardView{
		Columns:    columns,
		Unbucketed: unbucketed,
		Users:      users,
		Stats:      stats,
		Today:      today.Format(domain.DateLayout),
	}, nil
}

// groupByBucket keeps the input order of rows within each group.
func groupByBucket(buckets []*domain.Bucket, rows []*domain.TaskRow) ([]BucketColumn, []*domain.TaskRow) {
	byBucket := make(map[int64][]*domain.TaskRow, len(buckets))
	unbucketed := make([]*domain.TaskRow, 0)
	for _, r := range rows {
		if r.BucketID == nil {
			unbucketed = append(unbucketed, r)
			continue
		}
		byBucket[*r.BucketID] = append(byBucket[*r.BucketID], r)
	}

	columns := make([]BucketColumn, 0, len(buckets))
	for _, b := range buckets {
		tasks := byBucket[b.ID]
		if tasks == nil {
			tasks = make([]*domain.TaskRow, 0)
		}
		columns = append(columns, BucketColumn{Bucket: b, Tasks: tasks})
	}
	return columns, unbucketed
}

// Dashboard returns the tasks the caller owns or is assigned, filtered and
// sorted by q. Statistics cover the same tasks without the filters.
func (s *BoardService) Dashboard(ctx context.Context, id domain.Identity, q domain.DashboardQuery) (*DashboardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	today := s.clock.today()

	rows, err := s.tasks.ListForDashboard(ctx, id.UserID, q)
	if err != nil {
		return nil, s.fail(log, "dashboard", err)
	}
	stats, err := s.stats.TaskStats(ctx, &id.UserID, today)
	if err != nil {
		return nil, s.fail(log, "dashboard", err)
	}

	return &DashboardView{
		Tasks:   rows,
		Stats:   stats,
		Filters: q,
		Today:   today.Format(domain.DateLayout),
	}, nil
}

// FormOptions lists buckets by name and users by username.
func (s *BoardService) FormOptions(ctx context.Context) (*TaskFormOptions, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	buckets, err := s.buckets.ListByName(ctx)
	if err != nil {
		return nil, s.fail(log, "form_options", err)
	}
	users, err := s.users.ListRefs(ctx)
	if err != nil {
		return nil, s.fail(log, "form_options", err)
	}
	return &TaskFormOptions{Buckets: buckets, Users: users}, nil
}

func (s *BoardService) fail(log *slog.Logger, op string, err error) error {
	log.Error("failed to build view",
		slog.String("view", op),
		slog.String("error", err.Error()))
	return operationFailed(op, err)
}

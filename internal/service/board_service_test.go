package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func taskIDs(rows []*domain.TaskRow) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBoardService_Board(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.mem.AddUser("alice", "secret1", domain.RoleUser)
	bob := f.mem.AddUser("bob", "secret1", domain.RoleUser)
	buckets := f.seedBuckets(t)

	todo1 := f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "a", BucketID: &buckets["To Do"].ID,
		Priority: domain.PriorityMedium, Status: domain.StatusNotStarted})
	done := f.mem.AddTask(domain.Task{OwnerID: bob.ID, Title: "b", BucketID: &buckets["Done"].ID,
		Priority: domain.PriorityMedium, Status: domain.StatusCompleted})
	loose := f.mem.AddTask(domain.Task{OwnerID: bob.ID, AssigneeID: &alice.ID, Title: "c",
		Priority: domain.PriorityMedium, Status: domain.StatusNotStarted, DueDate: date("2026-05-19")})
	todo2 := f.mem.AddTask(domain.Task{OwnerID: bob.ID, Title: "d", BucketID: &buckets["To Do"].ID,
		Priority: domain.PriorityMedium, Status: domain.StatusNotStarted})

	view, err := f.board.Board(ctx)
	require.NoError(t, err)

	require.Len(t, view.Columns, 4)
	names := []string{}
	for _, c := range view.Columns {
		names = append(names, c.Bucket.Name)
	}
	assert.Equal(t, []string{"To Do", "In Progress", "Testing", "Done"}, names)

	assert.Equal(t, []int64{todo2.ID, todo1.ID}, taskIDs(view.Columns[0].Tasks), "newest first")
	assert.Empty(t, view.Columns[1].Tasks)
	assert.NotNil(t, view.Columns[1].Tasks)
	assert.Equal(t, []int64{done.ID}, taskIDs(view.Columns[3].Tasks))
	assert.Equal(t, []int64{loose.ID}, taskIDs(view.Unbucketed))
	assert.Equal(t, "alice", view.Unbucketed[0].AssigneeUsername)

	assert.Equal(t, []domain.UserRef{{ID: alice.ID, Username: "alice"}, {ID: bob.ID, Username: "bob"}}, view.Users)
	assert.Equal(t, domain.TaskStats{Total: 4, Completed: 1, Pending: 3, Overdue: 1}, view.Stats)
	assert.Equal(t, "2026-05-20", view.Today)
}

func TestBoardService_DashboardVisibility(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.mem.AddUser("alice", "secret1", domain.RoleUser)
	bob := f.mem.AddUser("bob", "secret1", domain.RoleUser)
	admin := f.mem.AddUser("admin", "admin123", domain.RoleAdmin)
	task := f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "alice only",
		Priority: domain.PriorityMedium, Status: domain.StatusNotStarted})

	q := domain.ParseDashboardQuery("", "", "")

	view, err := f.board.Dashboard(ctx, ident(alice), q)
	require.NoError(t, err)
	assert.Equal(t, []int64{task.ID}, taskIDs(view.Tasks))

	view, err = f.board.Dashboard(ctx, ident(bob), q)
	require.NoError(t, err)
	assert.Empty(t, view.Tasks)
	assert.Zero(t, view.Stats.Total)

	// The dashboard is personal even for admins.
	view, err = f.board.Dashboard(ctx, ident(admin), q)
	require.NoError(t, err)
	assert.Empty(t, view.Tasks)

	// Assignment grants visibility.
	f.mem.AddTask(domain.Task{OwnerID: alice.ID, AssigneeID: &bob.ID, Title: "for bob",
		Priority: domain.PriorityMedium, Status: domain.StatusNotStarted})
	view, err = f.board.Dashboard(ctx, ident(bob), q)
	require.NoError(t, err)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "bob", view.Tasks[0].AssigneeUsername)
}

func TestBoardService_DashboardFiltersAndSorts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	alice := f.mem.AddUser("alice", "secret1", domain.RoleUser)
	buckets := f.seedBuckets(t)

	low := f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "low", Priority: domain.PriorityLow,
		Status: domain.StatusNotStarted, DueDate: date("2026-06-10")})
	urgent := f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "urgent", Priority: domain.PriorityUrgent,
		Status: domain.StatusCompleted, DueDate: date("2026-06-01"), BucketID: &buckets["Done"].ID})
	medium := f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "medium", Priority: domain.PriorityMedium,
		Status: domain.StatusInProgress})

	tests := []struct {
		name                   string
		status, priority, sort string
		want                   []int64
	}{
		{"defaults newest first", "", "", "", []int64{medium.ID, urgent.ID, low.ID}},
		{"priority sort", "all", "all", "priority", []int64{urgent.ID, medium.ID, low.ID}},
		{"due date ascending, missing last", "all", "all", "due_date", []int64{urgent.ID, low.ID, medium.ID}},
		{"completed only", "completed", "all", "created_at", []int64{urgent.ID}},
		{"pending only", "pending", "all", "created_at", []int64{medium.ID, low.ID}},
		{"priority filter", "all", "low", "created_at", []int64{low.ID}},
		{"unknown values fall back", "bogus", "critical", "title", []int64{medium.ID, urgent.ID, low.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := domain.ParseDashboardQuery(tt.status, tt.priority, tt.sort)
			view, err := f.board.Dashboard(ctx, ident(alice), q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, taskIDs(view.Tasks))
			assert.Equal(t, q, view.Filters)
			assert.Equal(t, 3, view.Stats.Total, "stats ignore filters")
		})
	}

	view, err := f.board.Dashboard(ctx, ident(alice), domain.ParseDashboardQuery("completed", "", ""))
	require.NoError(t, err)
	require.Len(t, view.Tasks, 1)
	assert.Equal(t, "Done", view.Tasks[0].BucketName)
	assert.Equal(t, buckets["Done"].Color, view.Tasks[0].BucketColor)
}

func TestBoardService_OverdueFollowsToggle(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	u := f.mem.AddUser("u", "secret1", domain.RoleUser)
	f.mem.AddBucket("Done", domain.BucketDone.Color())
	yesterday := domain.Today(fixedNow).AddDate(0, 0, -1)
	task := f.mem.AddTask(domain.Task{OwnerID: u.ID, Title: "late", DueDate: &yesterday,
		Priority: domain.PriorityMedium, Status: domain.StatusNotStarted})

	view, err := f.board.Dashboard(ctx, ident(u), domain.ParseDashboardQuery("", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 1, view.Stats.Overdue)

	_, err = f.taskSvc.Toggle(ctx, ident(u), task.ID)
	require.NoError(t, err)

	view, err = f.board.Dashboard(ctx, ident(u), domain.ParseDashboardQuery("", "", ""))
	require.NoError(t, err)
	assert.Equal(t, 0, view.Stats.Overdue)
	assert.Equal(t, 1, view.Stats.Completed)
}

func TestBoardService_PriorityTiesNewestFirst(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	u := f.mem.AddUser("u", "secret1", domain.RoleUser)
	same := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	first := f.mem.AddTask(domain.Task{OwnerID: u.ID, Title: "first", CreatedAt: same,
		Priority: domain.PriorityHigh, Status: domain.StatusNotStarted})
	second := f.mem.AddTask(domain.Task{OwnerID: u.ID, Title: "second", CreatedAt: same.Add(time.Minute),
		Priority: domain.PriorityHigh, Status: domain.StatusNotStarted})

	view, err := f.board.Dashboard(ctx, ident(u), domain.ParseDashboardQuery("", "", "priority"))
	require.NoError(t, err)
	assert.Equal(t, []int64{second.ID, first.ID}, taskIDs(view.Tasks))
}

func TestBoardService_FormOptions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.seedBuckets(t)
	f.mem.AddUser("zed", "secret1", domain.RoleUser)
	f.mem.AddUser("amy", "secret1", domain.RoleUser)

	opts, err := f.board.FormOptions(context.Background())
	require.NoError(t, err)

	names := []string{}
	for _, b := range opts.Buckets {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"Done", "In Progress", "Testing", "To Do"}, names)
	require.Len(t, opts.Users, 2)
	assert.Equal(t, "amy", opts.Users[0].Username)
}

func TestBoardService_StoreFailure(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.tasks.ListForBoardFn = func(ctx context.Context) ([]*domain.TaskRow, error) {
		return nil, errors.New("pq: SELECT * FROM tasks failed")
	}

	_, err := f.board.Board(context.Background())
	assert.ErrorIs(t, err, service.ErrOperationFailed)
	logsContain(t, f, "failed to build view")
}

func logsContain(t *testing.T, f *fixture, s string) {
	t.Helper()
	assert.Contains(t, f.logs.String(), s)
}

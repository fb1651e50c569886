package api_test

import (
	"net/http"
	"testing"

	"github.com/phrazzld/taskboard/internal/api"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardHandler_RootAndHealth(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	alice := f.mem.AddUser("alice", "secret1", domain.RoleUser)

	rec := f.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])

	rec = f.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/login", decode[map[string]string](t, rec)["redirect"])

	rec = f.do(t, http.MethodGet, "/", f.login(t, alice), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/board", decode[map[string]string](t, rec)["redirect"])
}

func TestBoardHandler_Board(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	buckets := f.seedBuckets()
	alice := f.mem.AddUser("alice", "secret1", domain.RoleUser)
	bob := f.mem.AddUser("bob", "secret1", domain.RoleUser)
	f.mem.AddTask(domain.Task{
		OwnerID: bob.ID, AssigneeID: &alice.ID, BucketID: &buckets["Testing"].ID,
		Title: "review", Priority: domain.PriorityHigh, Status: domain.StatusTesting,
	})
	f.mem.AddTask(domain.Task{
		OwnerID: bob.ID, Title: "loose", Priority: domain.PriorityLow, Status: domain.StatusCompleted,
	})

	rec := f.do(t, http.MethodGet, "/board", f.login(t, alice), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	board := decode[api.BoardResponse](t, rec)

	require.Len(t, board.Columns, 4)
	names := make([]string, 0, len(board.Columns))
	for _, c := range board.Columns {
		names = append(names, c.Bucket.Name)
		assert.NotNil(t, c.Tasks, "empty columns are empty lists")
	}
	assert.Equal(t, []string{"To Do", "In Progress", "Testing", "Done"}, names)

	col := board.Columns[2].Tasks
	require.Len(t, col, 1)
	assert.Equal(t, "review", col[0].Title)
	assert.Equal(t, "alice", col[0].AssigneeUsername)
	assert.Equal(t, "bob", col[0].OwnerUsername)
	assert.Equal(t, "Testing", col[0].BucketName)

	require.Len(t, board.Unbucketed, 1)
	assert.Equal(t, "loose", board.Unbucketed[0].Title)

	assert.Equal(t, domain.TaskStats{Total: 2, Completed: 1, Pending: 1}, board.Stats)
	assert.Equal(t, []domain.UserRef{{ID: alice.ID, Username: "alice"}, {ID: bob.ID, Username: "bob"}}, board.Users)
	assert.NotEmpty(t, board.Today)
}

func TestBoardHandler_Dashboard(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	alice := f.mem.AddUser("alice", "secret1", domain.RoleUser)
	bob := f.mem.AddUser("bob", "secret1", domain.RoleUser)
	f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "low", Priority: domain.PriorityLow, Status: domain.StatusNotStarted})
	f.mem.AddTask(domain.Task{OwnerID: bob.ID, AssigneeID: &alice.ID, Title: "urgent", Priority: domain.PriorityUrgent, Status: domain.StatusInProgress})
	f.mem.AddTask(domain.Task{OwnerID: alice.ID, Title: "done", Priority: domain.PriorityHigh, Status: domain.StatusCompleted})
	f.mem.AddTask(domain.Task{OwnerID: bob.ID, Title: "not mine", Priority: domain.PriorityUrgent, Status: domain.StatusNotStarted})
	token := f.login(t, alice)

	tests := []struct {
		name        string
		query       string
		wantTitles  []string
		wantFilters domain.DashboardQuery
	}{
		{
			name:        "defaults newest first",
			query:       "",
			wantTitles:  []string{"done", "urgent", "low"},
			wantFilters: domain.DashboardQuery{Status: "all", Priority: "all", Sort: "created_at"},
		},
		{
			name:        "pending by priority",
			query:       "?status=pending&sort=priority",
			wantTitles:  []string{"urgent", "low"},
			wantFilters: domain.DashboardQuery{Status: "pending", Priority: "all", Sort: "priority"},
		},
		{
			name:        "legacy sort_by parameter",
			query:       "?sort_by=priority",
			wantTitles:  []string{"urgent", "done", "low"},
			wantFilters: domain.DashboardQuery{Status: "all", Priority: "all", Sort: "priority"},
		},
		{
			name:        "completed only",
			query:       "?status=completed",
			wantTitles:  []string{"done"},
			wantFilters: domain.DashboardQuery{Status: "completed", Priority: "all", Sort: "created_at"},
		},
		{
			name:        "unknown values fall back",
			query:       "?status=bogus&priority=bogus&sort=bogus",
			wantTitles:  []string{"done", "urgent", "low"},
			wantFilters: domain.DashboardQuery{Status: "all", Priority: "all", Sort: "created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/dashboard"+tt.query, token, nil)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			dash := decode[api.DashboardResponse](t, rec)
			titles := make([]string, 0, len(dash.Tasks))
			for _, task := range dash.Tasks {
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
			assert.Equal(t, tt.wantFilters, dash.Filters)
			assert.Equal(t, domain.TaskStats{Total: 3, Completed: 1, Pending: 2}, dash.Stats,
				"stats ignore the filters")
		})
	}
}

func TestBoardHandler_FormOptions(t *testing.T) {
	t.Parallel()

	f := newAPIFixture(t)
	f.mem.AddBucket("Zeta", "#111111")
	f.mem.AddBucket("Alpha", "#222222")
	zed := f.mem.AddUser("zed", "secret1", domain.RoleUser)
	amy := f.mem.AddUser("amy", "secret1", domain.RoleUser)

	rec := f.do(t, http.MethodGet, "/tasks/options", f.login(t, zed), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	opts := decode[service.TaskFormOptions](t, rec)
	require.Len(t, opts.Buckets, 2)
	assert.Equal(t, "Alpha", opts.Buckets[0].Name)
	assert.Equal(t, "Zeta", opts.Buckets[1].Name)
	assert.Equal(t, []domain.UserRef{{ID: amy.ID, Username: "amy"}, {ID: zed.ID, Username: "zed"}}, opts.Users)
}

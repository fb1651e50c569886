package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// fixture wires every service to one in-memory database.
type fixture struct {
	mem     *mocks.Memory
	users   *mocks.MockUserStore
	buckets *mocks.MockBucketStore
	tasks   *mocks.MockTaskStore
	stats   *mocks.MockStatsStore
	tx      *mocks.MockTxRunner
	hasher  *mocks.MockPasswordHasher
	logs    *logger.TestLogBuffer

	accounts *service.UserService
	registry *service.BucketService
	taskSvc  *service.TaskService
	board    *service.BoardService
	admin    *service.AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mem := mocks.NewMemory()
	logs, log := logger.NewTestLogger(t)
	f := &fixture{
		mem:     mem,
		users:   mocks.NewMockUserStore(mem),
		buckets: mocks.NewMockBucketStore(mem),
		tasks:   mocks.NewMockTaskStore(mem),
		stats:   mocks.NewMockStatsStore(mem),
		tx:      mocks.NewMockTxRunner(mem),
		hasher:  &mocks.MockPasswordHasher{},
		logs:    logs,
	}

	var err error
	f.accounts, err = service.NewUserService(f.users, f.hasher, log)
	require.NoError(t, err)
	f.registry, err = service.NewBucketService(f.buckets, f.tx, log)
	require.NoError(t, err)
	f.taskSvc, err = service.NewTaskService(f.tasks, f.users, f.tx, log)
	require.NoError(t, err)
	f.board, err = service.NewBoardService(f.tasks, f.buckets, f.users, f.stats, fixedClock, log)
	require.NoError(t, err)
	f.admin, err = service.NewAdminService(f.tasks, f.buckets, f.stats, f.tx, fixedClock, log)
	require.NoError(t, err)
	return f
}

// seedBuckets creates the four workflow buckets and returns them by name.
func (f *fixture) seedBuckets(t *testing.T) map[string]*domain.Bucket {
	t.Helper()
	out := make(map[string]*domain.Bucket)
	for _, w := range domain.WorkflowBuckets {
		out[w.Name()] = f.mem.AddBucket(w.Name(), w.Color())
	}
	return out
}

func ident(u *domain.User) domain.Identity {
	return domain.IdentityFromUser(u)
}

func ptr[T any](v T) *T { return &v }

func date(s string) *time.Time {
	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &d
}

func newLogContext(t *testing.T) (context.Context, *logger.TestLogBuffer) {
	t.Helper()
	return logger.NewLogCaptureContext(t)
}

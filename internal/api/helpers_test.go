package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskboard/internal/api"
	"github.com/phrazzld/taskboard/internal/api/middleware"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/mocks"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const cookieName = "taskboard_session"

// apiFixture serves the full route table over one in-memory database.
type apiFixture struct {
	mem      *mocks.Memory
	users    *mocks.MockUserStore
	sessions *mocks.MockSessionService
	logs     *logger.TestLogBuffer
	router   http.Handler
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	return newAPIFixtureWithClock(t, service.SystemClock)
}

// newAPIFixtureWithClock builds the fixture with every view reading clock.
func newAPIFixtureWithClock(t *testing.T, clock service.Clock) *apiFixture {
	t.Helper()

	mem := mocks.NewMemory()
	logs, log := logger.NewTestLogger(t)
	users := mocks.NewMockUserStore(mem)
	buckets := mocks.NewMockBucketStore(mem)
	tasks := mocks.NewMockTaskStore(mem)
	stats := mocks.NewMockStatsStore(mem)
	tx := mocks.NewMockTxRunner(mem)
	hasher := &mocks.MockPasswordHasher{}
	sessions := &mocks.MockSessionService{}

	accounts, err := service.NewUserService(users, hasher, log)
	require.NoError(t, err)
	registry, err := service.NewBucketService(buckets, tx, log)
	require.NoError(t, err)
	taskSvc, err := service.NewTaskService(tasks, users, tx, log)
	require.NoError(t, err)
	board, err := service.NewBoardService(tasks, buckets, users, stats, clock, log)
	require.NoError(t, err)
	admin, err := service.NewAdminService(tasks, buckets, stats, tx, clock, log)
	require.NoError(t, err)
	authenticator, err := auth.NewAuthenticator(users, hasher, log)
	require.NoError(t, err)
	guard := auth.NewGuard(users, log)

	handlers := api.Handlers{
		Auth: api.NewAuthHandler(accounts, authenticator, sessions, config.AuthConfig{
			CookieName:             cookieName,
			SessionLifetimeMinutes: 60,
		}),
		Board: api.NewBoardHandler(board, guard),
		Tasks: api.NewTaskHandler(taskSvc, guard, clock),
		Admin: api.NewAdminHandler(admin, registry, guard),
	}

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Use(middleware.NewSessionMiddleware(sessions, cookieName).Identify)
	handlers.Mount(r)

	return &apiFixture{mem: mem, users: users, sessions: sessions, logs: logs, router: r}
}

// login issues a session token for u without going through the handler.
func (f *apiFixture) login(t *testing.T, u *domain.User) string {
	t.Helper()
	token, err := f.sessions.Issue(context.Background(), domain.IdentityFromUser(u))
	require.NoError(t, err)
	return token
}

// seedBuckets creates the four workflow buckets and returns them by name.
func (f *apiFixture) seedBuckets() map[string]*domain.Bucket {
	out := make(map[string]*domain.Bucket)
	for _, w := range domain.WorkflowBuckets {
		out[w.Name()] = f.mem.AddBucket(w.Name(), w.Color())
	}
	return out
}

// do sends a request with an optional bearer token and JSON body. A string
// body is sent verbatim.
func (f *apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

// errorBody is the shape of every error response.
type errorBody struct {
	Error    string                 `json:"error"`
	Redirect string                 `json:"redirect"`
	TraceID  string                 `json:"trace_id"`
	Field    string                 `json:"field"`
	Values   map[string]interface{} `json:"values"`
}

// messageBody is the shape of every flash-style success response.
type messageBody[T any] struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
	Data     T      `json:"data"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(strings.NewReader(rec.Body.String())).Decode(&out),
		"body: %s", rec.Body.String())
	return out
}

func ptr[T any](v T) *T { return &v }

func newRequest(t *testing.T, method, path string) *http.Request {
	t.Helper()
	return httptest.NewRequest(method, path, nil)
}

func serve(f *apiFixture, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

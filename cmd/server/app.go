package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/taskboard/internal/api"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/postgres"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/phrazzld/taskboard/internal/store"
)

// backend is the persistence the application runs on.
type backend struct {
	stores store.Stores
	stats  store.StatsStore
	tx     store.TxRunner
}

// postgresBackend wires the PostgreSQL stores over one connection pool.
func postgresBackend(db *sqlx.DB, logger *slog.Logger) backend {
	return backend{
		stores: postgres.NewStores(db, logger),
		stats:  postgres.NewPostgresStatsStore(db, logger),
		tx:     postgres.NewTxRunner(db, logger),
	}
}

// application holds the wired services of a running process.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the application runs on an injected backend.
	db *sqlx.DB

	// clock is shared by every view that decides whether a task is overdue.
	clock service.Clock

	sessions      auth.SessionService
	guard         *auth.Guard
	authenticator *auth.Authenticator
	users         store.UserStore

	accounts *service.UserService
	buckets  *service.BucketService
	tasks    *service.TaskService
	board    *service.BoardService
	admin    *service.AdminService
}

// connect opens the database and builds an application on it.
func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	app, err := newApplication(cfg, logger, postgresBackend(db, logger))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	app.db = db
	return app, nil
}

// newApplication creates every service on top of b.
func newApplication(cfg *config.Config, logger *slog.Logger, b backend) (*application, error) {
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	sessions, err := auth.NewSessionService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %w", err)
	}

	app := &application{
		config:   cfg,
		logger:   logger,
		clock:    service.SystemClock,
		sessions: sessions,
		guard:    auth.NewGuard(b.stores.Users, logger),
		users:    b.stores.Users,
	}

	if app.authenticator, err = auth.NewAuthenticator(b.stores.Users, hasher, logger); err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}
	if app.accounts, err = service.NewUserService(b.stores.Users, hasher, logger); err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}
	if app.buckets, err = service.NewBucketService(b.stores.Buckets, b.tx, logger); err != nil {
		return nil, fmt.Errorf("failed to create bucket service: %w", err)
	}
	if app.tasks, err = service.NewTaskService(b.stores.Tasks, b.stores.Users, b.tx, logger); err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}
	app.board, err = service.NewBoardService(
		b.stores.Tasks, b.stores.Buckets, b.stores.Users, b.stats, app.clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create board service: %w", err)
	}
	app.admin, err = service.NewAdminService(
		b.stores.Tasks, b.stores.Buckets, b.stats, b.tx, app.clock, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin service: %w", err)
	}

	return app, nil
}

func (app *application) handlers() api.Handlers {
	return api.Handlers{
		Auth:  api.NewAuthHandler(app.accounts, app.authenticator, app.sessions, app.config.Auth),
		Board: api.NewBoardHandler(app.board, app.guard),
		Tasks: api.NewTaskHandler(app.tasks, app.guard, app.clock),
		Admin: api.NewAdminHandler(app.admin, app.buckets, app.guard),
	}
}

// bootstrap seeds the admin account and the workflow buckets.
func (app *application) bootstrap(ctx context.Context) (service.BootstrapResult, error) {
	b, err := service.NewBootstrapper(app.users, app.accounts, app.buckets, app.config.Bootstrap, app.logger)
	if err != nil {
		return service.BootstrapResult{}, err
	}
	return b.Run(ctx)
}

// cleanup releases the database pool.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database connection", slog.String("error", err.Error()))
		return
	}
	app.logger.Info("database connection closed")
}

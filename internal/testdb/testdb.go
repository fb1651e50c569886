//go:build integration

package testdb

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// Timeout bounds every setup operation against the test database.
const Timeout = 10 * time.Second

// urlEnvVars are checked in order for the test database URL.
var urlEnvVars = []string{"TASKBOARD_TEST_DATABASE_URL", "DATABASE_URL"}

var (
	once    sync.Once
	shared  *sqlx.DB
	openErr error
)

// DatabaseURL returns the configured test database URL, or "" when none is set.
func DatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// Open returns the shared, migrated test database. The test is skipped when
// no database URL is configured.
func Open(t *testing.T) *sqlx.DB {
	t.Helper()

	url := DatabaseURL()
	if url == "" {
		t.Skip("no test database configured; set TASKBOARD_TEST_DATABASE_URL")
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()

		shared, openErr = postgres.Open(ctx, config.DatabaseConfig{
			URL:          url,
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		})
		if openErr != nil {
			return
		}
		openErr = postgres.Migrate(ctx, shared.DB, "up", nil)
	})
	require.NoError(t, openErr, "failed to prepare test database")

	return shared
}

// WithTx runs fn inside a transaction that is rolled back afterwards. The
// context passed to fn carries a test logger.
func WithTx(t *testing.T, db *sqlx.DB, fn func(ctx context.Context, tx *sqlx.Tx)) {
	t.Helper()

	ctx, _ := logger.NewLogCaptureContext(t)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err, "failed to begin test transaction")
	t.Cleanup(func() { _ = tx.Rollback() })

	fn(ctx, tx)
}

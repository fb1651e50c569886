package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return sqlx.NewDb(db, "postgres"), mock
}

var (
	fixedCreatedAt = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	joinedTaskCols = []string{
		"id", "user_id", "assigned_to", "bucket_id", "title", "description",
		"due_date", "priority", "status", "created_at",
		"owner_username", "assignee_username", "bucket_name", "bucket_color",
	}
)

package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestTxRunner_InTx(t *testing.T) {
	t.Parallel()

	t.Run("commits when callback succeeds", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		runner := NewTxRunner(db, nil)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE tasks SET status = \$1 WHERE id = \$2`).
			WithArgs("completed", int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := runner.InTx(context.Background(), func(ctx context.Context, s store.Stores) error {
			return s.Tasks.UpdateStatus(ctx, 1, domain.StatusCompleted)
		})
		assert.NoError(t, err)
	})

	t.Run("rolls back when callback fails", func(t *testing.T) {
		t.Parallel()

		db, mock := newMockDB(t)
		runner := NewTxRunner(db, nil)

		mock.ExpectBegin()
		mock.ExpectRollback()

		sentinel := errors.New("denied")
		err := runner.InTx(context.Background(), func(ctx context.Context, s store.Stores) error {
			return sentinel
		})
		assert.ErrorIs(t, err, sentinel)
	})
}

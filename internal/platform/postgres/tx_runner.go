package postgres

import (
	"context"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/taskboard/internal/store"
)

// NewStores binds every repository to db, which may be a pool or a transaction.
func NewStores(db store.DBTX, logger *slog.Logger) store.Stores {
	return store.Stores{
		Users:   NewPostgresUserStore(db, logger),
		Buckets: NewPostgresBucketStore(db, logger),
		Tasks:   NewPostgresTaskStore(db, logger),
	}
}

// TxRunner implements store.TxRunner on top of store.RunInTransaction.
type TxRunner struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewTxRunner creates a TxRunner for db.
func NewTxRunner(db *sqlx.DB, logger *slog.Logger) *TxRunner {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TxRunner{db: db, logger: logger}
}

var _ store.TxRunner = (*TxRunner)(nil)

// InTx implements store.TxRunner.InTx.
func (r *TxRunner) InTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	return store.RunInTransaction(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		return fn(ctx, NewStores(tx, r.logger))
	})
}

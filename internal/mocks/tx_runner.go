package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/taskboard/internal/store"
)

// MockTxRunner implements store.TxRunner over a Memory. Transactions run one
// at a time; when fn fails, every write it made is undone.
type MockTxRunner struct {
	InTxFn func(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error

	// Stores are handed to fn. Override individual stores to inject failures.
	Stores store.Stores

	// Commits and Rollbacks count finished transactions.
	Commits   int
	Rollbacks int

	mem *Memory
	mu  sync.Mutex
}

// NewMockTxRunner creates a runner whose stores share mem.
func NewMockTxRunner(mem *Memory) *MockTxRunner {
	return &MockTxRunner{
		mem: mem,
		Stores: store.Stores{
			Users:   NewMockUserStore(mem),
			Buckets: NewMockBucketStore(mem),
			Tasks:   NewMockTaskStore(mem),
		},
	}
}

var _ store.TxRunner = (*MockTxRunner)(nil)

// InTx implements store.TxRunner.
func (r *MockTxRunner) InTx(ctx context.Context, fn func(ctx context.Context, s store.Stores) error) error {
	if r.InTxFn != nil {
		return r.InTxFn(ctx, fn)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.mem.snapshot()
	if err := fn(ctx, r.Stores); err != nil {
		r.mem.restore(snap)
		r.Rollbacks++
		return err
	}
	r.Commits++
	return nil
}

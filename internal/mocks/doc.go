// Package mocks provides centralized test doubles for the store and auth
// interfaces.
//
// The stores share an in-memory database (Memory) so that services can be
// exercised end to end without PostgreSQL. Every store method can be
// overridden through a function field, following the same pattern for each
// mock:
//
//	users := mocks.NewMockUserStore(mem)
//	users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	    return nil, errors.New("db down")
//	}
//
// MockTxRunner snapshots the database before each transaction and restores
// it when the callback returns an error, so rollback behavior can be tested.
package mocks

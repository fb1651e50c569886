// Package service contains the application use cases of the task board. It
// orchestrates domain objects and the repository interfaces defined in
// internal/store, and never depends on a concrete storage implementation.
//
// Key components:
//
//   - UserService registers accounts and stores only password hashes.
//   - BucketService is the registry of workflow columns.
//   - TaskService applies domain.CanAccess to every read and mutation. A
//     mutation locks the task row, re-reads the caller's role and writes
//     inside a single store.TxRunner transaction.
//   - BoardService and AdminService compose the read projections.
//   - Bootstrapper seeds the first admin and the default buckets.
//
// Expected failures are returned as sentinel errors (ErrNotFoundOrForbidden,
// ErrDuplicateUsername, ...) or *domain.ValidationError. Anything unexpected
// from a lower layer is wrapped in a *ServiceError, which matches
// ErrOperationFailed under errors.Is.
package service

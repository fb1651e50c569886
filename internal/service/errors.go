package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps each one to a status
// code and a fixed user-facing message.
var (
	// ErrNotFoundOrForbidden is returned identically whether a task does not
	// exist or the caller may not access it, so task existence never leaks.
	ErrNotFoundOrForbidden = errors.New("task not found or access denied")

	// ErrDuplicateUsername indicates registration with a taken username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrCannotDeleteSelf is returned when an admin targets their own account.
	ErrCannotDeleteSelf = errors.New("cannot delete own account")

	// ErrUserNotFound is returned by admin operations on an unknown user.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned by admin operations on an unknown task.
	ErrTaskNotFound = errors.New("task not found")

	// ErrBucketNotFound is returned when renaming an unknown bucket.
	ErrBucketNotFound = errors.New("bucket not found")

	// ErrOperationFailed wraps every unexpected persistence failure.
	ErrOperationFailed = errors.New("operation failed")
)

// ServiceError records which operation failed. It unwraps to both
// ErrOperationFailed and the underlying cause.
type ServiceError struct {
	Operation string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

// Unwrap returns ErrOperationFailed and the cause.
func (e *ServiceError) Unwrap() []error {
	return []error{ErrOperationFailed, e.Err}
}

// operationFailed wraps an unexpected error from a lower layer.
func operationFailed(op string, err error) error {
	return &ServiceError{Operation: op, Err: err}
}

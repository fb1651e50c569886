package store

import (
	"context"

	"github.com/phrazzld/taskboard/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user. user.HashedPassword must already be set; the
	// plaintext Password is never written. On success user.ID is populated.
	// Returns ErrUsernameExists if the username is taken (case-sensitive).
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// UpdatePassword replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePassword(ctx context.Context, id int64, hashedPassword string) error

	// Delete removes a user. Tasks referencing the user must be removed first.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id int64) error

	// ListRefs returns every user's id and username ordered by username.
	ListRefs(ctx context.Context) ([]domain.UserRef, error)

	// Count returns the number of users.
	Count(ctx context.Context) (int, error)
}

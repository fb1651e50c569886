package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// UserLookup is the slice of store.UserStore the auth package reads from.
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Authenticator verifies credentials and produces the session identity.
type Authenticator struct {
	users     UserLookup
	verifier  PasswordVerifier
	dummyHash string
	logger    *slog.Logger
}

// NewAuthenticator creates an Authenticator. The hasher is used once at
// construction to produce a throwaway hash, which is compared against when
// the username is unknown so both failure paths cost one bcrypt comparison.
func NewAuthenticator(users UserLookup, hasher PasswordHasher, logger *slog.Logger) (*Authenticator, error) {
	if users == nil {
		return nil, fmt.Errorf("users cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("hasher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	dummy, err := hasher.Hash("taskboard-unknown-user")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare authenticator: %w", err)
	}

	return &Authenticator{
		users:     users,
		verifier:  hasher,
		dummyHash: dummy,
		logger:    logger.With(slog.String("component", "authenticator")),
	}, nil
}

// Authenticate returns the identity for valid credentials and ErrAuthFailure
// otherwise. Storage failures are returned wrapped, not as ErrAuthFailure.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	log := logger.FromContextOrDefault(ctx, a.logger)
	username = strings.TrimSpace(username)

	if username == "" || password == "" {
		return domain.Identity{}, ErrAuthFailure
	}

	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			_ = a.verifier.Compare(a.dummyHash, password)
			log.Debug("login failed", slog.String("reason", "unknown user"))
			return domain.Identity{}, ErrAuthFailure
		}
		return domain.Identity{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := a.verifier.Compare(user.HashedPassword, password); err != nil {
		log.Debug("login failed",
			slog.String("reason", "password mismatch"),
			slog.Int64("user_id", user.ID))
		return domain.Identity{}, ErrAuthFailure
	}

	log.Info("user authenticated",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	return domain.IdentityFromUser(user), nil
}

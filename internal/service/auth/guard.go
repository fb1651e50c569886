package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// Outcome is the result of an authorization check.
type Outcome int

// Guard outcomes.
const (
	Allowed Outcome = iota
	RequireLogin
	RequireAdmin
)

func (o Outcome) String() string {
	switch o {
	case Allowed:
		return "allowed"
	case RequireLogin:
		return "require_login"
	case RequireAdmin:
		return "require_admin"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Err returns nil for Allowed and the matching sentinel otherwise.
func (o Outcome) Err() error {
	switch o {
	case Allowed:
		return nil
	case RequireAdmin:
		return ErrRequireAdmin
	default:
		return ErrRequireLogin
	}
}

// Guard performs the explicit checks handlers call before doing any work.
type Guard struct {
	users  UserLookup
	logger *slog.Logger
}

// NewGuard creates a Guard that reads fresh roles from users.
func NewGuard(users UserLookup, logger *slog.Logger) *Guard {
	if users == nil {
		panic("users cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{users: users, logger: logger.With(slog.String("component", "guard"))}
}

// Login requires any established session.
func (g *Guard) Login(id domain.Identity) Outcome {
	if id.IsZero() {
		return RequireLogin
	}
	return Allowed
}

// Admin requires an established session whose user currently holds the
// admin role in storage. The role carried by the session is ignored, so a
// demoted or deleted account loses access immediately. The returned identity
// carries the fresh role.
func (g *Guard) Admin(ctx context.Context, id domain.Identity) (Outcome, domain.Identity, error) {
	if id.IsZero() {
		return RequireLogin, id, nil
	}

	user, err := g.users.GetByID(ctx, id.UserID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			logger.FromContextOrDefault(ctx, g.logger).Warn("session refers to a missing user",
				slog.Int64("user_id", id.UserID))
			return RequireLogin, domain.Identity{}, nil
		}
		return RequireLogin, id, fmt.Errorf("failed to check role: %w", err)
	}

	fresh := domain.IdentityFromUser(user)
	if !fresh.IsAdmin() {
		return RequireAdmin, fresh, nil
	}
	return Allowed, fresh, nil
}

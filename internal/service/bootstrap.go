package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/store"
)

// BootstrapResult reports what a bootstrap run inserted.
type BootstrapResult struct {
	AdminSeeded   bool
	BucketsSeeded bool
}

// Bootstrapper performs first-run seeding. Both steps are idempotent: the
// admin is only created when no user exists, the buckets only when no
// bucket exists.
type Bootstrapper struct {
	users    store.UserStore
	accounts *UserService
	buckets  *BucketService
	cfg      config.BootstrapConfig
	logger   *slog.Logger
}

// NewBootstrapper creates a Bootstrapper.
func NewBootstrapper(
	users store.UserStore,
	accounts *UserService,
	buckets *BucketService,
	cfg config.BootstrapConfig,
	logger *slog.Logger,
) (*Bootstrapper, error) {
	if users == nil || accounts == nil || buckets == nil {
		return nil, domain.NewValidationError("dependencies", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrapper{
		users:    users,
		accounts: accounts,
		buckets:  buckets,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "bootstrap")),
	}, nil
}

// Run seeds the admin account and the default buckets as needed.
func (b *Bootstrapper) Run(ctx context.Context) (BootstrapResult, error) {
	log := logger.FromContextOrDefault(ctx, b.logger)
	var result BootstrapResult

	seeded, err := b.seedAdmin(ctx, log)
	if err != nil {
		return result, err
	}
	result.AdminSeeded = seeded

	result.BucketsSeeded, err = b.buckets.SeedDefaults(ctx)
	if err != nil {
		return result, err
	}
	return result, nil
}

func (b *Bootstrapper) seedAdmin(ctx context.Context, log *slog.Logger) (bool, error) {
	if b.cfg.AdminUsername == "" {
		log.Debug("admin seeding disabled")
		return false, nil
	}

	n, err := b.users.Count(ctx)
	if err != nil {
		return false, operationFailed("seed_admin", err)
	}
	if n > 0 {
		return false, nil
	}

	user, err := b.accounts.CreateAdmin(ctx, b.cfg.AdminUsername, b.cfg.AdminPassword)
	if err != nil {
		// Another instance seeded first.
		if errors.Is(err, ErrDuplicateUsername) {
			return false, nil
		}
		return false, err
	}

	log.Warn("seeded default admin account; rotate this password before exposing the service",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))
	return true, nil
}

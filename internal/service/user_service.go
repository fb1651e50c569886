package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/phrazzld/taskboard/internal/store"
)

// Registration messages shown to the user verbatim.
const (
	msgCredentialsRequired = "Username and password are required."
	msgPasswordsDiffer     = "Passwords do not match."
	msgPasswordTooShort    = "Password must be at least 6 characters long."
	msgPasswordTooLong     = "Password must be at most 72 characters long."
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// UserService implements the credential store operations.
type UserService struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(users store.UserStore, hasher auth.PasswordHasher, logger *slog.Logger) (*UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

// Register creates a user with the user role. Only the hash of the password
// is stored. Validation failures are returned as *domain.ValidationError with
// a user-facing message.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	username := strings.TrimSpace(in.Username)

	switch {
	case username == "" || in.Password == "":
		return nil, domain.NewValidationError("", msgCredentialsRequired, domain.ErrEmptyPassword)
	case in.Password != in.ConfirmPassword:
		return nil, domain.NewValidationError("", msgPasswordsDiffer, domain.ErrPasswordMismatch)
	case len(in.Password) < domain.MinPasswordLength:
		return nil, domain.NewValidationError("", msgPasswordTooShort, domain.ErrPasswordTooShort)
	case len(in.Password) > domain.MaxPasswordLength:
		return nil, domain.NewValidationError("", msgPasswordTooLong, domain.ErrPasswordTooLong)
	}

	return s.create(ctx, log, username, in.Password, domain.RoleUser)
}

// CreateAdmin creates an admin account. It is used by the bootstrapper.
func (s *UserService) CreateAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	return s.create(ctx, logger.FromContextOrDefault(ctx, s.logger), username, password, domain.RoleAdmin)
}

func (s *UserService) create(ctx context.Context, log *slog.Logger, username, password string, role domain.Role) (*domain.User, error) {
	user, err := domain.NewUser(username, password, role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, operationFailed("register", err)
	}
	user.HashedPassword = hash
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			log.Debug("registration with existing username", slog.String("username", username))
			return nil, fmt.Errorf("%w: %s", ErrDuplicateUsername, username)
		}
		log.Error("failed to save user", slog.String("error", err.Error()))
		return nil, operationFailed("register", err)
	}

	log.Info("user created",
		slog.Int64("user_id", user.ID),
		slog.String("role", string(user.Role)))
	return user, nil
}

// ChangePassword replaces the password hash of the named user after
// checking the length policy.
func (s *UserService) ChangePassword(ctx context.Context, username, password string) error {
	if err := domain.ValidatePassword(password); err != nil {
		return err
	}

	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if store.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return operationFailed("change_password", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return operationFailed("change_password", err)
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if store.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return operationFailed("change_password", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("password changed", slog.Int64("user_id", user.ID))
	return nil
}

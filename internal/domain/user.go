package domain

import (
	"errors"
	"strings"
)

// Role is the privilege level of a user account.
type Role string

// Possible role values
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Password length limits. The upper bound is bcrypt's input limit.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// Common validation errors for User
var (
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
	ErrInvalidRole         = errors.New("invalid role")
)

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// IsAdmin reports whether the role carries administrative privilege.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User represents a registered account on the task board.
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	Password       string `json:"-"` // Plaintext password, used temporarily during registration
	HashedPassword string `json:"-"` // Never expose password hash in JSON
	Role           Role   `json:"role"`
}

// NewUser creates a new User with the given username, plaintext password and role.
// The username is trimmed; the password is kept verbatim.
// Returns an error if validation fails.
//
// NOTE: The caller is responsible for hashing the password before storing the user.
func NewUser(username, password string, role Role) (*User, error) {
	user := &User{
		Username: strings.TrimSpace(username),
		Password: password,
		Role:     role,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "is required", ErrEmptyUsername)
	}

	if _, err := ParseRole(string(u.Role)); err != nil {
		return NewValidationError("role", "is invalid", err)
	}

	if u.Password != "" {
		return ValidatePassword(u.Password)
	}

	// Existing users loaded from storage only carry the hash
	if u.HashedPassword == "" {
		return NewValidationError("password", "is required", ErrEmptyPassword)
	}

	return nil
}

// ValidatePassword enforces the password length policy.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return NewValidationError("password", "is required", ErrEmptyPassword)
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "is too short", ErrPasswordTooShort)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "is too long", ErrPasswordTooLong)
	}
	return nil
}

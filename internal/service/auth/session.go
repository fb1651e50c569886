package auth

import (
	"context"
	"time"

	"github.com/phrazzld/taskboard/internal/domain"
)

// SessionService issues and validates the signed session tokens that carry
// an identity between requests.
type SessionService interface {
	// Issue creates a signed session token for the identity.
	Issue(ctx context.Context, id domain.Identity) (string, error)

	// Validate verifies the token and extracts its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on failure.
	Validate(ctx context.Context, token string) (*Claims, error)

	// Lifetime is how long an issued token stays valid.
	Lifetime() time.Duration
}

// Claims is the session payload.
type Claims struct {
	UserID    int64       `json:"uid"`
	Username  string      `json:"username"`
	Role      domain.Role `json:"role"`
	IssuedAt  time.Time   `json:"iat"`
	ExpiresAt time.Time   `json:"exp"`
	ID        string      `json:"jti"`
}

// Identity returns the identity the session was established for.
func (c *Claims) Identity() domain.Identity {
	return domain.Identity{UserID: c.UserID, Username: c.Username, Role: c.Role}
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
)

// hmacSessionService is an implementation of SessionService using HMAC-SHA signed JWTs.
type hmacSessionService struct {
	signingKey []byte
	lifetime   time.Duration
	timeFunc   func() time.Time // Injectable for testing
	clockSkew  time.Duration
}

type sessionClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

var _ SessionService = (*hmacSessionService)(nil)

// NewSessionService creates a new session service using HMAC-SHA256 signing.
func NewSessionService(cfg config.AuthConfig) (SessionService, error) {
	return newSessionService(cfg.SessionSecret, cfg.SessionLifetime(), time.Now)
}

// NewSessionServiceWithClock is NewSessionService with an injected clock.
func NewSessionServiceWithClock(cfg config.AuthConfig, now func() time.Time) (SessionService, error) {
	return newSessionService(cfg.SessionSecret, cfg.SessionLifetime(), now)
}

func newSessionService(secret string, lifetime time.Duration, now func() time.Time) (*hmacSessionService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 characters")
	}
	if lifetime <= 0 {
		return nil, fmt.Errorf("session lifetime must be positive")
	}
	if now == nil {
		now = time.Now
	}

	return &hmacSessionService{
		signingKey: []byte(secret),
		lifetime:   lifetime,
		timeFunc:   now,
		clockSkew:  2 * time.Minute,
	}, nil
}

func (s *hmacSessionService) Lifetime() time.Duration {
	return s.lifetime
}

// Issue creates a signed session token with identity claims.
func (s *hmacSessionService) Issue(ctx context.Context, id domain.Identity) (string, error) {
	if id.IsZero() {
		return "", fmt.Errorf("cannot issue session for empty identity")
	}

	now := s.timeFunc()
	claims := sessionClaims{
		UserID:   id.UserID,
		Username: id.Username,
		Role:     string(id.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign session token",
			"error", err,
			"user_id", id.UserID)
		return "", fmt.Errorf("failed to sign session token with HMAC-SHA256: %w", err)
	}
	return signed, nil
}

// Validate parses the token and returns its claims if the signature and
// time claims check out.
func (s *hmacSessionService) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	token, err := jwt.ParseWithClaims(
		tokenString,
		&sessionClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("session validation failed: token expired")
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("session validation failed: token not yet valid")
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("session validation failed",
				"error_type", fmt.Sprintf("%T", err))
			return nil, ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        claims.ID,
	}, nil
}

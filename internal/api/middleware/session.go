package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/redact"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// SessionMiddleware resolves the session identity of each request. It never
// rejects a request itself: anonymous requests continue with the zero
// identity and handlers apply auth.Guard.
type SessionMiddleware struct {
	sessions   auth.SessionService
	cookieName string
}

// NewSessionMiddleware creates a SessionMiddleware that reads the token from
// the named cookie or an "Authorization: Bearer" header.
func NewSessionMiddleware(sessions auth.SessionService, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, cookieName: cookieName}
}

// Identify places the identity from a valid session token in the context.
func (m *SessionMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.token(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.sessions.Validate(r.Context(), token)
		if err != nil {
			log := logger.FromContext(r.Context())
			switch {
			case errors.Is(err, auth.ErrExpiredToken), errors.Is(err, auth.ErrInvalidToken),
				errors.Is(err, auth.ErrTokenNotYetValid):
				log.Debug("ignoring unusable session token", slog.String("reason", err.Error()))
			default:
				log.Error("failed to validate session token", slog.String("error", redact.Error(err)))
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := shared.WithIdentity(r.Context(), claims.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// token prefers a bearer token. Any other Authorization scheme belongs to
// something else, so the cookie is still consulted.
func (m *SessionMiddleware) token(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if t := strings.TrimSpace(parts[1]); t != "" {
			return t
		}
	}
	if c, err := r.Cookie(m.cookieName); err == nil {
		return c.Value
	}
	return ""
}

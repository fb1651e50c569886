package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/config"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// AuthHandler handles registration, login and logout.
type AuthHandler struct {
	accounts      *service.UserService
	authenticator *auth.Authenticator
	sessions      auth.SessionService
	cookie        config.AuthConfig
	now           func() time.Time
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	accounts *service.UserService,
	authenticator *auth.Authenticator,
	sessions auth.SessionService,
	cookie config.AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		accounts:      accounts,
		authenticator: authenticator,
		sessions:      sessions,
		cookie:        cookie,
		now:           time.Now,
	}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	echo := func() interface{} { return map[string]string{"username": req.Username} }
	if !decodeAndValidate(w, r, &req, echo) {
		return
	}

	user, err := h.accounts.Register(r.Context(), service.RegisterInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		RespondWithFormError(w, r, err, echo())
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, shared.MessageResponse{
		Message:  "Registration successful! Please log in.",
		Redirect: "/login",
		Data:     userToResponse(user),
	})
}

// Login handles POST /auth/login. On success the session token is returned in
// the body and set as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	echo := func() interface{} { return map[string]string{"username": req.Username} }
	if !decodeAndValidate(w, r, &req, echo) {
		return
	}

	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		RespondWithFormError(w, r,
			domain.NewValidationError("", "Username and password are required.", domain.ErrEmptyUsername),
			echo())
		return
	}

	id, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrAuthFailure) {
			RespondWithFormError(w, r, err, echo())
			return
		}
		HandleAPIError(w, r, err)
		return
	}

	token, err := h.sessions.Issue(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	expiresAt := h.now().Add(h.sessions.Lifetime()).UTC()
	h.setSessionCookie(w, token, expiresAt)

	redirect := "/board"
	if id.IsAdmin() {
		redirect = "/admin"
	}

	logger.FromContext(r.Context()).Info("user logged in",
		slog.Int64("user_id", id.UserID),
		slog.String("role", string(id.Role)))

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Message:   "Welcome back, " + id.Username + "!",
		Redirect:  redirect,
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User:      UserResponse{ID: id.UserID, Username: id.Username, Role: id.Role},
	})
}

// Logout handles POST /auth/logout. Sessions are stateless, so logging out
// expires the cookie; a bearer token stays valid until it expires.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	id := shared.IdentityFromContext(r.Context())
	h.clearSessionCookie(w)

	message := "You have been logged out."
	if !id.IsZero() {
		message = "Goodbye, " + id.Username + "!"
		logger.FromContext(r.Context()).Info("user logged out", slog.Int64("user_id", id.UserID))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message:  message,
		Redirect: "/login",
	})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(h.sessions.Lifetime().Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

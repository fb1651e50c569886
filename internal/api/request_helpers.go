package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/platform/logger"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// getPathID extracts a positive integer id from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, paramName), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidPathID
	}
	return id, nil
}

// respondOutcome writes the response for a refused guard check.
func respondOutcome(w http.ResponseWriter, r *http.Request, out auth.Outcome) {
	switch out {
	case auth.RequireAdmin:
		shared.RespondWithRedirect(w, r, http.StatusForbidden, msgAdminRequired, "/dashboard")
	default:
		shared.RespondWithRedirect(w, r, http.StatusUnauthorized, msgLoginRequired, "/login")
	}
}

// requireLogin returns the request identity, or writes a login-required
// response and false.
func requireLogin(w http.ResponseWriter, r *http.Request, guard *auth.Guard) (domain.Identity, bool) {
	id := shared.IdentityFromContext(r.Context())
	if out := guard.Login(id); out != auth.Allowed {
		respondOutcome(w, r, out)
		return id, false
	}
	return id, true
}

// requireAdmin re-checks the caller's role against storage and returns the
// refreshed identity, or writes the refusal and false.
func requireAdmin(w http.ResponseWriter, r *http.Request, guard *auth.Guard) (domain.Identity, bool) {
	out, id, err := guard.Admin(r.Context(), shared.IdentityFromContext(r.Context()))
	if err != nil {
		HandleAPIError(w, r, err)
		return id, false
	}
	if out != auth.Allowed {
		respondOutcome(w, r, out)
		return id, false
	}
	return id, true
}

// handleIdentityAndPathID combines requireLogin and getPathID. It writes the
// error response itself when either fails.
func handleIdentityAndPathID(
	w http.ResponseWriter,
	r *http.Request,
	guard *auth.Guard,
	paramName string,
) (domain.Identity, int64, bool) {
	id, ok := requireLogin(w, r, guard)
	if !ok {
		return id, 0, false
	}

	pathID, err := getPathID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Warn("invalid path parameter",
			slog.String("param_name", paramName),
			slog.String("value", chi.URLParam(r, paramName)))
		HandleAPIError(w, r, err)
		return id, 0, false
	}
	return id, pathID, true
}

// decodeAndValidate reads the JSON body into req and runs its validator
// tags. On failure it writes the response itself, echoing values.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}, values func() interface{}) bool {
	if err := shared.DecodeJSON(r, req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, msgInvalidRequest, "", err)
		return false
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondValidationFailure(w, r, err, values())
		return false
	}
	return true
}

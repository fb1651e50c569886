package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/taskboard/internal/api/shared"
	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service"
	"github.com/phrazzld/taskboard/internal/service/auth"
)

// User-facing messages. They are stable strings the rendering layer may match on.
const (
	msgLoginRequired    = "Please log in to access this page."
	msgAdminRequired    = "Admin access required."
	msgTaskNotVisible   = "Task not found or access denied."
	msgOperationFailed  = "Operation failed. Please try again."
	msgInvalidRequest   = "Invalid request format"
	msgInvalidID        = "Invalid ID"
	msgDuplicateAccount = "Username already exists. Please choose another."
	msgBadCredentials   = "Invalid username or password."
)

// errInvalidPathID is returned when a path parameter is not a positive integer.
var errInvalidPathID = errors.New("invalid path id")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, errInvalidPathID):
		return http.StatusBadRequest

	// Authentication errors
	case errors.Is(err, auth.ErrRequireLogin),
		errors.Is(err, auth.ErrAuthFailure),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, auth.ErrRequireAdmin):
		return http.StatusForbidden

	// Not found errors. A foreign task is indistinguishable from a missing one.
	case errors.Is(err, service.ErrNotFoundOrForbidden),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBucketNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusConflict

	case errors.Is(err, service.ErrCannotDeleteSelf):
		return http.StatusBadRequest

	case domain.IsValidationError(err):
		return http.StatusUnprocessableEntity

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgOperationFailed
	}

	switch {
	case errors.Is(err, errInvalidPathID):
		return msgInvalidID
	case errors.Is(err, auth.ErrAuthFailure):
		return msgBadCredentials
	case errors.Is(err, auth.ErrRequireLogin),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return msgLoginRequired
	case errors.Is(err, auth.ErrRequireAdmin):
		return msgAdminRequired
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		return msgTaskNotVisible
	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found."
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found."
	case errors.Is(err, service.ErrBucketNotFound):
		return "Bucket not found."
	case errors.Is(err, service.ErrDuplicateUsername):
		return msgDuplicateAccount
	case errors.Is(err, service.ErrCannotDeleteSelf):
		return "You cannot delete your own account."
	case errors.Is(err, domain.ErrEmptyTitle):
		return "Task title is required."
	case errors.Is(err, domain.ErrEmptyBucketName):
		return "Bucket name is required."
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return validationMessage(ve)
	}
	return msgOperationFailed
}

// validationMessage renders a domain validation error. Messages without a
// field are complete sentences already.
func validationMessage(ve *domain.ValidationError) string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("Invalid %s: %s.", ve.Field, ve.Message)
}

// redirectFor names the page the rendering layer should show after err.
func redirectFor(err error) string {
	switch {
	case errors.Is(err, auth.ErrRequireLogin):
		return "/login"
	case errors.Is(err, auth.ErrRequireAdmin):
		return "/dashboard"
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		return "/board"
	case errors.Is(err, service.ErrCannotDeleteSelf),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrBucketNotFound):
		return "/admin"
	default:
		return ""
	}
}

// HandleAPIError maps err to a status and safe message and writes it.
// The full error is logged, redacted, but never sent to the client.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), redirectFor(err), err)
}

// FormErrorResponse is returned when a submitted form is rejected. Values
// echoes the submission so the form can be re-rendered pre-filled.
type FormErrorResponse struct {
	shared.ErrorResponse
	Field  string      `json:"field,omitempty"`
	Values interface{} `json:"values,omitempty"`
}

// isFormError reports whether err rejects what the user typed, as opposed
// to who they are or what they asked for.
func isFormError(err error) bool {
	return domain.IsValidationError(err) ||
		errors.Is(err, service.ErrDuplicateUsername) ||
		errors.Is(err, auth.ErrAuthFailure)
}

// RespondWithFormError writes err like HandleAPIError, adding the rejected
// field and the submitted values. Errors that are not about the form fall
// through to HandleAPIError.
func RespondWithFormError(w http.ResponseWriter, r *http.Request, err error, values interface{}) {
	if !isFormError(err) {
		HandleAPIError(w, r, err)
		return
	}
	status := MapErrorToStatusCode(err)

	resp := FormErrorResponse{
		ErrorResponse: shared.ErrorResponse{
			Error:   GetSafeErrorMessage(err),
			Code:    status,
			TraceID: shared.GetTraceID(r.Context()),
		},
		Values: values,
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	shared.RespondWithJSON(w, r, status, resp)
}

// SanitizeValidationError turns validator failures into a user-friendly
// message naming the first offending field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s.", fe.Field(), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

// validationField returns the JSON name of the first offending field.
func validationField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "datetime":
		return "must be a date (YYYY-MM-DD)"
	case "hexcolor":
		return "must be a hex color such as #667eea"
	case "gt":
		return "must be positive"
	default:
		return "validation failed"
	}
}

// respondValidationFailure answers a request whose DTO failed validator checks.
func respondValidationFailure(w http.ResponseWriter, r *http.Request, err error, values interface{}) {
	shared.RespondWithJSON(w, r, http.StatusUnprocessableEntity, FormErrorResponse{
		ErrorResponse: shared.ErrorResponse{
			Error:   SanitizeValidationError(err),
			Code:    http.StatusUnprocessableEntity,
			TraceID: shared.GetTraceID(r.Context()),
		},
		Field:  validationField(err),
		Values: values,
	})
}

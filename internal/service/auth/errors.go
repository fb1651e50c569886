package auth

import "errors"

// Common authentication service errors
var (
	// ErrAuthFailure is returned for any failed login. It deliberately does not
	// say whether the username or the password was wrong.
	ErrAuthFailure = errors.New("invalid username or password")

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("session token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("session token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("session token is missing")

	// ErrRequireLogin is the error form of the RequireLogin guard outcome.
	ErrRequireLogin = errors.New("login required")

	// ErrRequireAdmin is the error form of the RequireAdmin guard outcome.
	ErrRequireAdmin = errors.New("admin privileges required")
)

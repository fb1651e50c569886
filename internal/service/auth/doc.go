// Package auth implements credential verification, session tokens and the
// authorization guard consulted at the top of every protected handler.
package auth

// Package api handles incoming HTTP requests, request validation and
// response formatting for the task board. Handlers call an auth.Guard
// before any work, translate JSON bodies into domain values, and map
// service errors to status codes and safe user messages. Responses carry
// a redirect hint and a one-off message so a rendering layer can behave
// like a classic form-post application.
package api

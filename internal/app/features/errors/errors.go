// internal/app/features/errors/errors.go

// Package errors centralizes JSON error responses and their logging.
// Handlers hold an *ErrorLogger and call one method per failure path so
// that every error is both logged and answered consistently.
package errors

import (
	"net/http"

	"go.uber.org/zap"
)

// ErrorLogger writes JSON error responses and logs server-side failures.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(log *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: log}
}

// Internal logs the error and answers 500. The underlying error is never
// sent to the client.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if e != nil && e.log != nil {
		e.log.Error(msg,
			zap.String("path", r.URL.Path),
			zap.String("method", r.Method),
			zap.Error(err),
		)
	}
	Error(w, http.StatusInternalServerError, "internal server error")
}

// BadRequest answers 400 with the given message.
func (e *ErrorLogger) BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, http.StatusBadRequest, msg)
}

// Unauthorized answers 401.
func (e *ErrorLogger) Unauthorized(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusUnauthorized, "sign in required")
}

// Forbidden answers 403 with the given message.
func (e *ErrorLogger) Forbidden(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, http.StatusForbidden, msg)
}

// NotFound answers 404 with the given message.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, http.StatusNotFound, msg)
}

// Conflict answers 409 with the given message.
func (e *ErrorLogger) Conflict(w http.ResponseWriter, r *http.Request, msg string) {
	Error(w, http.StatusConflict, msg)
}

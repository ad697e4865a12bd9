package common

import (
	"encoding/json"
	"net/http"

	"edu-platform-api/logger"

	"github.com/sirupsen/logrus"
)

// AppError is the single error shape handlers and middleware surface to
// clients. Message is what the client sees; Err carries the internal cause
// and is only ever logged, never serialized.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Send writes the error as a JSON response. Client errors log at warning
// level, server errors with full detail at error level.
func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		entry := logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		})
		if e.Code >= http.StatusInternalServerError {
			entry.Error(e.Message)
		} else {
			entry.Warn(e.Message)
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Code)
	json.NewEncoder(w).Encode(e)
}

// Constructors for the auth failure taxonomy. Every verification failure is
// translated into exactly one of these; the response body strings are part of
// the public contract and must not change.

// TokenNotReceived covers an absent or empty session cookie. The status code
// differs between the generic and role-scoped middleware variants, so the
// caller supplies it.
func TokenNotReceived(status int) *AppError {
	return NewAppError(status, "Token Not Received", nil)
}

func TokenExpired(err error) *AppError {
	return NewAppError(http.StatusUnauthorized, "Token Expired", err)
}

func InvalidToken(err error) *AppError {
	return NewAppError(http.StatusUnauthorized, "Invalid Token", err)
}

// AccessDenied reports a valid principal with an insufficient role: identity
// was proven, authorization was denied. The label includes its article,
// e.g. "a user" or "an Admin".
func AccessDenied(roleLabel string) *AppError {
	return NewAppError(http.StatusForbidden, "Access denied. Not "+roleLabel+".", nil)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "Internal Server Error", err)
}

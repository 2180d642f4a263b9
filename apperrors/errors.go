package apperrors

import (
	"fmt"
	"net/http"
)

// AppError is a domain error carrying a user-facing message and HTTP status.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

// Is matches any AppError with the same code and message, so wrapped
// sentinels still satisfy errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New returns an AppError with the given status code and message.
func New(code int, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Provider-trust failures surfaced during the Google credential exchange.
var (
	ErrInvalidCredential = &AppError{Code: http.StatusBadRequest, Message: "Invalid Google credential"}
	ErrAudienceMismatch  = &AppError{Code: http.StatusBadRequest, Message: "Google token was not issued for this application"}
	ErrEmailUnverified   = &AppError{Code: http.StatusBadRequest, Message: "Google email not verified"}
)

// Token codec failures.
var (
	ErrInvalidToken   = &AppError{Code: http.StatusUnauthorized, Message: "Invalid or expired token"}
	ErrWrongTokenType = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token type"}
	ErrMissingSubject = &AppError{Code: http.StatusUnauthorized, Message: "Token missing subject claim"}
)

// Refresh-flow failures.
var (
	ErrInvalidRefreshToken   = &AppError{Code: http.StatusBadRequest, Message: "Invalid or expired refresh token"}
	ErrTokenRevokedOrUnknown = &AppError{Code: http.StatusBadRequest, Message: "Refresh token not found or has been revoked"}
	ErrTokenExpired          = &AppError{Code: http.StatusBadRequest, Message: "Refresh token has expired"}
	ErrUserNotFound          = &AppError{Code: http.StatusBadRequest, Message: "User not found"}
)

// Request authorization failures.
var (
	ErrUnauthorized = &AppError{Code: http.StatusUnauthorized, Message: "Invalid or expired access token"}
	ErrForbidden    = &AppError{Code: http.StatusForbidden, Message: "You do not have access to this resource"}
)

// NotFound returns a 404 for the given resource.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: fmt.Sprintf("%s with id '%s' not found", resource, id),
	}
}

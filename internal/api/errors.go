package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ===============================
// ERROR TYPES
// ===============================

// ClientError is the structured error surfaced by every API client call.
// Validation errors are raised before any network traffic; network and status
// errors wrap whatever the transport or backend reported.
type ClientError struct {
	Type       string `json:"type"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Cause      error  `json:"-"`
}

// Error implements the error interface.
func (e *ClientError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ===============================
// ERROR CONSTRUCTORS
// ===============================

// NewValidationError creates an error for input rejected before any request
// was issued.
func NewValidationError(message string, cause error) *ClientError {
	return &ClientError{
		Type:       "VALIDATION_ERROR",
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewNetworkError creates an error for a request that never produced a
// usable response.
func NewNetworkError(message string, cause error) *ClientError {
	return &ClientError{
		Type:    "NETWORK_ERROR",
		Message: message,
		Cause:   cause,
	}
}

// NewStatusError maps a non-2xx backend response onto the client taxonomy.
func NewStatusError(statusCode int, message string) *ClientError {
	e := &ClientError{Message: message, StatusCode: statusCode}
	switch {
	case statusCode == http.StatusUnauthorized:
		e.Type = "UNAUTHORIZED"
	case statusCode == http.StatusForbidden:
		e.Type = "FORBIDDEN"
	case statusCode == http.StatusNotFound:
		e.Type = "NOT_FOUND"
	case statusCode == http.StatusConflict:
		e.Type = "CONFLICT"
	case statusCode == http.StatusTooManyRequests:
		e.Type = "RATE_LIMIT"
	case statusCode >= 500:
		e.Type = "SERVER_ERROR"
	default:
		e.Type = "API_ERROR"
	}
	return e
}

// ===============================
// ERROR UTILITIES
// ===============================

// GetClientError extracts a ClientError from err, or wraps it as a generic
// network error.
func GetClientError(err error) *ClientError {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce
	}
	return NewNetworkError(err.Error(), err)
}

// IsErrorType checks whether err carries the given taxonomy type.
func IsErrorType(err error, errorType string) bool {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Type == errorType
	}
	return false
}

// IsValidationError reports whether err was raised before any network call.
func IsValidationError(err error) bool {
	return IsErrorType(err, "VALIDATION_ERROR")
}

// IsNotFoundError reports whether the backend answered 404.
func IsNotFoundError(err error) bool {
	return IsErrorType(err, "NOT_FOUND")
}

// IsUnauthorizedError reports whether the backend rejected the bearer token.
func IsUnauthorizedError(err error) bool {
	return IsErrorType(err, "UNAUTHORIZED")
}

// IsServerError reports whether the backend failed with a 5xx status.
func IsServerError(err error) bool {
	return IsErrorType(err, "SERVER_ERROR")
}

package common

import (
	"context"
	"errors"
	"net/http"
)

// APIError carries the HTTP status the handler layer will answer with.
// Services return it, handlers translate it through WriteError.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
	Retryable  bool
	Err        error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string, details ...string) *APIError {
	return &APIError{StatusCode: http.StatusBadRequest, Message: message, Errors: details}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{StatusCode: http.StatusNotFound, Message: message}
}

// NewAuthorizationError is returned when an authenticated actor touches a
// resource it does not own.
func NewAuthorizationError() *APIError {
	return &APIError{StatusCode: http.StatusForbidden, Message: "Unauthorized Access"}
}

func NewUnauthenticatedError(message string) *APIError {
	return &APIError{StatusCode: http.StatusUnauthorized, Message: message}
}

func NewConflictError(message string) *APIError {
	return &APIError{StatusCode: http.StatusConflict, Message: message}
}

// NewUpstreamError wraps a failure of the store or the media host. Deadline
// overruns map to 503 so clients know the call can be retried.
func NewUpstreamError(message string, err error) *APIError {
	apiErr := &APIError{StatusCode: http.StatusInternalServerError, Message: message, Err: err}
	if errors.Is(err, context.DeadlineExceeded) {
		apiErr.StatusCode = http.StatusServiceUnavailable
		apiErr.Retryable = true
	}
	return apiErr
}

// AsAPIError unwraps err to an *APIError, or reports false.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status err maps to.
func StatusOf(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}

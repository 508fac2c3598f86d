package rest

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidRequest is returned when a request fails validation before
// dispatch. No network I/O is attempted; the caller can fix the inputs and
// retry.
var ErrInvalidRequest = errors.New("request failed validation")

// ErrUnsignedRequest is returned when dispatch is attempted on a request
// with no signature. This is a programming error: requests produced by
// auth.Sign always carry one.
var ErrUnsignedRequest = errors.New("request has not been signed")

// APIError represents a non-2xx response from the trading API.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error: HTTP %d", e.Status)
	}
	return fmt.Sprintf("api error: HTTP %d: %s", e.Status, e.Body)
}

// IsAuthError checks if this is an authentication failure. A rejected
// signature surfaces here as 401/403, not as a local crypto error.
func (e *APIError) IsAuthError() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsRateLimitError checks if the API throttled the request
func (e *APIError) IsRateLimitError() bool {
	return e.Status == http.StatusTooManyRequests
}

// RequestError wraps a transport-level failure: the request never produced
// an HTTP response.
type RequestError struct {
	Method string
	URL    string
	Cause  error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("request %s %s failed: %v", e.Method, e.URL, e.Cause)
}

// Unwrap returns the underlying cause
func (e *RequestError) Unwrap() error {
	return e.Cause
}

// ErrorWithContext wraps errors with operation context for better debugging
func ErrorWithContext(err error, operation string) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%s: %w", operation, err)
}

package registry

import (
	"errors"
	"fmt"
)

// ErrorCategory is the normalized failure taxonomy for registry lookups.
// Callers branch on the category, never on transport details.
type ErrorCategory string

const (
	// ErrorTimeout indicates the registry took too long to respond.
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorOutage indicates the registry is unreachable or returning 5xx.
	ErrorOutage ErrorCategory = "outage"

	// ErrorAuthentication indicates the API key was rejected.
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorBadData indicates a malformed top-level response.
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorNotFound indicates no record exists for the licence number.
	ErrorNotFound ErrorCategory = "not_found"

	// ErrorInternal indicates an unexpected client-side failure.
	ErrorInternal ErrorCategory = "internal"
)

// ClientError wraps registry failures with their category. Timeout and
// outage are retryable; the rest are not.
type ClientError struct {
	Category   ErrorCategory
	Message    string
	Underlying error
}

func (e *ClientError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("registry [%s]: %s: %v", e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("registry [%s]: %s", e.Category, e.Message)
}

func (e *ClientError) Unwrap() error {
	return e.Underlying
}

func newClientError(category ErrorCategory, message string, underlying error) *ClientError {
	return &ClientError{Category: category, Message: message, Underlying: underlying}
}

// CategoryOf extracts the category from an error chain, defaulting to
// internal for errors this package did not produce.
func CategoryOf(err error) ErrorCategory {
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ErrorInternal
}

// IsRetryable reports whether a lookup failure is worth retrying.
func IsRetryable(err error) bool {
	switch CategoryOf(err) {
	case ErrorTimeout, ErrorOutage:
		return true
	default:
		return false
	}
}

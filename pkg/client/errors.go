package client

import (
	"errors"
	"fmt"
)

// Error kinds the API reports in structured error bodies.
const (
	KindValidation      = "validation_error"
	KindEmailUnverified = "email_unverified"
	KindNotFound        = "not_found"
)

// HTTPError represents a non-2xx HTTP response from the API.
// Kind is the structured error category when the server supplies one.
type HTTPError struct {
	StatusCode int
	Kind       string
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsKind returns true if err (or any wrapped error) is an HTTPError with the given kind.
func IsKind(err error, kind string) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Kind == kind
	}
	return false
}

// Message extracts the single-line user-facing message from an error.
// HTTPErrors yield the server message without the status prefix; anything
// else falls back to err.Error().
func Message(err error) string {
	if err == nil {
		return ""
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.Message != "" {
		return httpErr.Message
	}
	return err.Error()
}

package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx (or error-enveloped) response from the backend.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// IsUnauthorized reports an HTTP 401 failure.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsNotFound reports an HTTP 404 failure.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

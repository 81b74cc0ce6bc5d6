package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrUnauthorized marks a 401 from the backend: the session token is no
// longer accepted and the session layer must drop it. Never retried.
var ErrUnauthorized = errors.New("backend rejected the session token")

// APIError carries a non-2xx backend response: the HTTP status, the
// backend's message and any per-field validation errors
// ({message, errors: {field: [messages]}}).
type APIError struct {
	Status      int                 `json:"status"`
	Message     string              `json:"message"`
	FieldErrors map[string][]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend error (%d)", e.Status)
}

// Unwrap lets callers match ErrUnauthorized with errors.Is
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// IsNotFound reports whether the backend answered 404
func (e *APIError) IsNotFound() bool {
	return e.Status == http.StatusNotFound
}

// IsValidation reports whether the backend returned field-level errors
func (e *APIError) IsValidation() bool {
	return e.Status == http.StatusUnprocessableEntity || len(e.FieldErrors) > 0
}

// AsAPIError extracts an *APIError from an error chain
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// decodeError parses a failed response body into an APIError. Bodies that are
// not the conventional error payload still produce a usable error with the
// HTTP status text.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err == nil && len(body) > 0 {
		var payload struct {
			Message string              `json:"message"`
			Errors  map[string][]string `json:"errors"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
			apiErr.Message = payload.Message
			apiErr.FieldErrors = payload.Errors
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}

	return apiErr
}

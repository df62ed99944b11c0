package client

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// FieldViolation mirrors one entry of the server's validation error list.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError is returned whenever the service answers with a non-2xx
// status. It carries the HTTP status plus whatever the server put in
// the body: a plain message, a conflicting field name, or a list of
// field violations.
type APIError struct {
	StatusCode int
	Message    string
	Field      string
	Violations []FieldViolation
}

func (e *APIError) Error() string {
	if len(e.Violations) > 0 {
		parts := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
		}
		return fmt.Sprintf("cakeshelf: status %d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	if e.Field != "" {
		return fmt.Sprintf("cakeshelf: status %d: %s (field %s)", e.StatusCode, e.Message, e.Field)
	}
	return fmt.Sprintf("cakeshelf: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict reports whether err is an APIError with status 409.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// IsValidation reports whether err is an APIError with status 400.
func IsValidation(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest
}

// errorBody is the union of the three error shapes the server emits.
type errorBody struct {
	Message string           `json:"message"`
	Field   string           `json:"field"`
	Errors  []FieldViolation `json:"errors"`
}

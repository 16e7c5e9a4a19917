package gemini

import (
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("gemini: API key is required")

// APIError is a non-200 answer from the generateContent endpoint.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini: API error %d %s: %s", e.StatusCode, e.Status, e.Message)
}

// HTTPStatus exposes the status code for error classification.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

package deepseek

import (
	"errors"
	"fmt"
)

var ErrMissingAPIKey = errors.New("deepseek: API key is required")

// APIError is a non-200 answer from the completions endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deepseek API error %d: %s", e.StatusCode, e.Message)
}

// HTTPStatus exposes the status code for error classification.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

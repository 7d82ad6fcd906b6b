package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrAlreadyExists is returned before any write when a category name
	// collides (case-insensitively) with another category.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidResponse means the server answered 2xx with a body that
	// could not be parsed.
	ErrInvalidResponse = errors.New("invalid response")
	ErrMissingFile     = errors.New("no file provided")
	ErrNotFound        = errors.New("not found")
	ErrNameRequired    = errors.New("name is required")
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("failed to %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("failed to %s: status %d", e.Op, e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

const maxMessageLen = 200

// statusError builds a StatusError whose message comes from a JSON
// {"message"} or {"error"} body, falling back to the raw text. An empty
// body leaves the message empty so the status code is reported instead.
func statusError(op string, status int, body []byte) *StatusError {
	return &StatusError{Op: op, StatusCode: status, Message: errorMessage(body)}
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		// JSON without a usable message; the status code says more.
		return ""
	}
	if len(text) > maxMessageLen {
		text = text[:maxMessageLen-3] + "..."
	}
	return text
}

func invalidResponse(op string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidResponse)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrInvalidResponse, cause)
}

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// CannotConnectMessage is the user-facing text of every transport-level failure.
const CannotConnectMessage = "Cannot connect to server. Please check your connection and try again."

const (
	defaultErrorMessage      = "API request failed"
	loginErrorMessage        = "Login failed"
	registrationErrorMessage = "Registration failed. Please try again."
)

// ErrCannotConnect matches any *NetworkError via errors.Is.
var ErrCannotConnect = errors.New(CannotConnectMessage)

// APIError is returned for non-2xx responses. Error() yields the extracted message.
type APIError struct {
	URL        string
	StatusCode int
	StatusText string
	Message    string
}

func (e *APIError) Error() string { return e.Message }

// NetworkError is returned when the server could not be reached at all.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string { return CannotConnectMessage }

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrCannotConnect }

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// errorMessage derives the message for a non-2xx response. A JSON object body yields its
// detail or message field (or fallback when neither is usable); anything that is not JSON
// yields the status text, or "HTTP <status>" when that is empty.
func errorMessage(body []byte, statusCode int, statusText, fallback string) string {
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil || payload == nil {
		return statusMessage(statusCode, statusText)
	}

	obj, ok := payload.(map[string]any)
	if !ok {
		return fallback
	}
	if msg := fieldMessage(obj["detail"]); msg != "" {
		return msg
	}
	if msg := fieldMessage(obj["message"]); msg != "" {
		return msg
	}
	return fallback
}

func statusMessage(statusCode int, statusText string) string {
	if s := strings.TrimSpace(statusText); s != "" {
		return s
	}
	return fmt.Sprintf("HTTP %d", statusCode)
}

// fieldMessage renders a detail/message value. Validation errors arrive as a list of
// objects carrying "msg"; those are joined. Falsy values render empty.
func fieldMessage(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
	case float64:
		if val == 0 {
			return ""
		}
	case []any:
		msgs := make([]string, 0, len(val))
		for _, item := range val {
			if m, ok := item.(map[string]any); ok {
				if s, ok := m["msg"].(string); ok && s != "" {
					msgs = append(msgs, s)
					continue
				}
			}
			if s := fieldMessage(item); s != "" {
				msgs = append(msgs, s)
			}
		}
		return strings.Join(msgs, "; ")
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(bytes.TrimSpace(raw))
}

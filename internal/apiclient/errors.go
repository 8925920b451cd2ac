package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNetwork        = errors.New("network error")
	ErrSessionExpired = errors.New("session expired")
	errNoRefreshToken = errors.New("no refresh token")
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

func newAPIError(status int, body []byte) *APIError {
	return &APIError{StatusCode: status, Message: serverMessage(body), Body: body}
}

// serverMessage pulls the human readable message out of a DRF style error
// payload: error, detail, message, non_field_errors, then the first field
// error in key order.
func serverMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, k := range []string{"error", "detail", "message"} {
		if s := firstString(payload[k]); s != "" {
			return s
		}
	}
	if s := firstString(payload["non_field_errors"]); s != "" {
		return s
	}

	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if s := firstString(payload[k]); s != "" {
			return k + ": " + s
		}
	}
	return ""
}

func firstString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		for _, item := range t {
			if s := firstString(item); s != "" {
				return s
			}
		}
	case map[string]any:
		if s := firstString(t["message"]); s != "" {
			return s
		}
	}
	return ""
}

// MessageOf returns the server's message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

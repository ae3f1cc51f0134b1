package upstream

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BackendError carries the best available human-readable message for a
// non-2xx backend response. The message is surfaced to the user verbatim.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// extractError resolves the error message in three tiers: a JSON body with an
// "error" or "message" field, then the raw body text, then a generic
// fallback. Backend error text must reach the user whenever present.
func extractError(status int, body []byte) error {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return &BackendError{Status: status, Message: parsed.Error}
		}
		if parsed.Message != "" {
			return &BackendError{Status: status, Message: parsed.Message}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return &BackendError{Status: status, Message: text}
	}
	return &BackendError{Status: status, Message: fmt.Sprintf("backend request failed with status %d", status)}
}

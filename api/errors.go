package api

import (
	"encoding/json"
	"fmt"
)

// APIError is a response the server did answer with a non-2xx status.
// Transport failures (timeout, refused connection) are not APIErrors;
// they carry no status and never trigger the refresh protocol.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

func decodeAPIError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	// A body that is not JSON still yields a usable status-only error.
	_ = json.Unmarshal(body, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Error
	}
	return &APIError{StatusCode: status, Message: message}
}

package tradervue

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidArgument marks caller-contract violations: malformed filter
// values, empty execution lists, mutually exclusive arguments. These are
// detected before any network call, so callers can separate programming
// errors from service failures with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNoFields is returned by update operations when no fields were set. No
// request is issued.
var ErrNoFields = errors.New("no fields to update")

// APIError reports an unexpected HTTP status from the server. Message holds
// the server-side error text when one could be extracted from the body.
type APIError struct {
	StatusCode int
	URL        string
	Message    string
}

func (e *APIError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("tradervue: HTTP %d (%s): %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("tradervue: HTTP %d: %s", e.StatusCode, e.Message)
}

// badResponse logs the uniform diagnostic for an unexpected status and
// builds the matching *APIError. The body is parsed as JSON on a best-effort
// basis; an "error" field is preferred, then "status", then the raw text.
func (c *Client) badResponse(r *response, msg string, showURL bool) *APIError {
	serverError := string(r.body)
	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(r.body, &parsed); err == nil {
		if s, ok := stringField(parsed, "error"); ok {
			serverError = s
		} else if s, ok := stringField(parsed, "status"); ok {
			serverError = s
		} else {
			c.log.Error("Unexpected JSON received for bad HTTP response (no status or error field found)")
		}
	}

	status := fmt.Sprintf("HTTP Status: %d", r.status)
	if showURL {
		status += fmt.Sprintf(", URL: %s", r.url)
	}

	c.log.Error(msg)
	c.log.Error(status)
	c.log.Errorf("Server error: %s", serverError)

	if r.status == http.StatusForbidden && c.targetUser != "" {
		c.log.Errorf("No permission to issue API calls on behalf of user %s", c.targetUser)
	}

	apiErr := &APIError{StatusCode: r.status, Message: serverError}
	if showURL {
		apiErr.URL = r.url
	}
	return apiErr
}

func stringField(m map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := m[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

package nd

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
)

// RawResponse is the unprocessed outcome of a single controller call,
// as returned by Client.Do. Ownership passes to the caller; the client
// holds no reference to it after returning.
type RawResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Result is the uniform outcome returned to all callers regardless of
// endpoint. Controller error responses are represented as failed
// Results, not as Go errors.
type Result struct {
	// Success is true for any 2xx status.
	Success bool

	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Message is the controller's diagnostic message when present,
	// otherwise a generic description of the status code on failure.
	Message string

	// Data is the decoded response payload, or nil for an empty body.
	Data any
}

// Normalize maps a raw response into a Result.
//
// Any 2xx status is success; everything else is failure. Message is
// populated from the controller's "message" (or "error") field when
// present. An empty body is valid and yields nil Data. A non-empty
// body that fails to parse as JSON is reported as *ResponseFormatError
// whatever the status — a well-formed error response never produces a
// Go error.
func Normalize(raw *RawResponse) (*Result, error) {
	if raw == nil {
		return nil, errors.New("raw response is required")
	}

	res := &Result{
		Success:    raw.StatusCode >= 200 && raw.StatusCode < 300,
		StatusCode: raw.StatusCode,
	}

	body := bytes.TrimSpace(raw.Body)
	if len(body) == 0 {
		if !res.Success {
			res.Message = statusMessage(raw.StatusCode)
		}
		return res, nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &ResponseFormatError{
			StatusCode: raw.StatusCode,
			Err:        errors.Wrap(err, "decode response body"),
		}
	}
	res.Data = payload

	if m, ok := payload.(map[string]any); ok {
		res.Message = diagnosticMessage(m)
	}
	if res.Message == "" && !res.Success {
		res.Message = statusMessage(raw.StatusCode)
	}

	return res, nil
}

// diagnosticMessage extracts the controller's diagnostic field from a
// decoded body. Controllers report it as "message"; some error paths
// use "error" instead.
func diagnosticMessage(body map[string]any) string {
	if m, ok := body["message"].(string); ok && m != "" {
		return m
	}
	if m, ok := body["error"].(string); ok && m != "" {
		return m
	}
	return ""
}

func statusMessage(code int) string {
	if text := http.StatusText(code); text != "" {
		return text
	}
	return "unrecognized status code"
}

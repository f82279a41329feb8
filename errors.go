package nd

import (
	"fmt"
	"strings"
)

// CredentialError reports a failure to resolve controller credentials:
// a required field left empty by every source, or a vault that could
// not be decrypted or parsed.
type CredentialError struct {
	// Missing lists the required fields still empty after all sources
	// were checked. Empty when Err describes the failure instead.
	Missing []string

	// Err is the underlying cause, if any (vault decryption, YAML parse).
	Err error
}

func (e *CredentialError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("credential resolution failed: missing %s", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		return fmt.Sprintf("credential resolution failed: %v", e.Err)
	}
	return "credential resolution failed"
}

func (e *CredentialError) Unwrap() error { return e.Err }

// AuthenticationError reports a rejected login: a non-2xx status from
// the authentication endpoint, a malformed login response, or a
// response with no session token.
type AuthenticationError struct {
	// StatusCode is the HTTP status returned by the controller, or 0
	// when the response never parsed far enough to have one.
	StatusCode int

	// Message carries the controller's diagnostic message when available.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

func (e *AuthenticationError) Error() string {
	msg := "authentication failed"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Message != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Message)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError reports an unrecoverable send: retries exhausted on a
// transient failure, or a non-retryable network fault.
type TransportError struct {
	// Attempts is how many times the request was dispatched.
	Attempts int

	// LastStatus is the HTTP status of the final attempt, or 0 when the
	// final attempt never produced a response.
	LastStatus int

	// Err is the last underlying error.
	Err error
}

func (e *TransportError) Error() string {
	if e.LastStatus != 0 {
		return fmt.Sprintf("request failed after %d attempts: last status %d", e.Attempts, e.LastStatus)
	}
	return fmt.Sprintf("request failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseFormatError reports a response body that could not be parsed.
// Well-formed controller error responses are never reported this way;
// they normalize into a failed Result instead.
type ResponseFormatError struct {
	// StatusCode is the HTTP status of the response that failed to parse.
	StatusCode int

	// Err is the underlying parse error.
	Err error
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("unparseable response body (status %d): %v", e.StatusCode, e.Err)
}

func (e *ResponseFormatError) Unwrap() error { return e.Err }

package nd

import "net/http"

// HTTP verbs accepted by the controller API.
const (
	VerbGet    = http.MethodGet
	VerbPost   = http.MethodPost
	VerbPut    = http.MethodPut
	VerbDelete = http.MethodDelete
	VerbPatch  = http.MethodPatch
)

// Request describes a single controller API call. It is created by a
// caller per operation, consumed once by Client.Do, and never mutated
// by the sender. Body must already be validated by the caller; the
// sender marshals it to JSON as-is.
type Request struct {
	// Verb is one of the Verb* constants.
	Verb string

	// Path is the endpoint path, e.g. "/api/v1/manage/credentials/details".
	// Query parameters, if any, are part of the path (see QueryFilter).
	Path string

	// Body is the structured request payload, or nil for no payload.
	Body any
}

package nd

import "time"

// Session is the server-issued proof of authentication returned by
// Client.Login and attached to every subsequent request.
//
// A Session is read-only after creation and safe to share across
// goroutines issuing independent requests. It is valid for one
// authenticated run; re-authenticate with Login to obtain a new one,
// and never reuse a Session across processes.
type Session struct {
	// Token is the session token issued by the controller.
	Token string

	// Domain is the login domain the session was established under.
	Domain string

	// IssuedAt records when the login completed. The controller does
	// not report an expiry; callers that need one must track it.
	IssuedAt time.Time
}

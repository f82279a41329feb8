// Package nd is a Go client library for Nexus-Dashboard-style network
// controllers. It provides credential resolution, session
// authentication, a retry-capable request sender, and response
// normalization, plus typed operation wrappers for controller
// resources under api/.
//
// # Basic Usage
//
//	creds, err := credentials.Resolve(credentials.Explicit{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := nd.NewWithConfig(creds.ClientConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	session, err := client.Login(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := client.Do(ctx, session, nd.Request{
//	    Verb: nd.VerbGet,
//	    Path: "/api/v1/manage/credentials/details",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := nd.Normalize(raw)
//
// # Sessions
//
// Login must be called exactly once before any request. The returned
// Session is immutable; concurrent workers may share it as long as each
// request is an independent Do call. A Session is valid for one
// authenticated run and must never be reused across processes.
//
// # Retry Behaviour
//
// Do retries network errors, 5xx statuses, and 429 (honoring
// Retry-After) up to MaxRetries times, waiting SendInterval between
// attempts. 4xx statuses other than 429 are never retried; they return
// immediately so the caller can normalize them. Exhausting retries
// fails with *TransportError. Context cancellation and DNS resolution
// failures are never retried.
//
// # Errors
//
// The library reports failures through four typed errors:
// *CredentialError (resolution), *AuthenticationError (login rejected),
// *TransportError (retries exhausted or unrecoverable network fault),
// and *ResponseFormatError (unparseable payload). The library never
// writes to the console and never terminates the process.
package nd

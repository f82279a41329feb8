package middleware

import (
	"crypto/tls"
	"net/http"
)

// TLSConfig returns a middleware that applies config to the underlying
// transport. It clones the transport rather than mutating shared state.
func TLSConfig(config *tls.Config) func(http.RoundTripper) http.RoundTripper {
	return func(next http.RoundTripper) http.RoundTripper {
		transport, ok := next.(*http.Transport)
		if ok {
			transport = transport.Clone()
		} else {
			defaultTransport, ok := http.DefaultTransport.(*http.Transport)
			if !ok {
				return next
			}
			transport = defaultTransport.Clone()
			transport.ForceAttemptHTTP2 = true
		}

		transport.TLSClientConfig = config
		return transport
	}
}

// InsecureSkipVerify returns a TLS config that skips certificate
// verification. Controllers typically ship with self-signed
// certificates, so this is a common lab setting. Never use it against
// a production controller with a real certificate chain.
func InsecureSkipVerify() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true, //nolint:gosec // Opt-in for self-signed controller certificates
	}
}

// Package retry classifies failures as transient or permanent for the
// request sender.
package retry

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
)

// ShouldRetry returns true if the HTTP status code indicates a
// transient error worth another attempt:
//   - 429 (Too Many Requests) - rate limit exceeded
//   - 5xx (Server Errors) - temporary server-side issues
//
// 4xx statuses other than 429 are the caller's problem and are never
// retried.
func ShouldRetry(statusCode int) bool {
	return statusCode >= 500 || statusCode == 429
}

// IsTransientErr returns true if a request error is worth another
// attempt. Connection failures and per-attempt timeouts are transient;
// context cancellation and DNS resolution failures are not.
//
// A per-attempt client timeout surfaces as a deadline-exceeded error,
// which is retryable here; the sender checks its own context separately
// to distinguish a caller-imposed deadline from an attempt timeout.
func IsTransientErr(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return false
	}

	return true
}

// ParseRetryAfter parses the Retry-After HTTP header and returns the
// duration to wait. The header can contain either:
//   - Number of seconds (e.g., "120")
//   - HTTP-date (not currently supported, returns 0)
//
// Returns 0 if the header is empty or cannot be parsed.
func ParseRetryAfter(retryAfterHeader string) time.Duration {
	if retryAfterHeader == "" {
		return 0
	}

	seconds, err := strconv.Atoi(retryAfterHeader)
	if err == nil {
		return time.Duration(seconds) * time.Second
	}

	return 0
}

// Package ratelimit provides the token-bucket limiter used by the
// request sender.
package ratelimit

import "golang.org/x/time/rate"

// NewRateLimiter creates a rate limiter allowing requestsPerMinute
// requests per minute. Tokens replenish continuously at
// requestsPerMinute/60 per second with a burst capacity of
// requestsPerMinute.
func NewRateLimiter(requestsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
}

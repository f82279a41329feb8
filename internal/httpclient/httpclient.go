// Package httpclient assembles the http.Client used to talk to the
// controller, layering round-tripper middleware over a base transport.
package httpclient

import (
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// Middleware wraps an http.RoundTripper to add behavior around each
// attempt. The first middleware in a chain is the outermost layer.
type Middleware func(http.RoundTripper) http.RoundTripper

// Client owns a middleware-chained http.Client.
type Client struct {
	base       *http.Client
	middleware []Middleware
}

// Option configures New.
type Option func(*Client)

// WithTimeout sets the per-request timeout. The zero value keeps the
// default of 30s.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.base.Timeout = timeout
		}
	}
}

// WithTransport sets the base transport the middleware chain wraps.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.base.Transport = transport
	}
}

// WithMiddleware appends middleware to the chain. WithMiddleware(A, B)
// produces A(B(transport)): requests pass through A, then B, then the
// transport, and responses come back in reverse.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Client) {
		c.middleware = append(c.middleware, middleware...)
	}
}

// New builds the client and composes the middleware chain over the base
// transport.
func New(opts ...Option) *Client {
	c := &Client{
		base: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := c.base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	// Wrap back to front so the first middleware ends up outermost.
	for i := len(c.middleware) - 1; i >= 0; i-- {
		transport = c.middleware[i](transport)
	}
	c.base.Transport = transport

	return c
}

// HTTPClient returns the assembled http.Client.
func (c *Client) HTTPClient() *http.Client {
	return c.base
}

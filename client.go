package nd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/ndfabric/go-nd/internal/httpclient"
	"github.com/ndfabric/go-nd/internal/middleware"
	"github.com/ndfabric/go-nd/internal/ratelimit"
	"github.com/ndfabric/go-nd/internal/retry"
	"github.com/ndfabric/go-nd/observability"
)

const (
	// DefaultRateLimit is the default rate limit (requests per minute).
	DefaultRateLimit = 1000

	// DefaultMaxRetries is the default number of retries for transient failures.
	DefaultMaxRetries = 3
	// DefaultSendInterval is the default wait between retry attempts.
	DefaultSendInterval = 1 * time.Second
	// DefaultTimeout is the default per-attempt HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultDomain is the login domain used when none is configured.
	DefaultDomain = "local"

	loginPath = "/login"
)

// Client sends authenticated REST requests to the controller. It holds
// no mutable state across calls; a single Client may serve concurrent
// independent requests sharing one immutable Session.
type Client struct {
	baseURL  string
	username string
	password string
	domain   string

	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	maxRetries   int
	sendInterval time.Duration
	logger       observability.Logger
	metrics      observability.MetricsRecorder
}

// ClientConfig holds configuration for the controller client. All
// fields are fixed once the Client is constructed.
type ClientConfig struct {
	// ControllerURL is the base URL of the controller,
	// e.g. "https://10.1.1.1". A bare address is accepted and
	// treated as https.
	ControllerURL string

	// Username and Password are the resolved controller credentials.
	Username string
	Password string

	// Domain is the login domain (defaults to "local").
	Domain string

	// HTTPClient is the HTTP client to use (optional). When provided
	// it is used as-is, including its transport and timeout.
	HTTPClient *http.Client

	// InsecureSkipVerify disables TLS certificate verification, for
	// controllers with self-signed certificates.
	InsecureSkipVerify bool

	// RateLimitPerMinute sets the rate limit (defaults to 1000).
	RateLimitPerMinute int

	// MaxRetries sets how many times a transient failure is retried
	// after the first attempt (defaults to 3, so at most 4 attempts).
	MaxRetries int

	// SendInterval sets the wait between retry attempts.
	SendInterval time.Duration

	// Timeout sets the per-attempt HTTP timeout.
	Timeout time.Duration

	// Logger receives structured client logs (optional).
	Logger observability.Logger

	// Metrics receives client metrics (optional).
	Metrics observability.MetricsRecorder
}

// New creates a controller client with default settings. TLS
// verification is disabled because controllers commonly run with
// self-signed certificates; use NewWithConfig to keep it on.
func New(controllerURL, username, password string) (*Client, error) {
	return NewWithConfig(&ClientConfig{
		ControllerURL:      controllerURL,
		Username:           username,
		Password:           password,
		InsecureSkipVerify: true,
	})
}

// NewWithConfig creates a controller client with custom configuration.
// It returns a fully initialized client or an error; no partially
// initialized client is ever observable.
func NewWithConfig(cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if cfg.ControllerURL == "" {
		return nil, errors.New("controller URL is required")
	}
	if cfg.Username == "" {
		return nil, errors.New("username is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("password is required")
	}

	// Set defaults
	if cfg.Domain == "" {
		cfg.Domain = DefaultDomain
	}
	if cfg.RateLimitPerMinute == 0 {
		cfg.RateLimitPerMinute = DefaultRateLimit
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.SendInterval == 0 {
		cfg.SendInterval = DefaultSendInterval
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	logger := cfg.Logger
	if logger == nil {
		logger = observability.NoopLogger()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	// Create HTTP client if not provided
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		chain := []httpclient.Middleware{middleware.Observability(logger, metrics)}
		if cfg.InsecureSkipVerify {
			chain = append(chain, middleware.TLSConfig(middleware.InsecureSkipVerify()))
		}
		httpClient = httpclient.New(
			httpclient.WithTimeout(cfg.Timeout),
			httpclient.WithMiddleware(chain...),
		).HTTPClient()
	}

	baseURL := cfg.ControllerURL
	if !strings.Contains(baseURL, "://") {
		baseURL = "https://" + baseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Client{
		baseURL:      baseURL,
		username:     cfg.Username,
		password:     cfg.Password,
		domain:       cfg.Domain,
		httpClient:   httpClient,
		rateLimiter:  ratelimit.NewRateLimiter(cfg.RateLimitPerMinute),
		maxRetries:   cfg.MaxRetries,
		sendInterval: cfg.SendInterval,
		logger:       logger,
		metrics:      metrics,
	}, nil
}

// loginResponse is the subset of the login payload the client cares
// about. Newer controllers return the token as "jwttoken"; older ones
// as "token".
type loginResponse struct {
	JWTToken string `json:"jwttoken"`
	Token    string `json:"token"`
}

// Login exchanges the configured credentials for a Session. It must
// succeed before Do is called. A non-2xx status, a malformed login
// body, or a missing token field fails with *AuthenticationError;
// transport-level failures propagate unchanged.
func (c *Client) Login(ctx context.Context) (*Session, error) {
	body := map[string]string{
		"userName":   c.username,
		"userPasswd": c.password,
		"domain":     c.domain,
	}

	raw, err := c.send(ctx, nil, Request{Verb: VerbPost, Path: loginPath, Body: body})
	if err != nil {
		return nil, err
	}

	if raw.StatusCode < 200 || raw.StatusCode >= 300 {
		authErr := &AuthenticationError{StatusCode: raw.StatusCode}
		var diag map[string]any
		if json.Unmarshal(raw.Body, &diag) == nil {
			authErr.Message = diagnosticMessage(diag)
		}
		if authErr.Message == "" {
			authErr.Message = statusMessage(raw.StatusCode)
		}
		return nil, authErr
	}

	var login loginResponse
	if err := json.Unmarshal(raw.Body, &login); err != nil {
		return nil, &AuthenticationError{
			StatusCode: raw.StatusCode,
			Err:        errors.Wrap(err, "decode login response"),
		}
	}

	token := login.JWTToken
	if token == "" {
		token = login.Token
	}
	if token == "" {
		return nil, &AuthenticationError{
			StatusCode: raw.StatusCode,
			Message:    "login response contains no session token",
		}
	}

	c.logger.Info("session established",
		observability.Field{Key: "controller", Value: c.baseURL},
		observability.Field{Key: "domain", Value: c.domain},
	)

	return &Session{
		Token:    token,
		Domain:   c.domain,
		IssuedAt: time.Now(),
	}, nil
}

// Do dispatches one pre-validated request with the given session
// attached, retrying transient failures (network errors, 5xx, 429) up
// to MaxRetries times with SendInterval between attempts. 4xx statuses
// are returned immediately for the caller to normalize. Exhausting
// retries fails with *TransportError.
func (c *Client) Do(ctx context.Context, session *Session, req Request) (*RawResponse, error) {
	if session == nil {
		return nil, errors.New("session is required; call Login first")
	}
	return c.send(ctx, session, req)
}

// send is the retry loop shared by Do and Login. A nil session sends
// the request unauthenticated.
func (c *Client) send(ctx context.Context, session *Session, r Request) (*RawResponse, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter wait failed")
	}

	var payload []byte
	if r.Body != nil {
		var err error
		payload, err = json.Marshal(r.Body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
	}

	url := c.baseURL + r.Path

	var lastErr error
	lastStatus := 0
	wait := c.sendInterval
	attempts := 0

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("retrying request",
				observability.Field{Key: "attempt", Value: attempt + 1},
				observability.Field{Key: "max_retries", Value: c.maxRetries},
				observability.Field{Key: "method", Value: r.Verb},
				observability.Field{Key: "path", Value: r.Path},
			)
			c.metrics.RecordRetry(attempt, r.Path)

			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), "context cancelled during retry wait")
			}
			wait = c.sendInterval
		}
		attempts++

		req, err := c.newHTTPRequest(ctx, session, r.Verb, url, payload)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			// The caller's context ending always aborts, even when the
			// underlying error would otherwise be retryable.
			if ctx.Err() != nil {
				return nil, errors.Wrap(ctx.Err(), "request aborted")
			}
			if !retry.IsTransientErr(err) {
				return nil, &TransportError{Attempts: attempts, Err: err}
			}
			lastErr = err
			lastStatus = 0
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = errors.Wrap(readErr, "read response body")
			lastStatus = 0
			continue
		}

		if !retry.ShouldRetry(resp.StatusCode) {
			return &RawResponse{
				StatusCode: resp.StatusCode,
				Header:     resp.Header,
				Body:       body,
			}, nil
		}

		lastErr = errors.Newf("controller returned status %d", resp.StatusCode)
		lastStatus = resp.StatusCode
		if resp.StatusCode == http.StatusTooManyRequests {
			if after := retry.ParseRetryAfter(resp.Header.Get("Retry-After")); after > 0 {
				wait = after
			}
		}
	}

	return nil, &TransportError{
		Attempts:   attempts,
		LastStatus: lastStatus,
		Err:        lastErr,
	}
}

// newHTTPRequest builds one attempt's HTTP request with headers and
// session credentials attached.
func (c *Client) newHTTPRequest(ctx context.Context, session *Session, verb, url string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, verb, url, body)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
		req.AddCookie(&http.Cookie{Name: "AuthCookie", Value: session.Token})
	}
	return req, nil
}

// Package middleware provides reusable HTTP middleware components for
// the controller client's transport chain.
package middleware

import (
	"net/http"
	"regexp"
	"sync"
	"time"

	"github.com/ndfabric/go-nd/observability"
)

// Observability returns a middleware that logs and records metrics for HTTP requests.
func Observability(logger observability.Logger, metrics observability.MetricsRecorder) func(http.RoundTripper) http.RoundTripper {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if metrics == nil {
		metrics = observability.NoopMetricsRecorder()
	}

	return func(next http.RoundTripper) http.RoundTripper {
		return &observabilityTransport{
			next:    next,
			logger:  logger,
			metrics: metrics,
		}
	}
}

type observabilityTransport struct {
	next    http.RoundTripper
	logger  observability.Logger
	metrics observability.MetricsRecorder
}

func (t *observabilityTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	urlStr := req.URL.String()

	t.logger.Debug("http request started",
		observability.Field{Key: "method", Value: req.Method},
		observability.Field{Key: "url", Value: urlStr},
		observability.Field{Key: "path", Value: req.URL.Path},
	)

	resp, err := t.next.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		t.logger.Error("http request failed",
			observability.Field{Key: "method", Value: req.Method},
			observability.Field{Key: "url", Value: urlStr},
			observability.Field{Key: "duration", Value: duration},
			observability.Field{Key: "error", Value: err.Error()},
		)

		t.metrics.RecordError("http_request", "NetworkError")

		//nolint:wrapcheck // Observability middleware logs the error but passes it through unchanged
		return nil, err
	}

	fields := []observability.Field{
		{Key: "method", Value: req.Method},
		{Key: "url", Value: urlStr},
		{Key: "status", Value: resp.StatusCode},
		{Key: "duration", Value: duration},
	}

	if resp.StatusCode >= http.StatusBadRequest {
		t.logger.Warn("http request completed with error", fields...)
	} else {
		t.logger.Debug("http request completed", fields...)
	}

	// Record metrics with normalized path to avoid unbounded cardinality
	t.metrics.RecordHTTPRequest(req.Method, NormalizePath(req.URL.Path), resp.StatusCode, duration)

	return resp, nil
}

var (
	// idPattern matches UUIDs, device serial numbers (e.g. FDO21521S70),
	// and long numeric IDs in a single pass. Order matters: UUID first
	// (most specific), then serial, then numeric.
	idPattern = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}|/[A-Z]{3}\d{4}[A-Z0-9]{4,}(?:/|$)|/\d{5,}(?:/|$)`)
	// fabricNamePattern matches fabric names in paths: /fabrics/{name} -> /fabrics/:fabric.
	fabricNamePattern = regexp.MustCompile(`/fabrics/[^/]+(/|$)`)

	// normalizedPathCache caches normalized paths to avoid repeated
	// regex work. Clients hit a small set of endpoints, so the cache
	// stays bounded and most lookups are hits.
	normalizedPathCache sync.Map
)

// NormalizePath replaces dynamic path segments (UUIDs, serial numbers,
// numeric IDs, fabric names) with placeholders so metric label
// cardinality stays bounded.
//
// Examples:
//   - /api/v1/manage/fabrics/MyFabric -> /api/v1/manage/fabrics/:fabric
//   - /api/v1/manage/switches/FDO21521S70 -> /api/v1/manage/switches/:id
func NormalizePath(path string) string {
	if cached, ok := normalizedPathCache.Load(path); ok {
		//nolint:forcetypeassert // Cache only stores strings
		return cached.(string)
	}

	normalized := idPattern.ReplaceAllStringFunc(path, func(match string) string {
		// Serial and numeric IDs include the leading slash and may keep
		// a trailing one.
		if match[0] == '/' {
			if match[len(match)-1] == '/' {
				return "/:id/"
			}
			return "/:id"
		}
		return ":id"
	})

	normalized = fabricNamePattern.ReplaceAllString(normalized, "/fabrics/:fabric$1")

	normalizedPathCache.Store(path, normalized)

	return normalized
}

package observability

import "time"

// MetricsRecorder receives the client's request, retry, and error
// metrics. Any metrics backend (Prometheus, StatsD, ...) can sit
// behind it; NoopMetricsRecorder discards everything.
type MetricsRecorder interface {
	// RecordHTTPRequest records one completed attempt against the
	// controller.
	RecordHTTPRequest(method, path string, statusCode int, duration time.Duration)

	// RecordRetry records one retry of a transient failure.
	RecordRetry(attempt int, endpoint string)

	// RecordRateLimit records time spent waiting on the rate limiter.
	RecordRateLimit(endpoint string, wait time.Duration)

	// RecordError records an error by operation and kind.
	RecordError(operation, errorType string)
}

type noopMetricsRecorder struct{}

// NoopMetricsRecorder returns a recorder that discards all metrics. It
// is the default when no recorder is configured.
func NoopMetricsRecorder() MetricsRecorder {
	return &noopMetricsRecorder{}
}

func (m *noopMetricsRecorder) RecordHTTPRequest(string, string, int, time.Duration) {}
func (m *noopMetricsRecorder) RecordRetry(int, string)                              {}
func (m *noopMetricsRecorder) RecordRateLimit(string, time.Duration)                {}
func (m *noopMetricsRecorder) RecordError(string, string)                           {}

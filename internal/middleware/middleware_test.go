package middleware_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndfabric/go-nd/internal/middleware"
	"github.com/ndfabric/go-nd/observability"
)

// recordingLogger captures log calls for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
}

func (l *recordingLogger) Debug(msg string, _ ...observability.Field) { l.record(msg) }
func (l *recordingLogger) Info(msg string, _ ...observability.Field)  { l.record(msg) }
func (l *recordingLogger) Warn(msg string, _ ...observability.Field)  { l.record(msg) }
func (l *recordingLogger) Error(msg string, _ ...observability.Field) { l.record(msg) }

func (l *recordingLogger) With(_ ...observability.Field) observability.Logger { return l }

func (l *recordingLogger) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.messages...)
}

// recordingMetrics captures metric calls for assertions.
type recordingMetrics struct {
	mu       sync.Mutex
	requests []string
	errors   []string
}

func (m *recordingMetrics) RecordHTTPRequest(method, path string, _ int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, method+" "+path)
}

func (m *recordingMetrics) RecordRetry(int, string)               {}
func (m *recordingMetrics) RecordRateLimit(string, time.Duration) {}

func (m *recordingMetrics) RecordError(operation, errorType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, operation+"/"+errorType)
}

func TestObservabilityRecordsRequest(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	logger := &recordingLogger{}
	metrics := &recordingMetrics{}
	transport := middleware.Observability(logger, metrics)(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, server.URL+"/api/v1/manage/credentials/details", nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Contains(t, logger.all(), "http request started")
	assert.Contains(t, logger.all(), "http request completed")
	assert.Contains(t, metrics.requests, "GET /api/v1/manage/credentials/details")
}

func TestObservabilityRecordsNetworkError(t *testing.T) {
	t.Parallel()

	logger := &recordingLogger{}
	metrics := &recordingMetrics{}
	transport := middleware.Observability(logger, metrics)(http.DefaultTransport)

	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)

	_, err = transport.RoundTrip(req) //nolint:bodyclose // No response on error
	require.Error(t, err)

	assert.Contains(t, logger.all(), "http request failed")
	assert.Contains(t, metrics.errors, "http_request/NetworkError")
}

func TestTLSConfigAppliesInsecureSkipVerify(t *testing.T) {
	t.Parallel()

	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := middleware.TLSConfig(middleware.InsecureSkipVerify())(http.DefaultTransport)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestTLSConfigDoesNotMutateOriginalTransport(t *testing.T) {
	t.Parallel()

	original := &http.Transport{}
	wrapped := middleware.TLSConfig(&tls.Config{MinVersion: tls.VersionTLS13})(original)

	require.NotSame(t, http.RoundTripper(original), wrapped)
	assert.Nil(t, original.TLSClientConfig)
}

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "static path untouched",
			path: "/api/v1/manage/credentials/details",
			want: "/api/v1/manage/credentials/details",
		},
		{
			name: "fabric name",
			path: "/api/v1/manage/fabrics/MyFabric",
			want: "/api/v1/manage/fabrics/:fabric",
		},
		{
			name: "switch serial number",
			path: "/api/v1/manage/switches/FDO21521S70",
			want: "/api/v1/manage/switches/:id",
		},
		{
			name: "uuid",
			path: "/api/v1/manage/things/1b4e28ba-2fa1-11d2-883f-0016d3cca427",
			want: "/api/v1/manage/things/:id",
		},
		{
			name: "numeric id",
			path: "/api/v1/manage/things/123456",
			want: "/api/v1/manage/things/:id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, middleware.NormalizePath(tt.path))
		})
	}
}

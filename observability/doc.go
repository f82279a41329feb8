// Package observability provides interfaces for logging and metrics
// collection in the go-nd library.
//
// This package defines standard interfaces that allow users to
// integrate their own logging and metrics implementations with the
// controller client.
//
// # Logger Interface
//
// The Logger interface supports structured logging with key-value pairs:
//
//	logger := observability.NewSlogLogger(slog.Default())
//	client, err := nd.NewWithConfig(&nd.ClientConfig{
//		ControllerURL: url,
//		Username:      user,
//		Password:      pass,
//		Logger:        logger,
//	})
//
// Supported log levels:
//   - Debug: Detailed diagnostic information
//   - Info: General informational messages
//   - Warn: Warning messages for potentially problematic situations
//   - Error: Error messages for failures
//
// NewLoggerFromEnv builds a logger from the configuration file named by
// the ND_LOGGING_CONFIG environment variable, matching how the client's
// example scripts enable logging.
//
// # MetricsRecorder Interface
//
// The MetricsRecorder interface tracks client metrics:
//   - HTTP request count, status codes, and duration
//   - Retry attempts for failed requests
//   - Rate limiting events and wait times
//   - Error occurrences by type
//
// # Default Behavior
//
// If no logger or metrics recorder is provided, the client uses no-op
// implementations that discard all events. This ensures zero overhead
// when observability is not needed.
package observability

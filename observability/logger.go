package observability

// Field is one structured logging key-value pair.
type Field struct {
	Key   string
	Value any
}

// Logger receives the client's structured log events. Any logging
// backend can sit behind it; NewSlogLogger adapts the standard
// library's slog, and NoopLogger discards everything.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that includes the given fields on every
	// subsequent log call.
	With(fields ...Field) Logger
}

type noopLogger struct{}

// NoopLogger returns a logger that discards all messages. It is the
// default when no logger is configured.
//
//nolint:ireturn // Factory function returns the interface by design
func NoopLogger() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(string, ...Field) {}
func (l *noopLogger) Info(string, ...Field)  {}
func (l *noopLogger) Warn(string, ...Field)  {}
func (l *noopLogger) Error(string, ...Field) {}

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (l *noopLogger) With(...Field) Logger { return l }

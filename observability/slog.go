package observability

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// EnvLoggingConfig names the environment variable holding the path to
// an optional logging configuration file.
const EnvLoggingConfig = "ND_LOGGING_CONFIG"

// LogConfig configures the slog-backed logger. It is the schema of the
// file named by ND_LOGGING_CONFIG.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `yaml:"level"`

	// Format is json or text. Defaults to json.
	Format string `yaml:"format"`

	// Output is stdout or stderr. Defaults to stderr, keeping stdout
	// free for callers' own output.
	Output string `yaml:"output"`
}

type slogLogger struct {
	l *slog.Logger
}

// NewSlogLogger adapts a slog.Logger to the Logger interface.
//
//nolint:ireturn // Factory function returns the interface by design
func NewSlogLogger(l *slog.Logger) Logger {
	return &slogLogger{l: l}
}

// NewLogger builds a slog-backed Logger from cfg.
//
//nolint:ireturn // Factory function returns the interface by design
func NewLogger(cfg LogConfig) Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		output = os.Stdout
	default:
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "text":
		handler = slog.NewTextHandler(output, opts)
	default:
		handler = slog.NewJSONHandler(output, opts)
	}

	return NewSlogLogger(slog.New(handler))
}

// NewLoggerFromEnv builds a Logger from the configuration file named by
// ND_LOGGING_CONFIG. When the variable is unset, logging is disabled
// (NoopLogger). A set-but-unreadable or unparseable configuration is an
// error, not a silent fallback.
//
//nolint:ireturn // Factory function returns the interface by design
func NewLoggerFromEnv() (Logger, error) {
	path := os.Getenv(EnvLoggingConfig)
	if path == "" {
		return NoopLogger(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read logging config %s", path)
	}

	var cfg LogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "parse logging config %s", path)
	}

	return NewLogger(cfg), nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (s *slogLogger) Debug(msg string, fields ...Field) { s.l.Debug(msg, attrs(fields)...) }
func (s *slogLogger) Info(msg string, fields ...Field)  { s.l.Info(msg, attrs(fields)...) }
func (s *slogLogger) Warn(msg string, fields ...Field)  { s.l.Warn(msg, attrs(fields)...) }
func (s *slogLogger) Error(msg string, fields ...Field) { s.l.Error(msg, attrs(fields)...) }

//nolint:ireturn // Method must return interface to satisfy Logger interface
func (s *slogLogger) With(fields ...Field) Logger {
	return &slogLogger{l: s.l.With(attrs(fields)...)}
}

func attrs(fields []Field) []any {
	out := make([]any, 0, len(fields)*2)
	for _, f := range fields {
		out = append(out, f.Key, f.Value)
	}
	return out
}

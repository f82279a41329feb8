package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndfabric/go-nd/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
controller:
  host: 10.1.1.1
  domain: corp
  insecure: true
send:
  timeout: 10s
  send_interval: 2s
  max_retries: 5
  rate_limit_per_minute: 500
logging:
  level: debug
  format: text
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10.1.1.1", cfg.Controller.Host)
	assert.Equal(t, "corp", cfg.Controller.Domain)
	assert.True(t, cfg.Controller.Insecure)
	assert.Equal(t, 10*time.Second, cfg.Send.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Send.SendInterval)
	assert.Equal(t, 5, cfg.Send.MaxRetries)
	assert.Equal(t, 500, cfg.Send.RateLimitPerMinute)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Default retained where the file is silent.
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestLoadMinimal(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "controller:\n  host: nd.example.com\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "nd.example.com", cfg.Controller.Host)
	assert.Zero(t, cfg.Send.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingHost(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "controller:\n  domain: corp\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "controller:\n  host: 10.1.1.1\nlogging:\n  level: loud\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadUnparseable(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "controller: [broken\n")

	_, err := config.Load(path)
	require.Error(t, err)
}

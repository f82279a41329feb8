// Package config loads YAML settings for scripts built on the go-nd
// library. Credentials do not live here; resolve those with the
// credentials package.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Settings is the root configuration structure.
type Settings struct {
	Controller ControllerSettings `yaml:"controller" validate:"required"`
	Send       SendSettings       `yaml:"send"`
	Logging    LoggingSettings    `yaml:"logging"`
}

// ControllerSettings describes the target controller. Username and
// password are deliberately absent; they come from the credential
// resolution chain.
type ControllerSettings struct {
	// Host is the controller address, with or without a scheme.
	Host string `yaml:"host" validate:"required"`

	// Domain is the optional login domain.
	Domain string `yaml:"domain"`

	// Insecure disables TLS certificate verification.
	Insecure bool `yaml:"insecure"`
}

// SendSettings configures the request sender. Zero values fall back to
// the client defaults.
type SendSettings struct {
	// Timeout is the per-attempt HTTP timeout.
	Timeout time.Duration `yaml:"timeout"`

	// SendInterval is the wait between retry attempts.
	SendInterval time.Duration `yaml:"send_interval"`

	// MaxRetries is how many times a transient failure is retried.
	MaxRetries int `yaml:"max_retries" validate:"gte=0"`

	// RateLimitPerMinute caps outgoing requests.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" validate:"gte=0"`
}

// LoggingSettings configures script logging.
type LoggingSettings struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
	Output string `yaml:"output" validate:"omitempty,oneof=stdout stderr"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads, parses, and validates the YAML settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	cfg := defaultSettings()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config file %s", path)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(err, "validate config file %s", path)
	}

	return cfg, nil
}

// defaultSettings returns Settings with the library defaults; file
// values override them field by field.
func defaultSettings() *Settings {
	return &Settings{
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
			Output: "stderr",
		},
	}
}

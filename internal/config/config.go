package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/sundayezeilo/shortlink/sluggen"
)

// Config holds all application configuration.
type Config struct {
	App           AppConfig
	Shortener     ShortenerConfig
	Observability ObservabilityConfig
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" required:"true"`   // development, staging, production, test
	LogLevel    string `envconfig:"LOG_LEVEL" required:"true"` // debug, info, warn, error
}

// Validate validates the app configuration.
func (c *AppConfig) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Environment] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Environment)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}
	return nil
}

// Slug alphabet names accepted by SLUG_ALPHABET.
const (
	AlphabetFull     = "full"
	AlphabetReadable = "readable"
)

// ShortenerConfig holds slug generation settings.
type ShortenerConfig struct {
	SlugLength   int    `envconfig:"SLUG_LENGTH" default:"6"`
	SlugAlphabet string `envconfig:"SLUG_ALPHABET" default:"full"` // full, readable
}

// Alphabet returns the symbol set named by SlugAlphabet.
func (c *ShortenerConfig) Alphabet() string {
	if c.SlugAlphabet == AlphabetReadable {
		return sluggen.Readable
	}
	return sluggen.Alphanumeric
}

// Validate validates the shortener configuration. Slugs draw characters
// without repetition, so the length cannot exceed the alphabet size.
func (c *ShortenerConfig) Validate() error {
	if c.SlugAlphabet != AlphabetFull && c.SlugAlphabet != AlphabetReadable {
		return fmt.Errorf("invalid slug alphabet: %s (must be one of: full, readable)", c.SlugAlphabet)
	}
	if c.SlugLength <= 0 {
		return fmt.Errorf("slug length must be positive")
	}
	if size := len(c.Alphabet()); c.SlugLength > size {
		return fmt.Errorf("slug length (%d) cannot exceed alphabet size (%d)", c.SlugLength, size)
	}
	return nil
}

// ObservabilityConfig holds configuration for tracing.
type ObservabilityConfig struct {
	Enabled           bool    `envconfig:"OTEL_ENABLED" required:"true"`
	ServiceName       string  `envconfig:"OTEL_SERVICE_NAME"`
	ServiceVersion    string  `envconfig:"OTEL_SERVICE_VERSION"`
	OTelEndpoint      string  `envconfig:"OTEL_ENDPOINT"`
	OTelInsecure      bool    `envconfig:"OTEL_INSECURE"`
	TracingSampleRate float64 `envconfig:"OTEL_TRACING_SAMPLE_RATE"`
}

// Validate validates the observability configuration.
func (c *ObservabilityConfig) Validate() error {
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		return fmt.Errorf("tracing sample rate must be between 0 and 1, got %f", c.TracingSampleRate)
	}

	// Only require these when observability is enabled.
	if c.Enabled {
		if c.ServiceName == "" {
			return fmt.Errorf("service name is required when observability is enabled")
		}
		if c.OTelEndpoint == "" {
			return fmt.Errorf("OTEL endpoint is required when observability is enabled")
		}
		if c.ServiceVersion == "" {
			return fmt.Errorf("service version is required when observability is enabled")
		}
	}

	return nil
}

// Load loads configuration from environment variables only.
// (.env loading for development happens in internal/app, not here.)
func Load() (*Config, error) {
	cfg := &Config{}

	if err := envconfig.Process("", &cfg.App); err != nil {
		return nil, fmt.Errorf("failed to load App config: %w", err)
	}
	if err := cfg.App.Validate(); err != nil {
		return nil, fmt.Errorf("invalid App config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Shortener); err != nil {
		return nil, fmt.Errorf("failed to load Shortener config: %w", err)
	}
	if err := cfg.Shortener.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Shortener config: %w", err)
	}

	if err := envconfig.Process("", &cfg.Observability); err != nil {
		return nil, fmt.Errorf("failed to load Observability config: %w", err)
	}
	if err := cfg.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Observability config: %w", err)
	}

	return cfg, nil
}

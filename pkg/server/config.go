package server

import (
	"net"
	"time"

	"github.com/rivulet-dev/rivulet/internal/errors"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Address is the listen address (e.g., ":8080").
	// Default: ":8080".
	Address string

	// ReadHeaderTimeout is the maximum time to read request headers.
	// Default: 10 seconds.
	ReadHeaderTimeout time.Duration

	// ReadTimeout is the maximum time to read the full request.
	// Default: 30 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to write the response.
	// Streaming pages hold the response open, so this defaults high.
	// Default: 2 minutes.
	WriteTimeout time.Duration

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 2 minutes.
	IdleTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// Pretty enables pretty-printed HTML output.
	// Default: false.
	Pretty bool

	// Indent is the indentation string in pretty mode.
	Indent string

	// EnableMetrics mounts a Prometheus /metrics endpoint.
	// Default: false.
	EnableMetrics bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       2 * time.Minute,
		ShutdownTimeout:   10 * time.Second,
	}
}

// fillDefaults fills in defaults for any unset fields.
func (c *Config) fillDefaults() {
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = defaults.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = defaults.WriteTimeout
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = defaults.IdleTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
}

// Validate checks the configuration for problems that would prevent
// the server from starting.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Address); err != nil {
		return errors.New("E062").Wrap(err).
			WithSuggestion("Use host:port form, e.g. \":8080\" or \"127.0.0.1:3000\"")
	}
	return nil
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rivulet-dev/rivulet/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "rivulet.json"

	// DefaultPort is the default server port.
	DefaultPort = 8080

	// DefaultHost is the default server host.
	DefaultHost = "localhost"
)

// Config represents the complete rivulet.json configuration.
type Config struct {
	// Name is the project name.
	Name string `json:"name,omitempty"`

	// Server contains HTTP server settings.
	Server ServerConfig `json:"server,omitempty"`

	// Render contains HTML output settings.
	Render RenderConfig `json:"render,omitempty"`

	// Export contains static export settings.
	Export ExportConfig `json:"export,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty"`

	// Metrics exposes /metrics on the server router.
	Metrics bool `json:"metrics,omitempty"`
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Pretty enables indented HTML output.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indentation string used when Pretty is set.
	Indent string `json:"indent,omitempty"`
}

// ExportConfig contains static export settings.
type ExportConfig struct {
	// Bucket is the S3 bucket exported pages are written to.
	Bucket string `json:"bucket,omitempty"`

	// Prefix is prepended to every exported object key.
	Prefix string `json:"prefix,omitempty"`

	// Region is the AWS region of the bucket.
	Region string `json:"region,omitempty"`
}

// New returns a configuration with all defaults applied.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Render: RenderConfig{
			Indent: "  ",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for rivulet.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E060").
				WithDetail("No rivulet.json found in " + filepath.Dir(path)).
				WithSuggestion("Create rivulet.json at the project root")
		}
		return nil, errors.New("E061").Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E061").
			WithDetail("Failed to parse rivulet.json: " + err.Error()).
			WithSuggestion("Check that rivulet.json is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E061").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E061").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E062").
			WithDetail("Port must be between 0 and 65535, got " + strconv.Itoa(c.Server.Port))
	}
	return nil
}

// ValidateExport checks that an export destination is configured.
func (c *Config) ValidateExport() error {
	if c.Export.Bucket == "" {
		return errors.New("E063").
			WithSuggestion(`Set "export": {"bucket": "..."} in rivulet.json`)
	}
	return nil
}

// Address returns the listen address for the server.
func (c *Config) Address() string {
	return c.Server.Host + ":" + strconv.Itoa(c.Server.Port)
}

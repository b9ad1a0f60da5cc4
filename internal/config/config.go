// Package config handles configuration loading for the gateway daemon.
//
// Configuration is loaded from a YAML file with support for environment
// variable expansion (${VAR} or $VAR syntax). This allows deployment-specific
// values like the upstream origin to be injected at runtime.
//
// # Configuration Sections
//
//   - server: HTTP server settings (port, TLS, base path)
//   - upstream: origin the gateway replays sub-requests against
//   - parser: envelope parsing (part spool directory)
//   - limits: envelope caps (part count, body bytes)
//   - logging: log level
//   - metrics: Prometheus exposition
//
// # Example Configuration
//
//	server:
//	  port: 8080
//	  basePath: /multi
//	  tls:
//	    enabled: true
//	    certFile: /etc/ssl/server.crt
//	    keyFile: /etc/ssl/server.key
//
//	upstream:
//	  url: ${UPSTREAM_URL}
//
//	limits:
//	  maxParts: 100
//	  maxBodyBytes: 67108864
//
//	logging:
//	  level: info
//
//	metrics:
//	  enabled: true
//
// See [Load] for loading configuration from a file.
package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Parser   ParserConfig   `yaml:"parser"`
	Limits   LimitsConfig   `yaml:"limits"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port     int    `yaml:"port"`
	BasePath string `yaml:"basePath"`
	TLS      struct {
		Enabled  bool   `yaml:"enabled"`
		CertFile string `yaml:"certFile"`
		KeyFile  string `yaml:"keyFile"`
	} `yaml:"tls"`
}

// UpstreamConfig names the origin sub-requests are replayed against
type UpstreamConfig struct {
	URL string `yaml:"url"`
}

// ParserConfig holds envelope parsing settings
type ParserConfig struct {
	// TempDir is where large parts are spooled while an envelope is split.
	// Empty keeps parts in memory.
	TempDir string `yaml:"tempDir"`
}

// LimitsConfig caps what one envelope may carry
type LimitsConfig struct {
	MaxParts     int   `yaml:"maxParts"`
	MaxBodyBytes int64 `yaml:"maxBodyBytes"`
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig holds Prometheus exposition settings
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults
	cfg.applyDefaults()

	// Validate
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/multi"
	}
	if c.Limits.MaxParts == 0 {
		c.Limits.MaxParts = 100
	}
	if c.Limits.MaxBodyBytes == 0 {
		c.Limits.MaxBodyBytes = 64 << 20 // 64MB
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

func (c *Config) validate() error {
	if c.Upstream.URL == "" {
		return fmt.Errorf("upstream.url is required")
	}
	u, err := url.Parse(c.Upstream.URL)
	if err != nil {
		return fmt.Errorf("upstream.url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("upstream.url must be http or https, got '%s'", c.Upstream.URL)
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" || c.Server.TLS.KeyFile == "" {
			return fmt.Errorf("server.tls.certFile and server.tls.keyFile are required when TLS is enabled")
		}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("logging.level must be 'debug', 'info', 'warn', or 'error', got '%s'", c.Logging.Level)
	}

	if c.Limits.MaxParts < 0 {
		return fmt.Errorf("limits.maxParts must not be negative")
	}
	if c.Limits.MaxBodyBytes < 0 {
		return fmt.Errorf("limits.maxBodyBytes must not be negative")
	}

	return nil
}

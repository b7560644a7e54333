package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hazz-dev/selfmon/monitor"
)

// Check describes a single built-in health check.
type Check struct {
	Name           string            `yaml:"name"`
	Type           string            `yaml:"type"`
	Target         string            `yaml:"target"`
	ExpectedStatus int               `yaml:"expected_status"`
	Headers        map[string]string `yaml:"headers"`
	Key            string            `yaml:"key"`
	ResultSchema   map[string]any    `yaml:"result_schema"`
}

// MetadataConfig pins build metadata instead of reading it from git.
type MetadataConfig struct {
	Revision string `yaml:"revision"`
	Summary  string `yaml:"summary"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Address string `yaml:"address"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelemetryConfig selects OpenTelemetry exporters.
type TelemetryConfig struct {
	Metrics string `yaml:"metrics"`
	Tracing string `yaml:"tracing"`
}

// Config is the root application configuration.
type Config struct {
	App          string          `yaml:"app"`
	PingResponse string          `yaml:"ping_response"`
	Metadata     MetadataConfig  `yaml:"metadata"`
	WorkDir      string          `yaml:"workdir"`
	Server       ServerConfig    `yaml:"server"`
	Log          LogConfig       `yaml:"log"`
	Telemetry    TelemetryConfig `yaml:"telemetry"`
	Checks       []Check         `yaml:"checks"`
}

var validTypes = map[string]bool{
	"http":   true,
	"tcp":    true,
	"ping":   true,
	"docker": true,
	"sqlite": true,
	"redis":  true,
}

var (
	validLevels          = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats         = map[string]bool{"text": true, "json": true}
	validMetricsExporter = map[string]bool{"prometheus": true, "stdout": true, "otlp": true, "none": true}
	validTracingExporter = map[string]bool{"stdout": true, "otlp": true, "none": true}
)

// Load reads, parses, and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML config data and applies defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Apply defaults.
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.WorkDir == "" {
		cfg.WorkDir = "."
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Telemetry.Metrics == "" {
		cfg.Telemetry.Metrics = "none"
	}
	if cfg.Telemetry.Tracing == "" {
		cfg.Telemetry.Tracing = "none"
	}

	if !validLevels[cfg.Log.Level] {
		return nil, fmt.Errorf("log.level: invalid level %q (must be debug, info, warn, or error)", cfg.Log.Level)
	}
	if !validFormats[cfg.Log.Format] {
		return nil, fmt.Errorf("log.format: invalid format %q (must be text or json)", cfg.Log.Format)
	}
	if !validMetricsExporter[cfg.Telemetry.Metrics] {
		return nil, fmt.Errorf("telemetry.metrics: invalid exporter %q (must be prometheus, stdout, otlp, or none)", cfg.Telemetry.Metrics)
	}
	if !validTracingExporter[cfg.Telemetry.Tracing] {
		return nil, fmt.Errorf("telemetry.tracing: invalid exporter %q (must be stdout, otlp, or none)", cfg.Telemetry.Tracing)
	}

	for i := range cfg.Checks {
		c := &cfg.Checks[i]
		if c.Name == "" {
			return nil, fmt.Errorf("checks[%d].name is required", i)
		}
		if !validTypes[c.Type] {
			return nil, fmt.Errorf("checks[%d].type: invalid type %q (must be http, tcp, ping, docker, sqlite, or redis)", i, c.Type)
		}
		if c.Target == "" {
			return nil, fmt.Errorf("checks[%d].target is required", i)
		}
		if c.Type == "http" && c.ExpectedStatus == 0 {
			c.ExpectedStatus = 200
		}
	}

	return &cfg, nil
}

// DuplicateNames returns check names that appear more than once. Later checks
// overwrite earlier results with the same name.
func (c *Config) DuplicateNames() []string {
	seen := make(map[string]int, len(c.Checks))
	var dups []string
	for _, chk := range c.Checks {
		seen[chk.Name]++
		if seen[chk.Name] == 2 {
			dups = append(dups, chk.Name)
		}
	}
	return dups
}

// Environment variables read by Env.
const (
	EnvPingResponse = "PING_RESPONSE"
	EnvRevision     = "BUILD_COMMIT"
	EnvSummary      = "BUILD_MESSAGE"
)

// Env collects the monitor overrides from lookup, typically os.Getenv.
func Env(lookup func(string) string) monitor.Env {
	return monitor.Env{
		PingResponse: lookup(EnvPingResponse),
		Revision:     lookup(EnvRevision),
		Summary:      lookup(EnvSummary),
	}
}

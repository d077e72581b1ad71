// Package config loads CLI settings from an optional YAML file overlaid by
// environment variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MaxLap/indonesia-calc/internal/logging"
	"github.com/MaxLap/indonesia-calc/internal/observability"
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFormat      = "LOG_FORMAT"
	EnvMaxExpansions  = "INDONESIA_MAX_EXPANSIONS"
	EnvMetricsFile    = "INDONESIA_METRICS_FILE"
	EnvTracingEnabled = "INDONESIA_TRACING_ENABLED"
	EnvTracingService = "INDONESIA_TRACING_SERVICE_NAME"
)

// ErrInvalid is returned for settings that cannot be used.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds every CLI setting.
type Config struct {
	Log     logging.Config `yaml:"log"`
	Search  Search         `yaml:"search"`
	Metrics Metrics        `yaml:"metrics"`
	Tracing Tracing        `yaml:"tracing"`
}

// Search bounds and formats searches.
type Search struct {
	MaxExpansions int    `yaml:"max_expansions"` // 0 means unbounded
	Format        string `yaml:"format"`         // text or json
}

// Metrics controls the Prometheus textfile dump.
type Metrics struct {
	File string `yaml:"file"`
}

// Tracing controls the stdout span exporter.
type Tracing struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Log:     logging.Config{Level: "info", Format: "text"},
		Search:  Search{Format: "text"},
		Tracing: Tracing{ServiceName: "indonesia-calc"},
	}
}

// Load reads path (skipped when empty) over Default, then applies the
// process environment and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read file: %w", err)
		}
		defer f.Close()
		if err := cfg.Decode(f); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Decode overlays the YAML document in r onto c. Unknown keys are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: failed to parse YAML: %w", err)
	}

	return nil
}

// ApplyEnv overlays the variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvMaxExpansions); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalid, EnvMaxExpansions, v)
		}
		c.Search.MaxExpansions = n
	}
	if v, ok := lookup(EnvMetricsFile); ok && v != "" {
		c.Metrics.File = v
	}
	if v, ok := lookup(EnvTracingEnabled); ok && v != "" {
		c.Tracing.Enabled = strings.EqualFold(v, "true")
	}
	if v, ok := lookup(EnvTracingService); ok && v != "" {
		c.Tracing.ServiceName = v
	}

	return nil
}

// Validate rejects settings the CLI cannot act on.
func (c Config) Validate() error {
	if c.Search.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions %d", ErrInvalid, c.Search.MaxExpansions)
	}
	switch c.Search.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: format %q (use text or json)", ErrInvalid, c.Search.Format)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("%w: log: %w", ErrInvalid, err)
	}

	return nil
}

// TracingConfig converts c for observability.InitTracing, sending spans to w.
func (c Config) TracingConfig(w io.Writer) observability.TracingConfig {
	return observability.TracingConfig{
		Enabled:     c.Tracing.Enabled,
		ServiceName: c.Tracing.ServiceName,
		Writer:      w,
	}
}

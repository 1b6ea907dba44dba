// Package config provides configuration types, defaults and loading for hyperstore.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/hyperstore/internal/log"
	"github.com/zjrosen/hyperstore/internal/tracing"
)

// DefaultDatabasePath matches the location used by existing deployments.
const DefaultDatabasePath = "/tmp/arm-hypervisor.db"

// Config holds all configuration options for hyperstore.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Cache    CacheConfig    `mapstructure:"cache" yaml:"cache"`
	Tracing  TracingConfig  `mapstructure:"tracing" yaml:"tracing"`
}

// DatabaseConfig controls the SQLite connection pool.
type DatabaseConfig struct {
	Path                string `mapstructure:"path" yaml:"path"`
	MaxOpenConns        int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	BusyTimeoutMS       int    `mapstructure:"busy_timeout_ms" yaml:"busy_timeout_ms"`
	BackupBeforeMigrate bool   `mapstructure:"backup_before_migrate" yaml:"backup_before_migrate"`
}

// BusyTimeout returns BusyTimeoutMS as a duration.
func (d DatabaseConfig) BusyTimeout() time.Duration {
	return time.Duration(d.BusyTimeoutMS) * time.Millisecond
}

// LogConfig controls the debug log sink.
type LogConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path"` // empty logs to stderr
	Level   string `mapstructure:"level" yaml:"level"`
}

// CacheConfig controls the in-process read cache in front of the repository.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether spans are recorded.
	// Default: false
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter" yaml:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/hyperstore/traces/traces.jsonl
	FilePath string `mapstructure:"file_path" yaml:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	SampleRate float64 `mapstructure:"sample_rate" yaml:"sample_rate"`

	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
}

// Tracing converts the section into the tracing package's Config.
func (t TracingConfig) Tracing() tracing.Config {
	return tracing.Config{
		Enabled:      t.Enabled,
		Exporter:     t.Exporter,
		FilePath:     t.FilePath,
		OTLPEndpoint: t.OTLPEndpoint,
		SampleRate:   t.SampleRate,
		ServiceName:  t.ServiceName,
	}
}

// DefaultTracesFilePath returns the default JSONL trace location.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hyperstore", "traces", "traces.jsonl")
	}
	return filepath.Join(home, ".config", "hyperstore", "traces", "traces.jsonl")
}

// Defaults returns the configuration used when no file or environment
// override is present.
func Defaults() Config {
	td := tracing.DefaultConfig()
	return Config{
		Database: DatabaseConfig{
			Path:                DefaultDatabasePath,
			MaxOpenConns:        10,
			BusyTimeoutMS:       5000,
			BackupBeforeMigrate: true,
		},
		Log: LogConfig{
			Enabled: false,
			Level:   "info",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     30 * time.Second,
		},
		Tracing: TracingConfig{
			Enabled:      td.Enabled,
			Exporter:     td.Exporter,
			FilePath:     DefaultTracesFilePath(),
			OTLPEndpoint: td.OTLPEndpoint,
			SampleRate:   td.SampleRate,
			ServiceName:  td.ServiceName,
		},
	}
}

// Validate checks the whole configuration and returns the first problem found.
func (c Config) Validate() error {
	if err := ValidateDatabase(c.Database); err != nil {
		return err
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative, got %s", c.Cache.TTL)
	}
	return ValidateTracing(c.Tracing)
}

// ValidateDatabase checks database configuration for errors.
func ValidateDatabase(db DatabaseConfig) error {
	if db.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if db.MaxOpenConns < 1 {
		return fmt.Errorf("database.max_open_conns must be at least 1, got %d", db.MaxOpenConns)
	}
	if db.BusyTimeoutMS < 0 {
		return fmt.Errorf("database.busy_timeout_ms must not be negative, got %d", db.BusyTimeoutMS)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Destinations only matter when spans are exported.
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Hyperstore Configuration
#
# Every key can also be set from the environment, e.g.
# HYPERSTORE_DATABASE_PATH or HYPERSTORE_CACHE_TTL. A .env file in the
# working directory is loaded first.

database:
  path: ` + DefaultDatabasePath + `
  max_open_conns: 10          # Connection pool size
  busy_timeout_ms: 5000       # How long a writer waits on a locked database
  backup_before_migrate: true # Copy the file to <path>.bak when opening

log:
  enabled: false
  # path: /var/log/hyperstore.log  # Empty logs to stderr
  level: info                      # debug, info, warn, error

cache:
  enabled: true
  ttl: 30s  # Upper bound on staleness for writes made by other processes

# Distributed tracing
# tracing:
#   enabled: true
#   exporter: file  # none, file, stdout, otlp
#   file_path: ~/.config/hyperstore/traces/traces.jsonl
#   sample_rate: 1.0
#
# Example: Send traces to Jaeger via OTLP
# tracing:
#   enabled: true
#   exporter: otlp
#   otlp_endpoint: jaeger.internal:4317
#   sample_rate: 0.1
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}

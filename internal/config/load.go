package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/zjrosen/hyperstore/internal/log"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. HYPERSTORE_DATABASE_PATH.
	EnvPrefix = "HYPERSTORE"

	// LocalConfigPath is checked before the user config directory.
	LocalConfigPath = ".hyperstore/config.yaml"

	envFile = ".env"
)

// UserConfigDir returns ~/.config/hyperstore.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".hyperstore"
	}
	return filepath.Join(home, ".config", "hyperstore")
}

// SetDefaults registers every key of defaults with v. Registering each key
// is what lets AutomaticEnv overrides reach Unmarshal.
func SetDefaults(v *viper.Viper, defaults Config) {
	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("database.max_open_conns", defaults.Database.MaxOpenConns)
	v.SetDefault("database.busy_timeout_ms", defaults.Database.BusyTimeoutMS)
	v.SetDefault("database.backup_before_migrate", defaults.Database.BackupBeforeMigrate)

	v.SetDefault("log.enabled", defaults.Log.Enabled)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("log.level", defaults.Log.Level)

	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)

	v.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
}

// Load resolves configuration into v and decodes it.
//
// Precedence, highest first: values already set on v (bound flags),
// HYPERSTORE_* environment variables (after loading .env from the working
// directory), the config file, then Defaults. The file is configFile when
// given, else LocalConfigPath if present, else config.yaml in
// UserConfigDir. A missing default file is not an error; a missing
// explicit file is.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(log.CatConfig, "Ignoring unreadable .env file", "error", err)
	}

	SetDefaults(v, Defaults())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case configFile != "":
		if !fileExists(configFile) {
			return Config{}, fmt.Errorf("reading config: %s: %w", configFile, os.ErrNotExist)
		}
		v.SetConfigFile(configFile)
	case fileExists(LocalConfigPath):
		v.SetConfigFile(LocalConfigPath)
	default:
		v.AddConfigPath(UserConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
		log.Debug(log.CatConfig, "No config file found, using defaults")
	} else {
		log.Debug(log.CatConfig, "Loaded config", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

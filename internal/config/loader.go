package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "barkit"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "BARKIT"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v    *viper.Viper
	file string
}

// NewLoader creates a new configuration loader.
// It uses the global viper instance so that cobra flag bindings work.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load loads configuration from files, environment variables, and defaults,
// then validates it.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")

	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	// SetConfigName clears any previously set file, so an explicit path must
	// be applied after the search setup or it would be silently discarded.
	if l.file != "" {
		l.v.SetConfigFile(l.file)
	}

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// SetConfigFile sets an explicit configuration file path, bypassing the
// search paths on the next Load.
func (l *Loader) SetConfigFile(path string) {
	l.file = path
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "barkit"))
	}

	l.v.AddConfigPath("/etc/barkit")
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("server.host", defaults.Server.Host)
	l.v.SetDefault("server.port", defaults.Server.Port)
	l.v.SetDefault("server.cors_origin", defaults.Server.CORSOrigin)
	l.v.SetDefault("server.max_upload_mb", defaults.Server.MaxUploadMB)
	l.v.SetDefault("server.timeout_sec", defaults.Server.TimeoutSec)
	l.v.SetDefault("server.shutdown_timeout", defaults.Server.ShutdownTimeout)
	l.v.SetDefault("server.rate_limit_enabled", defaults.Server.RateLimitEnabled)
	l.v.SetDefault("server.requests_per_minute", defaults.Server.RequestsPerMinute)
	l.v.SetDefault("server.requests_per_hour", defaults.Server.RequestsPerHour)
	l.v.SetDefault("server.max_requests_per_day", defaults.Server.MaxRequestsPerDay)
	l.v.SetDefault("server.max_data_per_day", defaults.Server.MaxDataPerDay)

	l.v.SetDefault("generate.module_width", defaults.Generate.ModuleWidth)
	l.v.SetDefault("generate.module_height", defaults.Generate.ModuleHeight)
	l.v.SetDefault("generate.quiet_zone", defaults.Generate.QuietZone)
	l.v.SetDefault("generate.font_size", defaults.Generate.FontSize)
	l.v.SetDefault("generate.text_distance", defaults.Generate.TextDistance)
	l.v.SetDefault("generate.background", defaults.Generate.Background)
	l.v.SetDefault("generate.foreground", defaults.Generate.Foreground)

	l.v.SetDefault("scan.try_harder", defaults.Scan.TryHarder)
}

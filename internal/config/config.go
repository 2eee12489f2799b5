// Package config centralizes configuration for the barkit application,
// loaded from configuration files, environment variables, and command-line
// flags.
package config

import (
	"fmt"

	"github.com/MeKo-Tech/barkit/internal/generate"
)

// Config represents the complete configuration for barkit.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Generation defaults
	Generate GenerateConfig `mapstructure:"generate" yaml:"generate" json:"generate"`

	// Scan settings
	Scan ScanConfig `mapstructure:"scan" yaml:"scan" json:"scan"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin      string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	MaxUploadMB     int64  `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`

	RateLimitEnabled  bool  `mapstructure:"rate_limit_enabled" yaml:"rate_limit_enabled" json:"rate_limit_enabled"`
	RequestsPerMinute int   `mapstructure:"requests_per_minute" yaml:"requests_per_minute" json:"requests_per_minute"`
	RequestsPerHour   int   `mapstructure:"requests_per_hour" yaml:"requests_per_hour" json:"requests_per_hour"`
	MaxRequestsPerDay int   `mapstructure:"max_requests_per_day" yaml:"max_requests_per_day" json:"max_requests_per_day"`
	MaxDataPerDay     int64 `mapstructure:"max_data_per_day" yaml:"max_data_per_day" json:"max_data_per_day"`
}

// GenerateConfig contains default styling for generated barcodes.
type GenerateConfig struct {
	ModuleWidth  float64 `mapstructure:"module_width" yaml:"module_width" json:"module_width"`
	ModuleHeight float64 `mapstructure:"module_height" yaml:"module_height" json:"module_height"`
	QuietZone    float64 `mapstructure:"quiet_zone" yaml:"quiet_zone" json:"quiet_zone"`
	FontSize     int     `mapstructure:"font_size" yaml:"font_size" json:"font_size"`
	TextDistance float64 `mapstructure:"text_distance" yaml:"text_distance" json:"text_distance"`
	Background   string  `mapstructure:"background" yaml:"background" json:"background"`
	Foreground   string  `mapstructure:"foreground" yaml:"foreground" json:"foreground"`
}

// ScanConfig contains detector settings.
type ScanConfig struct {
	TryHarder bool `mapstructure:"try_harder" yaml:"try_harder" json:"try_harder"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSOrigin:      "*",
			MaxUploadMB:     10,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
		Generate: GenerateConfig{
			ModuleWidth:  generate.DefaultModuleWidth,
			ModuleHeight: generate.DefaultModuleHeight,
			QuietZone:    generate.DefaultQuietZone,
			FontSize:     generate.DefaultFontSize,
			TextDistance: generate.DefaultTextDistance,
			Background:   generate.DefaultBackground,
			Foreground:   generate.DefaultForeground,
		},
		Scan: ScanConfig{
			TryHarder: true,
		},
	}
}

// Validate checks configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (must be debug, info, warn or error)", c.LogLevel)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("invalid server.max_upload_mb %d (must be at least 1)", c.Server.MaxUploadMB)
	}
	if c.Server.TimeoutSec < 1 {
		return fmt.Errorf("invalid server.timeout_sec %d (must be at least 1)", c.Server.TimeoutSec)
	}

	if c.Generate.ModuleWidth <= 0 || c.Generate.ModuleHeight <= 0 ||
		c.Generate.QuietZone <= 0 || c.Generate.TextDistance <= 0 {
		return fmt.Errorf("generate styling defaults must be positive")
	}
	if c.Generate.FontSize < 1 || c.Generate.FontSize > 100 {
		return fmt.Errorf("invalid generate.font_size %d (must be between 1 and 100)", c.Generate.FontSize)
	}
	return nil
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "*", cfg.Server.CORSOrigin)
	assert.Equal(t, int64(10), cfg.Server.MaxUploadMB)
	assert.Equal(t, 30, cfg.Server.TimeoutSec)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Server.RateLimitEnabled)

	assert.InDelta(t, 2.0, cfg.Generate.ModuleWidth, 0.001)
	assert.InDelta(t, 15.0, cfg.Generate.ModuleHeight, 0.001)
	assert.InDelta(t, 6.5, cfg.Generate.QuietZone, 0.001)
	assert.Equal(t, 10, cfg.Generate.FontSize)
	assert.InDelta(t, 5.0, cfg.Generate.TextDistance, 0.001)
	assert.Equal(t, "white", cfg.Generate.Background)
	assert.Equal(t, "black", cfg.Generate.Foreground)

	assert.True(t, cfg.Scan.TryHarder)

	require.NoError(t, cfg.Validate(), "defaults must validate")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "trace" },
			wantErr: "log_level",
		},
		{
			name:    "port too low",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "upload size zero",
			mutate:  func(c *Config) { c.Server.MaxUploadMB = 0 },
			wantErr: "max_upload_mb",
		},
		{
			name:    "timeout zero",
			mutate:  func(c *Config) { c.Server.TimeoutSec = 0 },
			wantErr: "timeout_sec",
		},
		{
			name:    "zero module width",
			mutate:  func(c *Config) { c.Generate.ModuleWidth = 0 },
			wantErr: "styling",
		},
		{
			name:    "negative quiet zone",
			mutate:  func(c *Config) { c.Generate.QuietZone = -1 },
			wantErr: "styling",
		},
		{
			name:    "font size out of range",
			mutate:  func(c *Config) { c.Generate.FontSize = 101 },
			wantErr: "font_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

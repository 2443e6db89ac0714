// Package config provides runtime configuration for sysmon.
// It uses Viper to load settings from a file, environment variables and CLI flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for sysmon.
type Config struct {
	// ── Output ───────────────────────────────────────────────────────────────
	// Format is "json" or "table"; empty means ask on stdin.
	Format string `mapstructure:"format"`

	// ── Collection ───────────────────────────────────────────────────────────
	// CPUSampleMS is the window, in milliseconds, per-core CPU percentages are measured over.
	CPUSampleMS int `mapstructure:"cpu_sample_ms"`
	// AllPartitions includes pseudo filesystems (proc, sysfs, tmpfs...) in the disk section.
	AllPartitions bool `mapstructure:"all_partitions"`

	// ── Logging ──────────────────────────────────────────────────────────────
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // console | json

	// ── HTTP (serve) ─────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	ServerPort int    `mapstructure:"server_port"`
}

// CPUSample returns CPUSampleMS as a duration.
func (c *Config) CPUSample() time.Duration {
	return time.Duration(c.CPUSampleMS) * time.Millisecond
}

// Addr is the listen address of the HTTP surface.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// Load reads config from file (./config.yaml or ~/.sysmon/config.yaml)
// and falls back to defaults. Environment variables with prefix SYSMON_
// override file values.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("format", "")
	v.SetDefault("cpu_sample_ms", 500)
	v.SetDefault("all_partitions", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("server_host", "127.0.0.1")
	v.SetDefault("server_port", 8686)

	// --- Config file ---
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.sysmon")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// --- Environment Variables ---
	v.SetEnvPrefix("SYSMON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.CPUSampleMS < 0 {
		return nil, fmt.Errorf("cpu_sample_ms must not be negative, got %d", cfg.CPUSampleMS)
	}
	return &cfg, nil
}

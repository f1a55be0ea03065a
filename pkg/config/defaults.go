package config

import (
	"os"
	"strconv"
)

// Default values for configuration.
const (
	DefaultEncoding = "utf-8"
	DefaultTimezone = "Local"
	DefaultColor    = ColorAuto
	DefaultLogLevel = "warn"
	DefaultLines    = 10
	DefaultTop      = 10
)

// FileName is the configuration file looked up when no path is given.
const FileName = ".loghunter.yaml"

// Environment variable names.
const (
	EnvEncoding     = "LOGHUNTER_ENCODING"
	EnvTimezone     = "LOGHUNTER_TIMEZONE"
	EnvColor        = "LOGHUNTER_COLOR"
	EnvLogLevel     = "LOGHUNTER_LOG_LEVEL"
	EnvMaxLineBytes = "LOGHUNTER_MAX_LINE_BYTES"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Encoding: DefaultEncoding,
		Timezone: DefaultTimezone,
		Color:    DefaultColor,
		Defaults: DefaultsConfig{
			Lines: DefaultLines,
			Top:   DefaultTop,
		},
		LogLevel: DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvEncoding); v != "" {
		c.Encoding = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvColor); v != "" {
		c.Color = ColorMode(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	// Unparseable values are left for the file or default to decide
	if v := os.Getenv(EnvMaxLineBytes); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxLineBytes = n
		}
	}
}

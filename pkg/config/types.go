// Package config provides configuration loading and validation for LogHunter.
package config

import (
	"time"

	"go.uber.org/zap/zapcore"
	"golang.org/x/text/encoding"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Encoding names the character set of the log files, e.g. utf-8,
	// latin1 or windows-1252.
	Encoding string `yaml:"encoding"`

	// Timezone is the IANA zone used for timestamps without an offset.
	// "Local" uses the system zone.
	Timezone string `yaml:"timezone"`

	// Color controls styled text output.
	Color ColorMode `yaml:"color"`

	// MaxLineBytes cuts longer lines down to this many bytes when reading
	// files. Zero means no limit.
	MaxLineBytes int `yaml:"max_line_bytes"`

	// Defaults holds default values for command flags.
	Defaults DefaultsConfig `yaml:"defaults"`

	// LogLevel is the diagnostic log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// Populated during validation.
	encoding encoding.Encoding
	location *time.Location
	level    zapcore.Level
}

// DefaultsConfig holds default values for command flags.
type DefaultsConfig struct {
	// Limit caps the number of printed records. 0 means unlimited.
	Limit int `yaml:"limit"`

	// Lines is the line count for head and tail.
	Lines int `yaml:"lines"`

	// Top is the number of patterns reported.
	Top int `yaml:"top"`

	// Context is the number of lines shown around search matches.
	Context int `yaml:"context"`
}

// ColorMode selects when text output is styled.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Valid reports whether m is a known color mode.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Decoding returns the resolved character set.
func (c *Config) Decoding() encoding.Encoding {
	return c.encoding
}

// Location returns the resolved time zone.
func (c *Config) Location() *time.Location {
	return c.location
}

// Level returns the resolved diagnostic log level.
func (c *Config) Level() zapcore.Level {
	return c.level
}

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/loghunter/pkg/parser"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve loads the configuration at path. With an empty path it looks for
// a discovered file and falls back to defaults plus environment overrides.
// The returned path is the file actually used, or "" for defaults.
func Resolve(ctx context.Context, path string) (*Config, string, error) {
	if path == "" {
		path = Discover()
	}
	if path != "" {
		cfg, err := Load(ctx, path)
		return cfg, path, err
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, "", fmt.Errorf("validating config: %w", err)
	}
	return cfg, "", nil
}

// Discover returns the first existing configuration file among the
// working directory and the home directory, or "" if there is none.
func Discover() string {
	candidates := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, FileName))
	}

	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Validate checks a configuration for errors and resolves the encoding,
// time zone and log level.
func Validate(cfg *Config) error {
	enc, err := parser.LookupEncoding(cfg.Encoding)
	if err != nil {
		return fmt.Errorf("encoding: %w", err)
	}
	cfg.encoding = enc

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	cfg.location = loc

	if cfg.Color == "" {
		cfg.Color = DefaultColor
	}
	if !cfg.Color.Valid() {
		return fmt.Errorf("color: invalid mode %q (must be auto, always, or never)", cfg.Color)
	}

	if cfg.MaxLineBytes < 0 {
		return fmt.Errorf("max_line_bytes: must be >= 0, got %d", cfg.MaxLineBytes)
	}

	if err := validateDefaults(&cfg.Defaults); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	cfg.level = level

	return nil
}

func validateDefaults(d *DefaultsConfig) error {
	if d.Limit < 0 {
		return errors.New("limit must be >= 0")
	}
	if d.Lines < 0 {
		return errors.New("lines must be >= 0")
	}
	if d.Top < 0 {
		return errors.New("top must be >= 0")
	}
	if d.Context < 0 {
		return errors.New("context must be >= 0")
	}

	if d.Lines == 0 {
		d.Lines = DefaultLines
	}
	if d.Top == 0 {
		d.Top = DefaultTop
	}
	return nil
}

func loadLocation(name string) (*time.Location, error) {
	switch strings.ToLower(name) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

const (
	// DefaultConfigFile is looked up in the working directory when no file is given.
	DefaultConfigFile = "specsplit.yml"

	// EnvPrefix prefixes environment overrides, e.g. SPECSPLIT_OUTPUT_DIR.
	EnvPrefix = "SPECSPLIT_"
)

// LoadOptions controls where the config is read from.
// File is the YAML config path. If Required is false, a missing file is skipped.
// Overrides are applied last, keyed the same way as the YAML file.
type LoadOptions struct {
	File      string
	Required  bool
	Overrides map[string]any
}

// Load builds the config from, in order: defaults, the YAML file,
// SPECSPLIT_* environment variables and explicit overrides.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrLoadingConfig, err)
	}

	if opts.File != "" {
		_, statErr := os.Stat(opts.File)
		switch {
		case statErr == nil:
			if err := k.Load(file.Provider(opts.File), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrLoadingConfig, opts.File, err)
			}
		case errors.Is(statErr, fs.ErrNotExist) && !opts.Required:
			// optional file is absent
		default:
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadingConfig, opts.File, statErr)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadingConfig, err)
	}

	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("%w: overrides: %w", ErrLoadingConfig, err)
		}
	}

	return unmarshal(k)
}

// NewConfigFromContent parses YAML config content on top of the defaults.
// Environment variables are not consulted.
func NewConfigFromContent(content []byte) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("%w: defaults: %w", ErrLoadingConfig, err)
	}
	if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingConfig, err)
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Config, error) {
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadingConfig, err)
	}

	if err := cfg.EnsureConfigValues(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SPECSPLIT_OUTPUT_DIR -> output_dir
func envKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

func defaultsMap() map[string]any {
	d := NewDefaultConfig()
	return map[string]any{
		"output_dir":   d.OutputDir,
		"extension":    d.Extension,
		"indent":       d.Indent,
		"sort_keys":    d.SortKeys,
		"http_timeout": d.HTTPTimeout.String(),
		"log_level":    d.LogLevel,
		"log_format":   d.LogFormat,
	}
}

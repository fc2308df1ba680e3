package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config is the splitter configuration.
// OutputDir is the root directory, environment directories are created inside it.
// Extension is the fragment file extension, with the leading dot.
// Indent is the number of spaces used for YAML indentation.
// SortKeys makes fragments emit mapping keys sorted instead of in source order.
// HTTPTimeout limits fetching a source document by URL.
// LogLevel and LogFormat configure the process logger.
type Config struct {
	OutputDir   string        `koanf:"output_dir" yaml:"output_dir"`
	Extension   string        `koanf:"extension" yaml:"extension"`
	Indent      int           `koanf:"indent" yaml:"indent"`
	SortKeys    bool          `koanf:"sort_keys" yaml:"sort_keys"`
	HTTPTimeout time.Duration `koanf:"http_timeout" yaml:"http_timeout"`
	LogLevel    string        `koanf:"log_level" yaml:"log_level"`
	LogFormat   string        `koanf:"log_format" yaml:"log_format"`
}

// NewDefaultConfig creates a config that writes to output/<environment>/<slug>.yaml.
func NewDefaultConfig() *Config {
	return &Config{
		OutputDir:   "output",
		Extension:   ".yaml",
		Indent:      2,
		HTTPTimeout: 30 * time.Second,
		LogLevel:    "info",
		LogFormat:   LogFormatText,
	}
}

// EnvironmentDir returns the directory fragments of the environment are written to.
// The environment is used verbatim.
func (c *Config) EnvironmentDir(environment string) string {
	return filepath.Join(c.OutputDir, environment)
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// EnsureConfigValues normalizes values and rejects the ones the splitter can't work with.
func (c *Config) EnsureConfigValues() error {
	c.Extension = strings.TrimSpace(c.Extension)
	if c.Extension == "" {
		return fmt.Errorf("%w: extension is empty", ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}

	if c.OutputDir == "" {
		return fmt.Errorf("%w: output_dir is empty", ErrInvalidConfig)
	}

	// yaml emitter supports 2..9
	if c.Indent < 2 || c.Indent > 9 {
		return fmt.Errorf("%w: indent must be between 2 and 9, got %d", ErrInvalidConfig, c.Indent)
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("%w: http_timeout is negative", ErrInvalidConfig)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

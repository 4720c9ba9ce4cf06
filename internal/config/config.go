// Package config loads acoconv settings from ACOCONV_* environment variables.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/kelseyhightower/envconfig"

	"github.com/jmylchreest/acoconv/internal/colour"
)

// Prefix is the environment variable prefix.
const Prefix = "ACOCONV"

// Output formats for the show command.
const (
	FormatHex   = "hex"
	FormatRGB   = "rgb"
	FormatJSON  = "json"
	FormatNames = "names"
)

// Preview modes.
const (
	PreviewAuto   = "auto"
	PreviewAlways = "always"
	PreviewNever  = "never"
)

var (
	formats      = []string{FormatHex, FormatRGB, FormatJSON, FormatNames}
	previewModes = []string{PreviewAuto, PreviewAlways, PreviewNever}
)

// Config holds defaults that command-line flags may override.
type Config struct {
	Format      string `envconfig:"FORMAT" default:"hex"`
	Preview     string `envconfig:"PREVIEW" default:"auto"`
	Sort        string `envconfig:"SORT" default:"none"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	Workers     int    `envconfig:"WORKERS" default:"0"`
	Producer    string `envconfig:"PRODUCER"`
	TemplateDir string `envconfig:"TEMPLATE_DIR"`
}

// Load reads the environment and validates the result.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	c.normalise()

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) normalise() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Preview = strings.ToLower(strings.TrimSpace(c.Preview))
	c.Sort = strings.ToLower(strings.TrimSpace(c.Sort))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate checks every setting.
func (c Config) Validate() error {
	if err := ValidateFormat(c.Format); err != nil {
		return err
	}
	if err := ValidatePreview(c.Preview); err != nil {
		return err
	}
	if _, err := colour.ParseSortKey(c.Sort); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() (hclog.Level, error) {
	level := hclog.LevelFromString(c.LogLevel)
	if level == hclog.NoLevel {
		return hclog.NoLevel, fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, off)", c.LogLevel)
	}
	return level, nil
}

// ValidateFormat checks a show output format.
func ValidateFormat(format string) error {
	if !slices.Contains(formats, format) {
		return fmt.Errorf("invalid format: %s (valid: %s)", format, strings.Join(formats, ", "))
	}
	return nil
}

// ValidatePreview checks a preview mode.
func ValidatePreview(mode string) error {
	if !slices.Contains(previewModes, mode) {
		return fmt.Errorf("invalid preview mode: %s (valid: %s)", mode, strings.Join(previewModes, ", "))
	}
	return nil
}

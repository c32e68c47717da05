// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Config holds all vcardify configuration.
type Config struct {
	Input   Input   `yaml:"input"`
	Convert Convert `yaml:"convert"`
	Output  Output  `yaml:"output"`
}

// Input holds row-source settings.
type Input struct {
	Delimiter string `yaml:"delimiter"` // field separator for delimited text
	Sheet     string `yaml:"sheet"`     // worksheet name for workbooks; empty = first sheet
}

// Convert holds conversion settings.
type Convert struct {
	FormatTelephone bool `yaml:"format_telephone"` // reformat telephone numbers for display
}

// Output holds destination settings.
type Output struct {
	Dir   string `yaml:"dir"`   // directory for derived output paths
	Force bool   `yaml:"force"` // overwrite existing output files
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Input: Input{
			Delimiter: ",",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Input.Delimiter == "" {
		return errors.New("config: input.delimiter cannot be empty")
	}
	if utf8.RuneCountInString(c.Input.Delimiter) != 1 {
		return fmt.Errorf("config: input.delimiter must be a single character, got %q", c.Input.Delimiter)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
// Validate must have passed first.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Input.Delimiter)
	return r
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: VCARDIFY_DELIMITER, VCARDIFY_SHEET,
// VCARDIFY_OUTPUT_DIR, VCARDIFY_FORMAT_TELEPHONE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("VCARDIFY_DELIMITER"); v != "" {
		c.Input.Delimiter = v
	}
	if v := os.Getenv("VCARDIFY_SHEET"); v != "" {
		c.Input.Sheet = v
	}
	if v := os.Getenv("VCARDIFY_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("VCARDIFY_FORMAT_TELEPHONE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid VCARDIFY_FORMAT_TELEPHONE %q: %w", v, err)
		}
		c.Convert.FormatTelephone = b
	}
	return nil
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Input   *rawInput   `yaml:"input"`
	Convert *rawConvert `yaml:"convert"`
	Output  *rawOutput  `yaml:"output"`
}

type rawInput struct {
	Delimiter *string `yaml:"delimiter"`
	Sheet     *string `yaml:"sheet"`
}

type rawConvert struct {
	FormatTelephone *bool `yaml:"format_telephone"`
}

type rawOutput struct {
	Dir   *string `yaml:"dir"`
	Force *bool   `yaml:"force"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Input != nil {
		if layer.Input.Delimiter != nil {
			c.Input.Delimiter = *layer.Input.Delimiter
		}
		if layer.Input.Sheet != nil {
			c.Input.Sheet = *layer.Input.Sheet
		}
	}
	if layer.Convert != nil {
		if layer.Convert.FormatTelephone != nil {
			c.Convert.FormatTelephone = *layer.Convert.FormatTelephone
		}
	}
	if layer.Output != nil {
		if layer.Output.Dir != nil {
			c.Output.Dir = *layer.Output.Dir
		}
		if layer.Output.Force != nil {
			c.Output.Force = *layer.Output.Force
		}
	}
}

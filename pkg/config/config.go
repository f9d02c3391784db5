// Package config loads the rpncalc YAML configuration.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Defaults applied to zero-valued fields.
const (
	DefaultLogLevel            = "info"
	DefaultAddr                = ":8080"
	DefaultReadTimeout         = 5 * time.Second
	DefaultMaxExpressionLength = 4096
	DefaultWorkers             = 4
)

// Config is the top level configuration.
type Config struct {
	LogLevel string       `yaml:"log_level"`
	Color    string       `yaml:"color"`
	Server   ServerConfig `yaml:"server"`
	Limits   LimitsConfig `yaml:"limits"`
	Batch    BatchConfig  `yaml:"batch"`
}

// ServerConfig configures the HTTP evaluation service.
type ServerConfig struct {
	Addr        string        `yaml:"addr"`
	ReadTimeout time.Duration `yaml:"read_timeout"`
}

// LimitsConfig bounds the work done per expression.
type LimitsConfig struct {
	MaxExpressionLength int `yaml:"max_expression_length"`
	// Gas caps evaluation steps; 0 means one step per token.
	Gas int `yaml:"gas"`
}

// BatchConfig configures concurrent batch evaluation.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads and parses the YAML file at path. `${VAR}` and `$VAR`
// references are replaced with environment values before parsing. An empty
// path returns Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML data, applies defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var c Config
	content := interpolateEnvVars(string(data))
	if strings.TrimSpace(content) != "" {
		if err := yaml.Unmarshal([]byte(content), &c); err != nil {
			return Config{}, fmt.Errorf("config: parse: %w", err)
		}
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate reports invalid settings.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config: unknown color mode %q", c.Color)
	}
	if c.Limits.MaxExpressionLength < 0 {
		return fmt.Errorf("config: limits.max_expression_length must not be negative")
	}
	if c.Limits.Gas < 0 {
		return fmt.Errorf("config: limits.gas must not be negative")
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("config: batch.workers must not be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Color == "" {
		c.Color = ColorAuto
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Limits.MaxExpressionLength == 0 {
		c.Limits.MaxExpressionLength = DefaultMaxExpressionLength
	}
	if c.Batch.Workers == 0 {
		c.Batch.Workers = DefaultWorkers
	}
}

var envVarPattern = regexp.MustCompile(`\$\{?(\w+)\}?`)

// interpolateEnvVars replaces `${VAR}` or `$VAR` with the environment value.
func interpolateEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(ref string) string {
		name := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(ref, "$"), "{"), "}")
		return os.Getenv(name)
	})
}

// Package config handles meshgen configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all tool settings.
type Config struct {
	Generator GeneratorConfig `yaml:"generator"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Source is the file the values were read from, empty for defaults.
	Source string `yaml:"-"`
}

// GeneratorConfig holds mesh simplification settings.
type GeneratorConfig struct {
	AutoOptimizeSteps int `yaml:"auto_optimize_steps"` // Merge passes run when buffers are read
	OptimizeSteps     int `yaml:"optimize_steps"`      // Merge passes run before export
}

// OutputConfig holds where built meshes are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Overwrite bool   `yaml:"overwrite"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Generator: GeneratorConfig{
			AutoOptimizeSteps: 1,
			OptimizeSteps:     8,
		},
		Output: OutputConfig{
			Directory: ".",
			Overwrite: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

func (c *Config) sourceName() string {
	if c.Source == "" {
		return "defaults"
	}
	return c.Source
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Generator.AutoOptimizeSteps < 0 {
		return fmt.Errorf("%w: auto_optimize_steps must be >= 0, got %d",
			ErrInvalidConfig, c.Generator.AutoOptimizeSteps)
	}
	if c.Generator.OptimizeSteps < 0 {
		return fmt.Errorf("%w: optimize_steps must be >= 0, got %d",
			ErrInvalidConfig, c.Generator.OptimizeSteps)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Logging.Level)
	}
	return nil
}

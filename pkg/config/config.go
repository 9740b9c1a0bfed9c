// Package config loads the settings shared by the region tools from a YAML
// file.
package config

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/chazu/partition/pkg/matherr"
)

// Config holds the evaluation and logging settings.
type Config struct {
	// Tolerance is the distance under which two cut locations are equal.
	Tolerance float64 `yaml:"tolerance"`
	// EvalTimeout bounds a single expression evaluation.
	EvalTimeout time.Duration `yaml:"eval_timeout"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Tolerance:   1e-10,
		EvalTimeout: 5 * time.Second,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path over the defaults. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if !(c.Tolerance > 0) {
		return matherr.New(matherr.KindInvalidArgument, matherr.NotStrictlyPositive, c.Tolerance).
			SetContext("field", "tolerance")
	}
	if c.EvalTimeout <= 0 {
		return matherr.New(matherr.KindInvalidArgument, matherr.NotStrictlyPositive, c.EvalTimeout.String()).
			SetContext("field", "eval_timeout")
	}
	if _, err := c.Logging.level(); err != nil {
		return err
	}
	return nil
}

func (l LoggingConfig) level() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return lvl, matherr.Wrap(err, matherr.KindInvalidArgument, matherr.UnknownLogLevel, l.Level).
			SetContext("field", "logging.level")
	}
	return lvl, nil
}

// Build returns a logger writing at the configured level.
func (l LoggingConfig) Build() (*zap.Logger, error) {
	lvl, err := l.level()
	if err != nil {
		return nil, err
	}
	config := zap.NewProductionConfig()
	if l.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

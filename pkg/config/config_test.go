package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/chazu/partition/pkg/matherr"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tolerance: 1.0e-6
eval_timeout: 250ms
logging:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1e-6, cfg.Tolerance)
	assert.Equal(t, 250*time.Millisecond, cfg.EvalTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "logging:\n  development: true\n"))
	require.NoError(t, err)

	assert.Equal(t, 1e-10, cfg.Tolerance)
	assert.Equal(t, 5*time.Second, cfg.EvalTimeout)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "tolerance: [1, 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }, "tolerance"},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, "tolerance"},
		{"zero timeout", func(c *Config) { c.EvalTimeout = 0 }, "eval_timeout"},
		{"unknown level", func(c *Config) { c.Logging.Level = "chatty" }, "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, matherr.ErrInvalidArgument)

			var merr *matherr.Error
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.field, merr.Context("field"))
		})
	}

	assert.NoError(t, DefaultConfig().Validate())
}

func TestLoggingBuild(t *testing.T) {
	logger, err := LoggingConfig{Level: "warn"}.Build()
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = LoggingConfig{}.Build()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = LoggingConfig{Level: "loud"}.Build()
	assert.EqualError(t, err, `unknown logging level "loud"`)
}

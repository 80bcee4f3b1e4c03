package config_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/money-model/internal/config"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Cells())
	assert.Equal(t, "N=20 10x10 consume=1 growth=1 seed=42", cfg.String())
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Foragers = 0
	cfg.Width = -2
	cfg.Consume = 0
	cfg.Growth = -1
	cfg.GrowthVariance = 2
	cfg.Ticks = -5

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
	for _, field := range []string{"foragers", "width", "consume", "growth", "growth_variance", "ticks"} {
		assert.Contains(t, err.Error(), field)
	}
	assert.NotContains(t, err.Error(), "height")
}

func TestValidateRejectsNonFinite(t *testing.T) {
	for _, tc := range []struct {
		name  string
		field string
		set   func(*config.Config)
	}{
		{"infinite growth", "growth", func(c *config.Config) { c.Growth = math.Inf(1) }},
		{"infinite consume", "consume", func(c *config.Config) { c.Consume = math.Inf(1) }},
		{"nan consume", "consume", func(c *config.Config) { c.Consume = math.NaN() }},
		{"nan variance", "growth_variance", func(c *config.Config) { c.GrowthVariance = math.NaN() }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.set(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestApplyEnvInfinityFailsValidation(t *testing.T) {
	t.Setenv("MONEYSIM_GROWTH", "Inf")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.True(t, math.IsInf(cfg.Growth, 1))
	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "moneysim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
foragers: 150
width: 20
consume: 2.5
interval: 10ms
log_format: pretty
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 150, cfg.Foragers)
	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 10, cfg.Height, "unset fields keep defaults")
	assert.Equal(t, 2.5, cfg.Consume)
	assert.Equal(t, 10*time.Millisecond, cfg.Interval)
	assert.Equal(t, "pretty", cfg.LogFormat)
}

func TestLoadEmptyPathAndErrors(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("width: [1, 2"), 0o644))
	_, err = config.Load(bad)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MONEYSIM_FORAGERS", "7")
	t.Setenv("MONEYSIM_GROWTH", "3.5")
	t.Setenv("MONEYSIM_SEED", "-9")
	t.Setenv("MONEYSIM_INTERVAL", "1s")
	t.Setenv("MONEYSIM_LOG_LEVEL", "debug")

	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, 7, cfg.Foragers)
	assert.Equal(t, 3.5, cfg.Growth)
	assert.Equal(t, int64(-9), cfg.Seed)
	assert.Equal(t, time.Second, cfg.Interval)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Width)
}

func TestApplyEnvMalformed(t *testing.T) {
	t.Setenv("MONEYSIM_WIDTH", "wide")
	t.Setenv("MONEYSIM_CONSUME", "lots")

	cfg := config.Default()
	err := cfg.ApplyEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONEYSIM_WIDTH")
	assert.Contains(t, err.Error(), "MONEYSIM_CONSUME")
	assert.Equal(t, 10, cfg.Width)
}

package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/money-model/internal/config"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger("warn", "text", &buf)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", "tick", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "tick=3")

	buf.Reset()
	pretty, err := newLogger("debug", "pretty", &buf)
	require.NoError(t, err)
	pretty.Debug("pretty line")
	assert.Contains(t, buf.String(), "pretty line")

	_, err = newLogger("loud", "text", &buf)
	assert.Error(t, err)
	_, err = newLogger("info", "xml", &buf)
	assert.Error(t, err)
}

func TestRunShortSimulation(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 5\nheight: 5\nreport_every: 0\nlog_level: error\n"), 0o644))

	require.NoError(t, run([]string{"-config", path, "-ticks", "20", "-seed", "3", "-n", "8"}))
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	err := run([]string{"-ticks", "5", "-n", "-4"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRunSurfacesTickFailure(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	t.Setenv("MONEYSIM_WIDTH", "1")
	t.Setenv("MONEYSIM_HEIGHT", "1")
	t.Setenv("MONEYSIM_LOG_LEVEL", "error")
	err := run([]string{"-ticks", "5", "-n", "1"})
	assert.Error(t, err)
}

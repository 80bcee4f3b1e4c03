package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/money-model/internal/engine"
)

func TestEngineRunsToMaxTicks(t *testing.T) {
	steps := 0
	e := engine.NewEngine(func() error {
		steps++
		return nil
	})
	e.MaxTicks = 10
	e.ReportEvery = 4

	var reports []uint64
	e.OnReport = func(tick uint64) { reports = append(reports, tick) }
	ticks := 0
	e.OnTick = func(uint64) { ticks++ }

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 10, steps)
	assert.Equal(t, 10, ticks)
	assert.Equal(t, uint64(10), e.Tick)
	assert.Equal(t, []uint64{4, 8}, reports)
	assert.False(t, e.Running())
}

func TestEngineStopsOnStepError(t *testing.T) {
	boom := errors.New("boom")
	steps := 0
	e := engine.NewEngine(func() error {
		steps++
		if steps == 3 {
			return boom
		}
		return nil
	})

	err := e.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, uint64(2), e.Tick)
}

func TestEngineStop(t *testing.T) {
	e := engine.NewEngine(func() error { return nil })
	e.OnTick = func(tick uint64) {
		if tick == 3 {
			e.Stop()
		}
	}
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(3), e.Tick)
}

func TestEngineStopBeforeRun(t *testing.T) {
	steps := 0
	e := engine.NewEngine(func() error {
		steps++
		return nil
	})
	e.MaxTicks = 1000

	e.Stop()
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 0, steps)
	assert.Equal(t, uint64(0), e.Tick)

	// The stop is consumed; the next run goes to completion.
	e.MaxTicks = 5
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 5, steps)
}

func TestEngineContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := engine.NewEngine(func() error { return nil })
	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(0), e.Tick)

	ctx, cancel = context.WithCancel(context.Background())
	e = engine.NewEngine(func() error { return nil })
	e.Interval = time.Hour
	e.OnTick = func(uint64) { cancel() }
	require.NoError(t, e.Run(ctx))
	assert.Equal(t, uint64(1), e.Tick)
}

func TestSimulationEngine(t *testing.T) {
	sim := newSim(t, smallConfig(), 12)
	e := engine.NewSimulationEngine(sim, 25, 10, 0)

	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, uint64(25), sim.Tick)
	assert.Equal(t, 25, sim.Metrics.Len())
}

// Package engine provides the money model and the tick-based loop that
// drives it.
package engine

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Engine drives a simulation forward one tick at a time on the calling
// goroutine. Ticks are never run concurrently.
type Engine struct {
	Tick        uint64        // Ticks completed by this engine
	MaxTicks    uint64        // Stop after this many ticks (0 = unbounded)
	Interval    time.Duration // Minimum wall time per tick (0 = as fast as possible)
	ReportEvery uint64        // OnReport period in ticks (0 = never)

	// Step advances the model by exactly one tick.
	Step func() error

	// Callbacks, populated during setup.
	OnTick   func(tick uint64) // After every successful tick
	OnReport func(tick uint64) // Every ReportEvery ticks

	running atomic.Bool
	stopped atomic.Bool // Set by Stop, cleared when Run returns
}

// NewEngine creates an engine around a step function.
func NewEngine(step func() error) *Engine {
	return &Engine{Step: step}
}

// NewSimulationEngine creates an engine that advances sim and logs a report
// every reportEvery ticks.
func NewSimulationEngine(sim *Simulation, maxTicks, reportEvery uint64, interval time.Duration) *Engine {
	e := NewEngine(sim.Advance)
	e.MaxTicks = maxTicks
	e.ReportEvery = reportEvery
	e.Interval = interval
	e.OnReport = func(uint64) { sim.LogReport() }
	return e
}

// Run advances the simulation until MaxTicks is reached, Stop is called, ctx
// is cancelled, or a step fails. Only a step failure is returned. A Stop
// issued before Run makes it return without stepping.
func (e *Engine) Run(ctx context.Context) error {
	e.running.Store(true)
	defer func() {
		e.running.Store(false)
		e.stopped.Store(false)
	}()
	slog.Info("simulation engine started", "tick", e.Tick, "max_ticks", e.MaxTicks)

	for !e.stopped.Load() {
		if e.MaxTicks > 0 && e.Tick >= e.MaxTicks {
			break
		}
		if ctx.Err() != nil {
			break
		}

		start := time.Now()

		if err := e.step(); err != nil {
			slog.Error("simulation engine halted", "tick", e.Tick, "error", err)
			return err
		}

		// Sleep for the remainder of the tick interval.
		if e.Interval > 0 {
			if wait := e.Interval - time.Since(start); wait > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(wait):
				}
			}
		}
	}

	slog.Info("simulation engine stopped", "tick", e.Tick)
	return nil
}

// Stop halts the loop after the current tick, or makes the next Run return
// immediately if none is in progress.
func (e *Engine) Stop() {
	e.stopped.Store(true)
}

// Running reports whether Run is in progress.
func (e *Engine) Running() bool {
	return e.running.Load()
}

// step advances the simulation by one tick.
func (e *Engine) step() error {
	if err := e.Step(); err != nil {
		return err
	}
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick)
	}
	if e.ReportEvery > 0 && e.Tick%e.ReportEvery == 0 && e.OnReport != nil {
		e.OnReport(e.Tick)
	}
	return nil
}

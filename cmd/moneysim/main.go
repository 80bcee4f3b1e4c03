// Command moneysim runs the Capital/Forager money model headless and logs
// inequality and starvation as it goes.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"

	"github.com/talgya/money-model/internal/agents"
	"github.com/talgya/money-model/internal/config"
	"github.com/talgya/money-model/internal/engine"
	"github.com/talgya/money-model/internal/entropy"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("moneysim failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("moneysim", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv(config.EnvPrefix+"CONFIG"), "path to a YAML config file")
	ticks := fs.Int("ticks", -1, "number of ticks to run (0 = until interrupted)")
	seed := fs.Int64("seed", 0, "random seed (overrides config; 0 keeps config)")
	foragers := fs.Int("n", 0, "number of foragers (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// ── Configuration ─────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if *ticks >= 0 {
		cfg.Ticks = *ticks
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *foragers != 0 {
		cfg.Foragers = *foragers
	}
	cfg.Seed = entropy.ResolveSeed(cfg.Seed)

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return err
	}
	slog.Info("money model", "config", cfg.String())

	// ── Simulation ────────────────────────────────────────────────────
	sim, err := engine.NewSimulation(cfg, entropy.NewRand(cfg.Seed))
	if err != nil {
		return err
	}

	eng := engine.NewSimulationEngine(sim, uint64(cfg.Ticks), uint64(cfg.ReportEvery), cfg.Interval)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("\n%s foragers on a %dx%d grid of %s capitals.\n",
		humanize.Comma(int64(cfg.Foragers)), cfg.Width, cfg.Height, humanize.Comma(int64(cfg.Cells())))
	if cfg.Ticks > 0 {
		fmt.Printf("Running %s ticks... (Ctrl+C to stop)\n", humanize.Comma(int64(cfg.Ticks)))
	} else {
		fmt.Println("Running until interrupted... (Ctrl+C to stop)")
	}

	runErr := eng.Run(ctx)
	if ctx.Err() != nil {
		slog.Info("received signal, shutting down")
	}

	printSummary(sim)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}

// printSummary writes the final state of the run to stdout.
func printSummary(sim *engine.Simulation) {
	gini, _ := sim.Metrics.Latest(engine.MetricGini)
	starvation, _ := sim.Metrics.Latest(engine.MetricStarvation)
	classes := agents.ClassCounts(sim.Foragers())

	fmt.Printf("\nRun %s stopped after %s ticks.\n", sim.RunID, humanize.Comma(int64(sim.Tick)))
	fmt.Printf("  gini (last collected):       %.3f\n", gini)
	fmt.Printf("  starvation (last collected): %.3f\n", starvation)
	fmt.Printf("  wealthy / poor foragers:     %s / %s\n",
		humanize.Comma(int64(classes[agents.ClassWealthyForager])),
		humanize.Comma(int64(classes[agents.ClassPoorForager])))
	fmt.Printf("  forager wealth:              %s\n", humanize.CommafWithDigits(sim.Stats.ForagerWealth, 1))
	fmt.Printf("  capital wealth:              %s\n", humanize.CommafWithDigits(sim.Stats.CapitalWealth, 1))
	fmt.Printf("  resets (starvation/old age): %s / %s\n",
		humanize.Comma(int64(sim.Stats.TotalStarvationResets)),
		humanize.Comma(int64(sim.Stats.TotalOldAgeResets)))
	fmt.Printf("  most resets of one forager:  %s\n", humanize.Comma(int64(sim.Stats.MostResets)))
}

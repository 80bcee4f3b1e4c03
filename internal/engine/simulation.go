// Simulation ties together the grid, the agent population, the scheduler and
// the metrics collector, and advances them one tick at a time.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/talgya/money-model/internal/agents"
	"github.com/talgya/money-model/internal/config"
	"github.com/talgya/money-model/internal/entropy"
	"github.com/talgya/money-model/internal/world"
)

// maxEvents bounds the in-memory event log.
const maxEvents = 1000

// growthFieldStream selects the noise seed derived from the run seed.
const growthFieldStream = 1

// Event is a notable occurrence in the simulation.
type Event struct {
	Tick        uint64         `json:"tick"`
	AgentID     agents.AgentID `json:"agent_id"`
	Description string         `json:"description"`
	Category    string         `json:"category"` // "starvation" or "old_age"
}

// SimStats tracks aggregate statistics, refreshed after every tick.
type SimStats struct {
	Foragers      int     `json:"foragers"`
	Capitals      int     `json:"capitals"`
	ForagerWealth float64 `json:"forager_wealth"`
	CapitalWealth float64 `json:"capital_wealth"`
	Wealthy       int     `json:"wealthy"`
	Poor          int     `json:"poor"`
	Broke         int     `json:"broke"` // Foragers at exactly zero wealth

	// Resets during the most recent tick.
	StarvationResets int `json:"starvation_resets"`
	OldAgeResets     int `json:"old_age_resets"`

	// Resets since construction.
	TotalStarvationResets int `json:"total_starvation_resets"`
	TotalOldAgeResets     int `json:"total_old_age_resets"`
	MostResets            int `json:"most_resets"` // Highest reset count of any one Forager
}

// Simulation is the money model. It exclusively owns the grid and the agent
// population; the grid buckets and the scheduler registry are two views over
// the same agents.
type Simulation struct {
	RunID   string
	Config  config.Config
	Grid    *agents.Grid
	Metrics *Collector
	Tick    uint64 // Number of completed Advance calls
	Events  []Event
	Stats   SimStats

	scheduler *Scheduler
	rng       *rand.Rand
	capitals  []*agents.Agent
	foragers  []*agents.Agent
	err       error // First tick failure; the run is dead after it
}

// NewSimulation validates cfg and builds the initial population: one Capital
// per cell in row-major order, then cfg.Foragers Foragers at random cells.
// All randomness is drawn from rng.
func NewSimulation(cfg config.Config, rng *rand.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("simulation requires a random source")
	}

	grid, err := agents.NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	var field []float64
	if cfg.GrowthVariance > 0 {
		field = world.GrowthField(cfg.Width, cfg.Height, entropy.Derive(cfg.Seed, growthFieldStream), cfg.GrowthVariance)
	}

	spawner := agents.NewSpawner(rng)
	capitals := spawner.SpawnCapitals(grid, cfg.Growth, field)
	foragers := spawner.SpawnForagers(cfg.Foragers, grid, cfg.Consume)

	registry := make([]*agents.Agent, 0, len(capitals)+len(foragers))
	registry = append(registry, capitals...)
	registry = append(registry, foragers...)

	sim := &Simulation{
		RunID:     uuid.NewString(),
		Config:    cfg,
		Grid:      grid,
		Metrics:   NewDefaultCollector(),
		scheduler: NewScheduler(registry, rng),
		rng:       rng,
		capitals:  capitals,
		foragers:  foragers,
	}
	sim.updateStats(0, 0)

	slog.Info("simulation created",
		"run_id", sim.RunID,
		"foragers", len(foragers),
		"capitals", len(capitals),
		"grid", grid.String(),
		"consume", cfg.Consume,
		"growth", cfg.Growth,
		"growth_variance", cfg.GrowthVariance,
	)
	return sim, nil
}

// Advance runs one tick: metrics are collected from the pre-tick state, then
// every agent is activated once in random order. A failed activation aborts
// the tick and the run; later calls return the same error.
func (s *Simulation) Advance() error {
	if s.err != nil {
		return fmt.Errorf("simulation aborted: %w", s.err)
	}

	s.Metrics.Collect(s)
	tick := s.Tick
	s.Tick++

	starved, aged := 0, 0
	err := s.scheduler.StepAll(func(a *agents.Agent) error {
		cause, err := agents.Step(a, s.Grid, s.rng)
		if err != nil {
			return err
		}
		if cause.Has(agents.ResetStarvation) {
			starved++
			s.recordEvent(tick, a, "starvation", fmt.Sprintf("forager %d starved and was reset", a.ID))
		}
		if cause.Has(agents.ResetOldAge) {
			aged++
			s.recordEvent(tick, a, "old_age", fmt.Sprintf("forager %d ran out of life and was reset", a.ID))
		}
		return nil
	})
	if err != nil {
		s.err = fmt.Errorf("tick %d: %w", tick, err)
		slog.Error("tick failed", "run_id", s.RunID, "tick", tick, "error", err)
		return s.err
	}

	s.updateStats(starved, aged)
	s.trimEvents()

	slog.Debug("tick complete",
		"tick", tick,
		"starvation_resets", starved,
		"old_age_resets", aged,
	)
	return nil
}

// Err returns the failure that aborted the run, if any.
func (s *Simulation) Err() error {
	return s.err
}

// Capitals returns all Capitals in row-major order.
func (s *Simulation) Capitals() []*agents.Agent {
	return s.capitals
}

// Foragers returns all Foragers in creation order.
func (s *Simulation) Foragers() []*agents.Agent {
	return s.foragers
}

// Agents returns the full population in registry order.
func (s *Simulation) Agents() []*agents.Agent {
	return s.scheduler.Agents()
}

// Scheduler returns the activation scheduler.
func (s *Simulation) Scheduler() *Scheduler {
	return s.scheduler
}

// ForagerWealths returns the current wealth of every Forager.
func (s *Simulation) ForagerWealths() []float64 {
	out := make([]float64, len(s.foragers))
	for i, f := range s.foragers {
		out[i] = f.Wealth
	}
	return out
}

// LogReport writes a summary of the current state.
func (s *Simulation) LogReport() {
	gini, _ := s.Metrics.Latest(MetricGini)
	starvation, _ := s.Metrics.Latest(MetricStarvation)

	slog.Info("tick report",
		"run_id", s.RunID,
		"tick", s.Tick,
		"gini", fmt.Sprintf("%.3f", gini),
		"starvation", fmt.Sprintf("%.3f", starvation),
		"wealthy", s.Stats.Wealthy,
		"poor", s.Stats.Poor,
		"broke", s.Stats.Broke,
		"forager_wealth", fmt.Sprintf("%.1f", s.Stats.ForagerWealth),
		"capital_wealth", fmt.Sprintf("%.1f", s.Stats.CapitalWealth),
		"starvation_resets", s.Stats.TotalStarvationResets,
		"old_age_resets", s.Stats.TotalOldAgeResets,
	)
}

func (s *Simulation) recordEvent(tick uint64, a *agents.Agent, category, desc string) {
	s.Events = append(s.Events, Event{
		Tick:        tick,
		AgentID:     a.ID,
		Description: desc,
		Category:    category,
	})
}

// trimEvents keeps the most recent maxEvents events.
func (s *Simulation) trimEvents() {
	if len(s.Events) > maxEvents {
		s.Events = append(s.Events[:0], s.Events[len(s.Events)-maxEvents:]...)
	}
}

func (s *Simulation) updateStats(starved, aged int) {
	st := SimStats{
		Foragers:              len(s.foragers),
		Capitals:              len(s.capitals),
		StarvationResets:      starved,
		OldAgeResets:          aged,
		TotalStarvationResets: s.Stats.TotalStarvationResets + starved,
		TotalOldAgeResets:     s.Stats.TotalOldAgeResets + aged,
	}

	for _, c := range s.capitals {
		st.CapitalWealth += c.Wealth
	}
	for _, f := range s.foragers {
		st.ForagerWealth += f.Wealth
		st.MostResets = max(st.MostResets, f.Resets.Total())
		if f.Wealth == 0 {
			st.Broke++
		}
		switch agents.Classify(f) {
		case agents.ClassWealthyForager:
			st.Wealthy++
		default:
			st.Poor++
		}
	}

	s.Stats = st
}

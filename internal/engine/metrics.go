// Population metrics: inequality and starvation over Forager wealth,
// recorded once per tick before agents move.
package engine

import (
	"math"
	"slices"

	"github.com/talgya/money-model/internal/agents"
)

// Metric names recorded by the default collector.
const (
	MetricGini       = "Gini"
	MetricStarvation = "Starvation"
)

// ComputeGini returns the Gini coefficient of the given wealths:
//
//	G = 1 + 1/N - 2B,  B = Σ x_i(N-i) / (N Σx)
//
// with x sorted ascending and i zero-based. An empty or all-zero population
// has no inequality to measure and yields 0, and so does one whose totals
// overflow. The result is clamped to [0, 1] to absorb float rounding on
// equal wealths.
func ComputeGini(wealths []float64) float64 {
	n := len(wealths)
	if n == 0 {
		return 0
	}

	x := slices.Clone(wealths)
	slices.Sort(x)

	var sum, weighted float64
	for i, xi := range x {
		sum += xi
		weighted += xi * float64(n-i)
	}
	if sum == 0 || math.IsNaN(weighted) || math.IsInf(sum, 0) || math.IsInf(weighted, 0) {
		return 0
	}

	b := weighted / (float64(n) * sum)
	g := 1 + 1/float64(n) - 2*b
	return math.Min(1, math.Max(0, g))
}

// ComputeStarvation returns the fraction of wealths that are exactly zero,
// or 0 for an empty population.
func ComputeStarvation(wealths []float64) float64 {
	if len(wealths) == 0 {
		return 0
	}
	starving := 0
	for _, w := range wealths {
		if w == 0 {
			starving++
		}
	}
	return float64(starving) / float64(len(wealths))
}

// Reporter computes one model-level value from the current state.
type Reporter func(s *Simulation) float64

// WealthRecord is one Forager's wealth at collection time.
type WealthRecord struct {
	AgentID agents.AgentID `json:"agent_id"`
	Wealth  float64        `json:"wealth"`
}

// Collector accumulates append-only metric series, one value per tick per
// reporter, plus a per-tick snapshot of every Forager's wealth. It holds no
// agents between collections.
type Collector struct {
	names     []string
	reporters map[string]Reporter
	series    map[string][]float64
	wealth    [][]WealthRecord
}

// NewCollector creates an empty collector with no reporters.
func NewCollector() *Collector {
	return &Collector{
		reporters: make(map[string]Reporter),
		series:    make(map[string][]float64),
	}
}

// NewDefaultCollector creates a collector with the Gini and Starvation
// reporters registered.
func NewDefaultCollector() *Collector {
	c := NewCollector()
	c.Register(MetricGini, func(s *Simulation) float64 {
		return ComputeGini(s.ForagerWealths())
	})
	c.Register(MetricStarvation, func(s *Simulation) float64 {
		return ComputeStarvation(s.ForagerWealths())
	})
	return c
}

// Register adds a named reporter. Re-registering a name replaces its
// reporter but keeps its series. Register before the first Collect so every
// series stays aligned with the tick index.
func (c *Collector) Register(name string, r Reporter) {
	if _, ok := c.reporters[name]; !ok {
		c.names = append(c.names, name)
	}
	c.reporters[name] = r
}

// Collect appends one value per reporter and one wealth snapshot.
func (c *Collector) Collect(s *Simulation) {
	for _, name := range c.names {
		c.series[name] = append(c.series[name], c.reporters[name](s))
	}

	foragers := s.Foragers()
	snap := make([]WealthRecord, len(foragers))
	for i, f := range foragers {
		snap[i] = WealthRecord{AgentID: f.ID, Wealth: f.Wealth}
	}
	c.wealth = append(c.wealth, snap)
}

// Names returns the registered metric names in registration order.
func (c *Collector) Names() []string {
	return slices.Clone(c.names)
}

// Series returns the recorded values for name, indexed by tick.
func (c *Collector) Series(name string) []float64 {
	return c.series[name]
}

// Latest returns the most recent value recorded for name.
func (c *Collector) Latest(name string) (float64, bool) {
	s := c.series[name]
	if len(s) == 0 {
		return 0, false
	}
	return s[len(s)-1], true
}

// AgentWealth returns the Forager wealth snapshot taken at tick, or nil if
// tick has not been collected.
func (c *Collector) AgentWealth(tick int) []WealthRecord {
	if tick < 0 || tick >= len(c.wealth) {
		return nil
	}
	return c.wealth[tick]
}

// Len returns the number of collections made.
func (c *Collector) Len() int {
	return len(c.wealth)
}

// Random activation: every agent steps exactly once per tick, in a fresh
// uniform permutation.
package engine

import (
	"math/rand"

	"github.com/talgya/money-model/internal/agents"
)

// Scheduler holds the activation registry. The registry keeps construction
// order (Capitals row-major, then Foragers); only a per-tick copy is shuffled.
type Scheduler struct {
	agents []*agents.Agent
	order  []*agents.Agent // Permutation used by the most recent pass
	rng    *rand.Rand
	steps  uint64
}

// NewScheduler creates a scheduler over list, shuffling with rng.
func NewScheduler(list []*agents.Agent, rng *rand.Rand) *Scheduler {
	return &Scheduler{
		agents: list,
		order:  make([]*agents.Agent, 0, len(list)),
		rng:    rng,
	}
}

// StepAll activates every registered agent once in a new random order. Each
// activation runs to completion before the next starts, so later agents see
// every earlier write. The pass stops at the first error.
func (s *Scheduler) StepAll(activate func(a *agents.Agent) error) error {
	s.order = append(s.order[:0], s.agents...)
	s.rng.Shuffle(len(s.order), func(i, j int) {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	})

	for _, a := range s.order {
		if err := activate(a); err != nil {
			return err
		}
	}
	s.steps++
	return nil
}

// Agents returns the registry in construction order.
func (s *Scheduler) Agents() []*agents.Agent {
	return s.agents
}

// LastOrder returns a copy of the permutation used by the latest pass.
func (s *Scheduler) LastOrder() []*agents.Agent {
	out := make([]*agents.Agent, len(s.order))
	copy(out, s.order)
	return out
}

// Steps returns the number of completed passes.
func (s *Scheduler) Steps() uint64 {
	return s.steps
}

// Len returns the number of registered agents.
func (s *Scheduler) Len() int {
	return len(s.agents)
}

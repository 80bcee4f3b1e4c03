package engine_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/money-model/internal/agents"
	"github.com/talgya/money-model/internal/engine"
)

func population(n int) []*agents.Agent {
	list := make([]*agents.Agent, n)
	for i := range list {
		list[i] = &agents.Agent{ID: agents.AgentID(i)}
	}
	return list
}

func ids(list []*agents.Agent) []agents.AgentID {
	out := make([]agents.AgentID, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestStepAllActivatesEachOnce(t *testing.T) {
	list := population(30)
	s := engine.NewScheduler(list, rand.New(rand.NewSource(1)))

	for pass := 0; pass < 5; pass++ {
		seen := map[agents.AgentID]int{}
		require.NoError(t, s.StepAll(func(a *agents.Agent) error {
			seen[a.ID]++
			return nil
		}))
		require.Len(t, seen, 30)
		for id, n := range seen {
			assert.Equal(t, 1, n, "agent %d", id)
		}
	}
	assert.Equal(t, uint64(5), s.Steps())
	assert.Equal(t, 30, s.Len())
}

func TestStepAllReshufflesButKeepsRegistry(t *testing.T) {
	list := population(30)
	s := engine.NewScheduler(list, rand.New(rand.NewSource(2)))
	noop := func(*agents.Agent) error { return nil }

	require.NoError(t, s.StepAll(noop))
	first := ids(s.LastOrder())
	require.NoError(t, s.StepAll(noop))
	second := ids(s.LastOrder())

	assert.ElementsMatch(t, first, second)
	assert.NotEqual(t, first, second)
	assert.Equal(t, ids(population(30)), ids(s.Agents()), "registry order must not change")
}

func TestStepAllSeesEarlierWrites(t *testing.T) {
	list := population(10)
	s := engine.NewScheduler(list, rand.New(rand.NewSource(3)))

	counter := 0.0
	require.NoError(t, s.StepAll(func(a *agents.Agent) error {
		counter++
		a.Wealth = counter
		return nil
	}))

	for i, a := range s.LastOrder() {
		assert.Equal(t, float64(i+1), a.Wealth)
	}
}

func TestStepAllStopsOnError(t *testing.T) {
	list := population(10)
	s := engine.NewScheduler(list, rand.New(rand.NewSource(4)))
	boom := errors.New("boom")

	calls := 0
	err := s.StepAll(func(*agents.Agent) error {
		calls++
		if calls == 3 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls)
	assert.Equal(t, uint64(0), s.Steps())
}

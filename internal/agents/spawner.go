// Agent spawning: creates the initial population of Capitals and Foragers
// and places them on the grid.
package agents

import (
	"math/rand"

	"github.com/talgya/money-model/internal/world"
)

// Spawner creates agents for the simulation. All randomness comes from the
// injected rng so a seeded run is reproducible.
type Spawner struct {
	rng    *rand.Rand
	nextID AgentID
}

// NewSpawner creates an agent spawner drawing from rng.
func NewSpawner(rng *rand.Rand) *Spawner {
	return &Spawner{
		rng:    rng,
		nextID: 0,
	}
}

// NextID returns the ID the next spawned agent will receive.
func (s *Spawner) NextID() AgentID {
	return s.nextID
}

// SpawnCapitals fills every cell of g with one Capital, row-major: the j-th
// Capital sits at (j % width, j / width). growthField scales the base growth
// per cell; nil means uniform growth.
func (s *Spawner) SpawnCapitals(g *Grid, growth float64, growthField []float64) []*Agent {
	count := g.CellCount()
	capitals := make([]*Agent, 0, count)

	for j := 0; j < count; j++ {
		rate := growth
		if growthField != nil {
			rate *= growthField[j]
		}
		c := &Agent{
			ID:     s.issueID(),
			Kind:   KindCapital,
			Wealth: CapitalStartWealth,
			Growth: rate,
		}
		g.Place(c, world.Coord{X: j % g.Width, Y: j / g.Width})
		capitals = append(capitals, c)
	}

	return capitals
}

// SpawnForagers creates count Foragers, each with a fresh random life, at
// uniformly random cells.
func (s *Spawner) SpawnForagers(count int, g *Grid, consume float64) []*Agent {
	foragers := make([]*Agent, 0, count)

	for i := 0; i < count; i++ {
		f := &Agent{
			ID:      s.issueID(),
			Kind:    KindForager,
			Wealth:  ForagerStartWealth,
			Consume: consume,
			Life:    DrawLife(s.rng),
		}
		pos := world.Coord{
			X: s.rng.Intn(g.Width),
			Y: s.rng.Intn(g.Height),
		}
		g.Place(f, pos)
		foragers = append(foragers, f)
	}

	return foragers
}

func (s *Spawner) issueID() AgentID {
	id := s.nextID
	s.nextID++
	return id
}

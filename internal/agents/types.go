// Package agents provides the entity model: stationary Capital cells that
// grow wealth and mobile Foragers that drain it.
package agents

import (
	"github.com/talgya/money-model/internal/world"
)

// AgentID is a unique identifier for an agent. IDs are issued in creation
// order: Capitals first (row-major), then Foragers.
type AgentID uint64

// Kind tags which variant an Agent is.
type Kind uint8

const (
	KindCapital Kind = iota // Stationary wealth generator, one per cell
	KindForager             // Mobile wealth consumer
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCapital:
		return "Capital"
	case KindForager:
		return "Forager"
	default:
		return "Unknown"
	}
}

// Starting values and limits.
const (
	CapitalStartWealth = 1.0
	ForagerStartWealth = 10.0
	ResetWealth        = 1.0 // Wealth after a starvation or old-age reset
	MaxLife            = 100 // Life is drawn uniformly from [0, MaxLife]
	WealthyThreshold   = 10.0
)

// Agent is the core entity. Kind selects which fields are meaningful:
// Capitals use Growth, Foragers use Consume and Life.
type Agent struct {
	ID   AgentID `json:"id"`
	Kind Kind    `json:"kind"`

	// Location
	Position world.Coord `json:"position"`

	// Economic
	Wealth  float64 `json:"wealth"`
	Growth  float64 `json:"growth,omitempty"`  // Capital: added every tick
	Consume float64 `json:"consume,omitempty"` // Forager: upkeep paid every tick

	// Forager lifecycle
	Life   int         `json:"life,omitempty"` // Ticks left before an old-age reset
	Resets ResetCounts `json:"resets"`
}

// ResetCounts tallies a Forager's soft deaths.
type ResetCounts struct {
	Starvation int `json:"starvation"`
	OldAge     int `json:"old_age"`
}

// Total returns the number of resets of either cause.
func (r ResetCounts) Total() int {
	return r.Starvation + r.OldAge
}

// Pos returns the agent's grid position.
func (a *Agent) Pos() world.Coord {
	return a.Position
}

// SetPos records a new grid position. Only the grid should call it.
func (a *Agent) SetPos(c world.Coord) {
	a.Position = c
}

// IsCapital reports whether the agent is a Capital.
func (a *Agent) IsCapital() bool {
	return a.Kind == KindCapital
}

// IsForager reports whether the agent is a Forager.
func (a *Agent) IsForager() bool {
	return a.Kind == KindForager
}

// Grid is the grid type agents live on.
type Grid = world.Grid[*Agent]

// NewGrid creates an empty agent grid.
func NewGrid(width, height int) (*Grid, error) {
	return world.NewGrid[*Agent](width, height)
}

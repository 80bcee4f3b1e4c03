// Agent behavior, one activation per tick.
// Capitals grow; Foragers run move → get cash → eat → age, in that order.
package agents

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoReachableCapital is returned when a Forager has no Capital anywhere in
// its Moore neighborhood. Standard layouts put a Capital on every cell, so
// this only happens on grids too small to have a distinct neighbor cell.
var ErrNoReachableCapital = errors.New("no reachable capital")

// ResetCause is a bit set of the reasons a Forager was reset this tick.
type ResetCause uint8

const (
	ResetStarvation ResetCause = 1 << iota // Wealth went negative after upkeep
	ResetOldAge                            // Life ran out
)

// ResetNone means the Forager made it through the tick untouched.
const ResetNone ResetCause = 0

// Has reports whether c includes cause.
func (c ResetCause) Has(cause ResetCause) bool {
	return c&cause != 0
}

// Step runs one full activation for a, routing by kind. Only Foragers can
// fail or reset.
func Step(a *Agent, g *Grid, rng *rand.Rand) (ResetCause, error) {
	switch a.Kind {
	case KindCapital:
		StepCapital(a)
		return ResetNone, nil
	case KindForager:
		return StepForager(a, g, rng)
	default:
		return ResetNone, fmt.Errorf("agent %d: unknown kind %d", a.ID, a.Kind)
	}
}

// StepCapital adds the Capital's growth to its wealth.
func StepCapital(a *Agent) {
	a.Wealth += a.Growth
}

// StepForager runs the four Forager phases. The order is load-bearing: an
// old-age reset can overwrite the life drawn by a starvation reset in the
// same tick, and wealth is not re-checked after aging.
func StepForager(a *Agent, g *Grid, rng *rand.Rand) (ResetCause, error) {
	if err := Move(a, g); err != nil {
		return ResetNone, err
	}
	GetCash(a, g)

	cause := ResetNone
	if EatSomething(a, rng) {
		cause |= ResetStarvation
	}
	if GetOlder(a, rng) {
		cause |= ResetOldAge
	}
	return cause, nil
}

// Move relocates the Forager onto the cell of the richest neighboring
// Capital (center excluded). Only a strictly greater wealth replaces the
// current pick, so ties go to the first Capital in neighbor order.
func Move(a *Agent, g *Grid) error {
	var best *Agent
	for _, n := range g.Neighbors(a.Position, false) {
		if !n.IsCapital() {
			continue
		}
		if best == nil || n.Wealth > best.Wealth {
			best = n
		}
	}
	if best == nil {
		return fmt.Errorf("agent %d at %v: %w", a.ID, a.Position, ErrNoReachableCapital)
	}
	return g.Move(a, best.Position)
}

// GetCash drains every Capital sharing the Forager's cell.
func GetCash(a *Agent, g *Grid) {
	for _, cash := range g.CellContents(a.Position) {
		if !cash.IsCapital() {
			continue
		}
		a.Wealth += cash.Wealth
		cash.Wealth = 0
	}
}

// EatSomething pays the Forager's upkeep. Returns true if the Forager
// starved and was reset.
func EatSomething(a *Agent, rng *rand.Rand) bool {
	a.Wealth -= a.Consume
	if a.Wealth < 0 {
		a.Resets.Starvation++
		reset(a, rng)
		return true
	}
	return false
}

// GetOlder ages the Forager by one tick. Returns true if its life ran out
// and it was reset.
func GetOlder(a *Agent, rng *rand.Rand) bool {
	a.Life--
	if a.Life <= 0 {
		a.Resets.OldAge++
		reset(a, rng)
		return true
	}
	return false
}

// reset is the soft death-and-rebirth shared by starvation and old age.
func reset(a *Agent, rng *rand.Rand) {
	a.Wealth = ResetWealth
	a.Life = DrawLife(rng)
}

// DrawLife returns a uniform lifespan in [0, MaxLife].
func DrawLife(rng *rand.Rand) int {
	return rng.Intn(MaxLife + 1)
}

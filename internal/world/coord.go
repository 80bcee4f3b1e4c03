// Package world provides the toroidal grid and spatial data structures.
// Positions are (x, y) cells; both axes wrap around.
package world

import "fmt"

// Coord represents a cell position on the grid.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns the coordinate as "(x,y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns the component-wise sum of two coordinates (unwrapped).
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// MooreOffsets defines the eight neighbor offsets of the Moore neighborhood.
// Scan order is dx outer, dy inner; the neighbor queries depend on it for
// their tie-breaking.
var MooreOffsets = [8]Coord{
	{X: -1, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
}

// wrap reduces v into [0, n).
func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

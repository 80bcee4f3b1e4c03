package world

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrInvalidSize is returned when a grid dimension is not positive.
	ErrInvalidSize = errors.New("grid dimensions must be positive")

	// ErrNotOnGrid is returned when an entity is missing from the cell its
	// position names.
	ErrNotOnGrid = errors.New("entity not on grid")
)

// Locatable is anything that can occupy a grid cell.
type Locatable interface {
	comparable
	Pos() Coord
	SetPos(Coord)
}

// Grid is a fixed-size toroidal array of cell buckets. A cell may hold any
// number of entities; buckets keep insertion order.
type Grid[T Locatable] struct {
	Width  int
	Height int

	cells [][]T // row-major, index = y*Width + x
}

// NewGrid creates an empty width×height grid.
func NewGrid[T Locatable](width, height int) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Grid[T]{
		Width:  width,
		Height: height,
		cells:  make([][]T, width*height),
	}, nil
}

// Wrap maps any coordinate onto the grid.
func (g *Grid[T]) Wrap(c Coord) Coord {
	return Coord{X: wrap(c.X, g.Width), Y: wrap(c.Y, g.Height)}
}

func (g *Grid[T]) index(c Coord) int {
	c = g.Wrap(c)
	return c.Y*g.Width + c.X
}

// Place adds e to the bucket at pos and records the wrapped position on e.
func (g *Grid[T]) Place(e T, pos Coord) {
	pos = g.Wrap(pos)
	i := g.index(pos)
	g.cells[i] = append(g.cells[i], e)
	e.SetPos(pos)
}

// Move removes e from the bucket at its current position and appends it to
// the bucket at to.
func (g *Grid[T]) Move(e T, to Coord) error {
	from := g.Wrap(e.Pos())
	i := g.index(from)
	at := slices.Index(g.cells[i], e)
	if at < 0 {
		return fmt.Errorf("move from %v: %w", from, ErrNotOnGrid)
	}
	g.cells[i] = slices.Delete(g.cells[i], at, at+1)

	to = g.Wrap(to)
	j := g.index(to)
	g.cells[j] = append(g.cells[j], e)
	e.SetPos(to)
	return nil
}

// CellContents returns the entities at pos. The slice is owned by the grid
// and is only valid until the next Place or Move.
func (g *Grid[T]) CellContents(pos Coord) []T {
	return g.cells[g.index(pos)]
}

// NeighborCoords returns the distinct wrapped cells of the Moore
// neighborhood of pos, in MooreOffsets order. Offsets that fold onto an
// earlier cell on small grids are dropped, and so is the center cell unless
// includeCenter is set, in which case it comes first.
func (g *Grid[T]) NeighborCoords(pos Coord, includeCenter bool) []Coord {
	center := g.Wrap(pos)
	coords := make([]Coord, 0, 9)
	if includeCenter {
		coords = append(coords, center)
	}
	for _, off := range MooreOffsets {
		c := g.Wrap(center.Add(off))
		if c == center && !includeCenter {
			continue
		}
		if slices.Contains(coords, c) {
			continue
		}
		coords = append(coords, c)
	}
	return coords
}

// Neighbors returns every entity in the Moore neighborhood of pos. Cells are
// visited in NeighborCoords order and each bucket in insertion order, so the
// result is stable for a given grid state.
func (g *Grid[T]) Neighbors(pos Coord, includeCenter bool) []T {
	var result []T
	for _, c := range g.NeighborCoords(pos, includeCenter) {
		result = append(result, g.cells[g.index(c)]...)
	}
	return result
}

// Count returns the total number of entities on the grid.
func (g *Grid[T]) Count() int {
	n := 0
	for _, bucket := range g.cells {
		n += len(bucket)
	}
	return n
}

// CellCount returns the number of cells in the grid.
func (g *Grid[T]) CellCount() int {
	return g.Width * g.Height
}

// String returns a summary of the grid.
func (g *Grid[T]) String() string {
	return fmt.Sprintf("Grid(%dx%d, entities=%d)", g.Width, g.Height, g.Count())
}

package core

import "fmt"

// Cell is the value held by one grid position: Empty, or an agent type tag.
type Cell uint8

// Empty marks a vacant position.
const Empty Cell = 0

// Agent returns the cell value for agent type t, with t in [0, 255);
// larger tags do not fit the cell representation.
func Agent(t int) Cell { return Cell(t + 1) }

// IsEmpty reports whether the cell is vacant.
func (c Cell) IsEmpty() bool { return c == Empty }

// Type returns the zero-based agent type tag. Only meaningful for
// occupied cells; Empty yields -1.
func (c Cell) Type() int { return int(c) - 1 }

// Coord addresses a grid position by row and column.
type Coord struct {
	Row, Col int
}

// Grid stores a 2D grid of cell values in row-major order. All access
// goes through the bounds-checked accessors.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid allocates a grid with the given dimensions, every cell Empty.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.w }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.h }

// Size returns the total number of cells.
func (g *Grid) Size() int { return g.w * g.h }

// InBounds reports whether the coordinate lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.h && c.Col >= 0 && c.Col < g.w
}

// Index returns the linear slice index for the coordinate.
func (g *Grid) Index(c Coord) int { return c.Row*g.w + c.Col }

// At returns the value at the coordinate. An out-of-bounds coordinate is
// a logic defect in the caller and panics.
func (g *Grid) At(c Coord) Cell {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("core: coordinate (%d,%d) out of bounds for %dx%d grid", c.Row, c.Col, g.h, g.w))
	}
	return g.cells[g.Index(c)]
}

// Set stores a value at the coordinate, panicking on out-of-bounds access.
func (g *Grid) Set(c Coord, v Cell) {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("core: coordinate (%d,%d) out of bounds for %dx%d grid", c.Row, c.Col, g.h, g.w))
	}
	g.cells[g.Index(c)] = v
}

// Cells exposes the backing slice in row-major order.
func (g *Grid) Cells() []Cell { return g.cells }

package segregation

import (
	"github.com/SkyeWong/social-segregation-simulator/internal/core"
)

// World runs Schelling's model of segregation on a bounded grid. Agents
// occupy cells and relocate to vacant cells whenever too few of their
// occupied neighbours share their type.
type World struct {
	cfg Config

	grid    *core.Grid
	display []uint8

	rng       *core.RNG
	iteration int
	state     State
}

// New returns a segregation world with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig validates the configuration and allocates the world.
// Call Reset before stepping.
func NewWithConfig(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &World{
		cfg:     cfg,
		grid:    core.NewGrid(cfg.Width, cfg.Height),
		display: make([]uint8, cfg.Width*cfg.Height),
		rng:     core.NewRNG(cfg.Seed),
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "segregation" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cfg.Width, H: w.cfg.Height} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Grid exposes the underlying grid.
func (w *World) Grid() *core.Grid { return w.grid }

// Iteration returns the number of completed update passes.
func (w *World) Iteration() int { return w.iteration }

// State reports the loop status.
func (w *World) State() State { return w.state }

// Config returns the configuration the world was built with.
func (w *World) Config() Config { return w.cfg }

// Reset places the initial population using deterministic randomness.
// Every cell first receives a uniformly random agent type, then exactly
// round(PercentEmpty*size) cells, chosen without replacement, are vacated.
// Per the core.Sim contract a zero seed means "use the configured seed",
// so Reset(0) and Reset(cfg.Seed) produce the same grid.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = core.NewRNG(effective)

	cells := w.grid.Cells()
	for i := range cells {
		cells[i] = core.Agent(w.rng.IntN(w.cfg.AgentTypes))
	}
	perm := w.rng.Perm(len(cells))
	for _, idx := range perm[:w.cfg.EmptyCells()] {
		cells[idx] = core.Empty
	}

	w.iteration = 0
	w.state = Running
	w.refreshDisplay()
}

// NeighborsOf returns the values of all in-bounds Moore-neighbourhood
// cells of c, up to 8, never including c itself. Pure function of the grid.
func NeighborsOf(g *core.Grid, c core.Coord) []core.Cell {
	out := make([]core.Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := core.Coord{Row: c.Row + dr, Col: c.Col + dc}
			if g.InBounds(n) {
				out = append(out, g.At(n))
			}
		}
	}
	return out
}

// IsUnhappy applies the similarity threshold to a neighbourhood. An agent
// with no occupied neighbours is happy by convention; otherwise it is
// unhappy iff strictly fewer than threshold*occupied neighbours share its
// type, so hitting the threshold exactly counts as happy.
func IsUnhappy(current core.Cell, neighbors []core.Cell, threshold float64) bool {
	occupied, same := 0, 0
	for _, v := range neighbors {
		if v.IsEmpty() {
			continue
		}
		occupied++
		if v == current {
			same++
		}
	}
	if occupied == 0 {
		return false
	}
	return float64(same) < float64(occupied)*threshold
}

// unhappyCells scans the grid row-major and collects every occupied
// coordinate whose neighbourhood fails the similarity threshold.
func (w *World) unhappyCells() []core.Coord {
	var unhappy []core.Coord
	for row := 0; row < w.grid.Height(); row++ {
		for col := 0; col < w.grid.Width(); col++ {
			c := core.Coord{Row: row, Col: col}
			v := w.grid.At(c)
			if v.IsEmpty() {
				continue
			}
			if IsUnhappy(v, NeighborsOf(w.grid, c), w.cfg.SameNeighbour) {
				unhappy = append(unhappy, c)
			}
		}
	}
	return unhappy
}

func (w *World) refreshDisplay() {
	for i, v := range w.grid.Cells() {
		w.display[i] = uint8(v)
	}
}

func init() {
	core.Register("segregation", func(cfg map[string]string) core.Sim {
		world, err := NewWithConfig(FromMap(cfg))
		if err != nil {
			world, _ = NewWithConfig(DefaultConfig())
		}
		return world
	})
}

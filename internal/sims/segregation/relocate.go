package segregation

import (
	"github.com/SkyeWong/social-segregation-simulator/internal/core"
)

// relocate moves every unhappy agent to a vacant cell chosen uniformly at
// random, processing the agents in a shuffled order. The working vacancy
// list is snapshotted once up front; when it runs out mid-pass the grid is
// rescanned, which deliberately makes cells vacated earlier in the same
// pass eligible as destinations. A pre-computed static destination list
// would change the model's dynamics, so the rescan is load-bearing.
func (w *World) relocate(unhappy []core.Coord) error {
	w.rng.Shuffle(len(unhappy), func(i, j int) {
		unhappy[i], unhappy[j] = unhappy[j], unhappy[i]
	})

	empty := w.emptyCells()
	for _, src := range unhappy {
		if len(empty) == 0 {
			empty = w.emptyCells()
			if len(empty) == 0 {
				return ErrNoVacancies
			}
		}
		i := w.rng.IntN(len(empty))
		dst := empty[i]
		w.grid.Set(dst, w.grid.At(src))
		w.grid.Set(src, core.Empty)
		empty = append(empty[:i], empty[i+1:]...)
	}
	return nil
}

// emptyCells returns every currently vacant coordinate in row-major order.
func (w *World) emptyCells() []core.Coord {
	var empty []core.Coord
	for row := 0; row < w.grid.Height(); row++ {
		for col := 0; col < w.grid.Width(); col++ {
			c := core.Coord{Row: row, Col: col}
			if w.grid.At(c).IsEmpty() {
				empty = append(empty, c)
			}
		}
	}
	return empty
}

package segregation

import (
	"github.com/SkyeWong/social-segregation-simulator/internal/core"
)

// State reports the simulation loop status.
type State int

const (
	// Running means further update passes may change the grid.
	Running State = iota
	// Converged means no agent is unhappy; the grid will not change again.
	Converged
	// BudgetExhausted means the configured iteration cap was reached.
	BudgetExhausted
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Converged:
		return "converged"
	case BudgetExhausted:
		return "budget exhausted"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view of the world emitted after each
// completed update pass.
type Snapshot struct {
	Iteration    int
	Unhappy      int
	PercentHappy float64
	Width        int
	Height       int
	Cells        []core.Cell
}

// Observer receives a snapshot after every completed update pass.
type Observer func(Snapshot)

// Snapshot captures the current grid state with a fresh happiness count.
func (w *World) Snapshot() Snapshot {
	return w.snapshot(len(w.unhappyCells()))
}

func (w *World) snapshot(unhappy int) Snapshot {
	size := w.grid.Size()
	return Snapshot{
		Iteration:    w.iteration,
		Unhappy:      unhappy,
		PercentHappy: float64(size-unhappy) / float64(size) * 100,
		Width:        w.grid.Width(),
		Height:       w.grid.Height(),
		Cells:        append([]core.Cell(nil), w.grid.Cells()...),
	}
}

// advance performs one classify/relocate pass. It returns the number of
// unhappy cells found before relocating, zero when the world converged
// without moving anyone.
func (w *World) advance() (int, error) {
	unhappy := w.unhappyCells()
	if len(unhappy) == 0 {
		w.state = Converged
		return 0, nil
	}
	if err := w.relocate(unhappy); err != nil {
		return 0, err
	}
	w.iteration++
	w.refreshDisplay()
	if w.cfg.Iterations != Unbounded && w.iteration >= w.cfg.Iterations {
		w.state = BudgetExhausted
	}
	return len(unhappy), nil
}

// Step advances the simulation by one update pass. Once the world has
// reached a terminal state further steps leave the grid unchanged.
func (w *World) Step() {
	if w.state != Running {
		return
	}
	// The configuration guarantees at least one vacancy, so the pass
	// cannot fail mid-run.
	_, _ = w.advance()
}

// Run drives the loop until the world converges or the iteration budget
// is spent, invoking obs with a snapshot after every completed pass. It
// returns the terminal state; the caller decides what happens next.
func (w *World) Run(obs Observer) (State, error) {
	for w.state == Running {
		unhappy, err := w.advance()
		if err != nil {
			return w.state, err
		}
		if unhappy > 0 && obs != nil {
			obs(w.snapshot(unhappy))
		}
	}
	return w.state, nil
}

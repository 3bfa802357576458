package segregation

import (
	"slices"
	"testing"

	"github.com/SkyeWong/social-segregation-simulator/internal/core"
)

func countCells(g *core.Grid) map[core.Cell]int {
	counts := make(map[core.Cell]int)
	for _, v := range g.Cells() {
		counts[v]++
	}
	return counts
}

func mustWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	w, err := NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig(%+v): %v", cfg, err)
	}
	return w
}

func TestIsUnhappyThresholdBoundary(t *testing.T) {
	a, b := core.Agent(0), core.Agent(1)

	// 2 of 4 occupied neighbours match: exactly the 0.5 threshold, which
	// counts as happy.
	neighbors := []core.Cell{a, a, b, b, core.Empty, core.Empty}
	if IsUnhappy(a, neighbors, 0.5) {
		t.Fatal("hitting the threshold exactly must be happy")
	}
	if !IsUnhappy(a, neighbors, 0.51) {
		t.Fatal("falling below the threshold must be unhappy")
	}
	if IsUnhappy(a, neighbors, 0) {
		t.Fatal("a zero threshold never produces unhappiness")
	}
}

func TestIsUnhappyIsolatedCellConvention(t *testing.T) {
	a := core.Agent(0)
	if IsUnhappy(a, nil, 0.9) {
		t.Fatal("an agent with no neighbours must be happy")
	}
	if IsUnhappy(a, []core.Cell{core.Empty, core.Empty, core.Empty}, 0.9) {
		t.Fatal("an agent with only vacant neighbours must be happy")
	}
}

func TestNeighborsOfClipsAtEdges(t *testing.T) {
	g := core.NewGrid(3, 3)
	for i := range g.Cells() {
		g.Cells()[i] = core.Cell(i + 1)
	}
	// Cell values are 1..9 laid out row-major, so neighbourhoods can be
	// checked exactly.

	center := NeighborsOf(g, core.Coord{Row: 1, Col: 1})
	wantCenter := []core.Cell{1, 2, 3, 4, 6, 7, 8, 9}
	if !slices.Equal(center, wantCenter) {
		t.Fatalf("center neighbours = %v, want %v", center, wantCenter)
	}

	corner := NeighborsOf(g, core.Coord{Row: 0, Col: 0})
	wantCorner := []core.Cell{2, 4, 5}
	if !slices.Equal(corner, wantCorner) {
		t.Fatalf("corner neighbours = %v, want %v", corner, wantCorner)
	}

	edge := NeighborsOf(g, core.Coord{Row: 2, Col: 1})
	wantEdge := []core.Cell{4, 5, 6, 7, 9}
	if !slices.Equal(edge, wantEdge) {
		t.Fatalf("edge neighbours = %v, want %v", edge, wantEdge)
	}
}

func TestResetPlacesPopulation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 10
	cfg.Height = 10
	cfg.AgentTypes = 3
	cfg.PercentEmpty = 0.4

	w := mustWorld(t, cfg)
	w.Reset(0)

	counts := countCells(w.Grid())
	if counts[core.Empty] != cfg.EmptyCells() {
		t.Fatalf("vacant cells = %d, want %d", counts[core.Empty], cfg.EmptyCells())
	}
	for v := range counts {
		if v == core.Empty {
			continue
		}
		if tag := v.Type(); tag < 0 || tag >= cfg.AgentTypes {
			t.Fatalf("cell value %v outside the configured agent types", v)
		}
	}

	for i, v := range w.Grid().Cells() {
		if w.Cells()[i] != uint8(v) {
			t.Fatalf("display buffer out of sync at index %d", i)
		}
	}

	if w.Iteration() != 0 || w.State() != Running {
		t.Fatalf("fresh world must be running at iteration 0, got %v/%d", w.State(), w.Iteration())
	}
}

func TestMaxAgentTypesKeepsPlacementExact(t *testing.T) {
	// The highest representable tag must not alias Empty: with every
	// type in play the vacancy count stays exactly round(p*size) and
	// every occupant carries a valid tag.
	cfg := DefaultConfig()
	cfg.Width = 60
	cfg.Height = 60
	cfg.AgentTypes = MaxAgentTypes
	cfg.PercentEmpty = 0.1

	if err := cfg.Validate(); err != nil {
		t.Fatalf("%d agent types must be accepted: %v", MaxAgentTypes, err)
	}

	w := mustWorld(t, cfg)
	w.Reset(0)

	counts := countCells(w.Grid())
	if counts[core.Empty] != 360 {
		t.Fatalf("empty cells = %d, want exactly 360", counts[core.Empty])
	}
	for v := range counts {
		if v == core.Empty {
			continue
		}
		if tag := v.Type(); tag < 0 || tag >= cfg.AgentTypes {
			t.Fatalf("cell value %d carries tag %d outside [0,%d)", v, tag, cfg.AgentTypes)
		}
	}

	cfg.AgentTypes = MaxAgentTypes + 1
	if _, err := NewWithConfig(cfg); err == nil {
		t.Fatalf("%d agent types must be rejected at construction", cfg.AgentTypes)
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 16
	cfg.Height = 12
	cfg.Seed = 99

	w := mustWorld(t, cfg)
	w.Reset(0)
	initial := append([]core.Cell(nil), w.Grid().Cells()...)

	// Mutate state to ensure Reset rebuilds from scratch.
	w.Grid().Cells()[0] = core.Agent(1)
	w.Reset(0)
	if !slices.Equal(initial, w.Grid().Cells()) {
		t.Fatal("Reset with config seed not deterministic")
	}

	w.Reset(777)
	seeded := append([]core.Cell(nil), w.Grid().Cells()...)
	w.Reset(777)
	if !slices.Equal(seeded, w.Grid().Cells()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initial, seeded) {
		t.Fatal("different seeds should produce different initial grids")
	}

	// Zero is not a usable seed: it stands for the configured seed.
	w.Reset(cfg.Seed)
	if !slices.Equal(initial, w.Grid().Cells()) {
		t.Fatal("Reset(0) must match Reset with the configured seed")
	}
}

func TestConservationAcrossPasses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 10
	cfg.Height = 10
	cfg.AgentTypes = 2
	cfg.PercentEmpty = 0.3
	cfg.SameNeighbour = 0.6
	cfg.Seed = 7

	w := mustWorld(t, cfg)
	w.Reset(0)
	before := countCells(w.Grid())

	for pass := 0; pass < 5; pass++ {
		w.Step()
		after := countCells(w.Grid())
		for v, n := range before {
			if after[v] != n {
				t.Fatalf("pass %d: count of %v changed from %d to %d", pass+1, v, n, after[v])
			}
		}
		if len(after) != len(before) {
			t.Fatalf("pass %d: cell value set changed", pass+1)
		}
	}
}

func TestRelocationVacatesUnhappySources(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 5
	cfg.Height = 1
	cfg.AgentTypes = 2
	cfg.PercentEmpty = 0.2
	cfg.SameNeighbour = 0.5

	w := mustWorld(t, cfg)
	a, b := core.Agent(0), core.Agent(1)
	copy(w.Grid().Cells(), []core.Cell{a, b, a, b, core.Empty})

	unhappy := w.unhappyCells()
	if len(unhappy) != 4 {
		t.Fatalf("expected all 4 agents unhappy, got %v", unhappy)
	}

	// Four movers but a single vacancy: the pass must fall back to
	// rescanning the grid for cells vacated earlier in the same pass.
	if err := w.relocate(unhappy); err != nil {
		t.Fatalf("relocate: %v", err)
	}

	counts := countCells(w.Grid())
	if counts[core.Empty] != 1 {
		t.Fatalf("vacancy count changed: %d", counts[core.Empty])
	}
	if counts[a] != 2 || counts[b] != 2 {
		t.Fatalf("agent multiset changed: %v", counts)
	}
}

func TestSingleTypeWithCenterVacancyConverges(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 3
	cfg.Height = 3
	cfg.AgentTypes = 1
	cfg.PercentEmpty = 0.1
	cfg.SameNeighbour = 0.5

	w := mustWorld(t, cfg)
	for i := range w.Grid().Cells() {
		w.Grid().Cells()[i] = core.Agent(0)
	}
	w.Grid().Set(core.Coord{Row: 1, Col: 1}, core.Empty)
	w.refreshDisplay()

	state, err := w.Run(func(Snapshot) {
		t.Fatal("a fully happy grid must not emit update snapshots")
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if state != Converged {
		t.Fatalf("state = %v, want Converged", state)
	}
	if w.Iteration() != 0 {
		t.Fatalf("no pass should complete, iteration = %d", w.Iteration())
	}
	if got := w.Snapshot().PercentHappy; got != 100 {
		t.Fatalf("PercentHappy = %v, want 100", got)
	}
}

func TestStepAfterTerminalStateIsNoop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.AgentTypes = 1
	cfg.PercentEmpty = 0.25

	w := mustWorld(t, cfg)
	for i := range w.Grid().Cells() {
		w.Grid().Cells()[i] = core.Agent(0)
	}
	w.Grid().Set(core.Coord{Row: 0, Col: 0}, core.Empty)
	w.refreshDisplay()

	w.Step()
	if w.State() != Converged {
		t.Fatalf("state = %v, want Converged", w.State())
	}
	frozen := append([]core.Cell(nil), w.Grid().Cells()...)

	w.Step()
	w.Step()
	if !slices.Equal(frozen, w.Grid().Cells()) {
		t.Fatal("steps after convergence must leave the grid unchanged")
	}
	if len(w.unhappyCells()) != 0 {
		t.Fatal("re-classifying a converged grid must find no unhappy cells")
	}
}

func TestBuildPalette(t *testing.T) {
	p := BuildPalette(4)
	if len(p) != 5 {
		t.Fatalf("palette length = %d, want 5", len(p))
	}
	if p[0].R > 40 || p[0].G > 40 || p[0].B > 40 {
		t.Fatalf("vacant colour should be near black, got %v", p[0])
	}
	seen := make(map[[4]uint8]bool)
	for _, c := range p {
		key := [4]uint8{c.R, c.G, c.B, c.A}
		if seen[key] {
			t.Fatalf("palette colours must be distinct, %v repeated", c)
		}
		seen[key] = true
	}
}

package core

import "testing"

func TestGridAccessors(t *testing.T) {
	g := NewGrid(3, 2)
	if g.Width() != 3 || g.Height() != 2 || g.Size() != 6 {
		t.Fatalf("unexpected dimensions: %dx%d size %d", g.Width(), g.Height(), g.Size())
	}

	c := Coord{Row: 1, Col: 2}
	g.Set(c, Agent(4))
	if got := g.At(c); got != Agent(4) {
		t.Fatalf("At(%v) = %v, want %v", c, got, Agent(4))
	}
	if got := g.Cells()[g.Index(c)]; got != Agent(4) {
		t.Fatalf("backing slice at index %d = %v, want %v", g.Index(c), got, Agent(4))
	}

	if g.InBounds(Coord{Row: 2, Col: 0}) {
		t.Fatal("row 2 should be out of bounds on a height-2 grid")
	}
	if !g.InBounds(Coord{Row: 0, Col: 0}) {
		t.Fatal("origin should be in bounds")
	}
}

func TestGridOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(2, 2)

	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Fatalf("%s did not panic on out-of-bounds access", name)
			}
		}()
		fn()
	}

	assertPanics("At", func() { g.At(Coord{Row: -1, Col: 0}) })
	assertPanics("Set", func() { g.Set(Coord{Row: 0, Col: 2}, Empty) })
}

func TestCellTags(t *testing.T) {
	if !Empty.IsEmpty() {
		t.Fatal("Empty must report IsEmpty")
	}
	if Agent(0).IsEmpty() {
		t.Fatal("Agent(0) must be occupied")
	}
	if Agent(0) == Empty {
		t.Fatal("Agent(0) must be distinct from Empty")
	}
	for tag := 0; tag < 5; tag++ {
		if got := Agent(tag).Type(); got != tag {
			t.Fatalf("Agent(%d).Type() = %d", tag, got)
		}
	}
}

package layout

import (
	"fmt"
	"math"
	"reflect"
	"testing"
)

func uniformSizes(ids []string, w, h float64) map[string]Size {
	sizes := make(map[string]Size, len(ids))
	for _, id := range ids {
		sizes[id] = Size{Width: w, Height: h}
	}
	return sizes
}

// rectsOverlap reports whether two center-positioned rectangles intersect
// with positive area.
func rectsOverlap(p1 Point, s1 Size, p2 Point, s2 Size) bool {
	return math.Abs(p1.X-p2.X) < (s1.Width+s2.Width)/2 &&
		math.Abs(p1.Y-p2.Y) < (s1.Height+s2.Height)/2
}

func assertFinite(t *testing.T, positions map[string]Point) {
	t.Helper()
	for id, p := range positions {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("node %s has non-finite position %v", id, p)
		}
	}
}

func assertNoOverlap(t *testing.T, positions map[string]Point, sizes map[string]Size) {
	t.Helper()
	ids := make([]string, 0, len(positions))
	for id := range positions {
		ids = append(ids, id)
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			a, b := ids[i], ids[j]
			if rectsOverlap(positions[a], sizes[a], positions[b], sizes[b]) {
				t.Errorf("nodes %s and %s overlap: %v/%v vs %v/%v",
					a, b, positions[a], sizes[a], positions[b], sizes[b])
			}
		}
	}
}

func TestLayered_Empty(t *testing.T) {
	positions := layered(nil, nil, nil, Horizontal, DefaultTuning())
	if len(positions) != 0 {
		t.Errorf("layered(empty) returned %d positions, want 0", len(positions))
	}
}

func TestLayered_RankChain(t *testing.T) {
	// A references nothing, B depends on A, C depends on both A and B, so
	// the longest-path ranks are A=0, B=1, C=2.
	ids := []string{"a", "b", "c"}
	sizes := uniformSizes(ids, 160, 80)
	edges := []Edge{{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "b", To: "c"}}

	tuning := DefaultTuning()
	if got := tuning.flatOrientation(len(ids)); got != Horizontal {
		t.Fatalf("flatOrientation(3) = %v, want horizontal", got)
	}

	positions := layered(ids, sizes, edges, Horizontal, tuning)
	if len(positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(positions))
	}
	assertFinite(t, positions)
	assertNoOverlap(t, positions, sizes)

	if !(positions["a"].X < positions["b"].X) {
		t.Errorf("rank order violated: a.X=%g not left of b.X=%g", positions["a"].X, positions["b"].X)
	}
	if !(positions["b"].X < positions["c"].X) {
		t.Errorf("rank order violated: b.X=%g not left of c.X=%g", positions["b"].X, positions["c"].X)
	}
}

func TestLayered_CycleTerminates(t *testing.T) {
	// Circular foreign keys must not hang rank assignment.
	ids := []string{"a", "b", "c"}
	sizes := uniformSizes(ids, 160, 80)
	edges := []Edge{{From: "a", To: "b"}, {From: "b", To: "c"}, {From: "c", To: "a"}}

	positions := layered(ids, sizes, edges, Horizontal, DefaultTuning())
	if len(positions) != 3 {
		t.Fatalf("got %d positions, want 3", len(positions))
	}
	assertFinite(t, positions)
	assertNoOverlap(t, positions, sizes)
}

func TestLayered_SelfLoopIgnored(t *testing.T) {
	ids := []string{"a", "b"}
	sizes := uniformSizes(ids, 160, 80)
	edges := []Edge{{From: "a", To: "a"}, {From: "a", To: "b"}}

	positions := layered(ids, sizes, edges, Horizontal, DefaultTuning())
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	if !(positions["a"].X < positions["b"].X) {
		t.Errorf("a.X=%g not left of b.X=%g", positions["a"].X, positions["b"].X)
	}
}

func TestLayered_DanglingEdgeDropped(t *testing.T) {
	ids := []string{"a", "b"}
	sizes := uniformSizes(ids, 160, 80)
	edges := []Edge{{From: "a", To: "ghost"}, {From: "phantom", To: "b"}}

	positions := layered(ids, sizes, edges, Horizontal, DefaultTuning())
	if len(positions) != 2 {
		t.Fatalf("got %d positions, want 2", len(positions))
	}
	if _, ok := positions["ghost"]; ok {
		t.Error("output contains the dangling node id ghost")
	}
}

func TestLayered_DisconnectedComponents(t *testing.T) {
	ids := []string{"a", "b", "x", "y"}
	sizes := uniformSizes(ids, 160, 80)
	edges := []Edge{{From: "a", To: "b"}, {From: "x", To: "y"}}

	positions := layered(ids, sizes, edges, Horizontal, DefaultTuning())
	if len(positions) != 4 {
		t.Fatalf("got %d positions, want 4", len(positions))
	}
	assertNoOverlap(t, positions, sizes)
}

func TestLayered_VerticalChain(t *testing.T) {
	var ids []string
	var edges []Edge
	for i := 0; i < 30; i++ {
		ids = append(ids, fmt.Sprintf("t%02d", i))
		if i > 0 {
			edges = append(edges, Edge{From: fmt.Sprintf("t%02d", i-1), To: fmt.Sprintf("t%02d", i)})
		}
	}
	sizes := uniformSizes(ids, 160, 80)

	tuning := DefaultTuning()
	if got := tuning.flatOrientation(len(ids)); got != Vertical {
		t.Fatalf("flatOrientation(30) = %v, want vertical", got)
	}

	positions := layered(ids, sizes, edges, Vertical, tuning)
	assertNoOverlap(t, positions, sizes)
	for i := 1; i < 30; i++ {
		prev, cur := fmt.Sprintf("t%02d", i-1), fmt.Sprintf("t%02d", i)
		if !(positions[prev].Y < positions[cur].Y) {
			t.Errorf("vertical rank order violated at %s: %g !< %g", cur, positions[prev].Y, positions[cur].Y)
		}
	}
}

func TestLayered_Deterministic(t *testing.T) {
	ids := []string{"orders", "users", "items", "payments", "refunds"}
	sizes := uniformSizes(ids, 180, 100)
	edges := []Edge{
		{From: "users", To: "orders"},
		{From: "orders", To: "items"},
		{From: "orders", To: "payments"},
		{From: "payments", To: "refunds"},
	}

	a := layered(ids, sizes, edges, Horizontal, DefaultTuning())
	b := layered(ids, sizes, edges, Horizontal, DefaultTuning())
	if !reflect.DeepEqual(a, b) {
		t.Errorf("layered not deterministic:\n%v\nvs\n%v", a, b)
	}
}

func TestTuning_SpacingSteps(t *testing.T) {
	tuning := DefaultTuning()
	smallNode, smallRank := tuning.spacing(5)
	largeNode, largeRank := tuning.spacing(100)
	if smallNode >= largeNode {
		t.Errorf("node gap did not grow with node count: %g >= %g", smallNode, largeNode)
	}
	if smallRank >= largeRank {
		t.Errorf("rank gap did not grow with node count: %g >= %g", smallRank, largeRank)
	}
}

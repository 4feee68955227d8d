package layout

import (
	"reflect"
	"testing"
)

func testGraph() Graph {
	return Graph{
		Entities: []Entity{
			{ID: "users", Fields: []Field{{Name: "id", Type: "int"}}},
			{ID: "orders", Fields: []Field{{Name: "id", Type: "int"}, {Name: "user_id", Type: "int"}}},
			{ID: "items", Fields: []Field{{Name: "id", Type: "int"}, {Name: "order_id", Type: "int"}}},
		},
		Edges: []Edge{
			{From: "users", To: "orders"},
			{From: "orders", To: "items"},
		},
	}
}

func TestComputeLayout_Flat(t *testing.T) {
	e := NewEngine(DefaultTuning(), nil)
	result := e.ComputeLayout(testGraph(), false)

	if len(result) != 3 {
		t.Fatalf("got %d placements, want 3", len(result))
	}
	for id, p := range result {
		if p.Size.Width <= 0 || p.Size.Height <= 0 {
			t.Errorf("entity %s has non-positive size %v", id, p.Size)
		}
		if p.Pinned {
			t.Errorf("entity %s pinned in a pin-free layout", id)
		}
	}
	if !(result["users"].Pos.X < result["orders"].Pos.X && result["orders"].Pos.X < result["items"].Pos.X) {
		t.Errorf("rank order violated: users=%g orders=%g items=%g",
			result["users"].Pos.X, result["orders"].Pos.X, result["items"].Pos.X)
	}
}

func TestComputeLayout_PreservesPins(t *testing.T) {
	g := testGraph()
	g.Entities[0].Pos = Point{X: 1234, Y: 567}
	g.Entities[0].Pinned = true

	e := NewEngine(DefaultTuning(), nil)
	result := e.ComputeLayout(g, false)

	got := result["users"]
	if !got.Pinned {
		t.Error("pinned entity lost its pin flag")
	}
	if got.Pos != (Point{X: 1234, Y: 567}) {
		t.Errorf("pinned position moved to %v", got.Pos)
	}

	// Re-placed entities start past the pinned bounding box, so nothing can
	// land on the pinned node.
	pinnedRight := got.Pos.X + got.Size.Width/2
	for _, id := range []string{"orders", "items"} {
		left := result[id].Pos.X - result[id].Size.Width/2
		if left <= pinnedRight {
			t.Errorf("unpinned %s (left edge %g) overlaps pinned region ending at %g", id, left, pinnedRight)
		}
	}
}

func TestForceArrange_ClearsPins(t *testing.T) {
	g := testGraph()
	for i := range g.Entities {
		g.Entities[i].Pos = Point{X: 9999, Y: 9999}
		g.Entities[i].Pinned = true
	}

	e := NewEngine(DefaultTuning(), nil)
	result := e.ForceArrange(g, false)

	for id, p := range result {
		if p.Pinned {
			t.Errorf("entity %s still pinned after force arrange", id)
		}
		if p.Pos == (Point{X: 9999, Y: 9999}) {
			t.Errorf("entity %s kept its supplied position after force arrange", id)
		}
	}
}

func TestComputeLayout_GroupsDelegate(t *testing.T) {
	g := testGraph()
	g.Groups = []Group{
		{Name: "commerce", Members: []string{"orders", "items"}},
	}

	e := NewEngine(DefaultTuning(), nil)
	result := e.ComputeLayout(g, false)
	if len(result) != 3 {
		t.Fatalf("got %d placements, want 3", len(result))
	}
	for id, p := range result {
		if p.Pos.X < 0 || p.Pos.Y < 0 {
			t.Errorf("entity %s placed at negative coordinate %v", id, p.Pos)
		}
	}
}

func TestComputeFocus(t *testing.T) {
	e := NewEngine(DefaultTuning(), nil)
	result, included := e.ComputeFocus(testGraph(), "orders", false)

	want := []string{"items", "orders", "users"}
	if !reflect.DeepEqual(included, want) {
		t.Fatalf("included = %v, want %v", included, want)
	}
	if len(result) != 3 {
		t.Fatalf("got %d placements, want 3", len(result))
	}
}

func TestComputeFocus_UnknownCenter(t *testing.T) {
	e := NewEngine(DefaultTuning(), nil)
	result, included := e.ComputeFocus(testGraph(), "missing", false)
	if len(result) != 0 || included != nil {
		t.Errorf("unknown center produced result=%v included=%v", result, included)
	}
}

func TestComputeLayout_CollapsedSizes(t *testing.T) {
	e := NewEngine(DefaultTuning(), nil)
	expanded := e.ComputeLayout(testGraph(), false)
	collapsed := e.ComputeLayout(testGraph(), true)

	for id := range collapsed {
		if collapsed[id].Size.Height >= expanded[id].Size.Height {
			t.Errorf("entity %s collapsed height %g >= expanded height %g",
				id, collapsed[id].Size.Height, expanded[id].Size.Height)
		}
	}
}

func TestComputeLayout_DuplicateAndEmptyIDs(t *testing.T) {
	g := Graph{
		Entities: []Entity{
			{ID: "a", Label: "first"},
			{ID: "a", Label: "second"},
			{ID: ""},
			{ID: "b"},
		},
	}
	e := NewEngine(DefaultTuning(), nil)
	result := e.ComputeLayout(g, false)
	if len(result) != 2 {
		t.Fatalf("got %d placements, want 2 (duplicate and empty IDs dropped)", len(result))
	}
	if _, ok := result[""]; ok {
		t.Error("empty ID appeared in the result")
	}
}

func TestComputeLayout_EmptyGraph(t *testing.T) {
	e := NewEngine(DefaultTuning(), nil)
	result := e.ComputeLayout(Graph{}, false)
	if len(result) != 0 {
		t.Errorf("empty graph produced %d placements", len(result))
	}
}

func TestComputeLayout_Deterministic(t *testing.T) {
	g := testGraph()
	g.Groups = []Group{{Name: "commerce", Members: []string{"orders", "items"}}}

	e := NewEngine(DefaultTuning(), nil)
	a := e.ComputeLayout(g, false)
	b := e.ComputeLayout(g, false)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("ComputeLayout not deterministic:\n%v\nvs\n%v", a, b)
	}
}

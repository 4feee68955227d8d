package layout_test

import (
	"fmt"

	"github.com/erdcraft/erdcraft/pkg/layout"
)

func ExampleEstimateSize() {
	s := layout.EstimateSize("users", []layout.Field{
		{Name: "id", Type: "int"},
		{Name: "name", Type: "varchar"},
	}, false)
	fmt.Printf("%g x %g\n", s.Width, s.Height)
	// Output: 160 x 108
}

func ExampleEngine_ComputeLayout() {
	g := layout.Graph{
		Entities: []layout.Entity{{ID: "a"}, {ID: "b"}},
		Edges:    []layout.Edge{{From: "a", To: "b"}},
	}
	engine := layout.NewEngine(layout.DefaultTuning(), nil)
	result := engine.ComputeLayout(g, false)

	for _, id := range []string{"a", "b"} {
		p := result[id]
		fmt.Printf("%s: pos=(%g, %g) size=%gx%g\n", id, p.Pos.X, p.Pos.Y, p.Size.Width, p.Size.Height)
	}
	// Output:
	// a: pos=(80, 28) size=160x56
	// b: pos=(330, 28) size=160x56
}

func ExampleMinimizeCrossings() {
	positions := map[string]layout.Point{
		"u1": {X: 0, Y: 0}, "u2": {X: 0, Y: 100},
		"v1": {X: 200, Y: 0}, "v2": {X: 200, Y: 100},
	}
	edges := []layout.Edge{{From: "u1", To: "v2"}, {From: "u2", To: "v1"}}
	tuning := layout.DefaultTuning()

	before := layout.CountCrossings(positions, edges, layout.Horizontal, tuning)
	refined := layout.MinimizeCrossings(positions, edges, layout.Horizontal, tuning)
	after := layout.CountCrossings(refined, edges, layout.Horizontal, tuning)
	fmt.Printf("crossings: %d -> %d\n", before, after)
	// Output: crossings: 1 -> 0
}

func ExampleEngine_ComputeFocus() {
	g := layout.Graph{
		Entities: []layout.Entity{{ID: "users"}, {ID: "orders"}, {ID: "items"}},
		Edges: []layout.Edge{
			{From: "users", To: "orders"},
			{From: "orders", To: "items"},
		},
	}
	engine := layout.NewEngine(layout.DefaultTuning(), nil)
	_, included := engine.ComputeFocus(g, "users", false)
	fmt.Println(included)
	// Output: [orders users]
}

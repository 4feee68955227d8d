// Package pkg provides the core libraries for erdcraft diagram layout.
//
// # Overview
//
// Erdcraft computes positions for entity-relationship diagrams: tables,
// foreign-key references, and named groups go in, a placement per table
// comes out. The pkg directory is organized into a few areas:
//
//  1. [layout] - The layout core (size estimation, layered layout, group
//     composition, focus subgraphs, crossing minimization)
//  2. [schema] - The JSON diagram model and conversion to layout input
//  3. [viewstate] - Persisted positions and pins between runs
//  4. [render] - Graphviz DOT/SVG/PNG export of computed layouts
//  5. [errors], [observability], [buildinfo] - Shared plumbing
//
// # Architecture
//
// The typical data flow through erdcraft:
//
//	schema.json (tables, refs, groups)
//	         ↓
//	    [schema] package (decode + validate)
//	         ↓
//	    [viewstate] package (merge saved positions and pins)
//	         ↓
//	    [layout] package (compute placements)
//	         ↓
//	    layout.json / [render] package (DOT, SVG, PNG)
//
// # Quick Start
//
// Lay out a diagram and export it:
//
//	import (
//	    "github.com/erdcraft/erdcraft/pkg/layout"
//	    "github.com/erdcraft/erdcraft/pkg/render"
//	    "github.com/erdcraft/erdcraft/pkg/schema"
//	)
//
//	// 1. Load the diagram model
//	s, _ := schema.ReadFile("schema.json")
//
//	// 2. Compute placements
//	engine := layout.NewEngine(layout.DefaultTuning(), nil)
//	result := engine.ComputeLayout(s.LayoutGraph(), false)
//
//	// 3. Export as DOT with pinned positions
//	dot := render.ToDOT(s, render.Options{Result: result})
//
// # Main Packages
//
// [layout] - The pure layout core. Deterministic and synchronous: identical
// inputs always produce identical placements, every coordinate is finite,
// and dangling references are dropped rather than raised. Three modes:
// incremental (preserves pinned nodes), force (recomputes everything), and
// focus (a center node plus its direct references).
//
// [layout/perm] - Permutation enumeration (Heap's algorithm) behind the
// exact crossing minimizer.
//
// [schema] - Serialization types for diagrams (JSON with round-trip
// fidelity). Parsing SQL or spreadsheets into this format is the job of
// external collaborators.
//
// [viewstate] - The persistent position store. Keeps each node's last
// position and pinned flag so the incremental mode can preserve what the
// user dragged into place.
//
// [render] - Graphviz export. With a layout result the positions are pinned
// and rasterized by neato; without one the dot engine arranges freely and
// groups become cluster subgraphs.
//
// [errors] - Structured errors with machine-readable codes, used at the
// edges (file decoding, CLI validation). The layout core itself returns no
// errors.
//
// [observability] - Hooks around layout runs for metrics backends; the
// default is a no-op.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/layout/...     # Layout core only
//	go test -run Example         # Examples only
//
// [layout]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/layout
// [layout/perm]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/layout/perm
// [schema]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/schema
// [viewstate]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/viewstate
// [render]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/render
// [errors]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/errors
// [observability]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/erdcraft/erdcraft/pkg/buildinfo
package pkg

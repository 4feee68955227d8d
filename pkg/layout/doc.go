// Package layout computes positions and sizes for entity-relationship
// diagrams: it turns a graph of entities (tables), directed references
// (foreign keys), and optional named groups into center coordinates for
// every node.
//
// # Overview
//
// The core primitive is a Sugiyama-style layered layout: nodes are
// partitioned into ranks by longest-path depth, ordered within ranks by
// repeated barycenter sweeps, and placed with node-count-dependent spacing.
// Reference graphs may contain cycles (circular foreign keys); back edges
// found by depth-first traversal are excluded from rank propagation, so
// rank assignment always terminates.
//
// On top of the primitive sit three composites:
//
//   - the group composer lays out each named cluster independently, orders
//     the cluster blocks via a meta-graph of cross-group references, and
//     packs the blocks onto shelves;
//   - the focus layout places a center node with its 1-hop neighborhood
//     and refines it with the crossing minimizer;
//   - the crossing minimizer reorders same-rank nodes, exactly for small
//     ranks (full permutation search, bounded at 7! candidates) and by the
//     barycenter heuristic above that.
//
// # Modes
//
// [Engine] selects between three entry points. ComputeLayout is
// incremental: positions of pinned nodes are preserved verbatim and only
// the rest is re-placed. ForceArrange recomputes everything from scratch
// and clears all pins. ComputeFocus lays out a focus subgraph and reports
// which nodes it contains.
//
// # Determinism and safety
//
// Every function here is a pure, synchronous function of its inputs:
// identical inputs produce identical outputs, all coordinates are finite,
// and edges or group members referencing unknown node IDs are silently
// dropped, never raised. The input [Graph] is ephemeral and rebuilt per
// request; nothing is retained between calls. Engines are safe to share
// only if callers serialize requests, which the interaction layer is
// expected to do.
package layout

// Package viewstate is the persistent position store collaborator: it keeps
// each node's last position and pinned flag between layout runs, so the
// incremental mode can preserve what the user dragged into place.
//
// The store is a plain JSON file. Every save is stamped with a fresh
// snapshot ID so external tooling (sync, diffing) can tell revisions apart.
package viewstate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/erdcraft/erdcraft/pkg/layout"
)

// NodeState is one node's persisted view state.
type NodeState struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Pinned bool    `json:"pinned,omitempty"`
}

// View maps node IDs to their persisted state.
type View struct {
	// SnapshotID identifies the revision; regenerated on every save.
	SnapshotID string               `json:"snapshot_id,omitempty"`
	Nodes      map[string]NodeState `json:"nodes"`
}

// NewView creates an empty view.
func NewView() View {
	return View{Nodes: make(map[string]NodeState)}
}

// Load reads a view file. A missing file is not an error: it yields an
// empty view, matching a diagram that has never been arranged.
func Load(path string) (View, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewView(), nil
		}
		return View{}, fmt.Errorf("read view state %s: %w", path, err)
	}
	var v View
	if err := json.Unmarshal(data, &v); err != nil {
		return View{}, fmt.Errorf("parse view state %s: %w", path, err)
	}
	if v.Nodes == nil {
		v.Nodes = make(map[string]NodeState)
	}
	return v, nil
}

// Save writes the view to a JSON file with 0644 permissions, stamping a
// fresh snapshot ID.
func (v *View) Save(path string) error {
	v.SnapshotID = uuid.NewString()
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal view state: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write view state %s: %w", path, err)
	}
	return nil
}

// Apply merges the view into a layout graph: entities present in the view
// receive their stored position and pinned flag. Entities the view does not
// know stay untouched.
func Apply(g *layout.Graph, v View) {
	for i, ent := range g.Entities {
		if st, ok := v.Nodes[ent.ID]; ok {
			g.Entities[i].Pos = layout.Point{X: st.X, Y: st.Y}
			g.Entities[i].Pinned = st.Pinned
		}
	}
}

// Merge upserts a layout result into the view, keeping states for nodes the
// result does not cover.
func (v *View) Merge(r layout.Result) {
	for id, p := range r {
		v.Nodes[id] = NodeState{X: p.Pos.X, Y: p.Pos.Y, Pinned: p.Pinned}
	}
}

// Replace discards all stored states and adopts the layout result wholesale.
func (v *View) Replace(r layout.Result) {
	v.Nodes = make(map[string]NodeState, len(r))
	v.Merge(r)
}

// Pin marks a node as pinned at the given position. The interaction layer
// calls this when the user drags a node.
func (v *View) Pin(id string, x, y float64) {
	v.Nodes[id] = NodeState{X: x, Y: y, Pinned: true}
}

// ClearPins unpins every node, the "force arrange" reset.
func (v *View) ClearPins() {
	for id, st := range v.Nodes {
		st.Pinned = false
		v.Nodes[id] = st
	}
}

package viewstate

import (
	"path/filepath"
	"testing"

	"github.com/erdcraft/erdcraft/pkg/layout"
)

func TestLoad_MissingFile(t *testing.T) {
	v, err := Load(filepath.Join(t.TempDir(), "never-saved.json"))
	if err != nil {
		t.Fatalf("missing file must not error, got %v", err)
	}
	if len(v.Nodes) != 0 {
		t.Errorf("missing file yielded %d nodes, want 0", len(v.Nodes))
	}
	if v.Nodes == nil {
		t.Error("Nodes map is nil")
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")

	v := NewView()
	v.Pin("users", 100, 200)
	v.Nodes["orders"] = NodeState{X: 300, Y: 400}
	if err := v.Save(path); err != nil {
		t.Fatal(err)
	}
	if v.SnapshotID == "" {
		t.Error("Save did not stamp a snapshot ID")
	}

	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.SnapshotID != v.SnapshotID {
		t.Errorf("snapshot ID = %q, want %q", got.SnapshotID, v.SnapshotID)
	}
	if st := got.Nodes["users"]; st.X != 100 || st.Y != 200 || !st.Pinned {
		t.Errorf("users state = %+v", st)
	}
	if st := got.Nodes["orders"]; st.X != 300 || st.Y != 400 || st.Pinned {
		t.Errorf("orders state = %+v", st)
	}
}

func TestSave_FreshSnapshotEachTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "view.json")
	v := NewView()
	if err := v.Save(path); err != nil {
		t.Fatal(err)
	}
	first := v.SnapshotID
	if err := v.Save(path); err != nil {
		t.Fatal(err)
	}
	if v.SnapshotID == first {
		t.Error("snapshot ID not regenerated on save")
	}
}

func TestApply(t *testing.T) {
	g := layout.Graph{Entities: []layout.Entity{
		{ID: "known"},
		{ID: "unknown"},
	}}
	v := NewView()
	v.Pin("known", 50, 60)

	Apply(&g, v)

	if g.Entities[0].Pos != (layout.Point{X: 50, Y: 60}) || !g.Entities[0].Pinned {
		t.Errorf("known entity = %+v", g.Entities[0])
	}
	if g.Entities[1].Pos != (layout.Point{}) || g.Entities[1].Pinned {
		t.Errorf("unknown entity touched: %+v", g.Entities[1])
	}
}

func TestMergeAndReplace(t *testing.T) {
	v := NewView()
	v.Nodes["stale"] = NodeState{X: 1, Y: 2}

	result := layout.Result{
		"fresh": {Pos: layout.Point{X: 10, Y: 20}, Pinned: true},
	}

	v.Merge(result)
	if len(v.Nodes) != 2 {
		t.Errorf("Merge dropped existing states: %d nodes", len(v.Nodes))
	}
	if st := v.Nodes["fresh"]; st.X != 10 || st.Y != 20 || !st.Pinned {
		t.Errorf("merged state = %+v", st)
	}

	v.Replace(result)
	if len(v.Nodes) != 1 {
		t.Errorf("Replace kept stale states: %d nodes", len(v.Nodes))
	}
	if _, ok := v.Nodes["stale"]; ok {
		t.Error("stale node survived Replace")
	}
}

func TestClearPins(t *testing.T) {
	v := NewView()
	v.Pin("a", 1, 2)
	v.Pin("b", 3, 4)

	v.ClearPins()
	for id, st := range v.Nodes {
		if st.Pinned {
			t.Errorf("node %s still pinned", id)
		}
	}
	// Positions survive the unpin.
	if st := v.Nodes["a"]; st.X != 1 || st.Y != 2 {
		t.Errorf("node a position lost: %+v", st)
	}
}

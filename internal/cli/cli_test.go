package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/erdcraft/erdcraft/pkg/errors"
	"github.com/erdcraft/erdcraft/pkg/schema"
	"github.com/erdcraft/erdcraft/pkg/viewstate"
)

func writeSchemaFile(t *testing.T, dir string) string {
	t.Helper()
	s := schema.Schema{
		Tables: []schema.Table{
			{ID: "users", Fields: []schema.Field{{Name: "id", Type: "int"}}},
			{ID: "orders", Fields: []schema.Field{{Name: "user_id", Type: "int"}}},
		},
		Refs: []schema.Ref{{FromTableID: "users", ToTableID: "orders"}},
	}
	path := filepath.Join(dir, "schema.json")
	if err := schema.WriteFile(s, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunArrange_WritesLayoutFile(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)

	if err := runArrange(context.Background(), input, "", "", "", false, false); err != nil {
		t.Fatal(err)
	}

	layoutPath := filepath.Join(dir, "schema.layout.json")
	result, err := readResultFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 2 {
		t.Fatalf("layout covers %d tables, want 2", len(result))
	}
	for id, p := range result {
		if p.Size.Width <= 0 || p.Size.Height <= 0 {
			t.Errorf("table %s has non-positive size %v", id, p.Size)
		}
	}
}

func TestRunArrange_StatePinsPreserved(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)
	statePath := filepath.Join(dir, "view.json")

	view := viewstate.NewView()
	view.Pin("users", 1000, 500)
	if err := view.Save(statePath); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "out.json")
	if err := runArrange(context.Background(), input, output, statePath, "", false, false); err != nil {
		t.Fatal(err)
	}

	result, err := readResultFile(output)
	if err != nil {
		t.Fatal(err)
	}
	got := result["users"]
	if !got.Pinned || got.Pos.X != 1000 || got.Pos.Y != 500 {
		t.Errorf("pinned table moved: %+v", got)
	}

	// The state file is updated with the merged result and restamped.
	saved, err := viewstate.Load(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if len(saved.Nodes) != 2 {
		t.Errorf("saved state has %d nodes, want 2", len(saved.Nodes))
	}
	if saved.SnapshotID == view.SnapshotID {
		t.Error("snapshot ID not refreshed on save")
	}
}

func TestRunArrange_ForceClearsPins(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)
	statePath := filepath.Join(dir, "view.json")

	view := viewstate.NewView()
	view.Pin("users", 1000, 500)
	if err := view.Save(statePath); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "out.json")
	if err := runArrange(context.Background(), input, output, statePath, "", true, false); err != nil {
		t.Fatal(err)
	}

	result, err := readResultFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if result["users"].Pinned {
		t.Error("force arrange left a pin in the result")
	}
	saved, err := viewstate.Load(statePath)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Nodes["users"].Pinned {
		t.Error("force arrange left a pin in the saved state")
	}
}

func TestRunFocus(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)
	output := filepath.Join(dir, "focus.json")

	if err := runFocus(context.Background(), input, "users", output, "", false); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	var doc focusDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Center != "users" {
		t.Errorf("center = %q", doc.Center)
	}
	if len(doc.Included) != 2 || len(doc.Placements) != 2 {
		t.Errorf("included %v, placements %v", doc.Included, doc.Placements)
	}
}

func TestRunFocus_UnknownCenter(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)

	err := runFocus(context.Background(), input, "missing", "", "", false)
	if err == nil {
		t.Fatal("expected error for unknown center")
	}
	if !errors.Is(err, errors.ErrCodeNodeNotFound) {
		t.Errorf("error code = %v, want ErrCodeNodeNotFound", errors.GetCode(err))
	}
}

func TestRunExport_DOT(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)
	output := filepath.Join(dir, "diagram.dot")

	if err := runExport(context.Background(), input, "", output, "dot", false); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "digraph erd") {
		t.Errorf("DOT output missing header:\n%s", data)
	}
}

func TestRunExport_UnknownFormat(t *testing.T) {
	dir := t.TempDir()
	input := writeSchemaFile(t, dir)

	err := runExport(context.Background(), input, "", "", "gif", false)
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error code = %v, want ErrCodeInvalidFormat", errors.GetCode(err))
	}
}

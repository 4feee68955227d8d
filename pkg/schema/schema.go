// Package schema is the serialization format for the diagrams erdcraft lays
// out: tables with typed fields, foreign-key references, and named groups.
//
// The format is human-readable JSON designed for round-trip fidelity:
// import → layout → export → re-import produces identical results. Parsing
// schema definitions (SQL, Excel) into this format is the job of external
// collaborators; this package only moves bytes and converts to the layout
// core's input graph.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/erdcraft/erdcraft/pkg/errors"
	"github.com/erdcraft/erdcraft/pkg/layout"
)

// Field is one column of a table.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is one entity of the diagram.
type Table struct {
	ID     string  `json:"id"`
	Name   string  `json:"name,omitempty"` // display name (defaults to ID)
	Fields []Field `json:"fields,omitempty"`
}

// Ref is a directed foreign-key reference between two tables.
type Ref struct {
	FromTableID string `json:"from_table_id"`
	ToTableID   string `json:"to_table_id"`
}

// Group is a named cluster of tables with a display color.
type Group struct {
	Name      string   `json:"name"`
	Color     string   `json:"color,omitempty"`
	MemberIDs []string `json:"member_ids,omitempty"`
}

// Schema is the full diagram model.
type Schema struct {
	Tables []Table `json:"tables"`
	Refs   []Ref   `json:"refs,omitempty"`
	Groups []Group `json:"groups,omitempty"`
}

// Validate checks minimal structural integrity: every table needs a
// non-empty, unique ID. Dangling refs and group members are legal (the
// layout core drops them), so they are not validated here.
func (s Schema) Validate() error {
	seen := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if t.ID == "" {
			return errors.New(errors.ErrCodeInvalidSchema, "table %q has an empty id", t.Name)
		}
		if seen[t.ID] {
			return errors.New(errors.ErrCodeInvalidSchema, "duplicate table id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}

// Table returns the table with the given ID and true, or a zero Table and
// false if not found.
func (s Schema) Table(id string) (Table, bool) {
	for _, t := range s.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// LayoutGraph converts the schema to the layout core's input graph. View
// state (existing positions, pins) is merged in separately by the viewstate
// package, so the returned entities carry neither.
func (s Schema) LayoutGraph() layout.Graph {
	g := layout.Graph{
		Entities: make([]layout.Entity, len(s.Tables)),
		Edges:    make([]layout.Edge, len(s.Refs)),
		Groups:   make([]layout.Group, len(s.Groups)),
	}
	for i, t := range s.Tables {
		fields := make([]layout.Field, len(t.Fields))
		for j, f := range t.Fields {
			fields[j] = layout.Field{Name: f.Name, Type: f.Type}
		}
		g.Entities[i] = layout.Entity{ID: t.ID, Label: t.Name, Fields: fields}
	}
	for i, r := range s.Refs {
		g.Edges[i] = layout.Edge{From: r.FromTableID, To: r.ToTableID}
	}
	for i, grp := range s.Groups {
		g.Groups[i] = layout.Group{Name: grp.Name, Color: grp.Color, Members: grp.MemberIDs}
	}
	return g
}

// Marshal serializes a schema to pretty-printed JSON bytes.
func Marshal(s Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes JSON bytes into a validated schema.
func Unmarshal(data []byte) (Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return Schema{}, errors.Wrap(errors.ErrCodeInvalidSchema, err, "decode schema")
	}
	if err := s.Validate(); err != nil {
		return Schema{}, err
	}
	return s, nil
}

// Read decodes a schema from an io.Reader.
func Read(r io.Reader) (Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Schema{}, fmt.Errorf("read schema: %w", err)
	}
	return Unmarshal(data)
}

// ReadFile reads a JSON file and returns the decoded schema.
func ReadFile(path string) (Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Schema{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open schema %s", path)
		}
		return Schema{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// WriteFile writes a schema to a JSON file with 0644 permissions.
func WriteFile(s Schema, path string) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

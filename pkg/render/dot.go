// Package render exports computed layouts for external viewers. It is a
// rendering collaborator of the layout core, not part of it: nothing here
// feeds back into layout decisions.
//
// Diagrams are emitted as Graphviz DOT. With a layout result attached, node
// positions are pinned (neato's "x,y!" syntax) so Graphviz rasterizes
// exactly the geometry the engine computed; without one, the diagram is
// left to Graphviz's own dot engine and groups become cluster subgraphs.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/erdcraft/erdcraft/pkg/layout"
	"github.com/erdcraft/erdcraft/pkg/schema"
)

// Options configures DOT emission.
type Options struct {
	// Result pins every placed node to its computed position. Nodes absent
	// from the result (e.g. outside a focus subgraph) are omitted entirely.
	// When nil, all nodes are emitted unpositioned.
	Result layout.Result
	// Detailed includes one label line per field. When false, only the
	// table name is shown.
	Detailed bool
}

// ToDOT converts a schema, optionally with a computed layout, to Graphviz
// DOT. Output is deterministic for identical inputs.
func ToDOT(s schema.Schema, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph erd {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	placed := func(id string) bool {
		if opts.Result == nil {
			return true
		}
		_, ok := opts.Result[id]
		return ok
	}

	for _, t := range s.Tables {
		if !placed(t.ID) {
			continue
		}
		attrs := []string{fmt.Sprintf("label=%q", tableLabel(t, opts.Detailed))}
		if opts.Result != nil {
			p := opts.Result[t.ID]
			// Graphviz pos units are points with Y growing upward; diagram
			// coordinates grow downward.
			attrs = append(attrs,
				fmt.Sprintf("pos=\"%.2f,%.2f!\"", p.Pos.X, -p.Pos.Y),
				fmt.Sprintf("width=%.3f", p.Size.Width/72),
				fmt.Sprintf("height=%.3f", p.Size.Height/72),
				"fixedsize=true",
			)
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", t.ID, strings.Join(attrs, ", "))
	}

	// Clusters only influence the dot engine; neato ignores them, which is
	// what we want when positions are pinned.
	if opts.Result == nil {
		for i, g := range s.Groups {
			fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
			fmt.Fprintf(&buf, "    label=%q;\n", g.Name)
			if g.Color != "" {
				fmt.Fprintf(&buf, "    color=%q;\n", g.Color)
			}
			for _, id := range g.MemberIDs {
				if _, ok := s.Table(id); ok {
					fmt.Fprintf(&buf, "    %q;\n", id)
				}
			}
			buf.WriteString("  }\n")
		}
	}

	buf.WriteString("\n")
	for _, r := range s.Refs {
		_, okF := s.Table(r.FromTableID)
		_, okT := s.Table(r.ToTableID)
		if !okF || !okT || !placed(r.FromTableID) || !placed(r.ToTableID) {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", r.FromTableID, r.ToTableID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func tableLabel(t schema.Table, detailed bool) string {
	name := t.Name
	if name == "" {
		name = t.ID
	}
	if !detailed {
		return name
	}
	parts := []string{name}
	for _, f := range t.Fields {
		parts = append(parts, f.Name+" : "+f.Type)
	}
	// \l left-aligns each line in Graphviz labels.
	return strings.Join(parts, `\l`) + `\l`
}

// RenderSVG renders a DOT graph to SVG. Positioned DOT (pinned "x,y!"
// coordinates) should set positioned so the neato engine honors the pins.
func RenderSVG(ctx context.Context, dot string, positioned bool) ([]byte, error) {
	return renderFormat(ctx, dot, positioned, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG.
func RenderPNG(ctx context.Context, dot string, positioned bool) ([]byte, error) {
	return renderFormat(ctx, dot, positioned, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, positioned bool, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if positioned {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

package layout

// Point is a position in diagram coordinates. Layout positions always refer
// to the center of a node's rectangle.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size is the full extent of a node's rectangle.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Field describes one column of an entity, used for size estimation.
type Field struct {
	Name string
	Type string
}

// Entity is a node of the layout graph: one table of the schema, together
// with the view state an external collaborator supplied for it. Pos is only
// meaningful when Pinned is true; unpinned entities are always re-placed.
type Entity struct {
	ID     string
	Label  string // display label; defaults to ID when empty
	Fields []Field
	Pos    Point
	Pinned bool
}

// DisplayLabel returns the label if set, otherwise the ID.
func (e Entity) DisplayLabel() string {
	if e.Label != "" {
		return e.Label
	}
	return e.ID
}

// Edge is a directed reference between two entities. Direction matters for
// rank assignment; crossing counting treats edges as undirected. Edges whose
// endpoints do not exist in the graph are silently dropped.
type Edge struct {
	From string
	To   string
}

// Group is a named cluster of entities. Members referencing unknown entity
// IDs are ignored. An entity not listed in any group belongs to the implicit
// ungrouped cluster.
type Group struct {
	Name    string
	Color   string
	Members []string
}

// Graph is the ephemeral input of a single layout request. It is rebuilt
// from the current schema and view state for every call and never retained
// by the engine.
type Graph struct {
	Entities []Entity
	Edges    []Edge
	Groups   []Group
}

// Placement is the computed output for one entity.
type Placement struct {
	Pos    Point `json:"pos"`
	Size   Size  `json:"size"`
	Pinned bool  `json:"pinned,omitempty"`
}

// Result maps entity ID to its computed placement. It fully replaces or
// merges into the caller's persistent view state.
type Result map[string]Placement

// Orientation selects the rank-stacking axis. Vertical stacks ranks
// top-to-bottom (primary axis Y); Horizontal stacks them left-to-right
// (primary axis X).
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// primary returns the coordinate along the rank-stacking axis.
func (o Orientation) primary(p Point) float64 {
	if o == Vertical {
		return p.Y
	}
	return p.X
}

// secondary returns the coordinate along the within-rank axis.
func (o Orientation) secondary(p Point) float64 {
	if o == Vertical {
		return p.X
	}
	return p.Y
}

// withSecondary returns p with the within-rank coordinate replaced.
func (o Orientation) withSecondary(p Point, v float64) Point {
	if o == Vertical {
		return Point{X: v, Y: p.Y}
	}
	return Point{X: p.X, Y: v}
}

package layout

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/erdcraft/erdcraft/pkg/observability"
)

// Engine selects and runs a layout mode over an ephemeral graph. It holds no
// state between calls: every method is a pure function of its inputs, runs
// to completion synchronously, and never touches shared mutable state.
// Callers are responsible for not issuing overlapping requests against the
// same graph.
type Engine struct {
	tuning Tuning
	logger *log.Logger
}

// NewEngine creates an engine with the given tuning. A nil logger disables
// logging.
func NewEngine(t Tuning, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Engine{tuning: t, logger: logger}
}

// ComputeLayout is the incremental mode. When any supplied entity is pinned,
// pinned positions are kept verbatim and only the unpinned entities are
// re-placed with a flat layered layout, offset past the pinned bounding box
// so nothing lands on a pinned node. With no pins and at least one group,
// the whole layout is delegated to the group composer; otherwise it is a
// flat layered layout. Sizes always reflect the collapsed flag.
func (e *Engine) ComputeLayout(g Graph, collapsed bool) Result {
	done := e.begin("incremental", len(g.Entities))
	defer done()

	entities, sizes := prepare(g, collapsed)

	var pinned, unpinned []Entity
	for _, ent := range entities {
		if ent.Pinned {
			pinned = append(pinned, ent)
		} else {
			unpinned = append(unpinned, ent)
		}
	}

	if len(pinned) > 0 {
		e.logger.Debug("incremental layout around pins", "pinned", len(pinned), "unpinned", len(unpinned))
		return e.layoutAroundPins(g, pinned, unpinned, sizes)
	}
	if len(g.Groups) > 0 {
		e.logger.Debug("incremental layout via group composer", "groups", len(g.Groups))
		positions := composeGroups(entityIDs(entities), sizes, g.Edges, g.Groups, e.tuning, e.logger)
		return assemble(positions, entities, sizes)
	}

	orient := e.tuning.flatOrientation(len(entities))
	e.logger.Debug("incremental flat layout", "nodes", len(entities), "orientation", orient)
	positions := layered(entityIDs(entities), sizes, g.Edges, orient, e.tuning)
	return assemble(positions, entities, sizes)
}

// ForceArrange recomputes the whole layout from scratch, ignoring every
// supplied position and clearing every pin.
func (e *Engine) ForceArrange(g Graph, collapsed bool) Result {
	done := e.begin("force", len(g.Entities))
	defer done()

	entities, sizes := prepare(g, collapsed)
	for i := range entities {
		entities[i].Pinned = false
	}

	var positions map[string]Point
	if len(g.Groups) > 0 {
		positions = composeGroups(entityIDs(entities), sizes, g.Edges, g.Groups, e.tuning, e.logger)
	} else {
		positions = layered(entityIDs(entities), sizes, g.Edges, e.tuning.flatOrientation(len(entities)), e.tuning)
	}
	return assemble(positions, entities, sizes)
}

// ComputeFocus lays out the 1-hop neighborhood of the center entity and
// returns the placements plus the included entity IDs, sorted. Entities
// outside the focus subgraph are absent from the result; rendering
// collaborators use the ID set to hide them.
func (e *Engine) ComputeFocus(g Graph, centerID string, collapsed bool) (Result, []string) {
	done := e.begin("focus", len(g.Entities))
	defer done()

	entities, sizes := prepare(g, collapsed)
	positions, included := focusLayout(centerID, entityIDs(entities), sizes, g.Edges, e.tuning)
	e.logger.Debug("focus layout", "center", centerID, "included", len(included))
	return assemble(positions, entities, sizes), included
}

// layoutAroundPins keeps pinned placements verbatim and runs a flat layered
// layout over the unpinned remainder, shifted one rank gap past the pinned
// bounding box's right edge.
func (e *Engine) layoutAroundPins(g Graph, pinned, unpinned []Entity, sizes map[string]Size) Result {
	result := make(Result, len(pinned)+len(unpinned))

	maxRight := 0.0
	for _, ent := range pinned {
		result[ent.ID] = Placement{Pos: ent.Pos, Size: sizes[ent.ID], Pinned: true}
		if right := ent.Pos.X + sizes[ent.ID].Width/2; right > maxRight {
			maxRight = right
		}
	}

	orient := e.tuning.flatOrientation(len(unpinned))
	positions := layered(entityIDs(unpinned), sizes, g.Edges, orient, e.tuning)

	_, rankGap := e.tuning.spacing(len(unpinned))
	offset := maxRight + rankGap
	for id, p := range positions {
		result[id] = Placement{Pos: Point{X: p.X + offset, Y: p.Y}, Size: sizes[id]}
	}
	return result
}

// begin emits the start hook and returns the completion callback.
func (e *Engine) begin(mode string, nodes int) func() {
	start := time.Now()
	observability.Layout().OnLayoutStart(mode, nodes)
	return func() {
		observability.Layout().OnLayoutComplete(mode, nodes, time.Since(start))
	}
}

// prepare deduplicates entities by ID (first occurrence wins) and estimates
// every size under the supplied collapsed flag, so node dimensions always
// match the caller's current display mode.
func prepare(g Graph, collapsed bool) ([]Entity, map[string]Size) {
	entities := make([]Entity, 0, len(g.Entities))
	sizes := make(map[string]Size, len(g.Entities))
	for _, ent := range g.Entities {
		if _, dup := sizes[ent.ID]; dup || ent.ID == "" {
			continue
		}
		entities = append(entities, ent)
		sizes[ent.ID] = EstimateSize(ent.DisplayLabel(), ent.Fields, collapsed)
	}
	return entities, sizes
}

func entityIDs(entities []Entity) []string {
	ids := make([]string, len(entities))
	for i, ent := range entities {
		ids[i] = ent.ID
	}
	return ids
}

// assemble joins computed positions with sizes and pin flags. Only entities
// the position map covers appear in the result.
func assemble(positions map[string]Point, entities []Entity, sizes map[string]Size) Result {
	result := make(Result, len(positions))
	for _, ent := range entities {
		p, ok := positions[ent.ID]
		if !ok {
			continue
		}
		result[ent.ID] = Placement{Pos: p, Size: sizes[ent.ID], Pinned: ent.Pinned}
	}
	return result
}

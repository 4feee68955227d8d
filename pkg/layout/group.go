package layout

import (
	"cmp"
	"math"
	"slices"

	"github.com/charmbracelet/log"
)

// UngroupedName is the name of the implicit cluster holding every entity
// that no named group claims.
const UngroupedName = "ungrouped"

// groupBlock is one cluster after its internal layout: members placed in
// normalized local coordinates (bounding box top-left at the origin) plus
// the block's outer dimensions.
type groupBlock struct {
	name    string
	members []string
	local   map[string]Point
	size    Size
}

// area returns the block's bounding-box area, used by the fallback ordering.
func (b groupBlock) area() float64 { return b.size.Width * b.size.Height }

// groupOrdering is the outcome of ordering group blocks via the meta-graph.
// A failed meta-layout is not an error: it degrades to the deterministic
// area-descending order, and the reason is recorded so callers can log it
// and tests can assert the branch taken.
type groupOrdering struct {
	order    []string
	fallback bool
	reason   string
}

// composeGroups lays out each named group (plus the implicit ungrouped
// cluster) independently, orders the resulting blocks left-to-right via a
// layered layout of the group meta-graph, and packs the blocks onto shelves.
// The returned coordinates are final node centers.
func composeGroups(ids []string, sizes map[string]Size, edges []Edge, groups []Group, t Tuning, logger *log.Logger) map[string]Point {
	positions := make(map[string]Point, len(ids))
	if len(ids) == 0 {
		return positions
	}

	blocks, groupOf := buildBlocks(ids, sizes, edges, groups, t)

	metaEdges := crossGroupEdges(edges, groupOf)
	ordering := orderGroupBlocks(blocks, metaEdges, t)
	if ordering.fallback {
		logger.Debug("group meta-layout fell back to area ordering", "reason", ordering.reason)
	}

	blockByName := make(map[string]groupBlock, len(blocks))
	for _, b := range blocks {
		blockByName[b.name] = b
	}

	// Shelf packing: place blocks left to right, wrapping to a new row when
	// the next block would exceed the target width.
	targetWidth := t.PackMinWidth
	totalArea := 0.0
	for _, b := range blocks {
		totalArea += b.area()
	}
	if w := math.Sqrt(totalArea) * t.PackFactor; w > targetWidth {
		targetWidth = w
	}

	curX, curY, rowHeight := 0.0, 0.0, 0.0
	for _, name := range ordering.order {
		b := blockByName[name]
		if curX > 0 && curX+b.size.Width > targetWidth {
			curX = 0
			curY += rowHeight + t.PackGap
			rowHeight = 0
		}
		for _, id := range b.members {
			local := b.local[id]
			positions[id] = Point{X: curX + local.X, Y: curY + local.Y}
		}
		curX += b.size.Width + t.PackGap
		if b.size.Height > rowHeight {
			rowHeight = b.size.Height
		}
	}
	return positions
}

// buildBlocks partitions the nodes into groups, runs the layered layout on
// each group's internal edges, and records block dimensions. Membership is
// first-group-wins; dangling member IDs are dropped; leftovers form the
// implicit ungrouped block. Zero-member groups produce no block.
func buildBlocks(ids []string, sizes map[string]Size, edges []Edge, groups []Group, t Tuning) ([]groupBlock, map[string]string) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}

	groupOf := make(map[string]string, len(ids))
	var names []string
	membersOf := make(map[string][]string)
	for _, g := range groups {
		if _, dup := membersOf[g.Name]; dup {
			continue
		}
		var members []string
		for _, id := range g.Members {
			if idSet[id] && groupOf[id] == "" {
				groupOf[id] = g.Name
				members = append(members, id)
			}
		}
		if len(members) == 0 {
			continue
		}
		names = append(names, g.Name)
		membersOf[g.Name] = members
	}

	var leftovers []string
	for _, id := range slices.Sorted(slices.Values(ids)) {
		if groupOf[id] == "" {
			groupOf[id] = UngroupedName
			leftovers = append(leftovers, id)
		}
	}
	if len(leftovers) > 0 {
		names = append(names, UngroupedName)
		membersOf[UngroupedName] = leftovers
	}

	blocks := make([]groupBlock, 0, len(names))
	for _, name := range names {
		members := membersOf[name]
		inGroup := make(map[string]bool, len(members))
		for _, id := range members {
			inGroup[id] = true
		}
		var internal []Edge
		for _, e := range edges {
			if inGroup[e.From] && inGroup[e.To] {
				internal = append(internal, e)
			}
		}

		local := layered(members, sizes, internal, t.groupOrientation(len(members)), t)
		blocks = append(blocks, groupBlock{
			name:    name,
			members: members,
			local:   normalizeLocal(local, sizes),
			size:    bounds(local, sizes),
		})
	}
	return blocks, groupOf
}

// normalizeLocal shifts positions so the bounding box's top-left corner sits
// at the origin. The layered primitive already yields normalized output, but
// group blocks must hold the invariant regardless of how they were produced.
func normalizeLocal(positions map[string]Point, sizes map[string]Size) map[string]Point {
	minX, minY := math.Inf(1), math.Inf(1)
	for id, p := range positions {
		s := sizes[id]
		minX = min(minX, p.X-s.Width/2)
		minY = min(minY, p.Y-s.Height/2)
	}
	if math.IsInf(minX, 1) {
		return positions
	}
	out := make(map[string]Point, len(positions))
	for id, p := range positions {
		out[id] = Point{X: p.X - minX, Y: p.Y - minY}
	}
	return out
}

// crossGroupEdges projects node edges onto the group meta-graph, keeping
// only edges whose endpoints live in different groups.
func crossGroupEdges(edges []Edge, groupOf map[string]string) []Edge {
	var meta []Edge
	for _, e := range edges {
		ga, gb := groupOf[e.From], groupOf[e.To]
		if ga == "" || gb == "" || ga == gb {
			continue
		}
		meta = append(meta, Edge{From: ga, To: gb})
	}
	return meta
}

// orderGroupBlocks derives a left-to-right block order by running the
// layered primitive on the group meta-graph, with block dimensions standing
// in for node sizes. A meta-layout that leaves any block unplaced or
// produces a non-finite coordinate counts as failed and yields the
// area-descending fallback order instead.
func orderGroupBlocks(blocks []groupBlock, metaEdges []Edge, t Tuning) groupOrdering {
	names := make([]string, len(blocks))
	metaSizes := make(map[string]Size, len(blocks))
	for i, b := range blocks {
		names[i] = b.name
		metaSizes[b.name] = b.size
	}

	if len(blocks) < 2 {
		return groupOrdering{order: names}
	}

	metaPos := layered(names, metaSizes, metaEdges, Horizontal, t)
	if reason := checkMetaLayout(names, metaPos); reason != "" {
		order := slices.Clone(names)
		slices.SortFunc(order, func(a, b string) int {
			if c := cmp.Compare(metaSizes[b].Width*metaSizes[b].Height, metaSizes[a].Width*metaSizes[a].Height); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		return groupOrdering{order: order, fallback: true, reason: reason}
	}

	order := slices.Clone(names)
	slices.SortFunc(order, func(a, b string) int {
		if c := cmp.Compare(metaPos[a].X, metaPos[b].X); c != 0 {
			return c
		}
		if c := cmp.Compare(metaPos[a].Y, metaPos[b].Y); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return groupOrdering{order: order}
}

// checkMetaLayout reports why a meta-layout result is unusable, or "" when
// it is complete and finite.
func checkMetaLayout(names []string, pos map[string]Point) string {
	for _, name := range names {
		p, ok := pos[name]
		if !ok {
			return "missing placement for group " + name
		}
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return "non-finite placement for group " + name
		}
	}
	return ""
}

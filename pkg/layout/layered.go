package layout

import (
	"cmp"
	"slices"
)

// arena holds one layout request's nodes under integer indices so the graph
// algorithms never chase string keys. Edges referencing unknown IDs and self
// loops are dropped during construction, duplicates are collapsed.
type arena struct {
	ids   []string
	index map[string]int
	sizes []Size
	out   [][]int // directed adjacency
	und   [][]int // undirected adjacency (deduped)
}

func newArena(ids []string, sizes map[string]Size, edges []Edge) *arena {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	a := &arena{
		ids:   sorted,
		index: make(map[string]int, len(sorted)),
		sizes: make([]Size, len(sorted)),
		out:   make([][]int, len(sorted)),
		und:   make([][]int, len(sorted)),
	}
	for i, id := range sorted {
		a.index[id] = i
		a.sizes[i] = sizes[id]
	}

	seen := make(map[[2]int]bool, len(edges))
	for _, e := range edges {
		from, okF := a.index[e.From]
		to, okT := a.index[e.To]
		if !okF || !okT || from == to {
			continue
		}
		if seen[[2]int{from, to}] {
			continue
		}
		seen[[2]int{from, to}] = true
		a.out[from] = append(a.out[from], to)
		if !seen[[2]int{to, from}] {
			a.und[from] = append(a.und[from], to)
			a.und[to] = append(a.und[to], from)
		}
	}
	for i := range a.out {
		slices.Sort(a.out[i])
		slices.Sort(a.und[i])
	}
	return a
}

// components returns the connected components of the undirected adjacency,
// each sorted by index, ordered by their smallest member.
func (a *arena) components() [][]int {
	visited := make([]bool, len(a.ids))
	var comps [][]int
	for start := range a.ids {
		if visited[start] {
			continue
		}
		comp := []int{start}
		visited[start] = true
		for frontier := 0; frontier < len(comp); frontier++ {
			for _, next := range a.und[comp[frontier]] {
				if !visited[next] {
					visited[next] = true
					comp = append(comp, next)
				}
			}
		}
		slices.Sort(comp)
		comps = append(comps, comp)
	}
	return comps
}

// backEdges finds edges that close a directed cycle, using an iterative
// depth-first traversal with an explicit frame stack. Circular foreign keys
// are expected input, so cycle handling must not recurse unbounded.
func (a *arena) backEdges(comp []int) map[[2]int]bool {
	const (
		white = iota
		gray
		black
	)

	color := make(map[int]int, len(comp))
	back := make(map[[2]int]bool)

	type frame struct {
		node int
		next int // index into a.out[node]
	}

	for _, start := range comp {
		if color[start] != white {
			continue
		}
		stack := []frame{{node: start}}
		color[start] = gray
		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			if f.next >= len(a.out[f.node]) {
				color[f.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := a.out[f.node][f.next]
			f.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{node: child})
			case gray:
				back[[2]int{f.node, child}] = true
			}
		}
	}
	return back
}

// ranks assigns longest-path depths to the component's nodes via Kahn
// traversal, ignoring the supplied back edges. With back edges excluded the
// remaining edge set is acyclic and the traversal always terminates.
func (a *arena) ranks(comp []int, back map[[2]int]bool) map[int]int {
	inComp := make(map[int]bool, len(comp))
	for _, n := range comp {
		inComp[n] = true
	}

	forward := func(n int) []int {
		var out []int
		for _, c := range a.out[n] {
			if inComp[c] && !back[[2]int{n, c}] {
				out = append(out, c)
			}
		}
		return out
	}

	inDegree := make(map[int]int, len(comp))
	for _, n := range comp {
		for _, c := range forward(n) {
			inDegree[c]++
		}
	}

	rank := make(map[int]int, len(comp))
	var queue []int
	for _, n := range comp {
		if inDegree[n] == 0 {
			queue = append(queue, n)
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range forward(cur) {
			if r := rank[cur] + 1; r > rank[c] {
				rank[c] = r
			}
			inDegree[c]--
			if inDegree[c] == 0 {
				queue = append(queue, c)
			}
		}
	}
	return rank
}

// order arranges each rank's members with repeated barycenter sweeps: a
// downward pass orders ranks by the mean position of neighbors in the rank
// above, an upward pass by the rank below. Stable sorts keep ties in their
// current relative order, so the result is deterministic.
func (a *arena) order(rankLists [][]int, sweeps int) {
	rankOf := make(map[int]int)
	for r, members := range rankLists {
		for _, n := range members {
			rankOf[n] = r
		}
	}

	posOf := make(map[int]float64)
	refresh := func(r int) {
		for i, n := range rankLists[r] {
			posOf[n] = float64(i)
		}
	}
	for r := range rankLists {
		refresh(r)
	}

	sortRank := func(r, adjacent int) {
		members := rankLists[r]
		keys := make(map[int]float64, len(members))
		for i, n := range members {
			sum, count := 0.0, 0
			for _, nb := range a.und[n] {
				if rankOf[nb] == adjacent {
					sum += posOf[nb]
					count++
				}
			}
			if count > 0 {
				keys[n] = sum / float64(count)
			} else {
				keys[n] = float64(i)
			}
		}
		slices.SortStableFunc(members, func(x, y int) int {
			return cmp.Compare(keys[x], keys[y])
		})
		refresh(r)
	}

	for s := 0; s < sweeps; s++ {
		for r := 1; r < len(rankLists); r++ {
			sortRank(r, r-1)
		}
		for r := len(rankLists) - 2; r >= 0; r-- {
			sortRank(r, r+1)
		}
	}
}

// layered computes center coordinates for the given node IDs. It is the
// shared primitive behind the flat, per-group, meta-graph, and focus
// layouts. The returned coordinates are normalized so the overall bounding
// box starts at (0,0); every value is finite.
func layered(ids []string, sizes map[string]Size, edges []Edge, orient Orientation, t Tuning) map[string]Point {
	positions := make(map[string]Point, len(ids))
	if len(ids) == 0 {
		return positions
	}

	a := newArena(ids, sizes, edges)
	nodeGap, rankGap := t.spacing(len(a.ids))

	cursor := 0.0
	for _, comp := range a.components() {
		local, extent := a.layoutComponent(comp, orient, nodeGap, rankGap, t.OrderingSweeps)
		for n, p := range local {
			positions[a.ids[n]] = orient.withSecondary(p, orient.secondary(p)+cursor)
		}
		cursor += extent + nodeGap
	}
	return positions
}

// layoutComponent places one connected component around a local origin and
// returns its secondary-axis extent so the caller can compose components
// side by side without overlap.
func (a *arena) layoutComponent(comp []int, orient Orientation, nodeGap, rankGap float64, sweeps int) (map[int]Point, float64) {
	back := a.backEdges(comp)
	rank := a.ranks(comp, back)

	maxRank := 0
	for _, r := range rank {
		if r > maxRank {
			maxRank = r
		}
	}
	rankLists := make([][]int, maxRank+1)
	for _, n := range comp {
		rankLists[rank[n]] = append(rankLists[rank[n]], n)
	}

	a.order(rankLists, sweeps)

	primarySize := func(n int) float64 {
		if orient == Vertical {
			return a.sizes[n].Height
		}
		return a.sizes[n].Width
	}
	secondarySize := func(n int) float64 {
		if orient == Vertical {
			return a.sizes[n].Width
		}
		return a.sizes[n].Height
	}

	local := make(map[int]Point, len(comp))
	primaryCursor := 0.0
	minEdge := 0.0
	for _, members := range rankLists {
		extent := 0.0
		total := -nodeGap
		for _, n := range members {
			if s := primarySize(n); s > extent {
				extent = s
			}
			total += secondarySize(n) + nodeGap
		}

		primaryCenter := primaryCursor + extent/2
		secondaryCursor := -total / 2
		for _, n := range members {
			sec := secondaryCursor + secondarySize(n)/2
			if orient == Vertical {
				local[n] = Point{X: sec, Y: primaryCenter}
			} else {
				local[n] = Point{X: primaryCenter, Y: sec}
			}
			if edge := sec - secondarySize(n)/2; edge < minEdge {
				minEdge = edge
			}
			secondaryCursor += secondarySize(n) + nodeGap
		}
		primaryCursor += extent + rankGap
	}

	// Shift so the component's bounding box starts at zero on both axes.
	// Ranks are centered around zero on the secondary axis, so only that
	// axis needs the shift; the primary cursor already started at zero.
	width := 0.0
	for n, p := range local {
		shifted := orient.withSecondary(p, orient.secondary(p)-minEdge)
		local[n] = shifted
		if right := orient.secondary(shifted) + secondarySize(n)/2; right > width {
			width = right
		}
	}
	return local, width
}

// bounds returns the bounding box of a set of placed nodes as (width,
// height), treating positions as centers. Returns zeros for an empty set.
func bounds(positions map[string]Point, sizes map[string]Size) Size {
	first := true
	var minX, minY, maxX, maxY float64
	for id, p := range positions {
		s := sizes[id]
		left, right := p.X-s.Width/2, p.X+s.Width/2
		top, bottom := p.Y-s.Height/2, p.Y+s.Height/2
		if first {
			minX, maxX, minY, maxY = left, right, top, bottom
			first = false
			continue
		}
		minX = min(minX, left)
		maxX = max(maxX, right)
		minY = min(minY, top)
		maxY = max(maxY, bottom)
	}
	if first {
		return Size{}
	}
	return Size{Width: maxX - minX, Height: maxY - minY}
}

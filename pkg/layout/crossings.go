package layout

import (
	"cmp"
	"maps"
	"slices"

	"github.com/erdcraft/erdcraft/pkg/layout/perm"
)

// MinimizeCrossings reorders same-rank nodes of an already laid out subgraph
// to reduce edge crossings. It recovers the rank structure from the node
// coordinates themselves: nodes whose primary-axis centers lie within
// Tuning.RankTolerance of each other share a rank, and each rank's current
// secondary-axis coordinates become fixed slots. Optimization only reassigns
// which node occupies which slot; slot positions and primary-axis
// coordinates never change.
//
// Ranks with at most Tuning.ExhaustiveLimit members are solved by full
// permutation enumeration with an early exit on the first zero-crossing
// ordering; larger ranks fall back to the barycenter heuristic. Each rank's
// new order is committed before the next rank is processed, and a candidate
// order is only committed when it does not increase the crossing count, so
// the result never has more crossings than the input.
//
// The input map is not modified. With no edges between placed nodes the
// positions are returned as-is (copied).
func MinimizeCrossings(positions map[string]Point, edges []Edge, orient Orientation, t Tuning) map[string]Point {
	m := newMinimizer(positions, edges, orient, t)
	if m == nil {
		return maps.Clone(positions)
	}

	for pass := 0; pass < t.MinimizerPasses; pass++ {
		for r := range m.ranks {
			if len(m.ranks[r]) < 2 {
				continue
			}
			if len(m.ranks[r]) <= t.ExhaustiveLimit {
				m.optimizeExact(r)
			} else {
				m.optimizeBarycenter(r)
			}
		}
	}
	return m.pos
}

// CountCrossings counts edge crossings over every pair of ranks, deriving
// ranks from coordinates the same way MinimizeCrossings does. Edges are
// treated as undirected; edges inside a single rank, self loops, and edges
// with an unplaced endpoint contribute nothing.
func CountCrossings(positions map[string]Point, edges []Edge, orient Orientation, t Tuning) int {
	m := newMinimizer(positions, edges, orient, t)
	if m == nil {
		return 0
	}
	total := 0
	for r := range m.ranks {
		for other, pairs := range m.incident[r] {
			if other < r {
				continue // counted once per rank pair
			}
			total += m.countPairs(r, other, pairs, nil)
		}
	}
	return total
}

// minimizer holds the recovered rank/slot structure for one optimization run.
type minimizer struct {
	orient Orientation
	t      Tuning

	pos        map[string]Point
	ranks      [][]string            // rank -> ordered members (slot s holds member s)
	slotCoords [][]float64           // rank -> fixed secondary coordinates per slot
	rankOf     map[string]int        // node -> rank
	slotOf     map[string]int        // node -> current slot in its rank
	incident   []map[int][][2]string // rank -> other rank -> edges (member, other member)
	neighbors  map[string][]string   // undirected adjacency over placed nodes
	ws         []int                 // Fenwick buffer for inversion counting
}

// newMinimizer recovers ranks and slots from the prior layout. Returns nil
// when there is nothing to optimize (no placed nodes or no usable edges).
func newMinimizer(positions map[string]Point, edges []Edge, orient Orientation, t Tuning) *minimizer {
	if len(positions) == 0 {
		return nil
	}

	ids := slices.Sorted(maps.Keys(positions))

	// Rank discovery: sort by primary-axis center, chain-merge nodes whose
	// coordinates differ by less than the tolerance.
	byPrimary := slices.Clone(ids)
	slices.SortFunc(byPrimary, func(a, b string) int {
		if c := cmp.Compare(orient.primary(positions[a]), orient.primary(positions[b])); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	m := &minimizer{
		orient: orient,
		t:      t,
		pos:    maps.Clone(positions),
		rankOf: make(map[string]int, len(ids)),
		slotOf: make(map[string]int, len(ids)),
	}

	prev := 0.0
	for i, id := range byPrimary {
		p := orient.primary(positions[id])
		if i == 0 || p-prev >= t.RankTolerance {
			m.ranks = append(m.ranks, nil)
		}
		r := len(m.ranks) - 1
		m.ranks[r] = append(m.ranks[r], id)
		m.rankOf[id] = r
		prev = p
	}

	// Slot recovery: within each rank, current secondary coordinates in
	// ascending order become the fixed slots.
	maxWidth := 0
	m.slotCoords = make([][]float64, len(m.ranks))
	for r, members := range m.ranks {
		slices.SortFunc(members, func(a, b string) int {
			if c := cmp.Compare(orient.secondary(positions[a]), orient.secondary(positions[b])); c != 0 {
				return c
			}
			return cmp.Compare(a, b)
		})
		m.slotCoords[r] = make([]float64, len(members))
		for s, id := range members {
			m.slotCoords[r][s] = orient.secondary(positions[id])
			m.slotOf[id] = s
		}
		maxWidth = max(maxWidth, len(members))
	}
	m.ws = make([]int, maxWidth+2)

	// Edge indexing per rank pair, plus undirected adjacency for the
	// barycenter keys.
	m.incident = make([]map[int][][2]string, len(m.ranks))
	for r := range m.incident {
		m.incident[r] = make(map[int][][2]string)
	}
	m.neighbors = make(map[string][]string, len(ids))
	usable := 0
	seen := make(map[[2]string]bool, len(edges))
	for _, e := range edges {
		ra, okA := m.rankOf[e.From]
		rb, okB := m.rankOf[e.To]
		if !okA || !okB || e.From == e.To {
			continue
		}
		key := [2]string{min(e.From, e.To), max(e.From, e.To)}
		if seen[key] {
			continue
		}
		seen[key] = true
		m.neighbors[e.From] = append(m.neighbors[e.From], e.To)
		m.neighbors[e.To] = append(m.neighbors[e.To], e.From)
		if ra != rb {
			m.incident[ra][rb] = append(m.incident[ra][rb], [2]string{e.From, e.To})
			m.incident[rb][ra] = append(m.incident[rb][ra], [2]string{e.To, e.From})
			usable++
		}
	}
	if usable == 0 {
		return nil
	}
	for id := range m.neighbors {
		slices.Sort(m.neighbors[id])
	}
	return m
}

// countPairs counts inversions among the edges between rank r and another
// rank. Each pair holds (member of r, member of other). When slot is
// non-nil it overrides the current slot assignment of rank r's members,
// letting candidate permutations be scored without committing them.
func (m *minimizer) countPairs(r, other int, pairs [][2]string, slot map[string]int) int {
	if len(pairs) < 2 {
		return 0
	}

	type indexPair struct{ a, b int }
	idx := make([]indexPair, len(pairs))
	for i, p := range pairs {
		a := m.slotOf[p[0]]
		if slot != nil {
			a = slot[p[0]]
		}
		idx[i] = indexPair{a: a, b: m.slotOf[p[1]]}
	}
	slices.SortFunc(idx, func(x, y indexPair) int {
		if x.a != y.a {
			return x.a - y.a
		}
		return x.b - y.b
	})

	// Fenwick-tree inversion count over the opposite rank's slots.
	width := len(m.ranks[other]) + 1
	for i := 0; i <= width; i++ {
		m.ws[i] = 0
	}
	crossings, total := 0, 0
	for _, p := range idx {
		lessOrEqual := 0
		for q := p.b + 1; q > 0; q -= q & (-q) {
			lessOrEqual += m.ws[q]
		}
		crossings += total - lessOrEqual
		total++
		for q := p.b + 1; q <= width; q += q & (-q) {
			m.ws[q]++
		}
	}
	return crossings
}

// crossingsInvolving scores rank r against every rank it shares edges with.
// Pairs of ranks not involving r are unaffected by reordering r, so they are
// excluded from the score.
func (m *minimizer) crossingsInvolving(r int, slot map[string]int) int {
	others := slices.Sorted(maps.Keys(m.incident[r]))
	total := 0
	for _, other := range others {
		total += m.countPairs(r, other, m.incident[r][other], slot)
	}
	return total
}

// optimizeExact enumerates every permutation of rank r's slots and commits
// the one with the fewest crossings, stopping at the first zero-crossing
// ordering. The identity permutation is scored first, so the committed
// order is never worse than the current one.
func (m *minimizer) optimizeExact(r int) {
	members := m.ranks[r]
	k := len(members)

	slot := make(map[string]int, k)
	best := -1
	bestPerm := perm.Seq(k)

	perm.Each(k, func(p []int) bool {
		for s, memberIdx := range p {
			slot[members[memberIdx]] = s
		}
		score := m.crossingsInvolving(r, slot)
		if best < 0 || score < best {
			best = score
			copy(bestPerm, p)
		}
		return best != 0
	})

	ordered := make([]string, k)
	for s, memberIdx := range bestPerm {
		ordered[s] = members[memberIdx]
	}
	m.commit(r, ordered)
}

// optimizeBarycenter reorders rank r by the mean secondary-axis coordinate
// of each member's neighbors outside the rank, falling back to the member's
// own coordinate when it has none. The candidate is committed only when it
// does not increase the crossings involving r.
func (m *minimizer) optimizeBarycenter(r int) {
	members := m.ranks[r]
	keys := make(map[string]float64, len(members))
	for _, id := range members {
		sum, count := 0.0, 0
		for _, nb := range m.neighbors[id] {
			if m.rankOf[nb] != r {
				sum += m.orient.secondary(m.pos[nb])
				count++
			}
		}
		if count > 0 {
			keys[id] = sum / float64(count)
		} else {
			keys[id] = m.orient.secondary(m.pos[id])
		}
	}

	candidate := slices.Clone(members)
	slices.SortStableFunc(candidate, func(a, b string) int {
		if c := cmp.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	before := m.crossingsInvolving(r, nil)
	slot := make(map[string]int, len(candidate))
	for s, id := range candidate {
		slot[id] = s
	}
	if m.crossingsInvolving(r, slot) <= before {
		m.commit(r, candidate)
	}
}

// commit reassigns rank r's slots to the given member order and moves the
// members onto their new slot coordinates, so later ranks in the same pass
// see the updated positions.
func (m *minimizer) commit(r int, ordered []string) {
	m.ranks[r] = ordered
	for s, id := range ordered {
		m.slotOf[id] = s
		m.pos[id] = m.orient.withSecondary(m.pos[id], m.slotCoords[r][s])
	}
}

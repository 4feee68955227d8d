package layout

import "slices"

// focusLayout lays out the induced subgraph of a center node and its 1-hop
// neighborhood: a coarse layered pass over the subgraph, refined by the
// crossing minimizer. It returns the final positions and the sorted set of
// included node IDs so a rendering collaborator can hide everything else.
//
// An unknown center ID yields an empty result, consistent with the rule that
// dangling references are dropped rather than raised.
func focusLayout(centerID string, ids []string, sizes map[string]Size, edges []Edge, t Tuning) (map[string]Point, []string) {
	idSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
	}
	if !idSet[centerID] {
		return map[string]Point{}, nil
	}

	included := map[string]bool{centerID: true}
	for _, e := range edges {
		if e.From == centerID && idSet[e.To] {
			included[e.To] = true
		}
		if e.To == centerID && idSet[e.From] {
			included[e.From] = true
		}
	}

	var induced []Edge
	for _, e := range edges {
		if included[e.From] && included[e.To] {
			induced = append(induced, e)
		}
	}

	subIDs := make([]string, 0, len(included))
	for id := range included {
		subIDs = append(subIDs, id)
	}
	slices.Sort(subIDs)

	orient := t.focusOrientation(len(subIDs))
	positions := layered(subIDs, sizes, induced, orient, t)
	positions = MinimizeCrossings(positions, induced, orient, t)
	return positions, subIDs
}

package hnsw

import (
	"cmp"
	"sort"

	idheap "github.com/corvid-labs/hnsw/util/heap"
)

// selector realizes the two interchangeable neighbor-selection strategies
// of §4.4 as a capability set, per the design notes — a tagged variant
// rather than inheritance. Both are called identically whether picking the
// new node's own neighbors or shrinking an existing node back to Mmax(layer)
// after Connect pushes it over.
type selector[T any, D cmp.Ordered] interface {
	Select(g *Core[T, D], candidates []int, costs *TravelingCosts[D], layer int) []int
}

// simpleSelector implements Algorithm 3: the Mmax(layer) closest candidates.
type simpleSelector[T any, D cmp.Ordered] struct{}

func (simpleSelector[T, D]) Select(g *Core[T, D], candidates []int, costs *TravelingCosts[D], layer int) []int {
	m := g.params.mmax(layer)
	if len(candidates) <= m {
		out := make([]int, len(candidates))
		copy(out, candidates)
		return out
	}
	// Bounded max-heap (farthest-first): keep popping the worst until only
	// the m closest remain.
	h := idheap.New(costs.Reverse())
	for _, id := range candidates {
		h.Push(id)
		if h.Len() > m {
			h.Pop()
		}
	}
	out := make([]int, h.Len())
	copy(out, h.Ids())
	return out
}

// heuristicSelector implements Algorithm 4: scan candidates nearest-first,
// keeping e only if it is closer to the pivot than to every already-chosen
// neighbor.
type heuristicSelector[T any, D cmp.Ordered] struct{}

func (heuristicSelector[T, D]) Select(g *Core[T, D], candidates []int, costs *TravelingCosts[D], layer int) []int {
	m := g.params.mmax(layer)

	pool := candidates
	if g.params.ExpandBestSelection {
		pool = expandCandidates(g, candidates, layer)
	}

	ordered := make([]int, len(pool))
	copy(ordered, pool)
	sort.Slice(ordered, func(i, j int) bool { return costs.LessTieBreak(ordered[i], ordered[j]) })

	result := make([]int, 0, m)
	var pruned []int // FIFO of discarded candidates, oldest first
	for _, e := range ordered {
		if len(result) >= m {
			break
		}
		closerToQ := true
		for _, r := range result {
			if g.distanceBetween(e, r) < costs.From(e) {
				closerToQ = false
				break
			}
		}
		if closerToQ {
			result = append(result, e)
		} else {
			pruned = append(pruned, e)
		}
	}

	if g.params.KeepPrunedConnections {
		for _, e := range pruned {
			if len(result) >= m {
				break
			}
			result = append(result, e)
		}
	}
	return result
}

// expandCandidates augments candidates with the deduplicated union of each
// candidate's layer neighbors, preserving first-seen order.
func expandCandidates[T any, D cmp.Ordered](g *Core[T, D], candidates []int, layer int) []int {
	seen := make(map[int]bool, len(candidates))
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	for _, c := range candidates {
		for _, adj := range g.nodes[c].layers[layer].IDs() {
			if !seen[adj] {
				seen[adj] = true
				out = append(out, adj)
			}
		}
	}
	return out
}

package hnsw

import (
	"cmp"

	idheap "github.com/corvid-labs/hnsw/util/heap"
)

// layerSearch implements SEARCH-LAYER (§4.5): a bounded best-first
// expansion from entry across one layer, returning up to ef ids — the ef
// nearest costs' pivot reachable on layer starting from entry.
func (g *Core[T, D]) layerSearch(entry int, costs *TravelingCosts[D], ef, layer int) []int {
	visited := map[int]bool{entry: true}
	expand := idheap.New(costs.Less)     // closer-first
	result := idheap.New(costs.Reverse()) // farther-first
	expand.Push(entry)
	result.Push(entry)

	for expand.Len() > 0 {
		c := expand.Pop()
		f := result.Peek()
		if costs.From(c) > costs.From(f) {
			break
		}
		for _, n := range g.nodes[c].layers[layer].IDs() {
			if visited[n] {
				continue
			}
			visited[n] = true
			worst := result.Peek()
			if result.Len() < ef || costs.From(n) < costs.From(worst) {
				expand.Push(n)
				result.Push(n)
				if result.Len() > ef {
					result.Pop()
				}
			}
		}
	}
	return result.Ids()
}

// nearest returns the id in ids closest to costs' pivot.
func nearest[D cmp.Ordered](ids []int, costs *TravelingCosts[D]) int {
	best := ids[0]
	for _, id := range ids[1:] {
		if costs.From(id) < costs.From(best) {
			best = id
		}
	}
	return best
}

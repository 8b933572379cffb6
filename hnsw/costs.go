package hnsw

import (
	"cmp"

	idheap "github.com/corvid-labs/hnsw/util/heap"
)

// TravelingCosts produces a total order on ids by their distance to a
// pivot (§4.3). The pivot itself is never stored as a sentinel id — Core
// curries it into distFn at construction time, for either a node already
// in the graph or a fresh query value, so neither heaps nor selectors ever
// need to know which case they're in.
type TravelingCosts[D cmp.Ordered] struct {
	distFn func(id int) D
	memo   map[int]D
}

func newTravelingCosts[D cmp.Ordered](distFn func(id int) D) *TravelingCosts[D] {
	return &TravelingCosts[D]{distFn: distFn, memo: make(map[int]D)}
}

// From returns d(id, pivot), memoized for the lifetime of this search.
func (c *TravelingCosts[D]) From(id int) D {
	if v, ok := c.memo[id]; ok {
		return v
	}
	v := c.distFn(id)
	c.memo[id] = v
	return v
}

// Less orders ids by ascending distance to the pivot. Equal distances
// compare neither-less, per §4.3.
func (c *TravelingCosts[D]) Less(a, b int) bool {
	return c.From(a) < c.From(b)
}

// Reverse returns the farthest-first comparator.
func (c *TravelingCosts[D]) Reverse() idheap.Less {
	return func(a, b int) bool { return c.Less(b, a) }
}

// LessTieBreak orders by ascending distance, breaking ties by ascending id.
// §4.4 requires this for reproducible heuristic-selector builds.
func (c *TravelingCosts[D]) LessTieBreak(a, b int) bool {
	da, db := c.From(a), c.From(b)
	if da != db {
		return da < db
	}
	return a < b
}

package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// buildChainCore hand-wires a single-layer chain 0-1-2-3-4 (each node linked
// to its immediate neighbors only), bypassing Build/Insert entirely so
// layerSearch can be exercised against a known topology.
func buildChainCore(t *testing.T) *Core[float64, float64] {
	t.Helper()
	items := []float64{0, 1, 2, 3, 4}
	p := DefaultParameters()

	g := &Core[float64, float64]{
		items:      items,
		distance:   absDistance,
		params:     p,
		entryPoint: 0,
	}
	g.nodes = make([]*node, len(items))
	for i := range items {
		g.nodes[i] = newNode(i, 0, p)
	}
	link := func(a, b int) {
		g.nodes[a].layers[0].Add(b)
		g.nodes[b].layers[0].Add(a)
	}
	link(0, 1)
	link(1, 2)
	link(2, 3)
	link(3, 4)
	return g
}

func TestLayerSearchFindsNearestWithinEf(t *testing.T) {
	g := buildChainCore(t)
	costs := g.costsForQuery(2.1)

	got := g.layerSearch(0, costs, 2, 0)
	require.ElementsMatch(t, []int{2, 3}, got)
}

func TestLayerSearchEfOneReturnsSingleNearest(t *testing.T) {
	g := buildChainCore(t)
	costs := g.costsForQuery(3.9)

	got := g.layerSearch(0, costs, 1, 0)
	require.Equal(t, []int{4}, got)
}

func TestLayerSearchLargeEfVisitsWholeComponent(t *testing.T) {
	g := buildChainCore(t)
	costs := g.costsForQuery(0)

	got := g.layerSearch(0, costs, 100, 0)
	require.ElementsMatch(t, []int{0, 1, 2, 3, 4}, got)
}

func TestNearestPicksClosestID(t *testing.T) {
	g := buildChainCore(t)
	costs := g.costsForQuery(2.9)

	require.Equal(t, 3, nearest([]int{0, 1, 3, 4}, costs))
}

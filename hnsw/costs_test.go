package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTravelingCostsFromMemoizes(t *testing.T) {
	calls := 0
	c := newTravelingCosts[float64](func(id int) float64 {
		calls++
		return float64(id)
	})

	require.Equal(t, 3.0, c.From(3))
	require.Equal(t, 3.0, c.From(3))
	require.Equal(t, 1, calls, "a repeated From(3) must not re-invoke distFn")

	require.Equal(t, 5.0, c.From(5))
	require.Equal(t, 2, calls)
}

func TestTravelingCostsLessOrdersByAscendingDistance(t *testing.T) {
	dist := map[int]float64{1: 10, 2: 2, 3: 7}
	c := newTravelingCosts[float64](func(id int) float64 { return dist[id] })

	require.True(t, c.Less(2, 1))
	require.False(t, c.Less(1, 2))
	require.False(t, c.Less(1, 1))
}

func TestTravelingCostsReverseIsFarthestFirst(t *testing.T) {
	dist := map[int]float64{1: 10, 2: 2}
	c := newTravelingCosts[float64](func(id int) float64 { return dist[id] })

	rev := c.Reverse()
	require.True(t, rev(1, 2))
	require.False(t, rev(2, 1))
}

func TestTravelingCostsLessTieBreakByAscendingID(t *testing.T) {
	dist := map[int]float64{5: 1, 9: 1, 2: 3}
	c := newTravelingCosts[float64](func(id int) float64 { return dist[id] })

	require.True(t, c.LessTieBreak(5, 9))
	require.False(t, c.LessTieBreak(9, 5))
	require.True(t, c.LessTieBreak(5, 2))
}

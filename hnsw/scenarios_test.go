package hnsw

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func absDistance(a, b float64) float64 { return math.Abs(a - b) }

// S1: empty build.
func TestScenarioEmpty(t *testing.T) {
	g, err := Build[float64, float64](nil, absDistance, rand.New(rand.NewSource(1)), DefaultParameters())
	require.NoError(t, err)

	out, err := g.Knn(42, 1)
	require.NoError(t, err)
	require.Empty(t, out)
}

// S2: singleton build.
func TestScenarioSingleton(t *testing.T) {
	g, err := Build[float64, float64]([]float64{7}, absDistance, rand.New(rand.NewSource(1)), DefaultParameters())
	require.NoError(t, err)

	id, _, ok := g.EntryPoint()
	require.True(t, ok)
	require.Equal(t, 0, id)

	out, err := g.Knn(7, 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, 0, out[0].ID)
	require.Equal(t, 7.0, out[0].Item)
	require.Zero(t, out[0].Distance)
}

// S3: two points, mutual neighbors on layer 0.
func TestScenarioTwoPoints(t *testing.T) {
	p := DefaultParameters()
	p.M = 4

	g, err := Build[float64, float64]([]float64{0, 1}, absDistance, rand.New(rand.NewSource(1)), p)
	require.NoError(t, err)

	require.True(t, g.nodes[0].layers[0].Contains(1))
	require.True(t, g.nodes[1].layers[0].Contains(0))
}

// S4: five collinear points; querying the midpoint between 1 and 2 returns
// exactly that pair. M and efConstruction are intentionally small, but
// efConstruction is still larger than the item count, so the build explores the whole line and the
// resulting layer-0 graph is fully connected (§3 invariant 3).
func TestScenarioCollinearFive(t *testing.T) {
	p := DefaultParameters()
	p.M = 2
	p.EfConstruction = 10
	p.NeighborHeuristic = SelectSimple

	items := []float64{0, 1, 2, 3, 4}
	g, err := Build[float64, float64](items, absDistance, rand.New(rand.NewSource(1)), p)
	require.NoError(t, err)

	out, err := g.Knn(1.5, 2)
	require.NoError(t, err)
	require.Len(t, out, 2)

	ids := map[int]float64{out[0].ID: out[0].Distance, out[1].ID: out[1].Distance}
	require.Contains(t, ids, 1)
	require.Contains(t, ids, 2)
	require.InDelta(t, 0.5, ids[1], 1e-9)
	require.InDelta(t, 0.5, ids[2], 1e-9)
}

// S5: duplicate points at three distinct ids; querying the duplicated value
// returns exactly those three ids, each at distance zero.
func TestScenarioDuplicates(t *testing.T) {
	items := make([]float64, 10)
	for i := range items {
		items[i] = float64(i) * 10
	}
	items[0], items[5], items[9] = 3, 3, 3

	p := DefaultParameters()
	g, err := Build[float64, float64](items, absDistance, rand.New(rand.NewSource(1)), p)
	require.NoError(t, err)

	out, err := g.Knn(3, 3)
	require.NoError(t, err)
	require.Len(t, out, 3)

	gotIDs := map[int]bool{}
	for _, r := range out {
		gotIDs[r.ID] = true
		require.Zero(t, r.Distance)
	}
	require.True(t, gotIDs[0])
	require.True(t, gotIDs[5])
	require.True(t, gotIDs[9])
}

// S6: on a 2D grid, the heuristic selector's recall@10 should be at least
// as good as the simple selector's, averaged over a held-out query set.
func TestScenarioHeuristicRecallAtLeastSimple(t *testing.T) {
	const gridSize = 31 // 31*31 ~= 960 points
	type point struct{ x, y float64 }
	items := make([]point, 0, gridSize*gridSize)
	for x := 0; x < gridSize; x++ {
		for y := 0; y < gridSize; y++ {
			items = append(items, point{float64(x), float64(y)})
		}
	}
	dist := func(a, b point) float64 {
		dx, dy := a.x-b.x, a.y-b.y
		return math.Sqrt(dx*dx + dy*dy)
	}

	bruteForceTopK := func(q point, k int) map[int]bool {
		type scored struct {
			id int
			d  float64
		}
		all := make([]scored, len(items))
		for i, it := range items {
			all[i] = scored{i, dist(it, q)}
		}
		for i := 0; i < len(all); i++ {
			for j := i + 1; j < len(all); j++ {
				if all[j].d < all[i].d {
					all[i], all[j] = all[j], all[i]
				}
			}
		}
		top := map[int]bool{}
		for i := 0; i < k && i < len(all); i++ {
			top[all[i].id] = true
		}
		return top
	}

	recallFor := func(heuristic NeighborHeuristic) float64 {
		p := DefaultParameters()
		p.M = 8
		p.EfConstruction = 64
		p.NeighborHeuristic = heuristic

		g, err := Build[point, float64](items, dist, rand.New(rand.NewSource(99)), p)
		require.NoError(t, err)

		rng := rand.New(rand.NewSource(123))
		const queries = 30
		const k = 10
		var hits, total int
		for q := 0; q < queries; q++ {
			query := point{rng.Float64() * float64(gridSize-1), rng.Float64() * float64(gridSize-1)}
			want := bruteForceTopK(query, k)
			got, err := g.Knn(query, k)
			require.NoError(t, err)
			for _, r := range got {
				if want[r.ID] {
					hits++
				}
			}
			total += k
		}
		return float64(hits) / float64(total)
	}

	simpleRecall := recallFor(SelectSimple)
	heuristicRecall := recallFor(SelectHeuristic)

	require.GreaterOrEqual(t, heuristicRecall, simpleRecall-0.05,
		"heuristic selector recall@10 (%f) should be at least roughly as good as simple's (%f)",
		heuristicRecall, simpleRecall)
}

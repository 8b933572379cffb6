// Package hnsw implements the algorithmic core of a Hierarchical Navigable
// Small World approximate-nearest-neighbor index: the layered graph, greedy
// layer descent, bounded best-first SEARCH-LAYER, the two neighbor-selection
// heuristics, bidirectional connect/prune during insertion, and the
// symmetric pairwise distance cache — the heart of Malkov & Yashunin's
// "Efficient and robust approximate nearest neighbor search using HNSW".
package hnsw

import (
	"cmp"
	"math"
	"math/rand"

	"github.com/opentracing/opentracing-go"
	"github.com/rs/zerolog"

	"github.com/corvid-labs/hnsw/models"
)

// DistanceFunc is the user-supplied distance oracle: nonnegative,
// d(x,x) == 0, and ideally (but not necessarily) symmetric — see §6.
type DistanceFunc[T any, D cmp.Ordered] func(a, b T) D

// SearchResult is a single K-NN-SEARCH hit.
type SearchResult[T any, D cmp.Ordered] = models.SearchResult[T, D]

// Core owns the items, the layered node graph, the distance oracle, the
// build parameters, the optional distance cache, and the active neighbor
// selector (§3). Queries against a built Core are safe to run concurrently
// across goroutines as long as no SetEfSearch call runs at the same time;
// SetEfSearch is the only method that mutates a Core after Build returns.
type Core[T any, D cmp.Ordered] struct {
	items    []T
	nodes    []*node
	distance DistanceFunc[T, D]
	params   Parameters
	cache    DistanceCache[D]
	selector selector[T, D]

	entryPoint int
	built      bool

	rng    *rand.Rand
	tracer opentracing.Tracer
	logger zerolog.Logger
}

// Option customizes a Core beyond Parameters — observability hooks that
// have no bearing on the graph's shape.
type Option[T any, D cmp.Ordered] func(*Core[T, D])

// WithTracer installs an opentracing.Tracer; Build, Insert, and Knn each
// open a span. The default is opentracing.NoopTracer{}.
func WithTracer[T any, D cmp.Ordered](t opentracing.Tracer) Option[T, D] {
	return func(c *Core[T, D]) { c.tracer = t }
}

// WithLogger installs a zerolog.Logger for build/query diagnostics. The
// default is zerolog.Nop(); logging never gates control flow.
func WithLogger[T any, D cmp.Ordered](l zerolog.Logger) Option[T, D] {
	return func(c *Core[T, D]) { c.logger = l }
}

// Build constructs an HNSW index over items using distance as the oracle
// and rng for level sampling (§4.6). A nil rng gets a fixed-seed default,
// which keeps an otherwise-unconfigured build reproducible rather than
// silently nondeterministic.
func Build[T any, D cmp.Ordered](items []T, distance DistanceFunc[T, D], rng *rand.Rand, params Parameters, opts ...Option[T, D]) (*Core[T, D], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.EfSearch <= 0 {
		params.EfSearch = 50
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	g := &Core[T, D]{
		items:      items,
		distance:   distance,
		params:     params,
		entryPoint: -1,
		rng:        rng,
		tracer:     opentracing.NoopTracer{},
		logger:     zerolog.Nop(),
	}
	switch params.NeighborHeuristic {
	case SelectSimple:
		g.selector = simpleSelector[T, D]{}
	default:
		g.selector = heuristicSelector[T, D]{}
	}
	for _, opt := range opts {
		opt(g)
	}

	span := g.tracer.StartSpan("hnsw.Build")
	defer span.Finish()
	span.SetTag("items", len(items))

	if len(items) == 0 {
		g.built = true
		return g, nil
	}

	if params.EnableDistanceCacheForConstruction {
		cache, err := newDistanceCache[D](len(items))
		if err != nil {
			return nil, err
		}
		g.cache = cache
		if len(items) > triangularCacheLimit {
			g.logger.Warn().Int("items", len(items)).Msg("hnsw distance cache: falling back to map form")
		}
	}

	g.nodes = make([]*node, len(items))
	for i := range items {
		g.nodes[i] = newNode(i, g.sampleLevel(), params)
	}
	g.entryPoint = 0

	b := graphBuilder[T, D]{core: g}
	for i := 1; i < len(items); i++ {
		b.insert(i)
	}

	g.logger.Debug().
		Int("items", len(items)).
		Int("entryPoint", g.entryPoint).
		Int("entryMaxLayer", g.nodes[g.entryPoint].maxLayer).
		Ints("layerSizes", g.LayerSizes()).
		Msg("hnsw graph built")

	g.built = true
	return g, nil
}

// sampleLevel draws maxLayer(v) = floor(-ln(U) * LevelLambda), U ~ Uniform(0,1].
func (g *Core[T, D]) sampleLevel() int {
	u := g.rng.Float64()
	for u == 0 {
		u = g.rng.Float64()
	}
	return int(math.Floor(-math.Log(u) * g.params.LevelLambda))
}

// distanceBetween computes (or retrieves from the cache) d(items[i], items[j]).
func (g *Core[T, D]) distanceBetween(i, j int) D {
	if g.cache != nil {
		if v, ok := g.cache.TryGet(i, j); ok {
			return v
		}
	}
	v := g.distance(g.items[i], g.items[j])
	if g.cache != nil {
		g.cache.Set(i, j, v)
	}
	return v
}

// costsForNode curries the distance oracle around an already-inserted
// node's id — the pivot for zoom-in and Connect during insertion.
func (g *Core[T, D]) costsForNode(pivotID int) *TravelingCosts[D] {
	return newTravelingCosts[D](func(id int) D { return g.distanceBetween(id, pivotID) })
}

// costsForQuery curries the distance oracle around a fresh query value —
// the pivot for Knn. This is the explicit query-aware oracle the design
// notes prefer over a magic sentinel id.
func (g *Core[T, D]) costsForQuery(query T) *TravelingCosts[D] {
	return newTravelingCosts[D](func(id int) D { return g.distance(g.items[id], query) })
}

// Len returns the number of items the index was built over.
func (g *Core[T, D]) Len() int { return len(g.items) }

// EntryPoint reports the current entry point id and its maxLayer. ok is
// false only for a zero-item build.
func (g *Core[T, D]) EntryPoint() (id int, maxLayer int, ok bool) {
	if g.entryPoint < 0 {
		return 0, 0, false
	}
	return g.entryPoint, g.nodes[g.entryPoint].maxLayer, true
}

// LayerSizes returns the number of nodes present at each layer, indexed by
// layer number.
func (g *Core[T, D]) LayerSizes() []int {
	if len(g.nodes) == 0 {
		return nil
	}
	sizes := make([]int, g.nodes[g.entryPoint].maxLayer+1)
	for _, n := range g.nodes {
		for l := 0; l <= n.maxLayer; l++ {
			sizes[l]++
		}
	}
	return sizes
}

// SetEfSearch retunes the query-time candidate-list width without
// rebuilding the graph. Values <= 0 are ignored.
func (g *Core[T, D]) SetEfSearch(ef int) {
	if ef > 0 {
		g.params.EfSearch = ef
	}
}

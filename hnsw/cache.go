package hnsw

// triangularCacheLimit is the largest N for which the triangular-array
// cache form is preferred over the map form (§4.1).
const triangularCacheLimit = 65535

// DistanceCache maps an unordered pair {i, j} (including i == j) to a
// previously computed distance. Both concrete forms below must yield
// identical observable behavior.
type DistanceCache[D any] interface {
	TryGet(i, j int) (D, bool)
	Set(i, j int, v D)
}

// newDistanceCache picks the triangular-array form for n <= 65535 and the
// map form otherwise, per §4.1.
func newDistanceCache[D any](n int) (DistanceCache[D], error) {
	if n <= triangularCacheLimit {
		return newTriangularCache[D](n)
	}
	return newMapCache[D](), nil
}

// triangularCache precomputes capacity n*(n+1)/2 with a bitset tracking
// which entries have been set. Key = max(i,j)*(max(i,j)+1)/2 + min(i,j).
type triangularCache[D any] struct {
	present bitset
	values  []D
}

func newTriangularCache[D any](n int) (*triangularCache[D], error) {
	size, err := triangularSize(n)
	if err != nil {
		return nil, err
	}
	return &triangularCache[D]{
		present: newBitset(size),
		values:  make([]D, size),
	}, nil
}

// triangularSize computes n*(n+1)/2, failing fast with CapacityExceeded if
// that value would overflow machine-word indexing.
func triangularSize(n int) (int, error) {
	if n <= 0 {
		return 0, nil
	}
	total := n * (n + 1)
	if total/(n+1) != n || total < 0 {
		return 0, newError(CapacityExceeded, "N=%d: triangular cache size N*(N+1)/2 overflows addressing", n)
	}
	return total / 2, nil
}

func triKey(i, j int) int {
	a, b := i, j
	if a < b {
		a, b = b, a
	}
	return a*(a+1)/2 + b
}

func (c *triangularCache[D]) TryGet(i, j int) (D, bool) {
	k := triKey(i, j)
	if !c.present.Get(k) {
		var zero D
		return zero, false
	}
	return c.values[k], true
}

func (c *triangularCache[D]) Set(i, j int, v D) {
	k := triKey(i, j)
	c.values[k] = v
	c.present.Set(k)
}

// mapCache is the fallback form for N above triangularCacheLimit. The pair
// key is canonicalized so {a,b} and {b,a} always hash and compare equal.
type mapCache[D any] struct {
	m map[pairKey]D
}

type pairKey struct{ a, b int }

func newPairKey(i, j int) pairKey {
	if i > j {
		i, j = j, i
	}
	return pairKey{i, j}
}

func newMapCache[D any]() *mapCache[D] {
	return &mapCache[D]{m: make(map[pairKey]D)}
}

func (c *mapCache[D]) TryGet(i, j int) (D, bool) {
	v, ok := c.m[newPairKey(i, j)]
	return v, ok
}

func (c *mapCache[D]) Set(i, j int, v D) {
	c.m[newPairKey(i, j)] = v
}

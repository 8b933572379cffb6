package hnsw

import "math"

// NeighborHeuristic selects between the two neighbor-selection strategies
// of §4.4.
type NeighborHeuristic int

const (
	// SelectSimple returns the M(layer) closest candidates (Algorithm 3).
	SelectSimple NeighborHeuristic = iota
	// SelectHeuristic runs the diversity-aware heuristic scan (Algorithm 4).
	SelectHeuristic
)

// Parameters configures a Build. See §3.
type Parameters struct {
	// M is the target degree on layers > 0; Mmax0 = 2*M on layer 0.
	M int
	// LevelLambda scales the exponential layer distribution.
	LevelLambda float64
	// EfConstruction is the candidate-list width during build.
	EfConstruction int
	// EfSearch is the candidate-list width during query. Zero defaults to
	// 50 at Build time and can be retuned afterward via SetEfSearch.
	EfSearch int
	// NeighborHeuristic selects SelectSimple or SelectHeuristic.
	NeighborHeuristic NeighborHeuristic
	// KeepPrunedConnections falls back to complete degree when the
	// heuristic drops candidates.
	KeepPrunedConnections bool
	// ExpandBestSelection pre-expands candidates by their neighborhoods
	// before heuristic selection.
	ExpandBestSelection bool
	// EnableDistanceCacheForConstruction activates the symmetric pairwise
	// distance cache during Build.
	EnableDistanceCacheForConstruction bool
}

// DefaultParameters returns the §3 defaults: M=10, EfConstruction=200,
// EfSearch=50, the heuristic selector, pruned-connection fallback, no
// candidate pre-expansion, and the distance cache enabled.
func DefaultParameters() Parameters {
	const m = 10
	return Parameters{
		M:                                  m,
		LevelLambda:                        1 / math.Log(float64(m)),
		EfConstruction:                     200,
		EfSearch:                           50,
		NeighborHeuristic:                  SelectHeuristic,
		KeepPrunedConnections:              true,
		ExpandBestSelection:                false,
		EnableDistanceCacheForConstruction: true,
	}
}

// Validate checks the parameter combinations §7 calls out as InvalidParameters.
func (p Parameters) Validate() error {
	if p.M <= 0 {
		return newError(InvalidParameters, "M must be positive, got %d", p.M)
	}
	if p.EfConstruction <= 0 {
		return newError(InvalidParameters, "EfConstruction must be positive, got %d", p.EfConstruction)
	}
	if p.LevelLambda <= 0 {
		return newError(InvalidParameters, "LevelLambda must be positive, got %g", p.LevelLambda)
	}
	return nil
}

// mmax returns Mmax(layer): 2*M at layer 0, M at every layer above it.
func (p Parameters) mmax(layer int) int {
	if layer == 0 {
		return 2 * p.M
	}
	return p.M
}

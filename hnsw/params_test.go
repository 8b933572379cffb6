package hnsw

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultParametersAreValid(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	require.Equal(t, SelectHeuristic, p.NeighborHeuristic)
	require.True(t, p.KeepPrunedConnections)
	require.True(t, p.EnableDistanceCacheForConstruction)
}

func TestValidateRejectsNonPositiveM(t *testing.T) {
	p := DefaultParameters()
	p.M = 0
	err := p.Validate()
	require.True(t, IsKind(err, InvalidParameters))
}

func TestValidateRejectsNonPositiveEfConstruction(t *testing.T) {
	p := DefaultParameters()
	p.EfConstruction = -1
	err := p.Validate()
	require.True(t, IsKind(err, InvalidParameters))
}

func TestValidateRejectsNonPositiveLevelLambda(t *testing.T) {
	p := DefaultParameters()
	p.LevelLambda = 0
	err := p.Validate()
	require.True(t, IsKind(err, InvalidParameters))
}

func TestMmaxDoublesAtLayerZero(t *testing.T) {
	p := DefaultParameters()
	p.M = 7
	require.Equal(t, 14, p.mmax(0))
	require.Equal(t, 7, p.mmax(1))
	require.Equal(t, 7, p.mmax(5))
}

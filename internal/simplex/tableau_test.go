package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTableauCanonicalizesObjectiveAgainstBasis(t *testing.T) {
	// min x s.t. x + s = 2, s basic with objective coeff 0: the
	// objective row should already read the raw costs since the basic
	// column (s) has zero cost.
	tab := newTableau([][]float64{{1, 1}}, []float64{2}, []float64{1, 0}, []int{1})
	require.Equal(t, []float64{1, 0}, tab.Reduced())
	require.Equal(t, 0.0, tab.Value)
}

func TestNewTableauEliminatesNonzeroBasisCost(t *testing.T) {
	// Basis column 0 carries cost 2: canonicalizing must zero out its own
	// reduced cost and adjust the other column and running value.
	tab := newTableau([][]float64{{1, 3}}, []float64{4}, []float64{2, 5}, []int{0})
	require.InDelta(t, -1.0, tab.Reduced()[1], 1e-9)
	require.InDelta(t, 0.0, tab.Reduced()[0], 1e-9)
	require.InDelta(t, -8.0, tab.Value, 1e-9)
}

func TestPivotUpdatesBasisAndEliminatesColumn(t *testing.T) {
	// x0,x1 plus slacks s0 (col 2), s1 (col 3); basis starts at the slacks.
	tab := newTableau(
		[][]float64{{2, 1, 1, 0}, {1, 1, 0, 1}},
		[]float64{4, 3},
		[]float64{-1, 0, 0, 0},
		[]int{2, 3},
	)
	tab.pivot(0, 0)
	require.Equal(t, 0, tab.Basis[0])
	require.InDelta(t, 1.0, tab.A[0][0], 1e-9)
	require.InDelta(t, 0.5, tab.A[0][1], 1e-9)
	require.InDelta(t, 2.0, tab.B[0], 1e-9)
	require.InDelta(t, 0.0, tab.A[1][0], 1e-9)
	require.InDelta(t, 2.0, tab.Value, 1e-9)
}

package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectEnteringPicksMostNegativeReducedCost(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}, {0, 1}}, []float64{1, 1}, []float64{-3, -1}, []int{0, 1})
	col, ok := tab.selectEntering(false, 1e-9)
	require.True(t, ok)
	require.Equal(t, 0, col)
}

func TestSelectEnteringUsesBlandRuleOnceThresholdCrossed(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}, {0, 1}}, []float64{1, 1}, []float64{-3, -1}, []int{0, 1})
	col, ok := tab.selectEntering(true, 1e-9)
	require.True(t, ok)
	require.Equal(t, 0, col)
}

func TestSelectEnteringReportsOptimalWhenNoNegativeCost(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}, {0, 1}}, []float64{1, 1}, []float64{1, 1}, []int{0, 1})
	_, ok := tab.selectEntering(false, 1e-9)
	require.False(t, ok)
}

func TestSelectLeavingRunsMinRatioTest(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}, {1, 0}}, []float64{2, 5}, []float64{0, 0}, []int{2, 3})
	row, ok := tab.selectLeaving(0, 1e-9)
	require.True(t, ok)
	require.Equal(t, 0, row)
}

func TestSelectLeavingReportsUnboundedWhenNoPositiveCoefficient(t *testing.T) {
	tab := newTableau([][]float64{{0, 1}}, []float64{2}, []float64{0, 0}, []int{1})
	_, ok := tab.selectLeaving(0, 1e-9)
	require.False(t, ok)
}

func TestStepPivotsThenReportsOptimal(t *testing.T) {
	tab := newTableau(
		[][]float64{{2, 1, 1, 0}, {1, 1, 0, 1}},
		[]float64{4, 3},
		[]float64{-1, 0, 0, 0},
		[]int{2, 3},
	)
	outcome := tab.step(0, 200, 1e-9)
	require.Equal(t, stepPivoted, outcome)
}

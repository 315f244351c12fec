package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRationalTableauReproducesFloatExactly(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}}, []float64{3.4}, []float64{0, 0}, []int{0})
	rt := NewRationalTableau(tab)
	v := rt.VariableValue(0)
	got, _ := v.Float64()
	require.InDelta(t, 3.4, got, 1e-12)
}

func TestVariableValueIsZeroForNonBasicColumn(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}}, []float64{3}, []float64{0, 0}, []int{0})
	rt := NewRationalTableau(tab)
	v := rt.VariableValue(1)
	require.Equal(t, "0", v.RatString())
}

func TestRationalTableauStringFormatsAsColumnEqualsFraction(t *testing.T) {
	tab := newTableau([][]float64{{1, 0}}, []float64{2}, []float64{0, 0}, []int{0})
	rt := NewRationalTableau(tab)
	require.Equal(t, "0=2", rt.String())
}

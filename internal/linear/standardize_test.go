package linear

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
)

func TestStandardizeAppendsSlackForLessOrEqual(t *testing.T) {
	m := &Model{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Constraints: []Constraint{
			{Coefficients: []float64{1}, Type: kinds.LessOrEqual, Rhs: 2},
		},
	}
	sf := Standardize(m)
	require.Equal(t, []string{"x", "s_0"}, sf.VariableNames)
	require.Equal(t, 1, sf.NumOriginal)
	require.Equal(t, []float64{1, 1}, sf.A[0])
	require.Equal(t, []float64{2}, sf.B)
	require.Equal(t, []int{1}, sf.Basis)
	require.Empty(t, sf.ArtificialColumns)
}

// A decision variable whose flattened compound name collides with a
// generated auxiliary name (e.g. s_{zero} with zero = 0 flattening to
// "s_0") must still
// be reported in the solve result and must not be mistaken for the real
// auxiliary column appended at the same name.
func TestStandardizeNumOriginalSurvivesNameCollisionWithAuxiliary(t *testing.T) {
	m := &Model{
		Variables: []string{"s_0", "x"},
		Direction: ast.Minimize,
		Objective: []float64{1, 1},
		Constraints: []Constraint{
			{Coefficients: []float64{1, 1}, Type: kinds.LessOrEqual, Rhs: 2},
		},
	}
	sf := Standardize(m)
	require.Equal(t, []string{"s_0", "x", "s_0"}, sf.VariableNames)
	require.Equal(t, 2, sf.NumOriginal)
}

func TestStandardizeAppendsSurplusAndArtificialForGreaterOrEqual(t *testing.T) {
	m := &Model{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Constraints: []Constraint{
			{Coefficients: []float64{1}, Type: kinds.GreaterOrEqual, Rhs: 2},
		},
	}
	sf := Standardize(m)
	require.Equal(t, []string{"x", "r_0", "a_0"}, sf.VariableNames)
	require.Equal(t, []float64{1, -1, 1}, sf.A[0])
	require.Equal(t, []int{2}, sf.Basis)
	require.Equal(t, []int{2}, sf.ArtificialColumns)
}

func TestStandardizeAppendsArtificialForEquality(t *testing.T) {
	m := &Model{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Constraints: []Constraint{
			{Coefficients: []float64{1}, Type: kinds.Equal, Rhs: 2},
		},
	}
	sf := Standardize(m)
	require.Equal(t, []string{"x", "a_0"}, sf.VariableNames)
	require.Equal(t, []int{1}, sf.ArtificialColumns)
}

func TestStandardizeFlipsNegativeRhs(t *testing.T) {
	m := &Model{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Constraints: []Constraint{
			{Coefficients: []float64{1}, Type: kinds.LessOrEqual, Rhs: -2},
		},
	}
	sf := Standardize(m)
	require.Equal(t, []float64{2}, sf.B)
	// negating flipped <= into >=, so it gets a surplus + artificial pair.
	require.Equal(t, []string{"x", "r_0", "a_0"}, sf.VariableNames)
	require.Equal(t, []float64{-1, -1, 1}, sf.A[0])
	require.Equal(t, []int{2}, sf.ArtificialColumns)
}

func TestStandardizeNegatesObjectiveForMaximize(t *testing.T) {
	m := &Model{
		Variables:       []string{"x"},
		Direction:       ast.Maximize,
		Objective:       []float64{3},
		ObjectiveOffset: 5,
		Constraints: []Constraint{
			{Coefficients: []float64{1}, Type: kinds.LessOrEqual, Rhs: 2},
		},
	}
	sf := Standardize(m)
	require.True(t, sf.Maximize)
	require.Equal(t, []float64{-3, 0}, sf.Objective)
	require.Equal(t, -5.0, sf.ObjectiveOffset)
}

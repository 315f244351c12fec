package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/linear"
)

func defaultOptions() Options {
	return Options{MaxIterations: 1000, Epsilon: 1e-9, BlandThreshold: 200}
}

func TestSolveMaximizeTwoVariableBoundedRegion(t *testing.T) {
	m := &linear.Model{
		Variables: []string{"x", "y"},
		Direction: ast.Maximize,
		Objective: []float64{1, 1},
		Constraints: []linear.Constraint{
			{Coefficients: []float64{1, 1}, Type: kinds.LessOrEqual, Rhs: 2},
		},
	}
	res := Solve(linear.Standardize(m), defaultOptions())
	require.Equal(t, Optimal, res.Status)
	require.InDelta(t, 2.0, res.Value, 1e-6)
	require.InDelta(t, 2.0, res.Assignments["x"]+res.Assignments["y"], 1e-6)
}

func TestSolveMinimizeWithEqualityConstraintNeedsPhase1(t *testing.T) {
	// min 3x + 4y s.t. x + y = 1, x,y >= 0 -> optimum picks the cheaper
	// variable entirely: x=1, y=0, value=3.
	m := &linear.Model{
		Variables: []string{"x", "y"},
		Direction: ast.Minimize,
		Objective: []float64{3, 4},
		Constraints: []linear.Constraint{
			{Coefficients: []float64{1, 1}, Type: kinds.Equal, Rhs: 1},
		},
	}
	res := Solve(linear.Standardize(m), defaultOptions())
	require.Equal(t, Optimal, res.Status)
	require.InDelta(t, 3.0, res.Value, 1e-6)
	require.InDelta(t, 1.0, res.Assignments["x"], 1e-6)
	require.InDelta(t, 0.0, res.Assignments["y"], 1e-6)
}

// A decision variable whose flattened name collides with a generated
// auxiliary name (e.g. a compound variable flattening to "s_0") must
// still surface in Assignments under its own column, not be dropped or
// overwritten by the real auxiliary appended at a different column.
func TestSolveReportsVariableWhoseNameCollidesWithAuxiliary(t *testing.T) {
	m := &linear.Model{
		Variables: []string{"s_0", "x"},
		Direction: ast.Minimize,
		Objective: []float64{1, 1},
		Constraints: []linear.Constraint{
			{Coefficients: []float64{1, 1}, Type: kinds.LessOrEqual, Rhs: 2},
		},
	}
	res := Solve(linear.Standardize(m), defaultOptions())
	require.Equal(t, Optimal, res.Status)
	require.Contains(t, res.Assignments, "s_0")
	require.Contains(t, res.Assignments, "x")
}

func TestSolveInfeasibleWhenArtificialsStayPositive(t *testing.T) {
	// x <= 1 and x >= 2 simultaneously: no feasible x.
	m := &linear.Model{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Constraints: []linear.Constraint{
			{Coefficients: []float64{1}, Type: kinds.LessOrEqual, Rhs: 1},
			{Coefficients: []float64{1}, Type: kinds.GreaterOrEqual, Rhs: 2},
		},
	}
	res := Solve(linear.Standardize(m), defaultOptions())
	require.Equal(t, Infeasible, res.Status)
}

func TestSolveUnboundedWhenObjectiveCanGrowWithoutLimit(t *testing.T) {
	m := &linear.Model{
		Variables: []string{"x"},
		Direction: ast.Maximize,
		Objective: []float64{1},
		Constraints: []linear.Constraint{
			{Coefficients: []float64{0}, Type: kinds.LessOrEqual, Rhs: 5},
		},
	}
	res := Solve(linear.Standardize(m), defaultOptions())
	require.Equal(t, Unbounded, res.Status)
}

func TestSolveRespectsIterationLimit(t *testing.T) {
	m := &linear.Model{
		Variables: []string{"x", "y"},
		Direction: ast.Maximize,
		Objective: []float64{1, 1},
		Constraints: []linear.Constraint{
			{Coefficients: []float64{1, 1}, Type: kinds.LessOrEqual, Rhs: 2},
		},
	}
	res := Solve(linear.Standardize(m), Options{MaxIterations: 0, Epsilon: 1e-9, BlandThreshold: 200})
	require.Equal(t, IterationLimitExceeded, res.Status)
}

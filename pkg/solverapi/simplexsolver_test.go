package solverapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
)

func TestSimplexSolverSolvesSimpleMaximization(t *testing.T) {
	solver := NewSimplexSolver()
	lp := LinearProgram{
		Variables: []string{"x", "y"},
		Direction: ast.Maximize,
		Objective: []float64{1, 1},
		Constraints: []Constraint{
			{Coefficients: []float64{1, 1}, Comparison: kinds.LessOrEqual, Rhs: 2},
		},
		CompileID: "abc",
	}
	sol, err := solver.Solve(context.Background(), lp)
	require.NoError(t, err)
	require.InDelta(t, 2.0, sol.Value, 1e-6)
	require.Equal(t, "abc", sol.CompileID)
}

func TestSimplexSolverRejectsSatisfyDirection(t *testing.T) {
	solver := NewSimplexSolver()
	lp := LinearProgram{Variables: []string{"x"}, Direction: ast.Satisfy, Objective: []float64{1}}
	_, err := solver.Solve(context.Background(), lp)
	require.ErrorIs(t, err, UnimplementedOptimizationTypeError{})
}

func TestSimplexSolverRejectsIntegerDomain(t *testing.T) {
	solver := NewSimplexSolver()
	lp := LinearProgram{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Domains:   map[string]Domain{"x": kinds.DomainInteger},
	}
	_, err := solver.Solve(context.Background(), lp)
	var invalidErr InvalidDomainError
	require.ErrorAs(t, err, &invalidErr)
	require.Equal(t, "x", invalidErr.Variable)
}

func TestSimplexSolverReportsUnbounded(t *testing.T) {
	solver := NewSimplexSolver()
	lp := LinearProgram{
		Variables: []string{"x"},
		Direction: ast.Maximize,
		Objective: []float64{1},
		Constraints: []Constraint{
			{Coefficients: []float64{0}, Comparison: kinds.LessOrEqual, Rhs: 5},
		},
	}
	_, err := solver.Solve(context.Background(), lp)
	require.ErrorIs(t, err, UnboundedError{})
}

func TestSimplexSolverReportsInfeasible(t *testing.T) {
	solver := NewSimplexSolver()
	lp := LinearProgram{
		Variables: []string{"x"},
		Direction: ast.Minimize,
		Objective: []float64{1},
		Constraints: []Constraint{
			{Coefficients: []float64{1}, Comparison: kinds.LessOrEqual, Rhs: 1},
			{Coefficients: []float64{1}, Comparison: kinds.GreaterOrEqual, Rhs: 2},
		},
	}
	_, err := solver.Solve(context.Background(), lp)
	require.ErrorIs(t, err, InfeasibleError{})
}

package solverapi

import (
	"context"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/config"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/linear"
	"github.com/seantiz/rooc/internal/simplex"
)

// SimplexSolver adapts the bundled two-phase engine to the Solver
// interface. It only ever produces a continuous relaxation: any
// variable declared Integer or Boolean is reported as InvalidDomain
// rather than silently rounded, and a Satisfy-direction program is
// reported as UnimplementedOptimizationType.
type SimplexSolver struct {
	Options simplex.Options
}

// NewSimplexSolver builds a SimplexSolver using the ambient tunables.
func NewSimplexSolver() *SimplexSolver {
	return &SimplexSolver{Options: simplex.Options{
		MaxIterations:  config.Default.MaxSimplexIterations,
		Epsilon:        config.Default.Epsilon,
		BlandThreshold: config.Default.BlandThreshold,
	}}
}

func (s *SimplexSolver) Solve(ctx context.Context, lp LinearProgram) (LpSolution, error) {
	if lp.Direction == ast.Satisfy {
		return LpSolution{}, UnimplementedOptimizationTypeError{}
	}

	for _, name := range lp.Variables {
		if d, ok := lp.Domains[name]; ok && d != kinds.DomainReal && d != kinds.DomainNonNegativeReal {
			return LpSolution{}, InvalidDomainError{Variable: name, Expected: kinds.DomainNonNegativeReal, Got: d}
		}
	}

	constraints := make([]linear.Constraint, len(lp.Constraints))
	for i, c := range lp.Constraints {
		constraints[i] = linear.Constraint{Coefficients: c.Coefficients, Type: c.Comparison, Rhs: c.Rhs}
	}

	model := &linear.Model{
		Variables:       lp.Variables,
		Direction:       lp.Direction,
		Objective:       lp.Objective,
		ObjectiveOffset: lp.ObjectiveOffset,
		Constraints:     constraints,
	}

	sf := linear.Standardize(model)
	result := simplex.Solve(sf, s.Options)
	result.CompileID = lp.CompileID

	switch result.Status {
	case simplex.Unbounded:
		return LpSolution{}, UnboundedError{}
	case simplex.Infeasible:
		return LpSolution{}, InfeasibleError{}
	case simplex.IterationLimitExceeded:
		return LpSolution{}, OtherError{Msg: "iteration limit exceeded"}
	}

	return LpSolution{Assignments: result.Assignments, Value: result.Value, CompileID: result.CompileID}, nil
}

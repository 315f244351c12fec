// Package solverapi is the compiled-model ABI described in the
// language's external-interfaces contract: a plain-data LinearProgram
// a backend can consume without knowing anything about the source
// language, and a Solver interface so the bundled simplex engine is
// just one implementation among any number of external backends.
package solverapi

import (
	"context"
	"fmt"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
)

// Comparison mirrors kinds.Comparison at the ABI boundary so callers
// outside this module never need to import an internal package.
type Comparison = kinds.Comparison

// Domain mirrors kinds.Domain at the ABI boundary.
type Domain = kinds.Domain

// Direction mirrors ast.OptimizationDirection at the ABI boundary:
// Minimize, Maximize, or Satisfy. A purely optimizing backend reports
// Satisfy as UnimplementedOptimizationTypeError.
type Direction = ast.OptimizationDirection

// Constraint is one row of a LinearProgram: a coefficient vector
// aligned to LinearProgram.Variables, a comparison, and a right-hand
// side.
type Constraint struct {
	Coefficients []float64
	Comparison   Comparison
	Rhs          float64
}

// LinearProgram is the compiled model handed to a Solver: every field
// is plain data, aligned to Variables by index. CompileID, when set,
// is echoed back onto the LpSolution so a host running several
// compiles at once can match a result to its request.
type LinearProgram struct {
	Variables       []string
	Direction       Direction
	Objective       []float64
	ObjectiveOffset float64
	Constraints     []Constraint
	Domains         map[string]Domain
	CompileID       string
}

// LpSolution is a Solver's successful result. CompileID, when set by
// the caller, correlates the solution back to the compile-session that
// produced the LinearProgram it answers.
type LpSolution struct {
	Assignments map[string]float64
	Value       float64
	CompileID   string
}

// Solver is implemented by anything that can optimize a LinearProgram,
// in-process or over a wire protocol to an external package.
type Solver interface {
	Solve(ctx context.Context, lp LinearProgram) (LpSolution, error)
}

// UnboundedError reports an objective with no finite optimum.
type UnboundedError struct{}

func (UnboundedError) Error() string { return "unbounded" }

// InfeasibleError reports a constraint set with no satisfying
// assignment.
type InfeasibleError struct{}

func (InfeasibleError) Error() string { return "infeasible" }

// InvalidDomainError reports a domain a backend cannot honor (e.g. an
// LP-only solver asked to handle Integer or Boolean).
type InvalidDomainError struct {
	Variable string
	Expected Domain
	Got      Domain
}

func (e InvalidDomainError) Error() string {
	return fmt.Sprintf("invalid domain for %s: expected %s, got %s", e.Variable, e.Expected, e.Got)
}

// UnimplementedOptimizationTypeError reports a Satisfy-direction
// program handed to a backend that only optimizes.
type UnimplementedOptimizationTypeError struct{}

func (UnimplementedOptimizationTypeError) Error() string {
	return "unimplemented optimization type: satisfy"
}

// OtherError wraps a backend-specific failure that doesn't fit one of
// the named kinds above.
type OtherError struct {
	Msg string
}

func (e OtherError) Error() string { return e.Msg }

package transform

import (
	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
)

// Objective is the expanded `min/max/satisfy <expr>` clause.
type Objective struct {
	Direction ast.OptimizationDirection
	Rhs       Exp
}

// Condition is one expanded `lhs <= rhs` / `>=` / `=` clause — iteration
// has already been fully unrolled by the time it exists here.
type Condition struct {
	Lhs, Rhs   Exp
	Comparison kinds.Comparison
}

// Problem is the fully expanded compile unit the linearizer consumes.
type Problem struct {
	Objective  Objective
	Conditions []Condition
}

// TransformObjective expands the objective clause.
func TransformObjective(obj *ast.Objective, ctx *Context) (Objective, error) {
	rhs, err := IntoExp(obj.Rhs, ctx)
	if err != nil {
		return Objective{}, err
	}
	return Objective{Direction: obj.Direction, Rhs: rhs}, nil
}

// transformConditionOnce expands a single condition occurrence with no
// remaining iteration to resolve.
func transformConditionOnce(cond *ast.Condition, ctx *Context) (Condition, error) {
	lhs, err := IntoExp(cond.Lhs, ctx)
	if err != nil {
		return Condition{}, err
	}
	rhs, err := IntoExp(cond.Rhs, ctx)
	if err != nil {
		return Condition{}, err
	}
	return Condition{Lhs: lhs, Rhs: rhs, Comparison: cond.Comparison}, nil
}

// TransformConditionWithIteration expands a condition's `for` clause (if
// any) into one Condition per outer-product tuple; an empty iteration
// set yields zero conditions.
func TransformConditionWithIteration(cond *ast.Condition, ctx *Context) ([]Condition, error) {
	if len(cond.Iterations) == 0 {
		c, err := transformConditionOnce(cond, ctx)
		if err != nil {
			if te, ok := err.(*Error); ok {
				return nil, te.ToSpannedError(cond.Sp)
			}
			return nil, err
		}
		return []Condition{c}, nil
	}
	var out []Condition
	err := resolveIterations(cond.Iterations, ctx, func() error {
		c, err := transformConditionOnce(cond, ctx)
		if err != nil {
			return err
		}
		out = append(out, c)
		return nil
	})
	if err != nil {
		if te, ok := err.(*Error); ok {
			return nil, te.ToSpannedError(cond.Sp)
		}
		return nil, err
	}
	return out, nil
}

// TransformProblem is the top-level C7 entry point: it seeds a Context
// from the parsed problem's `where` constants, expands the objective,
// then expands every condition (with its iteration sets, if any) in
// declaration order.
func TransformProblem(problem *ast.Problem) (*Problem, error) {
	constants := map[string]kinds.Value{}
	ctx := NewContext(constants)
	for _, c := range problem.Constants {
		v, err := EvalValue(c.Value, ctx)
		if err != nil {
			if te, ok := err.(*Error); ok {
				return nil, te.ToSpannedError(c.Sp)
			}
			return nil, err
		}
		if err := ctx.DeclareVariable(c.Name, v, true); err != nil {
			if te, ok := err.(*Error); ok {
				return nil, te.ToSpannedError(c.Sp)
			}
			return nil, err
		}
	}

	// A problem with no conditions and no domain declarations never
	// introduces a decision variable anywhere: a bare name in the
	// objective can only be a typo'd constant, not a variable waiting to
	// be constrained, so it is looked up strictly.
	ctx.strictVariables = len(problem.Conditions) == 0 && len(problem.Domains) == 0
	objective, err := TransformObjective(problem.Objective, ctx)
	ctx.strictVariables = false
	if err != nil {
		if te, ok := err.(*Error); ok {
			return nil, te.ToSpannedError(problem.Objective.Sp)
		}
		return nil, err
	}

	var conditions []Condition
	for _, cond := range problem.Conditions {
		expanded, err := TransformConditionWithIteration(cond, ctx)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, expanded...)
	}

	return &Problem{Objective: objective, Conditions: conditions}, nil
}

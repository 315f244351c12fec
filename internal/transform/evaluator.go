package transform

import (
	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/builtins"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/span"
)

// IntoExp evaluates a parsed expression into the expanded Exp tree,
// resolving every compound variable, addressable access, and
// iteration-driven block along the way. A bare Variable that is not
// bound in ctx passes through as a decision variable reference — it is
// exactly the set of names still unbound after evaluation that becomes
// the linear model's variable vocabulary.
func IntoExp(e ast.Expression, ctx *Context) (Exp, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return Number(n.Value), nil
	case *ast.StringLit:
		return nil, wrongArgument("a string literal cannot appear in a numeric expression").ToSpannedError(n.Sp)
	case *ast.BooleanLit:
		return nil, wrongArgument("a boolean literal cannot appear in a numeric expression").ToSpannedError(n.Sp)
	case *ast.ArrayLit:
		return nil, wrongArgument("an array literal cannot appear in a numeric expression").ToSpannedError(n.Sp)
	case *ast.GraphLit:
		return nil, wrongArgument("a graph literal cannot appear in a numeric expression").ToSpannedError(n.Sp)
	case *ast.RangeExpr:
		return nil, wrongArgument("a range cannot appear in a numeric expression").ToSpannedError(n.Sp)
	case *ast.Variable:
		return intoExpVariable(n, ctx)
	case *ast.CompoundVariable:
		return intoExpCompoundVariable(n, ctx)
	case *ast.AddressableAccess:
		return intoExpAddressableAccess(n, ctx)
	case *ast.BinOp:
		lhs, err := IntoExp(n.Lhs, ctx)
		if err != nil {
			return nil, err
		}
		rhs, err := IntoExp(n.Rhs, ctx)
		if err != nil {
			return nil, err
		}
		return MakeBinOp(n.Op, lhs, rhs), nil
	case *ast.UnOp:
		inner, err := IntoExp(n.Inner, ctx)
		if err != nil {
			return nil, err
		}
		if n.Op == kinds.Abs {
			return Mod{Inner: inner}, nil
		}
		return Neg{Inner: inner}, nil
	case *ast.FunctionCall:
		return intoExpFunctionCall(n, ctx)
	case *ast.BlockScoped:
		return intoExpBlockScoped(n, ctx)
	case *ast.Block:
		return intoExpBlock(n, ctx)
	default:
		return nil, other("unrecognized expression node").ToSpannedError(e.Span())
	}
}

// intoExpVariable resolves a bare name. If it is bound to a Number
// constant, the reference is replaced by its value; otherwise it passes
// through unresolved as a decision variable.
func intoExpVariable(n *ast.Variable, ctx *Context) (Exp, error) {
	v, ok := ctx.GetValue(n.Name)
	if !ok {
		if ctx.strictVariables {
			return nil, missingVariable(n.Name).ToSpannedError(n.Sp)
		}
		return Variable(n.Name), nil
	}
	num, err := kinds.AsNumber(v)
	if err != nil {
		return nil, wrongArgument(err.Error()).ToSpannedError(n.Sp)
	}
	return Number(num), nil
}

func intoExpCompoundVariable(n *ast.CompoundVariable, ctx *Context) (Exp, error) {
	name, err := ctx.FlattenCompoundVariable(n.Stem, n.Indexes)
	if err != nil {
		return nil, err.(*Error).ToSpannedError(n.Sp)
	}
	return Variable(name), nil
}

func intoExpAddressableAccess(n *ast.AddressableAccess, ctx *Context) (Exp, error) {
	v, err := evalAddressableAccess(n, ctx)
	if err != nil {
		return nil, err
	}
	num, asErr := kinds.AsNumber(v)
	if asErr != nil {
		return nil, wrongArgument(asErr.Error()).ToSpannedError(n.Sp)
	}
	return Number(num), nil
}

func intoExpFunctionCall(n *ast.FunctionCall, ctx *Context) (Exp, error) {
	spec, ok := builtins.Lookup(n.Name)
	if !ok {
		return nil, missingVariable(n.Name).ToSpannedError(n.Sp)
	}
	if err := spec.CheckArity(len(n.Args)); err != nil {
		return nil, other(err.Error()).ToSpannedError(n.Sp)
	}
	args := make([]kinds.Value, len(n.Args))
	for i, argExpr := range n.Args {
		v, err := EvalValue(argExpr, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	result, callErr := spec.Call(args)
	if callErr != nil {
		return nil, wrongArgument(callErr.Error()).ToSpannedError(n.Sp)
	}
	num, err := kinds.AsNumber(result)
	if err != nil {
		return nil, wrongArgument(err.Error()).ToSpannedError(n.Sp)
	}
	return Number(num), nil
}

// intoExpBlockScoped unrolls a `sum/prod/min/max/avg(pattern in
// producer, ...) { body }` by recursively resolving each iteration set's
// producer to a materialized set of bindings, pushing a scope per
// combination, evaluating body, and combining the per-iteration results
// by the block's kind (spec.md section 4.3).
func intoExpBlockScoped(n *ast.BlockScoped, ctx *Context) (Exp, error) {
	var results []Exp
	err := resolveIterations(n.Iterations, ctx, func() error {
		e, err := IntoExp(n.Body, ctx)
		if err != nil {
			return err
		}
		results = append(results, e)
		return nil
	})
	if err != nil {
		if te, ok := err.(*Error); ok {
			return nil, te.ToSpannedError(n.Sp)
		}
		return nil, err
	}
	return combineBlockScoped(n.Kind, results, n.Sp)
}

func combineBlockScoped(kind ast.BlockScopedKind, results []Exp, sp span.Span) (Exp, error) {
	switch kind {
	case ast.Sum:
		acc := Exp(Number(0))
		for _, r := range results {
			acc = MakeBinOp(kinds.Add, acc, r)
		}
		return acc, nil
	case ast.Prod:
		acc := Exp(Number(1))
		for _, r := range results {
			acc = MakeBinOp(kinds.Mul, acc, r)
		}
		return acc, nil
	case ast.BSMin:
		if len(results) == 0 {
			return nil, wrongArgument("min over an empty set").ToSpannedError(sp)
		}
		return Min{Exps: results}, nil
	case ast.BSMax:
		if len(results) == 0 {
			return nil, wrongArgument("max over an empty set").ToSpannedError(sp)
		}
		return Max{Exps: results}, nil
	case ast.BSAvg:
		if len(results) == 0 {
			return nil, wrongArgument("avg over an empty set").ToSpannedError(sp)
		}
		acc := Exp(Number(0))
		for _, r := range results {
			acc = MakeBinOp(kinds.Add, acc, r)
		}
		return MakeBinOp(kinds.Div, acc, Number(float64(len(results)))), nil
	default:
		return nil, other("unrecognized block-scoped kind").ToSpannedError(sp)
	}
}

func intoExpBlock(n *ast.Block, ctx *Context) (Exp, error) {
	exps := make([]Exp, len(n.Exprs))
	for i, e := range n.Exprs {
		v, err := IntoExp(e, ctx)
		if err != nil {
			return nil, err
		}
		exps[i] = v
	}
	switch n.Kind {
	case ast.BMin:
		return Min{Exps: exps}, nil
	case ast.BMax:
		return Max{Exps: exps}, nil
	case ast.BAvg:
		acc := Exp(Number(0))
		for _, e := range exps {
			acc = MakeBinOp(kinds.Add, acc, e)
		}
		return MakeBinOp(kinds.Div, acc, Number(float64(len(exps)))), nil
	default:
		return nil, other("unrecognized block kind").ToSpannedError(n.Sp)
	}
}

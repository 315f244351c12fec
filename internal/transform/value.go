package transform

import (
	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/builtins"
	"github.com/seantiz/rooc/internal/kinds"
)

// EvalValue fully evaluates an expression to a kinds.Value — unlike
// IntoExp, which leaves unbound decision variables unresolved, this is
// used where a concrete value is required right now: iteration
// producers, builtin call arguments, and graph/array literals.
func EvalValue(e ast.Expression, ctx *Context) (kinds.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return kinds.Num(n.Value), nil
	case *ast.StringLit:
		return kinds.Str(n.Value), nil
	case *ast.BooleanLit:
		return kinds.Bool(n.Value), nil
	case *ast.ArrayLit:
		return evalArrayLit(n, ctx)
	case *ast.GraphLit:
		return evalGraphLit(n, ctx)
	case *ast.Variable:
		v, ok := ctx.GetValue(n.Name)
		if !ok {
			return nil, missingVariable(n.Name).ToSpannedError(n.Sp)
		}
		return v, nil
	case *ast.CompoundVariable:
		name, err := ctx.FlattenCompoundVariable(n.Stem, n.Indexes)
		if err != nil {
			return nil, err.(*Error).ToSpannedError(n.Sp)
		}
		v, ok := ctx.GetValue(name)
		if !ok {
			return nil, missingVariable(name).ToSpannedError(n.Sp)
		}
		return v, nil
	case *ast.AddressableAccess:
		return evalAddressableAccess(n, ctx)
	case *ast.RangeExpr:
		return evalRangeExpr(n, ctx)
	case *ast.BinOp:
		return evalBinOp(n, ctx)
	case *ast.UnOp:
		return evalUnOp(n, ctx)
	case *ast.FunctionCall:
		return evalFunctionCall(n, ctx)
	case *ast.BlockScoped, *ast.Block:
		// Block constructs are only ever required to reduce to Number
		// when evaluated eagerly (e.g. as a builtin argument); route
		// through IntoExp and demand the result collapses to a constant.
		exp, err := IntoExp(e, ctx)
		if err != nil {
			return nil, err
		}
		n2, ok := exp.(Number)
		if !ok {
			return nil, wrongArgument("expected a constant-foldable block result").ToSpannedError(e.Span())
		}
		return kinds.Num(float64(n2)), nil
	default:
		return nil, other("unrecognized expression node").ToSpannedError(e.Span())
	}
}

// evalRangeExpr evaluates `lo..hi` to the half-open integer iterable
// [lo, hi), the same sequence the builtin range(a, b) produces; it is
// evaluated here directly, not through that builtin.
func evalRangeExpr(n *ast.RangeExpr, ctx *Context) (kinds.Value, error) {
	loVal, err := EvalValue(n.Lo, ctx)
	if err != nil {
		return nil, err
	}
	lo, err := kinds.AsInteger(loVal)
	if err != nil {
		return nil, wrongArgument(err.Error()).ToSpannedError(n.Lo.Span())
	}
	hiVal, err := EvalValue(n.Hi, ctx)
	if err != nil {
		return nil, err
	}
	hi, err := kinds.AsInteger(hiVal)
	if err != nil {
		return nil, wrongArgument(err.Error()).ToSpannedError(n.Hi.Span())
	}
	var elems []kinds.Value
	for i := lo; i < hi; i++ {
		elems = append(elems, kinds.Num(float64(i)))
	}
	return kinds.IterableValue{ElemKind: kinds.Number, Elems: elems}, nil
}

func evalArrayLit(n *ast.ArrayLit, ctx *Context) (kinds.Value, error) {
	if len(n.Elements) == 0 {
		return kinds.IterableValue{ElemKind: kinds.Undefined}, nil
	}
	elems := make([]kinds.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := EvalValue(el, ctx)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	out, err := kinds.NewIterable(elems[0].Kind(), elems)
	if err != nil {
		return nil, wrongArgument(err.Error()).ToSpannedError(n.Sp)
	}
	return out, nil
}

func evalGraphLit(n *ast.GraphLit, ctx *Context) (kinds.Value, error) {
	g := kinds.NewGraph(n.Directed)
	for _, name := range n.Nodes {
		g.AddNode(name)
	}
	for _, e := range n.Edges {
		var weight *float64
		if e.Weight != nil {
			v, err := EvalValue(e.Weight, ctx)
			if err != nil {
				return nil, err
			}
			w, err := kinds.AsNumber(v)
			if err != nil {
				return nil, wrongArgument(err.Error()).ToSpannedError(n.Sp)
			}
			weight = &w
		}
		g.AddEdge(e.From, e.To, weight)
	}
	return kinds.GraphValue{G: g}, nil
}

func evalAddressableAccess(n *ast.AddressableAccess, ctx *Context) (kinds.Value, error) {
	cur, ok := ctx.GetValue(n.Name)
	if !ok {
		return nil, missingVariable(n.Name).ToSpannedError(n.Sp)
	}
	for _, accessExpr := range n.Accesses {
		accV, err := EvalValue(accessExpr, ctx)
		if err != nil {
			return nil, err
		}
		idx, usizeErr := kinds.AsUsize(accV)
		if usizeErr != nil {
			return nil, wrongArgument(usizeErr.Error()).ToSpannedError(n.Sp)
		}
		it, ok := cur.(kinds.IterableValue)
		if !ok {
			return nil, outOfBounds("access depth exceeds " + n.Name + "'s iterable nesting").ToSpannedError(n.Sp)
		}
		if idx >= len(it.Elems) {
			return nil, outOfBounds("index out of range for " + n.Name).ToSpannedError(n.Sp)
		}
		cur = it.Elems[idx]
	}
	return cur, nil
}

func evalBinOp(n *ast.BinOp, ctx *Context) (kinds.Value, error) {
	lhs, err := EvalValue(n.Lhs, ctx)
	if err != nil {
		return nil, err
	}
	rhs, err := EvalValue(n.Rhs, ctx)
	if err != nil {
		return nil, err
	}
	if !kinds.CanApplyBinaryOp(n.Op, lhs.Kind(), rhs.Kind()) {
		return nil, operatorError("cannot apply " + n.Op.String() + " to " + lhs.Kind().String() + " and " + rhs.Kind().String()).ToSpannedError(n.Sp)
	}
	if lhs.Kind().Equal(kinds.String) {
		ls, _ := kinds.AsString(lhs)
		rs, _ := kinds.AsString(rhs)
		return kinds.Str(ls + rs), nil
	}
	l, _ := kinds.AsNumber(lhs)
	r, _ := kinds.AsNumber(rhs)
	switch n.Op {
	case kinds.Add:
		return kinds.Num(l + r), nil
	case kinds.Sub:
		return kinds.Num(l - r), nil
	case kinds.Mul:
		return kinds.Num(l * r), nil
	case kinds.Div:
		return kinds.Num(l / r), nil
	default:
		return nil, other("unrecognized binary operator").ToSpannedError(n.Sp)
	}
}

func evalUnOp(n *ast.UnOp, ctx *Context) (kinds.Value, error) {
	inner, err := EvalValue(n.Inner, ctx)
	if err != nil {
		return nil, err
	}
	if !kinds.CanApplyUnaryOp(n.Op, inner.Kind()) {
		return nil, operatorError("cannot apply " + n.Op.String() + " to " + inner.Kind().String()).ToSpannedError(n.Sp)
	}
	v, _ := kinds.AsNumber(inner)
	if n.Op == kinds.Abs {
		if v < 0 {
			v = -v
		}
		return kinds.Num(v), nil
	}
	return kinds.Num(-v), nil
}

func evalFunctionCall(n *ast.FunctionCall, ctx *Context) (kinds.Value, error) {
	spec, ok := builtins.Lookup(n.Name)
	if !ok {
		return nil, missingVariable(n.Name).ToSpannedError(n.Sp)
	}
	if err := spec.CheckArity(len(n.Args)); err != nil {
		return nil, other(err.Error()).ToSpannedError(n.Sp)
	}
	args := make([]kinds.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := EvalValue(a, ctx)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	result, err := spec.Call(args)
	if err != nil {
		return nil, wrongArgument(err.Error()).ToSpannedError(n.Sp)
	}
	return result, nil
}

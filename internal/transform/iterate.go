package transform

import (
	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
)

// resolveIterations is the recursive set resolver (spec.md section 4.3):
// the outermost set's producer is evaluated to an iterable, and for
// each element (possibly spread into a tuple-pattern of names), a scope
// is pushed with those bindings, the remaining sets are resolved
// recursively, and at the innermost level leaf is invoked once per
// combination. An empty outer set means leaf is never invoked.
func resolveIterations(sets []ast.IterationSet, ctx *Context, leaf func() error) error {
	if len(sets) == 0 {
		return leaf()
	}
	set := sets[0]
	rest := sets[1:]

	producerVal, err := EvalValue(set.Producer, ctx)
	if err != nil {
		return err
	}
	it, ok := producerVal.(kinds.IterableValue)
	if !ok {
		return wrongArgument("iteration producer must be an iterable, got " + producerVal.Kind().String())
	}

	for _, elem := range it.Elems {
		ctx.AddScope()
		if err := bindValuePattern(ctx, set.Pattern, elem); err != nil {
			ctx.PopScope()
			return err
		}
		if err := resolveIterations(rest, ctx, leaf); err != nil {
			ctx.PopScope()
			return err
		}
		if _, err := ctx.PopScope(); err != nil {
			return err
		}
	}
	return nil
}

func bindValuePattern(ctx *Context, pat ast.Pattern, elem kinds.Value) error {
	if len(pat.Names) == 1 {
		return ctx.DeclareVariable(pat.Names[0], elem, false)
	}
	tup, ok := elem.(kinds.TupleValue)
	if !ok || len(tup.Elems) != len(pat.Names) {
		return unspreadable(elem.Kind().String())
	}
	for i, name := range pat.Names {
		if err := ctx.DeclareVariable(name, tup.Elems[i], false); err != nil {
			return err
		}
	}
	return nil
}

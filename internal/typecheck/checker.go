// Package typecheck is the bottom-up kind inference pass (spec component
// C5): it walks the parsed ast.Problem, maintains a stack of lexical
// frames mapping names to kinds, and produces a token-position-to-kind
// map for tooling. Like the parser, it never recovers — the first
// failing subtree aborts the whole check.
package typecheck

import (
	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/builtins"
	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/span"
)

// TypedToken records the kind inferred for one AST node, keyed by its
// source span, for tooling (hover info, diagnostics highlighting).
type TypedToken struct {
	Span       span.Span
	Kind       kinds.Kind
	Identifier string // set for Variable/CompoundVariable/FunctionCall nodes
}

// Result is the output of a successful check: every declared constant's
// kind, every declared domain, and the full span→kind map.
type Result struct {
	ConstantKinds map[string]kinds.Kind
	Domains       map[string]kinds.Domain
	Tokens        []TypedToken
}

// Checker holds the frame stack and accumulated token map for one
// Problem. It is not reused across problems.
type Checker struct {
	top    *scope
	tokens []TypedToken
}

func newChecker() *Checker {
	return &Checker{top: newScope(nil)}
}

func (c *Checker) pushScope()             { c.top = newScope(c.top) }
func (c *Checker) popScope()              { c.top = c.top.parent }
func (c *Checker) record(sp span.Span, k kinds.Kind, ident string) {
	c.tokens = append(c.tokens, TypedToken{Span: sp, Kind: k, Identifier: ident})
}

// Check type-checks an entire Problem: constants first (each visible to
// later constants and to the objective/conditions), then domain
// declarations are recorded verbatim, then the objective and every
// condition.
func Check(problem *ast.Problem) (*Result, error) {
	c := newChecker()
	constantKinds := map[string]kinds.Kind{}

	for _, constant := range problem.Constants {
		k, err := c.checkExpr(constant.Value)
		if err != nil {
			return nil, err
		}
		constantKinds[constant.Name] = k
		c.top.declare(constant.Name, k)
	}

	domains := map[string]kinds.Domain{}
	for _, d := range problem.Domains {
		domains[d.Name] = d.Domain
	}

	if problem.Objective != nil {
		if _, err := c.checkExpr(problem.Objective.Rhs); err != nil {
			return nil, err
		}
	}

	for _, cond := range problem.Conditions {
		if err := c.checkCondition(cond); err != nil {
			return nil, err
		}
	}

	return &Result{ConstantKinds: constantKinds, Domains: domains, Tokens: c.tokens}, nil
}

func (c *Checker) checkCondition(cond *ast.Condition) error {
	if len(cond.Iterations) == 0 {
		return c.checkConditionBody(cond)
	}
	return c.withIterations(cond.Iterations, func() error {
		return c.checkConditionBody(cond)
	})
}

func (c *Checker) checkConditionBody(cond *ast.Condition) error {
	lhs, err := c.checkExpr(cond.Lhs)
	if err != nil {
		return err
	}
	rhs, err := c.checkExpr(cond.Rhs)
	if err != nil {
		return err
	}
	if !lhs.Equal(kinds.Number) || !rhs.Equal(kinds.Number) {
		return diag.New(diag.KindOperatorError, cond.Span(), "a condition's sides must both be Number, got "+lhs.String()+" and "+rhs.String())
	}
	return nil
}

// withIterations pushes a frame per outer iteration set, resolving each
// producer's element kind and declaring the pattern's bound names (a
// tuple pattern spreads a Tuple element kind onto its names 1:1), then
// runs body with every set's frame active, popping them afterward.
func (c *Checker) withIterations(sets []ast.IterationSet, body func() error) error {
	var pushed int
	defer func() {
		for i := 0; i < pushed; i++ {
			c.popScope()
		}
	}()
	for _, set := range sets {
		// A producer is never a decision variable, so an unbound bare
		// name here is a missing variable rather than an implicit Number.
		if v, ok := set.Producer.(*ast.Variable); ok {
			if _, bound := c.top.lookup(v.Name); !bound {
				return diag.New(diag.KindMissingVariable, v.Sp, v.Name)
			}
		}
		producerKind, err := c.checkExpr(set.Producer)
		if err != nil {
			return err
		}
		it, ok := producerKind.(kinds.Iterable)
		if !ok {
			return diag.New(diag.KindWrongArgument, set.Producer.Span(), "iteration producer must be Iterable, got "+producerKind.String())
		}
		c.pushScope()
		pushed++
		if err := bindPattern(c.top, set.Pattern, it.Elem, set.Sp); err != nil {
			return err
		}
	}
	return body()
}

func bindPattern(s *scope, pat ast.Pattern, elemKind kinds.Kind, sp span.Span) error {
	if len(pat.Names) == 1 {
		s.declare(pat.Names[0], elemKind)
		return nil
	}
	tup, ok := elemKind.(kinds.Tuple)
	if !ok || len(tup.Elems) != len(pat.Names) {
		return diag.New(diag.KindUnspreadable, sp, "cannot spread "+elemKind.String()+" onto a "+itoa(len(pat.Names))+"-name pattern")
	}
	for i, name := range pat.Names {
		s.declare(name, tup.Elems[i])
	}
	return nil
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

// checkExpr is the bottom-up dispatcher: it recurses into an
// expression's children first, then computes and records the node's own
// kind.
func (c *Checker) checkExpr(e ast.Expression) (kinds.Kind, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		c.record(n.Sp, kinds.Number, "")
		return kinds.Number, nil
	case *ast.StringLit:
		c.record(n.Sp, kinds.String, "")
		return kinds.String, nil
	case *ast.BooleanLit:
		c.record(n.Sp, kinds.Boolean, "")
		return kinds.Boolean, nil
	case *ast.ArrayLit:
		return c.checkArrayLit(n)
	case *ast.GraphLit:
		k := kinds.Kind(kinds.Graph)
		c.record(n.Sp, k, "")
		return k, nil
	case *ast.Variable:
		return c.checkVariable(n)
	case *ast.CompoundVariable:
		return c.checkCompoundVariable(n)
	case *ast.AddressableAccess:
		return c.checkAddressableAccess(n)
	case *ast.BinOp:
		return c.checkBinOp(n)
	case *ast.UnOp:
		return c.checkUnOp(n)
	case *ast.FunctionCall:
		return c.checkFunctionCall(n)
	case *ast.BlockScoped:
		return c.checkBlockScoped(n)
	case *ast.Block:
		return c.checkBlock(n)
	case *ast.RangeExpr:
		return c.checkRangeExpr(n)
	default:
		return nil, diag.New(diag.KindSemanticError, e.Span(), "unrecognized expression node")
	}
}

func (c *Checker) checkArrayLit(n *ast.ArrayLit) (kinds.Kind, error) {
	if len(n.Elements) == 0 {
		k := kinds.Iterable{Elem: kinds.Undefined}
		c.record(n.Sp, k, "")
		return k, nil
	}
	first, err := c.checkExpr(n.Elements[0])
	if err != nil {
		return nil, err
	}
	for _, elem := range n.Elements[1:] {
		k, err := c.checkExpr(elem)
		if err != nil {
			return nil, err
		}
		if !k.Equal(first) {
			return nil, diag.New(diag.KindWrongArgument, elem.Span(), "array elements must share a kind: expected "+first.String()+", got "+k.String())
		}
	}
	k := kinds.Iterable{Elem: first}
	c.record(n.Sp, k, "")
	return k, nil
}

// checkRangeExpr checks `lo..hi`: both bounds must be Number, and the
// result is an Iterable of Number regardless of their values (an empty
// or descending range is a runtime concern for transform, not a kind
// error).
func (c *Checker) checkRangeExpr(n *ast.RangeExpr) (kinds.Kind, error) {
	loKind, err := c.checkExpr(n.Lo)
	if err != nil {
		return nil, err
	}
	if !loKind.Equal(kinds.Number) {
		return nil, diag.New(diag.KindWrongArgument, n.Lo.Span(), "range bound must be Number, got "+loKind.String())
	}
	hiKind, err := c.checkExpr(n.Hi)
	if err != nil {
		return nil, err
	}
	if !hiKind.Equal(kinds.Number) {
		return nil, diag.New(diag.KindWrongArgument, n.Hi.Span(), "range bound must be Number, got "+hiKind.String())
	}
	k := kinds.Iterable{Elem: kinds.Number}
	c.record(n.Sp, k, "")
	return k, nil
}

// checkVariable resolves a bare name against the frame stack. A name
// absent from every frame is never a checker-level error: decision
// variables are never pre-declared anywhere (no `where`/`domain` entry
// introduces them), so an unresolved name defaults to Number, the kind
// every decision variable has. The narrower case spec.md section 8's
// missing-variable scenario describes — an objective-only reference with
// no condition or domain anywhere to back it as a real decision
// variable — is caught later, by the transformer's stricter
// strictVariables check (internal/transform/problem.go), not here.
func (c *Checker) checkVariable(n *ast.Variable) (kinds.Kind, error) {
	k, ok := c.top.lookup(n.Name)
	if !ok {
		k = kinds.Number
	}
	c.record(n.Sp, k, n.Name)
	return k, nil
}

// checkCompoundVariable resolves `stem_{i,j,...}`: every index name must
// resolve in scope to Number, String, or GraphNode, and the result kind
// is Number — a decision variable introduced during transform (spec.md
// section 4.2).
func (c *Checker) checkCompoundVariable(n *ast.CompoundVariable) (kinds.Kind, error) {
	for _, idx := range n.Indexes {
		k, ok := c.top.lookup(idx)
		if !ok {
			return nil, diag.New(diag.KindMissingVariable, n.Sp, "undeclared index "+idx)
		}
		if !k.Equal(kinds.Number) && !k.Equal(kinds.String) && !k.Equal(kinds.GraphNode) {
			return nil, diag.New(diag.KindWrongArgument, n.Sp, "compound variable index "+idx+" must be Number, String, or GraphNode, got "+k.String())
		}
	}
	c.record(n.Sp, kinds.Number, n.Stem)
	return kinds.Number, nil
}

// checkAddressableAccess resolves `name[i][j]...`: the base must
// resolve, every access index must be Number, and the accesses must not
// exceed the base's Iterable nesting depth.
func (c *Checker) checkAddressableAccess(n *ast.AddressableAccess) (kinds.Kind, error) {
	base, ok := c.top.lookup(n.Name)
	if !ok {
		return nil, diag.New(diag.KindMissingVariable, n.Sp, "undeclared variable "+n.Name)
	}
	cur := base
	for _, access := range n.Accesses {
		ak, err := c.checkExpr(access)
		if err != nil {
			return nil, err
		}
		if !ak.Equal(kinds.Number) {
			return nil, diag.New(diag.KindWrongArgument, access.Span(), "addressable access index must be Number, got "+ak.String())
		}
		it, ok := cur.(kinds.Iterable)
		if !ok {
			return nil, diag.New(diag.KindOutOfBounds, n.Sp, "access depth exceeds "+n.Name+"'s iterable nesting")
		}
		cur = it.Elem
	}
	c.record(n.Sp, cur, n.Name)
	return cur, nil
}

func (c *Checker) checkBinOp(n *ast.BinOp) (kinds.Kind, error) {
	lhs, err := c.checkExpr(n.Lhs)
	if err != nil {
		return nil, err
	}
	rhs, err := c.checkExpr(n.Rhs)
	if err != nil {
		return nil, err
	}
	if !kinds.CanApplyBinaryOp(n.Op, lhs, rhs) {
		return nil, diag.New(diag.KindOperatorError, n.Sp, "cannot apply "+n.Op.String()+" to "+lhs.String()+" and "+rhs.String())
	}
	var result kinds.Kind = kinds.Number
	if lhs.Equal(kinds.String) {
		result = kinds.String
	}
	c.record(n.Sp, result, "")
	return result, nil
}

func (c *Checker) checkUnOp(n *ast.UnOp) (kinds.Kind, error) {
	inner, err := c.checkExpr(n.Inner)
	if err != nil {
		return nil, err
	}
	if !kinds.CanApplyUnaryOp(n.Op, inner) {
		return nil, diag.New(diag.KindOperatorError, n.Sp, "cannot apply "+n.Op.String()+" to "+inner.String())
	}
	c.record(n.Sp, kinds.Number, "")
	return kinds.Number, nil
}

// checkFunctionCall dispatches to the matching builtin's declared arity
// and per-argument kind (spec.md section 4.4).
func (c *Checker) checkFunctionCall(n *ast.FunctionCall) (kinds.Kind, error) {
	spec, ok := builtins.Lookup(n.Name)
	if !ok {
		return nil, diag.New(diag.KindMissingVariable, n.Sp, "unknown function "+n.Name)
	}
	if err := spec.CheckArity(len(n.Args)); err != nil {
		if d, ok := err.(*diag.Diagnostic); ok {
			d.Span = n.Sp
			return nil, d
		}
		return nil, err
	}
	argKinds := make([]kinds.Kind, len(n.Args))
	for i, arg := range n.Args {
		k, err := c.checkExpr(arg)
		if err != nil {
			return nil, err
		}
		if spec.ArgKind != nil {
			want := spec.ArgKind(i)
			if want != nil && !want.Equal(kinds.Any) && !k.Equal(want) {
				return nil, diag.New(diag.KindWrongArgument, arg.Span(), n.Name+" argument "+itoa(i)+": expected "+want.String()+", got "+k.String())
			}
		}
		argKinds[i] = k
	}
	ret := kinds.Kind(kinds.Number)
	if spec.ReturnKind != nil {
		ret = spec.ReturnKind(argKinds)
	}
	c.record(n.Sp, ret, n.Name)
	return ret, nil
}

// checkBlockScoped type-checks `sum/prod/min/max/avg(pattern in
// producer,...) { body }`: sum/prod require a Number body; min/max/avg
// accept any Number-comparable body (here, Number — the only comparable
// scalar kind in this language).
func (c *Checker) checkBlockScoped(n *ast.BlockScoped) (kinds.Kind, error) {
	var bodyKind kinds.Kind
	err := c.withIterations(n.Iterations, func() error {
		k, err := c.checkExpr(n.Body)
		if err != nil {
			return err
		}
		bodyKind = k
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !bodyKind.Equal(kinds.Number) {
		return nil, diag.New(diag.KindOperatorError, n.Sp, n.Kind.String()+" body must be Number, got "+bodyKind.String())
	}
	c.record(n.Sp, kinds.Number, "")
	return kinds.Number, nil
}

func (c *Checker) checkBlock(n *ast.Block) (kinds.Kind, error) {
	for _, expr := range n.Exprs {
		k, err := c.checkExpr(expr)
		if err != nil {
			return nil, err
		}
		if !k.Equal(kinds.Number) {
			return nil, diag.New(diag.KindOperatorError, expr.Span(), n.Kind.String()+" elements must be Number, got "+k.String())
		}
	}
	c.record(n.Sp, kinds.Number, "")
	return kinds.Number, nil
}

// Package transform is the evaluator/transformer pass (spec component
// C7): it owns a stack of frames mapping name to primitive value
// (distinct from the type checker's kind frames), unrolls every
// iteration-driven construct, flattens compound-variable names, and
// emits a fully expanded Problem of (Objective, []Condition) over the
// small Exp tree below — deliberately not the full ast.Expression
// grammar, since iteration sets, compound variables and addressable
// access have all been resolved away by the time an Exp exists.
package transform

import (
	"fmt"
	"strings"

	"github.com/seantiz/rooc/internal/kinds"
)

// Exp is the expanded, iteration-free expression tree the linearizer
// consumes. It mirrors the seven-case shape used by the reference
// implementation this compiler's semantics were distilled from: Number,
// Variable, Mod (absolute value), Min, Max, BinOp and Neg — no compound
// variables, no addressable access, no block-scoped iteration. Every one
// of those has already been resolved into this tree by the time it
// exists.
type Exp interface {
	isExp()
	String() string
}

type Number float64
type Variable string
type Mod struct{ Inner Exp }
type Min struct{ Exps []Exp }
type Max struct{ Exps []Exp }
type BinOp struct {
	Op       kinds.BinOp
	Lhs, Rhs Exp
}
type Neg struct{ Inner Exp }

func (Number) isExp()   {}
func (Variable) isExp() {}
func (Mod) isExp()      {}
func (Min) isExp()      {}
func (Max) isExp()      {}
func (BinOp) isExp()    {}
func (Neg) isExp()      {}

func MakeBinOp(op kinds.BinOp, lhs, rhs Exp) Exp { return BinOp{Op: op, Lhs: lhs, Rhs: rhs} }

func isLeaf(e Exp) bool {
	switch e.(type) {
	case BinOp, Neg:
		return false
	default:
		return true
	}
}

func (n Number) String() string { return fmt.Sprintf("%g", float64(n)) }
func (v Variable) String() string { return string(v) }
func (m Mod) String() string      { return "|" + m.Inner.String() + "|" }

func joinExps(exps []Exp) string {
	parts := make([]string, len(exps))
	for i, e := range exps {
		parts[i] = e.String()
	}
	return strings.Join(parts, ", ")
}

func (m Min) String() string { return "min{ " + joinExps(m.Exps) + " }" }
func (m Max) String() string { return "max{ " + joinExps(m.Exps) + " }" }

func (b BinOp) String() string {
	return fmt.Sprintf("%s %s %s", b.Lhs.String(), b.Op.String(), b.Rhs.String())
}

func (n Neg) String() string {
	if isLeaf(n.Inner) {
		return "-" + n.Inner.String()
	}
	return "-(" + n.Inner.String() + ")"
}

// Flatten pushes multiplication and division over addition, subtraction
// and unary negation (spec.md section 4.3), recursively, terminating
// because every rule strictly reduces the height of multiplications
// above +/-. It is not a full canonicalizer: it only linearizes the
// product/quotient forms the linearizer downstream expects.
func Flatten(e Exp) Exp {
	b, ok := e.(BinOp)
	if !ok {
		return e
	}
	switch b.Op {
	case kinds.Mul:
		// (a +- b)*c = a*c +- b*c
		if inner, ok := b.Lhs.(BinOp); ok && (inner.Op == kinds.Add || inner.Op == kinds.Sub) {
			return Flatten(BinOp{
				Op:  inner.Op,
				Lhs: MakeBinOp(kinds.Mul, inner.Lhs, b.Rhs),
				Rhs: MakeBinOp(kinds.Mul, inner.Rhs, b.Rhs),
			})
		}
		// c*(a +- b) = c*a +- c*b
		if inner, ok := b.Rhs.(BinOp); ok && (inner.Op == kinds.Add || inner.Op == kinds.Sub) {
			return Flatten(BinOp{
				Op:  inner.Op,
				Lhs: MakeBinOp(kinds.Mul, b.Lhs, inner.Lhs),
				Rhs: MakeBinOp(kinds.Mul, b.Lhs, inner.Rhs),
			})
		}
		// (-a)*c = -(a*c)
		if inner, ok := b.Lhs.(Neg); ok {
			return Neg{Inner: Flatten(MakeBinOp(kinds.Mul, inner.Inner, b.Rhs))}
		}
		// c*(-b) = -(c*b)
		if inner, ok := b.Rhs.(Neg); ok {
			return Neg{Inner: Flatten(MakeBinOp(kinds.Mul, b.Lhs, inner.Inner))}
		}
	case kinds.Div:
		// (a +- b)/c = a/c +- b/c
		if inner, ok := b.Lhs.(BinOp); ok && (inner.Op == kinds.Add || inner.Op == kinds.Sub) {
			return Flatten(BinOp{
				Op:  inner.Op,
				Lhs: MakeBinOp(kinds.Div, inner.Lhs, b.Rhs),
				Rhs: MakeBinOp(kinds.Div, inner.Rhs, b.Rhs),
			})
		}
	}
	lhs, rhs := Flatten(b.Lhs), Flatten(b.Rhs)
	if ln, ok := lhs.(Number); ok {
		if rn, ok := rhs.(Number); ok {
			if folded, ok := foldNumbers(b.Op, ln, rn); ok {
				return folded
			}
		}
	}
	return BinOp{Op: b.Op, Lhs: lhs, Rhs: rhs}
}

// foldNumbers collapses a binary op between two already-flattened Number
// leaves, e.g. the 0+1+2 a sum over 0..3 unrolls to. Division by zero is
// left unfolded; the linearizer reports it when it actually needs the
// value.
func foldNumbers(op kinds.BinOp, l, r Number) (Number, bool) {
	switch op {
	case kinds.Add:
		return l + r, true
	case kinds.Sub:
		return l - r, true
	case kinds.Mul:
		return l * r, true
	case kinds.Div:
		if r == 0 {
			return 0, false
		}
		return l / r, true
	default:
		return 0, false
	}
}

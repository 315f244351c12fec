// Package linear is the standardization pass (spec component C8): it
// linearizes an expanded transform.Exp tree into a coefficient vector
// over a closed variable vocabulary, builds a LinearModel, then
// standardizes it into the equality-constrained, non-negative-RHS form
// the simplex engine expects.
package linear

import (
	"sort"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/span"
	"github.com/seantiz/rooc/internal/transform"
)

// Terms is a sparse linear combination: coefficient per variable name,
// plus a constant offset.
type Terms struct {
	Coeffs   map[string]float64
	Constant float64
}

func newTerms() Terms { return Terms{Coeffs: map[string]float64{}} }

func (t Terms) scale(factor float64) Terms {
	out := newTerms()
	out.Constant = t.Constant * factor
	for k, v := range t.Coeffs {
		out.Coeffs[k] = v * factor
	}
	return out
}

func (t Terms) add(other Terms) Terms {
	out := newTerms()
	out.Constant = t.Constant + other.Constant
	for k, v := range t.Coeffs {
		out.Coeffs[k] += v
	}
	for k, v := range other.Coeffs {
		out.Coeffs[k] += v
	}
	return out
}

// isConstant reports whether t carries no variable terms.
func (t Terms) isConstant() bool { return len(t.Coeffs) == 0 }

// CollectTerms linearizes a flattened Exp into Terms, failing with
// OperatorError if it encounters a genuinely nonlinear construct: a
// product or quotient of two non-constant sub-expressions, or an
// absolute-value/min/max node whose argument still carries a variable.
// Call transform.Flatten on e first — this walk assumes products and
// quotients have already been pushed over addition/subtraction.
func CollectTerms(e transform.Exp, sp span.Span) (Terms, error) {
	switch n := e.(type) {
	case transform.Number:
		t := newTerms()
		t.Constant = float64(n)
		return t, nil
	case transform.Variable:
		t := newTerms()
		t.Coeffs[string(n)] = 1
		return t, nil
	case transform.Neg:
		inner, err := CollectTerms(n.Inner, sp)
		if err != nil {
			return Terms{}, err
		}
		return inner.scale(-1), nil
	case transform.Mod:
		inner, err := CollectTerms(n.Inner, sp)
		if err != nil {
			return Terms{}, err
		}
		if !inner.isConstant() {
			return Terms{}, diag.New(diag.KindOperatorError, sp, "absolute value of a non-constant expression is not linear")
		}
		v := inner.Constant
		if v < 0 {
			v = -v
		}
		t := newTerms()
		t.Constant = v
		return t, nil
	case transform.Min, transform.Max:
		return Terms{}, diag.New(diag.KindOperatorError, sp, "min/max of decision variables is not linear")
	case transform.BinOp:
		return collectBinOp(n, sp)
	default:
		return Terms{}, diag.New(diag.KindOperatorError, sp, "unrecognized expression node during linearization")
	}
}

func collectBinOp(n transform.BinOp, sp span.Span) (Terms, error) {
	lhs, err := CollectTerms(n.Lhs, sp)
	if err != nil {
		return Terms{}, err
	}
	rhs, err := CollectTerms(n.Rhs, sp)
	if err != nil {
		return Terms{}, err
	}
	switch n.Op {
	case kinds.Add:
		return lhs.add(rhs), nil
	case kinds.Sub:
		return lhs.add(rhs.scale(-1)), nil
	case kinds.Mul:
		if lhs.isConstant() {
			return rhs.scale(lhs.Constant), nil
		}
		if rhs.isConstant() {
			return lhs.scale(rhs.Constant), nil
		}
		return Terms{}, diag.New(diag.KindOperatorError, sp, "product of two decision-variable expressions is not linear")
	case kinds.Div:
		if !rhs.isConstant() {
			return Terms{}, diag.New(diag.KindOperatorError, sp, "division by a decision-variable expression is not linear")
		}
		if rhs.Constant == 0 {
			return Terms{}, diag.New(diag.KindOperatorError, sp, "division by zero")
		}
		return lhs.scale(1 / rhs.Constant), nil
	default:
		return Terms{}, diag.New(diag.KindOperatorError, sp, "unrecognized binary operator during linearization")
	}
}

// VariableVocabulary collects a stable, sorted order over every variable
// name appearing across the objective and every constraint, giving the
// model a closed, alphabetically ordered vocabulary.
func VariableVocabulary(objective Terms, constraints []Terms) []string {
	seen := map[string]bool{}
	for k := range objective.Coeffs {
		seen[k] = true
	}
	for _, c := range constraints {
		for k := range c.Coeffs {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Vector renders t as a dense coefficient vector aligned to vars.
func (t Terms) Vector(vars []string) []float64 {
	out := make([]float64, len(vars))
	for i, v := range vars {
		out[i] = t.Coeffs[v]
	}
	return out
}

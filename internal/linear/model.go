package linear

import (
	"fmt"
	"strings"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/span"
	"github.com/seantiz/rooc/internal/transform"
)

// Constraint is one row of a LinearModel: a dense coefficient vector
// aligned to Model.Variables, a comparison, and a right-hand side.
type Constraint struct {
	Coefficients []float64
	Type         kinds.Comparison
	Rhs          float64
}

// EnsureSize zero-pads c's coefficient vector to size, the same
// widening every auxiliary-variable introduction performs.
func (c *Constraint) EnsureSize(size int) {
	for len(c.Coefficients) < size {
		c.Coefficients = append(c.Coefficients, 0)
	}
}

// Model is the pre-standardized linear program: a direction, an
// objective coefficient vector with offset, a closed variable
// vocabulary, and a set of constraints.
type Model struct {
	Variables       []string
	Direction       ast.OptimizationDirection
	Objective       []float64
	ObjectiveOffset float64
	Constraints     []Constraint
}

func (m Model) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\ns.t\n", m.Direction.String(), formatLinear(m.Objective, m.Variables))
	for _, c := range m.Constraints {
		fmt.Fprintf(&b, "\t%s %s %g\n", formatLinear(c.Coefficients, m.Variables), c.Type.String(), c.Rhs)
	}
	return b.String()
}

func formatLinear(coeffs []float64, vars []string) string {
	var parts []string
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		parts = append(parts, fmt.Sprintf("%g %s", c, vars[i]))
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " + ")
}

// BuildModel linearizes a fully expanded transform.Problem into a Model:
// every condition and the objective are flattened, then their terms are
// collected over a single closed variable vocabulary derived from every
// appearance across the whole problem.
func BuildModel(problem *transform.Problem, objSpan span.Span) (*Model, error) {
	objTerms, err := CollectTerms(transform.Flatten(problem.Objective.Rhs), objSpan)
	if err != nil {
		return nil, err
	}

	condTerms := make([]Terms, len(problem.Conditions))
	for i, cond := range problem.Conditions {
		lhs, err := CollectTerms(transform.Flatten(cond.Lhs), objSpan)
		if err != nil {
			return nil, err
		}
		rhs, err := CollectTerms(transform.Flatten(cond.Rhs), objSpan)
		if err != nil {
			return nil, err
		}
		// Move every variable term to the left, every constant to the
		// right: lhs - rhs <cmp> 0 becomes (lhs.coeffs - rhs.coeffs) <cmp> (rhs.constant - lhs.constant).
		combined := lhs.add(rhs.scale(-1))
		combined.Constant = rhs.Constant - lhs.Constant
		condTerms[i] = combined
	}

	vars := VariableVocabulary(objTerms, condTerms)

	constraints := make([]Constraint, len(problem.Conditions))
	for i, cond := range problem.Conditions {
		constraints[i] = Constraint{
			Coefficients: condTerms[i].Vector(vars),
			Type:         cond.Comparison,
			Rhs:          condTerms[i].Constant,
		}
	}

	return &Model{
		Variables:       vars,
		Direction:       problem.Objective.Direction,
		Objective:       objTerms.Vector(vars),
		ObjectiveOffset: objTerms.Constant,
		Constraints:     constraints,
	}, nil
}

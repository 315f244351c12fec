package solverapi

import (
	"github.com/seantiz/rooc/internal/linear"
)

// FromModel adapts a compiled linear.Model (plus the domain
// declarations gathered by the type checker and the compile-session ID
// that produced it) into the plain-data LinearProgram any Solver can
// consume.
func FromModel(m *linear.Model, domains map[string]Domain, compileID string) LinearProgram {
	constraints := make([]Constraint, len(m.Constraints))
	for i, c := range m.Constraints {
		constraints[i] = Constraint{Coefficients: c.Coefficients, Comparison: c.Type, Rhs: c.Rhs}
	}
	return LinearProgram{
		Variables:       m.Variables,
		Direction:       m.Direction,
		Objective:       m.Objective,
		ObjectiveOffset: m.ObjectiveOffset,
		Constraints:     constraints,
		Domains:         domains,
		CompileID:       compileID,
	}
}

package linear

import "github.com/seantiz/rooc/internal/kinds"

// StandardForm is the canonical equality-constrained, non-negative-RHS
// form the simplex engine consumes (spec.md section 4.5): every
// constraint has been turned into an equality by adding auxiliary
// variables, giving each row an obvious initial basis variable with
// coefficient 1 — a slack for an original `<=` row, a surplus
// (coefficient -1) plus an artificial for a `>=` row, and an artificial
// for an `=` row.
type StandardForm struct {
	// VariableNames is the full column vocabulary: original variables
	// first, then each row's auxiliary columns in row order.
	VariableNames []string
	// NumOriginal is the number of columns in VariableNames (and m.Variables)
	// that are original decision variables rather than an appended
	// slack/surplus/artificial — columns [0, NumOriginal) are original,
	// [NumOriginal, len(VariableNames)) are auxiliary. A user variable can
	// flatten to a name that collides with a generated auxiliary name
	// (e.g. a compound variable `s_{zero}` flattens to `s_0`), so the split
	// is tracked by position, never re-derived from a name prefix.
	NumOriginal int
	// A is the constraint matrix, one row per original constraint, with
	// len(VariableNames) columns.
	A [][]float64
	// B is the non-negative right-hand-side vector, one entry per row.
	B []float64
	// Objective is the (possibly sign-flipped, for Max) objective vector
	// over the original variables, zero-padded over the auxiliary
	// columns — phase 2's objective row.
	Objective []float64
	// ObjectiveOffset carries the original objective's constant term,
	// re-applied at presentation time; it never enters the tableau.
	ObjectiveOffset float64
	// Maximize records whether the original direction was Max, so the
	// solver can flip the reported value's sign back at presentation.
	Maximize bool
	// Basis holds, for each row, the column index of its initial basis
	// variable (the auxiliary just introduced for that row).
	Basis []int
	// ArtificialColumns holds the column index of every artificial
	// variable introduced, needed both for phase 1's objective (their
	// coefficient sum) and for post-solve infeasibility detection (any
	// artificial remaining basic with nonzero value means Infeasible).
	ArtificialColumns []int
}

// Standardize converts m into a StandardForm ready for the two-phase
// simplex engine.
func Standardize(m *Model) *StandardForm {
	n := len(m.Variables)

	objective := make([]float64, n)
	copy(objective, m.Objective)
	offset := m.ObjectiveOffset
	maximize := m.Direction.String() == "max"
	if maximize {
		for i := range objective {
			objective[i] = -objective[i]
		}
		offset = -offset
	}

	varNames := append([]string{}, m.Variables...)

	rows := len(m.Constraints)
	a := make([][]float64, rows)
	b := make([]float64, rows)
	basis := make([]int, rows)
	cmpTypes := make([]kinds.Comparison, rows)
	var artificials []int

	// First pass: materialize every row at its original width, sign-
	// normalizing a negative RHS. Auxiliary columns are appended in a
	// second pass below, once every row exists — appendAuxiliary widens
	// ALL rows uniformly, so no row can be built before the others.
	for i, c := range m.Constraints {
		row := make([]float64, n)
		copy(row, c.Coefficients)
		rhs := c.Rhs
		cmpType := c.Type
		if rhs < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			rhs = -rhs
			cmpType = flipComparison(cmpType)
		}
		a[i] = row
		b[i] = rhs
		cmpTypes[i] = cmpType
	}

	for i, cmpType := range cmpTypes {
		switch cmpType {
		case kinds.LessOrEqual:
			slackCol := appendAuxiliary(&a, &varNames, &objective, i, 1, "s")
			basis[i] = slackCol
		case kinds.GreaterOrEqual:
			appendAuxiliary(&a, &varNames, &objective, i, -1, "r")
			artCol := appendAuxiliary(&a, &varNames, &objective, i, 1, "a")
			basis[i] = artCol
			artificials = append(artificials, artCol)
		case kinds.Equal:
			artCol := appendAuxiliary(&a, &varNames, &objective, i, 1, "a")
			basis[i] = artCol
			artificials = append(artificials, artCol)
		}
	}

	return &StandardForm{
		VariableNames:     varNames,
		NumOriginal:       n,
		A:                 a,
		B:                 b,
		Objective:         objective,
		ObjectiveOffset:   offset,
		Maximize:          maximize,
		Basis:             basis,
		ArtificialColumns: artificials,
	}
}

func flipComparison(c kinds.Comparison) kinds.Comparison {
	switch c {
	case kinds.LessOrEqual:
		return kinds.GreaterOrEqual
	case kinds.GreaterOrEqual:
		return kinds.LessOrEqual
	default:
		return c
	}
}

// appendAuxiliary widens every existing row (with zero in the new
// column except the named row, which gets coefficient), widens the
// objective vector with a zero, names the new column "<prefix><row>",
// and returns its column index.
func appendAuxiliary(a *[][]float64, varNames *[]string, objective *[]float64, row int, coefficient float64, prefix string) int {
	col := len(*varNames)
	*varNames = append(*varNames, auxName(prefix, row))
	*objective = append(*objective, 0)
	for r := range *a {
		if r == row {
			(*a)[r] = append((*a)[r], coefficient)
		} else {
			(*a)[r] = append((*a)[r], 0)
		}
	}
	return col
}

func auxName(prefix string, row int) string {
	return prefix + "_" + itoa(row)
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

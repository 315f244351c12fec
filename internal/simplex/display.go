package simplex

import (
	"math/big"
	"strings"
)

// RationalTableau is a shadow of Tableau carried purely for printing:
// spec.md's design notes call for keeping fractional display separate
// from the arithmetic hot path, since big.Rat is exact but far slower
// than float64 pivoting over a full tableau every iteration. No
// ecosystem package in this stack offers an exact-rational type —
// math/big is the only one that reproduces a value like 17/5 exactly
// rather than as a rounded decimal, so it is used here despite being
// standard library.
type RationalTableau struct {
	A     [][]*big.Rat
	B     []*big.Rat
	Basis []int
}

// NewRationalTableau converts a float64 Tableau into its exact-rational
// shadow. big.Rat.SetFloat64 is exact for any float64 value (it reads
// the IEEE-754 bit pattern directly), so no precision is lost at the
// point of conversion; the rounding a pivot sequence accumulates in the
// float64 tableau is not reconstructed here; it renders the current
// float64 state exactly, not a replayed error-free solve.
func NewRationalTableau(t *Tableau) *RationalTableau {
	rt := &RationalTableau{
		A:     make([][]*big.Rat, len(t.A)),
		B:     make([]*big.Rat, len(t.B)),
		Basis: append([]int{}, t.Basis...),
	}
	for i, row := range t.A {
		rt.A[i] = make([]*big.Rat, len(row))
		for j, v := range row {
			rt.A[i][j] = new(big.Rat).SetFloat64(v)
		}
	}
	for i, v := range t.B {
		rt.B[i] = new(big.Rat).SetFloat64(v)
	}
	return rt
}

// VariableValue returns the exact value of column col in the current
// basic feasible solution: its row's B entry if col is basic, zero
// otherwise.
func (rt *RationalTableau) VariableValue(col int) *big.Rat {
	for row, basisCol := range rt.Basis {
		if basisCol == col {
			return rt.B[row]
		}
	}
	return new(big.Rat)
}

// String renders every basic variable's value as a reduced fraction,
// "col=num/den" pairs in basis row order, space-separated.
func (rt *RationalTableau) String() string {
	parts := make([]string, len(rt.Basis))
	for row, col := range rt.Basis {
		parts[row] = ratioLabel(col, rt.B[row])
	}
	return strings.Join(parts, " ")
}

func ratioLabel(col int, r *big.Rat) string {
	return itoaCol(col) + "=" + r.RatString()
}

func itoaCol(n int) string {
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

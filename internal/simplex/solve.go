package simplex

import (
	"github.com/seantiz/rooc/internal/linear"
)

// Status is the terminal classification of a solve attempt.
type Status int

const (
	Optimal Status = iota
	Unbounded
	Infeasible
	IterationLimitExceeded
)

// Result is the outcome of solving a StandardForm: the assignment of
// every original variable (auxiliaries are not reported), the
// objective value in the original (un-negated) sense, and a Status.
// CompileID is left empty by Solve; a caller running several compiles
// concurrently (e.g. an embedding host) can stamp it in afterward to
// correlate a Result back to the compile that produced it.
type Result struct {
	Status      Status
	Assignments map[string]float64
	Value       float64
	CompileID   string
}

// Options configures the engine's resource limits, sourced from
// internal/config.
type Options struct {
	MaxIterations  int
	Epsilon        float64
	BlandThreshold int
}

// Solve runs the two-phase primal simplex over sf and returns a
// terminal Result. Phase 1 minimizes the sum of the artificial
// variables to find a feasible basis; if that minimum is not
// (approximately) zero, the original problem is Infeasible. Phase 2
// then minimizes the real objective from that basis, with every
// artificial column barred from re-entering.
func Solve(sf *linear.StandardForm, opts Options) Result {
	if len(sf.ArtificialColumns) == 0 {
		t := newTableau(sf.A, sf.B, sf.Objective, sf.Basis)
		status := run(t, opts)
		return finish(status, t, sf, opts.Epsilon)
	}

	phase1Obj := make([]float64, len(sf.VariableNames))
	for _, col := range sf.ArtificialColumns {
		phase1Obj[col] = 1
	}
	t1 := newTableau(sf.A, sf.B, phase1Obj, sf.Basis)
	status1 := run(t1, opts)
	if status1 == IterationLimitExceeded {
		return Result{Status: IterationLimitExceeded}
	}
	if artificialSum(t1, sf.ArtificialColumns) > opts.Epsilon {
		return Result{Status: Infeasible}
	}

	// Phase 2 resumes from phase 1's final basis against the real
	// objective. Artificial columns stay in the matrix but are barred
	// from re-entering by pinning their objective entry to a large
	// positive value — a feasible basis never needs one back, and any
	// still basic here sit at value zero (checked above).
	t2 := newTableau(t1.A, t1.B, sf.Objective, t1.Basis)
	barArtificials(t2, sf.ArtificialColumns)
	status2 := run(t2, opts)
	return finish(status2, t2, sf, opts.Epsilon)
}

func run(t *Tableau, opts Options) Status {
	for iter := 0; iter < opts.MaxIterations; iter++ {
		switch t.step(iter, opts.BlandThreshold, opts.Epsilon) {
		case stepOptimal:
			return Optimal
		case stepUnbounded:
			return Unbounded
		}
	}
	return IterationLimitExceeded
}

func artificialSum(t *Tableau, cols []int) float64 {
	sum := 0.0
	for _, col := range cols {
		sum += valueOf(t, col)
	}
	return sum
}

func barArtificials(t *Tableau, cols []int) {
	const block = 1e18
	for _, col := range cols {
		t.Objective[col] = block
	}
}

func finish(status Status, t *Tableau, sf *linear.StandardForm, epsilon float64) Result {
	switch status {
	case Unbounded:
		return Result{Status: Unbounded}
	case IterationLimitExceeded:
		return Result{Status: IterationLimitExceeded}
	}

	if artificialSum(t, sf.ArtificialColumns) > epsilon {
		return Result{Status: Infeasible}
	}

	assignments := map[string]float64{}
	for i, name := range sf.VariableNames[:sf.NumOriginal] {
		assignments[name] = valueOf(t, i)
	}

	value := -t.Value + sf.ObjectiveOffset
	if sf.Maximize {
		value = -value
	}

	return Result{Status: Optimal, Assignments: assignments, Value: value}
}

func valueOf(t *Tableau, col int) float64 {
	for row, basisCol := range t.Basis {
		if basisCol == col {
			return t.B[row]
		}
	}
	return 0
}


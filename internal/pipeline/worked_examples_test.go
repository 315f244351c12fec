package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/diag"
)

// These mirror the canonical end-to-end scenarios documented for this
// compiler: a free-real LP with an exact fractional optimum, a bounded
// maximization, a constant-folding sum, a provably infeasible repeated
// constraint, a compound-variable model, and a strictly-missing name.

func TestExampleFreeRealOptimumIsExactFraction(t *testing.T) {
	ctx := run(t, "min 3x + 4y + 6z s.t. x+3y+4z=1; 2x+y+3z=2")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 17.0/5.0, ctx.Solution.Value, 1e-6)
	require.InDelta(t, 3.0/5.0, ctx.Solution.Assignments["x"], 1e-6)
	require.InDelta(t, 0.0, ctx.Solution.Assignments["y"], 1e-6)
	require.InDelta(t, 1.0/10.0, ctx.Solution.Assignments["z"], 1e-6)
}

func TestExampleBoundedMaximizationReturnsAVertex(t *testing.T) {
	ctx := run(t, "max x+y s.t. x+y <= 2")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 2.0, ctx.Solution.Value, 1e-6)
}

func TestExampleConstantSumFoldsUnderEmptyContext(t *testing.T) {
	ctx := run(t, "min sum(i in 0..3){ i }")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 3.0, ctx.Solution.Value, 1e-9)
}

func TestExampleRepeatedConstraintIsInfeasible(t *testing.T) {
	ctx := run(t, "min 1 s.t. sum(i in 0..5){ i } <= 1 for j in enumerate(A) where A = [1, 2]")
	require.False(t, ctx.Failed())
	require.Nil(t, ctx.Solution)
	require.Error(t, ctx.SolveErr)
}

func TestExampleCompoundVariableModelPicksCheaperVariable(t *testing.T) {
	ctx := run(t, "min sum(i in 0..len(C)){ C[i] * X_{i} } s.t. X_{zero} + X_{one} = 1 where C = [3, 4]; zero = 0; one = 1")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 1.0, ctx.Solution.Assignments["X_0"], 1e-6)
	require.InDelta(t, 0.0, ctx.Solution.Assignments["X_1"], 1e-6)
	require.InDelta(t, 3.0, ctx.Solution.Value, 1e-6)
}

func TestExampleUndeclaredObjectiveNameIsMissingVariable(t *testing.T) {
	ctx := run(t, "min x")
	require.True(t, ctx.Failed())
	require.Equal(t, diag.KindMissingVariable, ctx.Errors[0].Kind)
	require.Equal(t, "x", ctx.Errors[0].Text)
}

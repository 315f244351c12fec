package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seantiz/rooc/internal/diag"
)

func run(t *testing.T, source string) *PipelineContext {
	t.Helper()
	ctx := NewPipelineContext(source)
	return Standard().Run(ctx)
}

func TestPipelineSolvesBoundedMaximization(t *testing.T) {
	ctx := run(t, "max x + y s.t. x + y <= 2")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 2.0, ctx.Solution.Value, 1e-6)
	require.NotEmpty(t, ctx.CompileID)
	require.Equal(t, ctx.CompileID, ctx.Solution.CompileID)
}

func TestPipelineReportsInfeasibleViaSolveErr(t *testing.T) {
	ctx := run(t, "min 1 s.t. sum(i in 0..5){ i } <= 1 for j in enumerate(A) where A = [1, 2]")
	require.False(t, ctx.Failed())
	require.Nil(t, ctx.Solution)
	require.Error(t, ctx.SolveErr)
}

func TestPipelineStopsAtParseErrorAndDoesNotPanicLaterStages(t *testing.T) {
	ctx := run(t, "min s.t.")
	require.True(t, ctx.Failed())
	require.Nil(t, ctx.AstRoot)
	require.Nil(t, ctx.Model)
	require.Nil(t, ctx.Solution)
}

func TestPipelineRecordsMissingVariableDiagnostic(t *testing.T) {
	ctx := run(t, "min 1 s.t. x <= y for y in A where B = 1")
	require.True(t, ctx.Failed())
	require.Equal(t, diag.KindMissingVariable, ctx.Errors[0].Kind)
}

func TestPipelineCompoundVariableExample(t *testing.T) {
	ctx := run(t, "min sum(i in 0..len(C)){ C[i] * X_{i} } s.t. X_{zero} + X_{one} = 1 where C = [3, 4]; zero = 0; one = 1")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 3.0, ctx.Solution.Value, 1e-6)
	require.InDelta(t, 1.0, ctx.Solution.Assignments["X_0"], 1e-6)
	require.InDelta(t, 0.0, ctx.Solution.Assignments["X_1"], 1e-6)
}

func TestPipelineMaximizationWithNoUpperBoundIsUnbounded(t *testing.T) {
	// x >= 0 introduces x as a decision variable without capping it
	// above, so maximizing it has no finite optimum.
	ctx := run(t, "max x s.t. x >= 0")
	require.False(t, ctx.Failed())
	require.Nil(t, ctx.Solution)
	require.Error(t, ctx.SolveErr)
}

func TestPipelineUnconstrainedObjectiveVariableIsMissing(t *testing.T) {
	// "min x" with no conditions and no domain declaration: x is never
	// constrained anywhere, so it can only be an undeclared constant.
	ctx := run(t, "min x")
	require.True(t, ctx.Failed())
	require.Equal(t, diag.KindMissingVariable, ctx.Errors[0].Kind)
}

func TestPipelineConstrainedMinimizationIsOptimalAtZero(t *testing.T) {
	// x's implicit non-negativity bounds it below at zero once it is
	// introduced by a constraint.
	ctx := run(t, "min x s.t. x <= 5")
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Solution)
	require.InDelta(t, 0.0, ctx.Solution.Value, 1e-9)
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseProcessorStopsOnSyntaxError(t *testing.T) {
	ctx := NewPipelineContext("min")
	ctx = (&ParseProcessor{}).Process(ctx)
	require.True(t, ctx.Failed())
	require.Nil(t, ctx.AstRoot)
}

func TestTypecheckProcessorSkipsWhenParseFailed(t *testing.T) {
	ctx := NewPipelineContext("min")
	ctx = (&ParseProcessor{}).Process(ctx)
	ctx = (&TypecheckProcessor{}).Process(ctx)
	require.Nil(t, ctx.TypeResult)
}

func TestTransformProcessorBuildsModelFromValidProblem(t *testing.T) {
	ctx := NewPipelineContext("min 3x + 4y s.t. x + y <= 2")
	ctx = (&ParseProcessor{}).Process(ctx)
	ctx = (&TypecheckProcessor{}).Process(ctx)
	ctx = (&TransformProcessor{}).Process(ctx)
	require.False(t, ctx.Failed())
	require.NotNil(t, ctx.Model)
	require.Equal(t, []string{"x", "y"}, ctx.Model.Variables)
}

func TestStandardizeProcessorSkipsWithoutModel(t *testing.T) {
	ctx := NewPipelineContext("min")
	ctx = (&StandardizeProcessor{}).Process(ctx)
	require.Nil(t, ctx.StandardForm)
}

func TestSolveProcessorStampsCompileIDOntoSolution(t *testing.T) {
	ctx := NewPipelineContext("min 3x + 4y s.t. x + y <= 2")
	ctx = (&ParseProcessor{}).Process(ctx)
	ctx = (&TypecheckProcessor{}).Process(ctx)
	ctx = (&TransformProcessor{}).Process(ctx)
	ctx = (&StandardizeProcessor{}).Process(ctx)
	ctx = (&SolveProcessor{}).Process(ctx)
	require.NotNil(t, ctx.Solution)
	require.Equal(t, ctx.CompileID, ctx.Solution.CompileID)
}

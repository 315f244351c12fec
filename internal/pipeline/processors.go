package pipeline

import (
	"context"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/linear"
	"github.com/seantiz/rooc/internal/parser"
	"github.com/seantiz/rooc/internal/span"
	"github.com/seantiz/rooc/internal/transform"
	"github.com/seantiz/rooc/internal/typecheck"
	"github.com/seantiz/rooc/pkg/solverapi"
)

// ParseProcessor turns ctx.Source into ctx.AstRoot. It owns both
// lexing and parsing, since parser.Parse already wraps a lexer
// internally and the two never need to be driven independently.
type ParseProcessor struct{}

func (pp *ParseProcessor) Process(ctx *PipelineContext) *PipelineContext {
	problem, err := parser.Parse(ctx.Source)
	if err != nil {
		ctx.addError(asDiagnostic(err))
		return ctx
	}
	ctx.AstRoot = problem
	return ctx
}

// TypecheckProcessor runs kind inference over ctx.AstRoot.
type TypecheckProcessor struct{}

func (tp *TypecheckProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	result, err := typecheck.Check(ctx.AstRoot)
	if err != nil {
		ctx.addError(asDiagnostic(err))
		return ctx
	}
	ctx.TypeResult = result
	return ctx
}

// TransformProcessor expands iteration, flattens compound variables,
// and linearizes the result into a Model.
type TransformProcessor struct{}

func (xp *TransformProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.AstRoot == nil || ctx.Failed() {
		return ctx
	}
	transformed, err := transform.TransformProblem(ctx.AstRoot)
	if err != nil {
		ctx.addError(asDiagnostic(err))
		return ctx
	}
	ctx.Transformed = transformed

	model, err := linear.BuildModel(transformed, ctx.AstRoot.Objective.Sp)
	if err != nil {
		ctx.addError(asDiagnostic(err))
		return ctx
	}
	ctx.Model = model
	return ctx
}

// StandardizeProcessor converts ctx.Model into the equality-constrained
// StandardForm the simplex engine consumes. Standardize cannot fail:
// every comparison kind has a defined auxiliary-variable treatment.
type StandardizeProcessor struct{}

func (sp *StandardizeProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Model == nil || ctx.Failed() {
		return ctx
	}
	ctx.StandardForm = linear.Standardize(ctx.Model)
	return ctx
}

// SolveProcessor hands ctx.Model to a solverapi.Solver. An Unbounded,
// Infeasible, InvalidDomain, or UnimplementedOptimizationType result is
// not a diagnostic error appended to ctx.Errors: it's a valid, typed
// outcome the caller inspects via ctx.SolveErr, exactly as an external
// solver package would report it.
type SolveProcessor struct {
	Solver  solverapi.Solver
	Domains map[string]solverapi.Domain
}

func (solveProc *SolveProcessor) Process(ctx *PipelineContext) *PipelineContext {
	if ctx.Model == nil || ctx.Failed() {
		return ctx
	}
	solver := solveProc.Solver
	if solver == nil {
		solver = solverapi.NewSimplexSolver()
	}
	domains := solveProc.Domains
	if domains == nil && ctx.TypeResult != nil {
		domains = ctx.TypeResult.Domains
	}

	lp := solverapi.FromModel(ctx.Model, domains, ctx.CompileID)
	solution, err := solver.Solve(context.Background(), lp)
	if err != nil {
		ctx.SolveErr = err
		return ctx
	}
	ctx.Solution = &solution
	return ctx
}

// asDiagnostic unwraps whatever error shape a stage returned into a
// *diag.Diagnostic. Parser/typecheck/linear errors already are one;
// transform errors carry a trace and must be collapsed first.
func asDiagnostic(err error) *diag.Diagnostic {
	if d, ok := err.(*diag.Diagnostic); ok {
		return d
	}
	if te, ok := err.(*transform.Error); ok {
		return te.ToDiagnostic()
	}
	return diag.New(diag.KindOther, span.Zero, err.Error())
}

// Package pipeline wires the compiler stages (spec components C4
// through C9) into a single ordered run: Parse, Typecheck, Transform,
// Standardize, Solve. Each stage reads what the previous one left on
// the shared PipelineContext and appends its own diagnostics rather
// than aborting the whole run, so a caller driving an editor or a
// batch run can see every stage's errors in one pass.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/linear"
	"github.com/seantiz/rooc/internal/transform"
	"github.com/seantiz/rooc/internal/typecheck"
	"github.com/seantiz/rooc/pkg/solverapi"
)

// PipelineContext accumulates the artifacts each stage produces, plus
// every diagnostic raised along the way. CompileID tags every
// diagnostic and the final solution so a host running several compiles
// at once (an LSP-like embedding, for instance) can tell them apart.
type PipelineContext struct {
	Source    string
	FilePath  string
	CompileID string

	AstRoot      *ast.Problem
	TypeResult   *typecheck.Result
	Transformed  *transform.Problem
	Model        *linear.Model
	StandardForm *linear.StandardForm

	// Solution and SolveErr are the result of handing ctx.Model to a
	// solverapi.Solver — the compiled-model ABI boundary, not a direct
	// call into the simplex package — so the pipeline exercises the
	// same seam an external backend would sit behind.
	Solution *solverapi.LpSolution
	SolveErr error

	Errors []*diag.Diagnostic
}

// NewPipelineContext seeds a context from source text, tagging it with
// a fresh compile-session ID.
func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{Source: source, CompileID: uuid.New().String()}
}

// Failed reports whether any stage has already recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// addError appends d to ctx.Errors, stamping it with ctx.CompileID.
func (ctx *PipelineContext) addError(d *diag.Diagnostic) {
	ctx.Errors = append(ctx.Errors, d.WithCompileID(ctx.CompileID))
}

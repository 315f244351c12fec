package pipeline

// Processor is one pipeline stage: it reads whatever the prior stages
// left on ctx, does its work, and returns ctx (mutated in place or
// replaced) for the next stage.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// Pipeline runs a fixed sequence of Processors.
type Pipeline struct {
	processors []Processor
}

// New builds a Pipeline over the given processors, run in order.
func New(processors ...Processor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Run executes every stage in order. A stage that records an error
// does not stop the run: later stages are expected to guard on
// ctx.Failed() themselves, which lets a caller surface diagnostics
// from every stage that could make progress rather than only the
// first one that failed.
func (p *Pipeline) Run(initial *PipelineContext) *PipelineContext {
	ctx := initial
	for _, proc := range p.processors {
		ctx = proc.Process(ctx)
	}
	return ctx
}

// Standard builds the full Parse -> Typecheck -> Transform ->
// Standardize -> Solve pipeline.
func Standard() *Pipeline {
	return New(
		&ParseProcessor{},
		&TypecheckProcessor{},
		&TransformProcessor{},
		&StandardizeProcessor{},
		&SolveProcessor{},
	)
}

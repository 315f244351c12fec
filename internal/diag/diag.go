// Package diag implements the cross-cutting error taxonomy and the
// top-level diagnostic formatter described in the compiler's external
// interfaces: every stage of the pipeline reports failures as a Diagnostic
// carrying a Kind, a span, and a human message, and the Formatter renders
// them the same way regardless of which stage produced them.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/seantiz/rooc/internal/span"
)

// Kind is the cross-cutting error taxonomy shared by every compiler stage.
type Kind string

const (
	KindUnexpectedToken         Kind = "UnexpectedToken"
	KindMissingToken             Kind = "MissingToken"
	KindSemanticError            Kind = "SemanticError"
	KindWrongNumberOfArguments   Kind = "WrongNumberOfArguments"
	KindMissingVariable          Kind = "MissingVariable"
	KindAlreadyExistingVariable  Kind = "AlreadyExistingVariable"
	KindOutOfBounds              Kind = "OutOfBounds"
	KindWrongArgument            Kind = "WrongArgument"
	KindOperatorError            Kind = "OperatorError"
	KindUnspreadable             Kind = "Unspreadable"
	KindNotFound                 Kind = "NotFound"
	KindIterationLimitExceeded   Kind = "IterationLimitExceeded"
	KindUnbounded                Kind = "Unbounded"
	KindInfeasible               Kind = "Infeasible"
	KindInvalidDomain            Kind = "InvalidDomain"
	KindUnimplementedOptType     Kind = "UnimplementedOptimizationType"
	KindOther                    Kind = "Other"
)

// Diagnostic is a single reportable failure: a taxonomy Kind, the span it
// occurred at, and the contextual payload describing it. CompileID
// correlates a diagnostic back to the pipeline.Context that produced it
// when a host embeds this module and runs several compiles at once; it
// is left empty by New and only set by WithCompileID.
type Diagnostic struct {
	Kind      Kind
	Span      span.Span
	Text      string
	CompileID string
}

// New builds a Diagnostic. It is the one constructor every stage uses so
// the taxonomy stays centralized instead of scattered string literals.
func New(kind Kind, sp span.Span, text string) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: sp, Text: text}
}

// WithCompileID tags d with a compile-session identifier and returns it,
// for chaining at the point a pipeline collects its stage errors.
func (d *Diagnostic) WithCompileID(id string) *Diagnostic {
	d.CompileID = id
	return d
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s %s", d.Kind, d.Text)
}

// Trace is one link of a propagated error: the span it was rethrown at,
// plus optional human context describing why (e.g. "in objective",
// "in constraint 3"). Built by transform.Error.GetTrace.
type Trace struct {
	Span    span.Span
	Context string
}

// Formatter renders diagnostics the way the external interface (spec
// section 6) requires: "Error at L1:C1 to L2:C2\n\t<kind> <text>",
// followed by trace lines outermost-first when a trace is present.
type Formatter struct {
	Out   io.Writer
	Color bool
}

// NewFormatter builds a Formatter for w, auto-detecting color the same
// way a terminal-aware CLI builtin would: only enable it when w is a real
// TTY, never when piped or redirected.
func NewFormatter(w io.Writer) *Formatter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Formatter{Out: w, Color: color}
}

const (
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// Format renders a single diagnostic plus its trace, matching the
// "innermost message followed by trace lines outermost-first" contract.
func (f *Formatter) Format(d *Diagnostic, trace []Trace) string {
	header := fmt.Sprintf("Error at %s", d.Span)
	body := fmt.Sprintf("\t%s %s", d.Kind, d.Text)
	if f.Color {
		header = ansiRed + header + ansiReset
	}
	out := header + "\n" + body
	for _, t := range trace {
		if t.Context != "" {
			out += fmt.Sprintf("\n\tat %s (%s)", t.Span, t.Context)
		} else {
			out += fmt.Sprintf("\n\tat %s", t.Span)
		}
	}
	return out
}

// Print writes the formatted diagnostic to f.Out.
func (f *Formatter) Print(d *Diagnostic, trace []Trace) {
	fmt.Fprintln(f.Out, f.Format(d, trace))
}

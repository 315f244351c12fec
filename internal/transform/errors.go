package transform

import (
	"fmt"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/span"
)

// Error is the TransformError taxonomy (spec.md section 4.3): plain
// failures plus SpannedError, which wraps an inner error with the span
// it was rethrown at and optional context text, building a call-stack
// trace as errors propagate outward through nested scopes.
type Error struct {
	Kind diag.Kind
	Msg  string

	// set only on a SpannedError wrapper (built by ToSpannedError, which
	// copies the inner Kind and Msg); Inner/Context/Span carry the
	// wrapped error and its rethrow site.
	Inner   *Error
	Span    span.Span
	Context string
	spanned bool
}

func (e *Error) Error() string {
	if e.spanned {
		return e.Inner.Error()
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Msg)
}

func missingVariable(name string) *Error        { return &Error{Kind: diag.KindMissingVariable, Msg: name} }
func alreadyExisting(name string) *Error        { return &Error{Kind: diag.KindAlreadyExistingVariable, Msg: "variable " + name + " was already declared"} }
func outOfBounds(msg string) *Error             { return &Error{Kind: diag.KindOutOfBounds, Msg: msg} }
func wrongArgument(msg string) *Error           { return &Error{Kind: diag.KindWrongArgument, Msg: msg} }
func operatorError(msg string) *Error           { return &Error{Kind: diag.KindOperatorError, Msg: msg} }
func unspreadable(kind string) *Error           { return &Error{Kind: diag.KindUnspreadable, Msg: "cannot spread " + kind} }
func other(msg string) *Error                   { return &Error{Kind: diag.KindOther, Msg: msg} }

// ToSpannedError wraps e with the span it is being rethrown at, building
// one more link in the trace.
func (e *Error) ToSpannedError(sp span.Span) *Error {
	return &Error{spanned: true, Inner: e, Span: sp, Kind: e.Kind, Msg: e.Msg}
}

// WithContext attaches human context (e.g. "in objective", "in
// constraint 3") to the most recent rethrow site.
func (e *Error) WithContext(ctx string) *Error {
	e.Context = ctx
	return e
}

// GetTrace unwraps the SpannedError chain into an ordered list of spans,
// outermost-first, de-duplicating adjacent identical spans exactly as
// the reference transformer does.
func (e *Error) GetTrace() []diag.Trace {
	var trace []diag.Trace
	cur := e
	for cur != nil && cur.spanned {
		if len(trace) == 0 || trace[len(trace)-1].Span != cur.Span {
			trace = append(trace, diag.Trace{Span: cur.Span, Context: cur.Context})
		}
		cur = cur.Inner
	}
	// The walk starts at e, the last (outermost) rethrow site, and moves
	// inward, so trace is already outermost-first.
	return trace
}

// ToDiagnostic renders the innermost (non-spanned) error as a
// diag.Diagnostic at the outermost recorded span, for top-level
// reporting.
func (e *Error) ToDiagnostic() *diag.Diagnostic {
	cur := e
	sp := span.Zero
	if len(e.GetTrace()) > 0 {
		sp = e.GetTrace()[0].Span
	}
	for cur.spanned {
		cur = cur.Inner
	}
	return diag.New(cur.Kind, sp, cur.Msg)
}

// Package span carries source positions through every stage of the
// compiler: the lexer stamps them on tokens, the parser copies them onto
// every AST node, and the transformer and simplex stages thread them
// through error chains so a user always sees where a failure originated.
package span

import "fmt"

// Span is an immutable half-open source range, byte offsets plus the
// line/column pair a human reads. Treat it as a value: never mutate a
// Span in place, only build new ones.
type Span struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
	StartOffset int
	EndOffset   int
}

// Zero is the span used when no real location applies (e.g. a
// synthesized AST node introduced by the transformer itself).
var Zero = Span{}

// New builds a span from a single token-like position, one column wide.
func New(line, column, offset int) Span {
	return Span{StartLine: line, StartColumn: column, EndLine: line, EndColumn: column, StartOffset: offset, EndOffset: offset}
}

// Join returns the smallest span covering both a and b. Either may be
// Zero, in which case the other is returned unchanged.
func Join(a, b Span) Span {
	if a == Zero {
		return b
	}
	if b == Zero {
		return a
	}
	start := a
	if b.StartOffset < a.StartOffset {
		start = b
	}
	end := a
	if b.EndOffset > a.EndOffset {
		end = b
	}
	return Span{
		StartLine:   start.StartLine,
		StartColumn: start.StartColumn,
		EndLine:     end.EndLine,
		EndColumn:   end.EndColumn,
		StartOffset: start.StartOffset,
		EndOffset:   end.EndOffset,
	}
}

// WithEnd returns a copy of s extended to end at the given position.
func (s Span) WithEnd(line, column, offset int) Span {
	s.EndLine = line
	s.EndColumn = column
	s.EndOffset = offset
	return s
}

func (s Span) String() string {
	if s.StartLine == s.EndLine && s.StartColumn == s.EndColumn {
		return fmt.Sprintf("L%d:C%d", s.StartLine, s.StartColumn)
	}
	return fmt.Sprintf("L%d:C%d to L%d:C%d", s.StartLine, s.StartColumn, s.EndLine, s.EndColumn)
}

// Spanned pairs an arbitrary value with the span it was parsed from. The
// transformer's error trace is built out of Spanned[error] links.
type Spanned[T any] struct {
	Value T
	Span  Span
}

// NewSpanned wraps a value with its originating span.
func NewSpanned[T any](value T, s Span) Spanned[T] {
	return Spanned[T]{Value: value, Span: s}
}

package parser

import (
	"fmt"

	"github.com/seantiz/rooc/internal/diag"
	"github.com/seantiz/rooc/internal/lexer"
	"github.com/seantiz/rooc/internal/span"
)

func unexpectedToken(got lexer.Token, wantDescription string) *diag.Diagnostic {
	return diag.New(diag.KindUnexpectedToken, got.Sp,
		fmt.Sprintf("unexpected %q, expected %s", got.Lexeme, wantDescription))
}

func missingToken(at span.Span, wantDescription string) *diag.Diagnostic {
	return diag.New(diag.KindMissingToken, at, fmt.Sprintf("missing %s", wantDescription))
}

func semanticError(at span.Span, text string) *diag.Diagnostic {
	return diag.New(diag.KindSemanticError, at, text)
}

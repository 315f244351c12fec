package lexer

import "github.com/seantiz/rooc/internal/span"

// Type is a lexical token category.
type Type int

const (
	EOF Type = iota
	Illegal

	Number
	Ident
	StringLit

	Plus
	Minus
	Star
	Slash
	Pipe

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace

	Comma
	Colon
	Semicolon
	Underscore
	Arrow // "->", used inside graph literals

	Eq     // "="
	Le     // "<="
	Ge     // ">="
	DotDot // ".."

	// Keywords. Identifiers and keywords share one lexing path: the
	// lexer reads a word and LookupIdent maps a reserved word to its own
	// token kind below, leaving any other word an Ident.
	KwMin
	KwMax
	KwSatisfy
	KwSum
	KwProd
	KwAvg
	KwFor
	KwIn
	KwWhere
	KwDefine
	KwSubjectTo // "s.t."
	KwGraph
	KwDigraph
	KwDomain
	KwTrue
	KwFalse
)

var keywords = map[string]Type{
	"min":     KwMin,
	"max":     KwMax,
	"satisfy": KwSatisfy,
	"sum":     KwSum,
	"prod":    KwProd,
	"avg":     KwAvg,
	"for":     KwFor,
	"in":      KwIn,
	"where":   KwWhere,
	"define":  KwDefine,
	"Graph":   KwGraph,
	"Digraph": KwDigraph,
	"domain":  KwDomain,
	"true":    KwTrue,
	"false":   KwFalse,
}

// LookupIdent classifies an identifier lexeme as a keyword Type, or
// returns Ident if it is not reserved.
func LookupIdent(lexeme string) Type {
	if t, ok := keywords[lexeme]; ok {
		return t
	}
	return Ident
}

// Token is one lexical unit: its kind, its literal text, and the span it
// occupies in the source.
type Token struct {
	Type   Type
	Lexeme string
	Sp     span.Span
}

func (t Token) Span() span.Span { return t.Sp }

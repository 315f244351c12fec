package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func allTokens(t *testing.T, input string) []Token {
	t.Helper()
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

func TestLexerBasicObjective(t *testing.T) {
	toks := allTokens(t, "min 3x + 4y")
	types := make([]Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	require.Equal(t, []Type{KwMin, Number, Ident, Plus, Number, Ident, EOF}, types)
}

func TestLexerSubjectToKeyword(t *testing.T) {
	toks := allTokens(t, "s.t. x <= 2")
	require.Equal(t, KwSubjectTo, toks[0].Type)
	require.Equal(t, Ident, toks[1].Type)
	require.Equal(t, Le, toks[2].Type)
}

func TestLexerStringAndGraphTokens(t *testing.T) {
	toks := allTokens(t, `Graph { A -> B }`)
	types := make([]Type, 0, len(toks))
	for _, tok := range toks {
		types = append(types, tok.Type)
	}
	require.Contains(t, types, KwGraph)
	require.Contains(t, types, Arrow)
}

func TestLexerNumberSpan(t *testing.T) {
	l := New("  42")
	tok := l.NextToken()
	require.Equal(t, Number, tok.Type)
	require.Equal(t, "42", tok.Lexeme)
	require.Equal(t, 1, tok.Sp.StartLine)
	require.Equal(t, 3, tok.Sp.StartColumn)
}

func TestLexerIllegalCharacter(t *testing.T) {
	l := New("@")
	tok := l.NextToken()
	require.Equal(t, Illegal, tok.Type)
	require.Equal(t, "@", tok.Lexeme)
}

func TestLexerKeywordsDoNotShadowPrefixedIdentifiers(t *testing.T) {
	toks := allTokens(t, "minimum")
	require.Equal(t, Ident, toks[0].Type)
	require.Equal(t, "minimum", toks[0].Lexeme)
}

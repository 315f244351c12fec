package parser

import (
	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/lexer"
	"github.com/seantiz/rooc/internal/span"
)

// Operator precedence, lowest to highest: unary negation binds tighter
// than `*`/`/`, which bind tighter than `+`/`-` (spec.md section 4.1).
const (
	precLowest = iota
	precAdditive
	precMultiplicative
	precUnary
)

func precedenceOf(t lexer.Type) int {
	switch t {
	case lexer.Plus, lexer.Minus:
		return precAdditive
	case lexer.Star, lexer.Slash:
		return precMultiplicative
	default:
		return precLowest
	}
}

func (p *Parser) parseExpr(minPrec int) (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		prec := precedenceOf(p.cur.Type)
		var op kinds.BinOp
		switch {
		case prec > minPrec && prec != precLowest:
			switch p.cur.Type {
			case lexer.Plus:
				op = kinds.Add
			case lexer.Minus:
				op = kinds.Sub
			case lexer.Star:
				op = kinds.Mul
			case lexer.Slash:
				op = kinds.Div
			}
			p.next()
		case precMultiplicative > minPrec && startsImplicitFactor(p.cur.Type):
			// "3x", "2(x+y)", "C[i]X_{i}": a coefficient followed directly by
			// another factor with no operator between them means `*`.
			op = kinds.Mul
			prec = precMultiplicative
		default:
			return left, nil
		}
		right, err := p.parseExpr(prec)
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: op, Lhs: left, Rhs: right, Sp: span.Join(left.Span(), right.Span())}
	}
}

// startsImplicitFactor reports whether t can open a primary expression,
// used to detect a missing `*` between adjacent factors.
func startsImplicitFactor(t lexer.Type) bool {
	switch t {
	case lexer.Number, lexer.StringLit, lexer.KwTrue, lexer.KwFalse,
		lexer.LParen, lexer.LBracket, lexer.KwGraph, lexer.KwDigraph,
		lexer.KwSum, lexer.KwProd, lexer.KwMin, lexer.KwMax, lexer.KwAvg,
		lexer.Ident:
		return true
	default:
		return false
	}
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if p.cur.Type == lexer.Minus {
		start := p.cur.Sp
		p.next()
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Op: kinds.Neg, Inner: inner, Sp: span.Join(start, inner.Span())}, nil
	}
	if p.cur.Type == lexer.Pipe {
		start := p.cur.Sp
		p.next()
		inner, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.Pipe, `"|"`)
		if err != nil {
			return nil, err
		}
		return &ast.UnOp{Op: kinds.Abs, Inner: inner, Sp: span.Join(start, end.Sp)}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	switch p.cur.Type {
	case lexer.Number:
		tok := p.cur
		val, err := parseFloat(tok.Lexeme)
		if err != nil {
			return nil, semanticError(tok.Sp, "invalid number literal "+tok.Lexeme)
		}
		p.next()
		return &ast.NumberLit{Value: val, Sp: tok.Sp}, nil
	case lexer.StringLit:
		tok := p.cur
		p.next()
		return &ast.StringLit{Value: tok.Lexeme, Sp: tok.Sp}, nil
	case lexer.KwTrue, lexer.KwFalse:
		tok := p.cur
		p.next()
		return &ast.BooleanLit{Value: tok.Type == lexer.KwTrue, Sp: tok.Sp}, nil
	case lexer.LParen:
		p.next()
		inner, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, `")"`); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.LBracket:
		return p.parseArrayLit()
	case lexer.KwGraph, lexer.KwDigraph:
		return p.parseGraphLit()
	case lexer.KwSum, lexer.KwProd, lexer.KwMin, lexer.KwMax, lexer.KwAvg:
		return p.parseBlockOrBlockScoped()
	case lexer.Ident:
		return p.parseIdentLed()
	default:
		return nil, unexpectedToken(p.cur, "an expression")
	}
}

func (p *Parser) parseArrayLit() (ast.Expression, error) {
	start := p.cur.Sp
	p.next()
	var elems []ast.Expression
	if p.cur.Type != lexer.RBracket {
		for {
			e, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
			if p.cur.Type != lexer.Comma {
				break
			}
			p.next()
		}
	}
	end, err := p.expect(lexer.RBracket, `"]"`)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayLit{Elements: elems, Sp: span.Join(start, end.Sp)}, nil
}

// parseGraphLit parses `Graph { a; b; x -> y; x -> y : 4.0 }` (or
// `Digraph` for a directed graph), a semicolon-separated mix of bare
// node declarations and edge declarations.
func (p *Parser) parseGraphLit() (ast.Expression, error) {
	start := p.cur.Sp
	directed := p.cur.Type == lexer.KwDigraph
	p.next()
	if _, err := p.expect(lexer.LBrace, `"{"`); err != nil {
		return nil, err
	}
	lit := &ast.GraphLit{Directed: directed}
	for p.cur.Type != lexer.RBrace {
		fromTok, err := p.expect(lexer.Ident, "node name")
		if err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.Arrow {
			p.next()
			toTok, err := p.expect(lexer.Ident, "node name")
			if err != nil {
				return nil, err
			}
			var weight ast.Expression
			if p.cur.Type == lexer.Colon {
				p.next()
				weight, err = p.parseExpr(precLowest)
				if err != nil {
					return nil, err
				}
			}
			lit.Edges = append(lit.Edges, ast.GraphEdgeLit{From: fromTok.Lexeme, To: toTok.Lexeme, Weight: weight})
		} else {
			lit.Nodes = append(lit.Nodes, fromTok.Lexeme)
		}
		if p.cur.Type == lexer.Semicolon {
			p.next()
			continue
		}
		break
	}
	end, err := p.expect(lexer.RBrace, `"}"`)
	if err != nil {
		return nil, err
	}
	lit.Sp = span.Join(start, end.Sp)
	return lit, nil
}

// parseBlockOrBlockScoped dispatches on what follows the kind keyword:
// `(` begins an iteration-driven BlockScoped, `{` begins a fixed-list
// Block (only legal for min/max/avg).
func (p *Parser) parseBlockOrBlockScoped() (ast.Expression, error) {
	kwTok := p.cur
	p.next()
	if p.cur.Type == lexer.LParen {
		p.next()
		sets, err := p.parseIterationSets()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RParen, `")"`); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.LBrace, `"{"`); err != nil {
			return nil, err
		}
		body, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(lexer.RBrace, `"}"`)
		if err != nil {
			return nil, err
		}
		kind, err := blockScopedKindOf(kwTok)
		if err != nil {
			return nil, err
		}
		return &ast.BlockScoped{Kind: kind, Iterations: sets, Body: body, Sp: span.Join(kwTok.Sp, end.Sp)}, nil
	}
	if p.cur.Type == lexer.LBrace {
		kind, err := blockKindOf(kwTok)
		if err != nil {
			return nil, err
		}
		p.next()
		var exprs []ast.Expression
		for {
			e, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, e)
			if p.cur.Type != lexer.Comma {
				break
			}
			p.next()
		}
		end, err := p.expect(lexer.RBrace, `"}"`)
		if err != nil {
			return nil, err
		}
		return &ast.Block{Kind: kind, Exprs: exprs, Sp: span.Join(kwTok.Sp, end.Sp)}, nil
	}
	return nil, unexpectedToken(p.cur, `"(" or "{"`)
}

func blockScopedKindOf(tok lexer.Token) (ast.BlockScopedKind, error) {
	switch tok.Type {
	case lexer.KwSum:
		return ast.Sum, nil
	case lexer.KwProd:
		return ast.Prod, nil
	case lexer.KwMin:
		return ast.BSMin, nil
	case lexer.KwMax:
		return ast.BSMax, nil
	case lexer.KwAvg:
		return ast.BSAvg, nil
	default:
		return 0, unexpectedToken(tok, "a block-scoped function keyword")
	}
}

func blockKindOf(tok lexer.Token) (ast.BlockKind, error) {
	switch tok.Type {
	case lexer.KwMin:
		return ast.BMin, nil
	case lexer.KwMax:
		return ast.BMax, nil
	case lexer.KwAvg:
		return ast.BAvg, nil
	default:
		return 0, semanticError(tok.Sp, `"`+tok.Lexeme+`" cannot be used without iteration sets; use sum/prod/min/max/avg(pattern in producer) { ... }`)
	}
}

// parseIdentLed parses everything that starts with a bare identifier:
// a function call, a compound variable (`stem_{i,j}`), an addressable
// access (`name[i][j]`), or a plain variable reference.
func (p *Parser) parseIdentLed() (ast.Expression, error) {
	nameTok := p.cur
	p.next()

	if p.cur.Type == lexer.LParen {
		p.next()
		var args []ast.Expression
		if p.cur.Type != lexer.RParen {
			for {
				a, err := p.parseExpr(precLowest)
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.cur.Type != lexer.Comma {
					break
				}
				p.next()
			}
		}
		end, err := p.expect(lexer.RParen, `")"`)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Name: nameTok.Lexeme, Args: args, Sp: span.Join(nameTok.Sp, end.Sp)}, nil
	}

	if p.cur.Type == lexer.Underscore {
		p.next()
		if _, err := p.expect(lexer.LBrace, `"{"`); err != nil {
			return nil, err
		}
		var indexes []string
		for {
			idxTok, err := p.expect(lexer.Ident, "identifier")
			if err != nil {
				return nil, err
			}
			indexes = append(indexes, idxTok.Lexeme)
			if p.cur.Type != lexer.Comma {
				break
			}
			p.next()
		}
		end, err := p.expect(lexer.RBrace, `"}"`)
		if err != nil {
			return nil, err
		}
		return &ast.CompoundVariable{Stem: nameTok.Lexeme, Indexes: indexes, Sp: span.Join(nameTok.Sp, end.Sp)}, nil
	}

	if p.cur.Type == lexer.LBracket {
		var accesses []ast.Expression
		end := nameTok.Sp
		for p.cur.Type == lexer.LBracket {
			p.next()
			idx, err := p.parseExpr(precLowest)
			if err != nil {
				return nil, err
			}
			closeTok, err := p.expect(lexer.RBracket, `"]"`)
			if err != nil {
				return nil, err
			}
			accesses = append(accesses, idx)
			end = closeTok.Sp
		}
		return &ast.AddressableAccess{Name: nameTok.Lexeme, Accesses: accesses, Sp: span.Join(nameTok.Sp, end)}, nil
	}

	return &ast.Variable{Name: nameTok.Lexeme, Sp: nameTok.Sp}, nil
}

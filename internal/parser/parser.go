// Package parser turns a token stream into a Problem AST (spec component
// C4, second half). It never recovers from an error: the first failure
// aborts the parse, matching spec.md section 7's propagation contract.
package parser

import (
	"strconv"

	"github.com/seantiz/rooc/internal/ast"
	"github.com/seantiz/rooc/internal/kinds"
	"github.com/seantiz/rooc/internal/lexer"
	"github.com/seantiz/rooc/internal/span"
)

// Parser consumes a token stream and builds a Problem.
type Parser struct {
	l         *lexer.Lexer
	cur, peek lexer.Token
}

// New builds a Parser over source text.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source)}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) expect(t lexer.Type, description string) (lexer.Token, error) {
	if p.cur.Type != t {
		if p.cur.Type == lexer.EOF {
			return lexer.Token{}, missingToken(p.cur.Sp, description)
		}
		return lexer.Token{}, unexpectedToken(p.cur, description)
	}
	tok := p.cur
	p.next()
	return tok, nil
}

// Parse parses a full Problem document:
//
//	(min|max|satisfy) expr
//	[s.t. condition (";" condition)*]
//	[where constant (";" constant)*]
//	[domain decl ("," decl)*]
func Parse(source string) (*ast.Problem, error) {
	p := New(source)
	return p.parseProblem()
}

func (p *Parser) parseProblem() (*ast.Problem, error) {
	objective, err := p.parseObjective()
	if err != nil {
		return nil, err
	}

	problem := &ast.Problem{Objective: objective}

	if p.cur.Type == lexer.KwSubjectTo {
		p.next()
		conditions, err := p.parseConditions()
		if err != nil {
			return nil, err
		}
		problem.Conditions = conditions
	}

	if p.cur.Type == lexer.KwWhere {
		p.next()
		constants, err := p.parseConstants()
		if err != nil {
			return nil, err
		}
		problem.Constants = constants
	}

	if p.cur.Type == lexer.KwDomain {
		p.next()
		domains, err := p.parseDomains()
		if err != nil {
			return nil, err
		}
		problem.Domains = domains
	}

	if p.cur.Type != lexer.EOF {
		return nil, unexpectedToken(p.cur, "end of input")
	}
	return problem, nil
}

func (p *Parser) parseDomains() ([]*ast.DomainDecl, error) {
	var out []*ast.DomainDecl
	for {
		start := p.cur.Sp
		name, err := p.expect(lexer.Ident, "identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Colon, `":"`); err != nil {
			return nil, err
		}
		tagTok, err := p.expect(lexer.Ident, "domain tag")
		if err != nil {
			return nil, err
		}
		domain, ok := kinds.DomainFromTag(tagTok.Lexeme)
		if !ok {
			return nil, semanticError(tagTok.Sp, `unknown domain tag "`+tagTok.Lexeme+`"`)
		}
		out = append(out, &ast.DomainDecl{Name: name.Lexeme, Domain: domain, Sp: span.Join(start, tagTok.Sp)})
		if p.cur.Type != lexer.Comma {
			break
		}
		p.next()
	}
	return out, nil
}

func (p *Parser) parseObjective() (*ast.Objective, error) {
	start := p.cur.Sp
	var dir ast.OptimizationDirection
	switch p.cur.Type {
	case lexer.KwMin:
		dir = ast.Minimize
	case lexer.KwMax:
		dir = ast.Maximize
	case lexer.KwSatisfy:
		dir = ast.Satisfy
	default:
		return nil, unexpectedToken(p.cur, `"min", "max" or "satisfy"`)
	}
	p.next()
	rhs, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.Objective{Direction: dir, Rhs: rhs, Sp: span.Join(start, rhs.Span())}, nil
}

func (p *Parser) parseConditions() ([]*ast.Condition, error) {
	var out []*ast.Condition
	for {
		cond, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		out = append(out, cond)
		if !p.consumeSeparator() {
			break
		}
		if p.atBlockEnd() {
			break
		}
	}
	return out, nil
}

func (p *Parser) parseCondition() (*ast.Condition, error) {
	start := p.cur.Sp
	lhs, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	var cmp kinds.Comparison
	switch p.cur.Type {
	case lexer.Le:
		cmp = kinds.LessOrEqual
	case lexer.Ge:
		cmp = kinds.GreaterOrEqual
	case lexer.Eq:
		cmp = kinds.Equal
	default:
		return nil, unexpectedToken(p.cur, `"<=", ">=" or "="`)
	}
	p.next()
	rhs, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	cond := &ast.Condition{Lhs: lhs, Rhs: rhs, Comparison: cmp}
	end := rhs.Span()
	if p.cur.Type == lexer.KwFor {
		p.next()
		sets, err := p.parseIterationSets()
		if err != nil {
			return nil, err
		}
		cond.Iterations = sets
		if len(sets) > 0 {
			end = sets[len(sets)-1].Sp
		}
	}
	cond.Sp = span.Join(start, end)
	return cond, nil
}

func (p *Parser) parseIterationSets() ([]ast.IterationSet, error) {
	var out []ast.IterationSet
	for {
		set, err := p.parseIterationSet()
		if err != nil {
			return nil, err
		}
		out = append(out, set)
		if p.cur.Type != lexer.Comma {
			break
		}
		p.next()
	}
	return out, nil
}

func (p *Parser) parseIterationSet() (ast.IterationSet, error) {
	start := p.cur.Sp
	pattern, err := p.parsePattern()
	if err != nil {
		return ast.IterationSet{}, err
	}
	if _, err := p.expect(lexer.KwIn, `"in"`); err != nil {
		return ast.IterationSet{}, err
	}
	producer, err := p.parseProducer()
	if err != nil {
		return ast.IterationSet{}, err
	}
	return ast.IterationSet{Pattern: pattern, Producer: producer, Sp: span.Join(start, producer.Span())}, nil
}

// parseProducer parses an iteration-set producer: a plain expression, or
// a `lo..hi` range. ".." only has meaning here, so it isn't a general
// expression-level operator.
func (p *Parser) parseProducer() (ast.Expression, error) {
	lo, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != lexer.DotDot {
		return lo, nil
	}
	p.next()
	hi, err := p.parseExpr(precLowest)
	if err != nil {
		return nil, err
	}
	return &ast.RangeExpr{Lo: lo, Hi: hi, Sp: span.Join(lo.Span(), hi.Span())}, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	if p.cur.Type == lexer.LParen {
		p.next()
		var names []string
		for {
			tok, err := p.expect(lexer.Ident, "identifier")
			if err != nil {
				return ast.Pattern{}, err
			}
			names = append(names, tok.Lexeme)
			if p.cur.Type != lexer.Comma {
				break
			}
			p.next()
		}
		if _, err := p.expect(lexer.RParen, `")"`); err != nil {
			return ast.Pattern{}, err
		}
		return ast.Pattern{Names: names}, nil
	}
	tok, err := p.expect(lexer.Ident, "identifier")
	if err != nil {
		return ast.Pattern{}, err
	}
	return ast.Single(tok.Lexeme), nil
}

func (p *Parser) parseConstants() ([]*ast.Constant, error) {
	var out []*ast.Constant
	for {
		start := p.cur.Sp
		name, err := p.expect(lexer.Ident, "identifier")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.Eq, `"="`); err != nil {
			return nil, err
		}
		value, err := p.parseExpr(precLowest)
		if err != nil {
			return nil, err
		}
		out = append(out, &ast.Constant{Name: name.Lexeme, Value: value, Sp: span.Join(start, value.Span())})
		if !p.consumeSeparator() {
			break
		}
		if p.atBlockEnd() {
			break
		}
	}
	return out, nil
}

// consumeSeparator consumes a trailing ';' between list items if
// present, reporting whether one was consumed.
func (p *Parser) consumeSeparator() bool {
	if p.cur.Type == lexer.Semicolon {
		p.next()
		return true
	}
	return false
}

func (p *Parser) atBlockEnd() bool {
	switch p.cur.Type {
	case lexer.EOF, lexer.KwWhere, lexer.KwDomain:
		return true
	default:
		return false
	}
}

func parseFloat(lexeme string) (float64, error) {
	return strconv.ParseFloat(lexeme, 64)
}

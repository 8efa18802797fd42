// Package parser builds a NesT AST from a token stream.
package parser

import (
	"fmt"

	"github.com/SandwichEater577/Nes/internal/value"
	"github.com/SandwichEater577/Nes/nest/ast"
	"github.com/SandwichEater577/Nes/nest/lexer"
	"github.com/SandwichEater577/Nes/nest/token"
)

// Error reports a parse failure at a source line.
type Error struct {
	Line int
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Msg) }

func errf(line int, format string, args ...any) error {
	return &Error{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// Parse lexes and parses src into a Program.
func Parse(src string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	stmts, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	return &ast.Program{Stmts: stmts}, nil
}

type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *parser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *parser) atEOF() bool { return p.peek().Kind == token.EOF }

func (p *parser) expect(k token.Kind) (token.Token, error) {
	t := p.peek()
	if t.Kind != k {
		return token.Token{}, errf(t.Line, "expected '%s'", k)
	}
	return p.advance(), nil
}

func (p *parser) expectSemi() error {
	_, err := p.expect(token.Semi)
	return err
}

func (p *parser) parseProgram() ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for !p.atEOF() {
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *parser) parseStmt() (ast.Stmt, error) {
	switch p.peek().Kind {
	case token.Let:
		return p.parseLet()
	case token.Fn:
		return p.parseFnDef()
	case token.If:
		return p.parseIf()
	case token.For:
		return p.parseFor()
	case token.While:
		return p.parseWhile()
	case token.Return:
		p.advance()
		var expr ast.Expr
		if p.peek().Kind != token.Semi {
			e, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			expr = e
		}
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return ast.Return{Value: expr}, nil
	case token.Break:
		p.advance()
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return ast.Break{}, nil
	case token.Continue:
		p.advance()
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return ast.Continue{}, nil
	case token.Ident:
		name := p.advance().StrVal
		if p.peek().Kind == token.Eq {
			p.advance()
			expr, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := p.expectSemi(); err != nil {
				return nil, err
			}
			return ast.Assign{Name: name, Value: expr}, nil
		}
		// Not an assignment: back up and reparse as an expression
		// (identifier reference or call).
		p.pos--
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return ast.ExprStmt{X: expr}, nil
	default:
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return ast.ExprStmt{X: expr}, nil
	}
}

func (p *parser) parseLet() (ast.Stmt, error) {
	p.advance() // let
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, errf(nameTok.Line, "expected variable name after 'let'")
	}
	if _, err := p.expect(token.Eq); err != nil {
		return nil, err
	}
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	return ast.Let{Name: nameTok.StrVal, Value: expr}, nil
}

func (p *parser) parseFnDef() (ast.Stmt, error) {
	p.advance() // fn
	nameTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, errf(nameTok.Line, "expected function name")
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	var params []string
	for p.peek().Kind != token.RParen {
		pt, err := p.expect(token.Ident)
		if err != nil {
			return nil, errf(pt.Line, "expected parameter name")
		}
		params = append(params, pt.StrVal)
		if p.peek().Kind == token.Comma {
			p.advance()
		}
	}
	p.advance() // )
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.FnDef{Name: nameTok.StrVal, Params: params, Body: body}, nil
}

func (p *parser) parseIf() (ast.Stmt, error) {
	p.advance() // if
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseBody []ast.Stmt
	if p.peek().Kind == token.Else {
		p.advance()
		if p.peek().Kind == token.If {
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			elseBody = []ast.Stmt{nested}
		} else {
			elseBody, err = p.parseBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return ast.If{Cond: cond, Then: then, Else: elseBody}, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	p.advance() // for
	varTok, err := p.expect(token.Ident)
	if err != nil {
		return nil, errf(varTok.Line, "expected variable name in for")
	}
	if _, err := p.expect(token.In); err != nil {
		return nil, err
	}
	start, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.DotDot); err != nil {
		return nil, err
	}
	end, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.For{Var: varTok.StrVal, Start: start, End: end, Body: body}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	p.advance() // while
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.While{Cond: cond, Body: body}, nil
}

func (p *parser) parseBlock() ([]ast.Stmt, error) {
	if _, err := p.expect(token.LBrace); err != nil {
		return nil, err
	}
	var stmts []ast.Stmt
	for p.peek().Kind != token.RBrace {
		if p.atEOF() {
			return nil, errf(p.peek().Line, "expected '}'")
		}
		s, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.advance() // }
	return stmts, nil
}

// Expression precedence, lowest to highest: || && == != < > <= >= + - * / % unary primary.

func (p *parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (ast.Expr, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == token.PipePipe {
		p.advance()
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = ast.Binary{X: l, Op: ast.Or, Y: r}
	}
	return l, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	l, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.peek().Kind == token.AmpAmp {
		p.advance()
		r, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		l = ast.Binary{X: l, Op: ast.And, Y: r}
	}
	return l, nil
}

func (p *parser) parseEquality() (ast.Expr, error) {
	l, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.peek().Kind {
		case token.EqEq:
			op = ast.Eq
		case token.BangEq:
			op = ast.Ne
		default:
			return l, nil
		}
		p.advance()
		r, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		l = ast.Binary{X: l, Op: op, Y: r}
	}
}

func (p *parser) parseComparison() (ast.Expr, error) {
	l, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.peek().Kind {
		case token.Lt:
			op = ast.Lt
		case token.Gt:
			op = ast.Gt
		case token.LtEq:
			op = ast.Le
		case token.GtEq:
			op = ast.Ge
		default:
			return l, nil
		}
		p.advance()
		r, err := p.parseAdd()
		if err != nil {
			return nil, err
		}
		l = ast.Binary{X: l, Op: op, Y: r}
	}
}

func (p *parser) parseAdd() (ast.Expr, error) {
	l, err := p.parseMul()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.peek().Kind {
		case token.Plus:
			op = ast.Add
		case token.Minus:
			op = ast.Sub
		default:
			return l, nil
		}
		p.advance()
		r, err := p.parseMul()
		if err != nil {
			return nil, err
		}
		l = ast.Binary{X: l, Op: op, Y: r}
	}
}

func (p *parser) parseMul() (ast.Expr, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ast.BinOp
		switch p.peek().Kind {
		case token.Star:
			op = ast.Mul
		case token.Slash:
			op = ast.Div
		case token.Percent:
			op = ast.Mod
		default:
			return l, nil
		}
		p.advance()
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = ast.Binary{X: l, Op: op, Y: r}
	}
}

func (p *parser) parseUnary() (ast.Expr, error) {
	switch p.peek().Kind {
	case token.Minus:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: ast.Neg, X: x}, nil
	case token.Bang:
		p.advance()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.Unary{Op: ast.Not, X: x}, nil
	default:
		return p.parsePrimary()
	}
}

func (p *parser) parsePrimary() (ast.Expr, error) {
	t := p.peek()
	switch t.Kind {
	case token.IntLit:
		p.advance()
		return ast.Lit{Value: value.Int(t.IntVal)}, nil
	case token.FloatLit:
		p.advance()
		return ast.Lit{Value: value.Float(t.FloatVal)}, nil
	case token.StrLit:
		p.advance()
		return ast.Lit{Value: value.Str(t.StrVal)}, nil
	case token.BoolLit:
		p.advance()
		return ast.Lit{Value: value.Bool(t.BoolVal)}, nil
	case token.Ident:
		p.advance()
		if p.peek().Kind == token.LParen {
			p.advance()
			var args []ast.Expr
			for p.peek().Kind != token.RParen {
				a, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				if p.peek().Kind == token.Comma {
					p.advance()
				}
			}
			p.advance() // )
			return ast.Call{Name: t.StrVal, Args: args}, nil
		}
		return ast.Var{Name: t.StrVal}, nil
	case token.LParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return e, nil
	default:
		return nil, errf(t.Line, "unexpected token in expression")
	}
}

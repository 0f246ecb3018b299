// Package parser is a small recursive-descent parser producing the
// generic ast.Node tree spec.md §3 describes, standing in for the
// external "parsing module" named in spec.md §1/§6. Like internal/lexer,
// it is deliberately outside the evaluator's dependency graph — only
// internal/driver.Parser and cmd/brewin depend on it. Grounded
// stylistically on the teacher's internal/parser (a Pratt-style
// expression parser layered over a statement parser) at a fraction of
// its size, since this grammar has no types, traits, pattern matching, or
// generics to parse.
package parser

import (
	"fmt"
	"strconv"

	"github.com/brewinlang/interpreter/internal/ast"
	"github.com/brewinlang/interpreter/internal/lexer"
)

// Parser implements internal/driver.Parser.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
}

// New returns a parser; the source text is passed to Parse.
func New() *Parser {
	return &Parser{}
}

// Parse turns source into an AST rooted at a `program` node whose
// `functions` attribute holds every top-level `func` definition
// (spec.md §3/§6).
func (p *Parser) Parse(source string) (*ast.Node, error) {
	p.lex = lexer.New(source)
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	var functions []*ast.Node
	for p.cur.Type != lexer.EOF {
		fn, err := p.parseFunc()
		if err != nil {
			return nil, err
		}
		functions = append(functions, fn)
	}
	return ast.New(ast.KindProgram, map[string]any{"functions": functions}), nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

func (p *Parser) expect(tt lexer.TokenType, what string) (lexer.Token, error) {
	if p.cur.Type != tt {
		return lexer.Token{}, fmt.Errorf("expected %s at %d:%d, got %q", what, p.cur.Line, p.cur.Column, p.cur.Literal)
	}
	tok := p.cur
	if err := p.advance(); err != nil {
		return lexer.Token{}, err
	}
	return tok, nil
}

func (p *Parser) parseFunc() (*ast.Node, error) {
	tok, err := p.expect(lexer.FUNC, "'func'")
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var params []*ast.Node
	for p.cur.Type != lexer.RPAREN {
		pname, err := p.expect(lexer.IDENT, "parameter name")
		if err != nil {
			return nil, err
		}
		params = append(params, ast.New(ast.KindVar, map[string]any{"name": pname.Literal}))
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindFunc, map[string]any{
		"name":       name.Literal,
		"args":       params,
		"statements": body,
	}).At(tok.Line, tok.Column), nil
}

func (p *Parser) parseBlock() ([]*ast.Node, error) {
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var statements []*ast.Node
	for p.cur.Type != lexer.RBRACE {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		statements = append(statements, stmt)
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return statements, nil
}

func (p *Parser) parseStatement() (*ast.Node, error) {
	var node *ast.Node
	var err error

	switch p.cur.Type {
	case lexer.VAR:
		node, err = p.parseVardef()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.TRY:
		return p.parseTry()
	case lexer.RETURN:
		node, err = p.parseReturn()
	case lexer.RAISE:
		node, err = p.parseRaise()
	case lexer.IDENT:
		node, err = p.parseAssignOrCall()
	default:
		return nil, fmt.Errorf("unexpected token %q at %d:%d starting a statement", p.cur.Literal, p.cur.Line, p.cur.Column)
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseVardef() (*ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT, "variable name")
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindVardef, map[string]any{"name": name.Literal}).At(tok.Line, tok.Column), nil
}

func (p *Parser) parseAssignOrCall() (*ast.Node, error) {
	name := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if p.cur.Type == lexer.LPAREN {
		return p.parseCallTail(name)
	}
	if _, err := p.expect(lexer.ASSIGN, "'='"); err != nil {
		return nil, err
	}
	rhs, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindAssign, map[string]any{"name": name.Literal, "expression": rhs}).At(name.Line, name.Column), nil
}

func (p *Parser) parseCallTail(name lexer.Token) (*ast.Node, error) {
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	var args []*ast.Node
	for p.cur.Type != lexer.RPAREN {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur.Type == lexer.COMMA {
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindFcall, map[string]any{"name": name.Literal, "args": args}).At(name.Line, name.Column), nil
}

func (p *Parser) parseIf() (*ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	thenStmts, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	attrs := map[string]any{"condition": cond, "statements": thenStmts}
	if p.cur.Type == lexer.ELSE {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elseStmts, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		attrs["else_statements"] = elseStmts
	}
	return ast.New(ast.KindIf, attrs).At(tok.Line, tok.Column), nil
}

func (p *Parser) parseFor() (*ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	init, err := p.parseAssignOrCall()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return nil, err
	}
	update, err := p.parseAssignOrCall()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindFor, map[string]any{
		"init":       init,
		"condition":  cond,
		"update":     update,
		"statements": body,
	}).At(tok.Line, tok.Column), nil
}

func (p *Parser) parseReturn() (*ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	attrs := map[string]any{}
	if p.cur.Type != lexer.SEMI {
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		attrs["expression"] = expr
	}
	return ast.New(ast.KindReturn, attrs).At(tok.Line, tok.Column), nil
}

func (p *Parser) parseRaise() (*ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.New(ast.KindRaise, map[string]any{"exception_type": expr}).At(tok.Line, tok.Column), nil
}

func (p *Parser) parseTry() (*ast.Node, error) {
	tok := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.CATCHERS, "'catchers'"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	var catchers []*ast.Node
	for p.cur.Type == lexer.CATCH {
		ctok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		tagTok, err := p.expect(lexer.STRING, "exception tag string")
		if err != nil {
			return nil, err
		}
		catchBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catchers = append(catchers, ast.New(ast.KindCatch, map[string]any{
			"exception_type": tagTok.Literal,
			"statements":     catchBody,
		}).At(ctok.Line, ctok.Column))
	}
	if _, err := p.expect(lexer.RBRACE, "'}'"); err != nil {
		return nil, err
	}
	return ast.New(ast.KindTry, map[string]any{
		"statements": body,
		"catchers":   catchers,
	}).At(tok.Line, tok.Column), nil
}

// Expression parsing is ordinary precedence climbing, one level per
// binary operator tier of spec.md §4.6 (|| loosest, then &&, then
// equality, then relational, then additive, then multiplicative), bottoming
// out at unary and primary. Grounded stylistically on the teacher's
// parseBinaryExpr ladder (internal/parser/parser.go) minus its
// operator-precedence table — this grammar has a fixed, small set of
// operators so a hand-written ladder reads more plainly than a table.

func (p *Parser) parseExpression() (*ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (*ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.OR {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.KindOr, map[string]any{"op1": left, "op2": right}).At(tok.Line, tok.Column)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Node, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.AND {
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.KindAnd, map[string]any{"op1": left, "op2": right}).At(tok.Line, tok.Column)
	}
	return left, nil
}

func (p *Parser) parseEquality() (*ast.Node, error) {
	left, err := p.parseRelational()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.EQ || p.cur.Type == lexer.NEQ {
		tok := p.cur
		kind := ast.KindEq
		if tok.Type == lexer.NEQ {
			kind = ast.KindNeq
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseRelational()
		if err != nil {
			return nil, err
		}
		left = ast.New(kind, map[string]any{"op1": left, "op2": right}).At(tok.Line, tok.Column)
	}
	return left, nil
}

func (p *Parser) parseRelational() (*ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		var kind ast.Kind
		switch p.cur.Type {
		case lexer.LT:
			kind = ast.KindLt
		case lexer.LEQ:
			kind = ast.KindLeq
		case lexer.GT:
			kind = ast.KindGt
		case lexer.GEQ:
			kind = ast.KindGeq
		default:
			return left, nil
		}
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = ast.New(kind, map[string]any{"op1": left, "op2": right}).At(tok.Line, tok.Column)
	}
}

func (p *Parser) parseAdditive() (*ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		tok := p.cur
		kind := ast.KindAdd
		if tok.Type == lexer.MINUS {
			kind = ast.KindSub
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.New(kind, map[string]any{"op1": left, "op2": right}).At(tok.Line, tok.Column)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == lexer.STAR || p.cur.Type == lexer.SLASH {
		tok := p.cur
		kind := ast.KindMul
		if tok.Type == lexer.SLASH {
			kind = ast.KindDiv
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.New(kind, map[string]any{"op1": left, "op2": right}).At(tok.Line, tok.Column)
	}
	return left, nil
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	switch p.cur.Type {
	case lexer.MINUS:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindNeg, map[string]any{"op1": operand}).At(tok.Line, tok.Column), nil
	case lexer.BANG:
		tok := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.KindNot, map[string]any{"op1": operand}).At(tok.Line, tok.Column), nil
	default:
		return p.parsePrimary()
	}
}

func (p *Parser) parsePrimary() (*ast.Node, error) {
	tok := p.cur
	switch tok.Type {
	case lexer.INT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer literal %q at %d:%d", tok.Literal, tok.Line, tok.Column)
		}
		return ast.New(ast.KindInt, map[string]any{"val": n}).At(tok.Line, tok.Column), nil

	case lexer.STRING:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(ast.KindString, map[string]any{"val": tok.Literal}).At(tok.Line, tok.Column), nil

	case lexer.TRUE, lexer.FALSE:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(ast.KindBool, map[string]any{"val": tok.Type == lexer.TRUE}).At(tok.Line, tok.Column), nil

	case lexer.NIL:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return ast.New(ast.KindNil, nil).At(tok.Line, tok.Column), nil

	case lexer.IDENT:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Type == lexer.LPAREN {
			return p.parseCallTail(tok)
		}
		return ast.New(ast.KindVar, map[string]any{"name": tok.Literal}).At(tok.Line, tok.Column), nil

	case lexer.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, fmt.Errorf("unexpected token %q at %d:%d in expression", tok.Literal, tok.Line, tok.Column)
	}
}

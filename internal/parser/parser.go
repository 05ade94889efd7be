// Package parser implements a recursive-descent parser for Lox, following
// the precedence ladder in spec.md §4.2: assignment, or, and, equality,
// comparison, term, factor, unary, call, primary.
package parser

import (
	"fmt"

	"github.com/insertnamehere77/loxo/internal/diagnostics"
	"github.com/insertnamehere77/loxo/pkg/ast"
	"github.com/insertnamehere77/loxo/pkg/token"
)

// maxArgs is the parameter/argument count cap from spec.md §4.2.
const maxArgs = 255

// parseError is a sentinel used internally to unwind a failed production up
// to the nearest statement boundary, where synchronize() takes over. It
// carries no data of its own: the diagnostic was already recorded when the
// error was raised.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// Parser turns a token slice into a statement list, accumulating
// diagnostics instead of stopping at the first syntax error (spec.md §4.2,
// §7).
type Parser struct {
	tokens  []token.Token
	current int
	errors  []*diagnostics.Diagnostic
}

// New creates a Parser over tokens (as produced by lexer.Lexer.ScanTokens).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the whole token stream into a program (a statement list).
// It returns whatever statements were successfully parsed even when errors
// occurred; callers must check the returned diagnostics before evaluating.
func (p *Parser) Parse() ([]ast.Stmt, []*diagnostics.Diagnostic) {
	var stmts []ast.Stmt
	for !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	return stmts, p.errors
}

// ---- declarations ----------------------------------------------------------

func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.CLASS):
		return p.classDeclaration()
	case p.match(token.FUN):
		return p.funDeclaration(ast.FunKindFunction)
	case p.match(token.VAR):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) classDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "expect class name")

	var superclass *ast.Variable
	if p.match(token.LESS) {
		supName := p.consume(token.IDENTIFIER, "expect superclass name")
		superclass = &ast.Variable{Name: supName}
	}

	p.consume(token.LEFT_BRACE, "expect '{' before class body")

	var methods []*ast.FunStmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		kind := ast.FunKindMethod
		methodName := p.peek()
		if methodName.Lexeme == "init" {
			kind = ast.FunKindInitializer
		}
		methods = append(methods, p.funDeclaration(kind))
	}

	p.consume(token.RIGHT_BRACE, "expect '}' after class body")
	return &ast.ClassStmt{Name: name, Superclass: superclass, Methods: methods}
}

// funDeclaration parses `IDENTIFIER "(" params? ")" block`. The name is
// consumed the same way for every kind: the caller has already consumed
// `fun` for a standalone declaration, and methods have no `fun` keyword.
// kind picks "function" or "method" in diagnostics and is stored on the
// returned FunStmt.
func (p *Parser) funDeclaration(kind ast.FunKind) *ast.FunStmt {
	what := "function"
	if kind != ast.FunKindFunction {
		what = "method"
	}
	name := p.consume(token.IDENTIFIER, "expect %s name", what)
	p.consume(token.LEFT_PAREN, "expect '(' after %s name", what)

	var params []token.Token
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAtCurrent("cannot have more than %d parameters", maxArgs)
			}
			params = append(params, p.consume(token.IDENTIFIER, "expect parameter name"))
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after parameters")
	p.consume(token.LEFT_BRACE, "expect '{' before %s body", what)
	body := p.block()
	return &ast.FunStmt{Name: name, Params: params, Body: body, Kind: kind}
}

func (p *Parser) varDeclaration() ast.Stmt {
	name := p.consume(token.IDENTIFIER, "expect variable name")
	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after variable declaration")
	return &ast.VarStmt{Name: name, Init: init}
}

// ---- statements -------------------------------------------------------------

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.PRINT):
		return p.printStatement()
	case p.match(token.RETURN):
		return p.returnStatement()
	case p.match(token.FOR):
		return p.forStatement()
	case p.match(token.IF):
		return p.ifStatement()
	case p.match(token.WHILE):
		return p.whileStatement()
	case p.match(token.LEFT_BRACE):
		line := p.previous().Line
		return &ast.BlockStmt{Statements: p.block(), Line: line}
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) printStatement() ast.Stmt {
	keyword := p.previous()
	value := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after value")
	return &ast.PrintStmt{Expr: value, Keyword: keyword}
}

func (p *Parser) returnStatement() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after return value")
	return &ast.ReturnStmt{Keyword: keyword, Value: value}
}

func (p *Parser) ifStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'if'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after if condition")

	thenBranch := p.statement()
	var elseBranch ast.Stmt
	if p.match(token.ELSE) {
		elseBranch = p.statement()
	}
	return &ast.IfStmt{Cond: cond, Then: thenBranch, Else: elseBranch, Keyword: keyword}
}

func (p *Parser) whileStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'while'")
	cond := p.expression()
	p.consume(token.RIGHT_PAREN, "expect ')' after condition")
	body := p.statement()
	return &ast.WhileStmt{Cond: cond, Body: body, Keyword: keyword}
}

// forStatement desugars `for (init; cond; incr) body` into a block holding
// init followed by a while loop whose body appends incr, per spec.md §4.2.
func (p *Parser) forStatement() ast.Stmt {
	keyword := p.previous()
	p.consume(token.LEFT_PAREN, "expect '(' after 'for'")

	var initializer ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
		initializer = nil
	case p.match(token.VAR):
		initializer = p.varDeclaration()
	default:
		initializer = p.expressionStatement()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.consume(token.SEMICOLON, "expect ';' after loop condition")

	var increment ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		increment = p.expression()
	}
	p.consume(token.RIGHT_PAREN, "expect ')' after for clauses")

	body := p.statement()

	if increment != nil {
		body = &ast.BlockStmt{
			Statements: []ast.Stmt{body, &ast.ExpressionStmt{Expr: increment}},
			Line:       keyword.Line,
		}
	}

	if cond == nil {
		cond = &ast.Literal{Value: true, Line: keyword.Line}
	}
	body = &ast.WhileStmt{Cond: cond, Body: body, Keyword: keyword}

	if initializer != nil {
		body = &ast.BlockStmt{Statements: []ast.Stmt{initializer, body}, Line: keyword.Line}
	}
	return body
}

func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.isAtEnd() {
		if stmt := p.declaration(); stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	p.consume(token.RIGHT_BRACE, "expect '}' after block")
	return stmts
}

func (p *Parser) expressionStatement() ast.Stmt {
	expr := p.expression()
	p.consume(token.SEMICOLON, "expect ';' after expression")
	return &ast.ExpressionStmt{Expr: expr}
}

// ---- expressions ------------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment parses the lowest-precedence level: `IDENTIFIER "=" assignment`
// or `call "." IDENTIFIER "=" assignment`, falling back to `or`. The left
// side is parsed as a normal expression first and only validated as an
// assignment target afterward (spec.md §4.2), so `a + b = c` is rejected
// with "invalid assignment target" rather than a generic parse error.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Name: target.Name, Value: value}
		case *ast.Get:
			return &ast.Set{Object: target.Object, Name: target.Name, Value: value}
		}
		p.errorAt(equals, "invalid assignment target")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.OR) {
		op := p.previous()
		right := p.and()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.AND) {
		op := p.previous()
		right := p.equality()
		expr = &ast.Logical{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BANG_EQUAL, token.EQUAL_EQUAL) {
		op := p.previous()
		right := p.comparison()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL) {
		op := p.previous()
		right := p.term()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.MINUS, token.PLUS) {
		op := p.previous()
		right := p.factor()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.SLASH, token.STAR) {
		op := p.previous()
		right := p.unary()
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		operand := p.unary()
		return &ast.Unary{Op: op, Operand: operand}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "expect property name after '.'")
			expr = &ast.Get{Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.errorAtCurrent("cannot have more than %d arguments", maxArgs)
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.consume(token.RIGHT_PAREN, "expect ')' after arguments")
	return &ast.Call{Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.FALSE):
		return &ast.Literal{Value: false, Line: p.previous().Line}
	case p.match(token.TRUE):
		return &ast.Literal{Value: true, Line: p.previous().Line}
	case p.match(token.NIL):
		return &ast.Literal{Value: nil, Line: p.previous().Line}
	case p.match(token.NUMBER, token.STRING):
		tok := p.previous()
		return &ast.Literal{Value: tok.Literal, Line: tok.Line}
	case p.match(token.THIS):
		return &ast.This{Keyword: p.previous()}
	case p.match(token.SUPER):
		keyword := p.previous()
		p.consume(token.DOT, "expect '.' after 'super'")
		method := p.consume(token.IDENTIFIER, "expect superclass method name")
		return &ast.Super{Keyword: keyword, Method: method}
	case p.match(token.IDENTIFIER):
		return &ast.Variable{Name: p.previous()}
	case p.match(token.LEFT_PAREN):
		line := p.previous().Line
		inner := p.expression()
		p.consume(token.RIGHT_PAREN, "expect ')' after expression")
		return &ast.Grouping{Inner: inner, Line: line}
	}

	p.errorAtCurrent("expect expression")
	panic(parseError{})
}

// ---- token cursor helpers ---------------------------------------------------

func (p *Parser) match(types ...token.Type) bool {
	for _, t := range types {
		if p.check(t) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(t token.Type) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == t
}

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.current-1]
}

func (p *Parser) consume(t token.Type, format string, args ...any) token.Token {
	if p.check(t) {
		return p.advance()
	}
	p.errorAtCurrent(format, args...)
	panic(parseError{})
}

// synchronize discards tokens until it reaches a likely statement boundary:
// just past a semicolon, or just before a keyword that starts a new
// declaration or statement (spec.md §4.2).
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.CLASS, token.FUN, token.VAR, token.FOR, token.IF, token.WHILE, token.PRINT, token.RETURN:
			return
		}
		p.advance()
	}
}

func (p *Parser) errorAtCurrent(format string, args ...any) {
	p.errorAt(p.peek(), format, args...)
}

func (p *Parser) errorAt(tok token.Token, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if tok.Type == token.EOF {
		msg = "at end: " + msg
	} else {
		msg = "at '" + tok.Lexeme + "': " + msg
	}
	p.errors = append(p.errors, diagnostics.New(diagnostics.ParserStage, tok.Line, msg))
}

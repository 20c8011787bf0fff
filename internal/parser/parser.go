// Package parser implements a recursive-descent parser over
// internal/lexer's token stream, producing the internal/ast shape the
// evaluator consumes. It is one conforming front end among possibly
// many; the core evaluator only requires the AST discriminators
// described in internal/ast (spec §3.2).
package parser

import (
	"fmt"

	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/lexer"
)

// Parser consumes a token stream with one token of lookahead.
type Parser struct {
	l      *lexer.Lexer
	cur    lexer.Token
	peek   lexer.Token
	errors []string
}

// New constructs a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []string { return p.errors }

func (p *Parser) next() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) pos() ast.Position {
	return ast.Position{Line: p.cur.Pos.Line, Column: p.cur.Pos.Column}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf("%s (at %d:%d)", fmt.Sprintf(format, args...), p.cur.Pos.Line, p.cur.Pos.Column))
}

func (p *Parser) expect(t lexer.TokenType, what string) bool {
	if p.cur.Type != t {
		p.errorf("expected %s, got %q", what, p.cur.Literal)
		return false
	}
	return true
}

func (p *Parser) skipSeparators() {
	for p.cur.Type == lexer.NEWLINE || p.cur.Type == lexer.SEMI || p.cur.Type == lexer.COMMA {
		p.next()
	}
}

func isBlockEnd(t lexer.TokenType) bool {
	switch t {
	case lexer.ELSEIF, lexer.ELSE, lexer.ENDIF, lexer.EOF:
		return true
	default:
		return false
	}
}

// Parse reads the entire token stream and returns the top-level
// statement List.
func (p *Parser) Parse() *ast.List {
	return p.parseStatementList(func(t lexer.TokenType) bool { return t == lexer.EOF })
}

func (p *Parser) parseStatementList(stop func(lexer.TokenType) bool) *ast.List {
	pos := p.pos()
	n := &ast.List{Base: ast.NewBase(pos)}
	p.skipSeparators()
	for !stop(p.cur.Type) {
		stmt := p.parseStatement()
		if stmt == nil {
			p.next()
			continue
		}
		omit := p.cur.Type == lexer.SEMI
		n.Items = append(n.Items, stmt)
		n.OmitOut = append(n.OmitOut, omit)
		p.skipSeparators()
	}
	return n
}

func (p *Parser) parseStatement() ast.Node {
	if p.cur.Type == lexer.IF {
		return p.parseIf()
	}
	if p.cur.Type == lexer.IDENT && isCommandArg(p.peek.Type) {
		return p.parseCmdWList()
	}
	left := p.parseExpr()
	if left == nil {
		return nil
	}
	if op, ok := assignOp(p.cur.Type); ok {
		pos := p.pos()
		p.next()
		right := p.parseExpr()
		return &ast.Assign{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
	return left
}

// isCommandArg reports whether tok can begin a bareword command
// argument list (spec §3.2 CMDWLIST): a second bareword-shaped token
// immediately following a statement-leading identifier, with no
// intervening operator, signals command syntax (`clear all`) rather
// than an expression statement.
func isCommandArg(tok lexer.TokenType) bool {
	switch tok {
	case lexer.IDENT, lexer.NUMBER, lexer.STRING:
		return true
	default:
		return false
	}
}

func (p *Parser) parseCmdWList() ast.Node {
	pos := p.pos()
	name := p.cur.Literal
	p.next()
	var args []string
	for p.cur.Type != lexer.NEWLINE && p.cur.Type != lexer.SEMI && p.cur.Type != lexer.EOF && p.cur.Type != lexer.COMMA {
		args = append(args, p.cur.Literal)
		p.next()
	}
	return &ast.CmdWList{Base: ast.NewBase(pos), Name: name, Args: args}
}

func assignOp(t lexer.TokenType) (string, bool) {
	switch t {
	case lexer.ASSIGN:
		return "=", true
	case lexer.PLUSEQ:
		return "+=", true
	case lexer.MINUSEQ:
		return "-=", true
	case lexer.STAREQ:
		return "*=", true
	case lexer.SLASHEQ:
		return "/=", true
	case lexer.BACKSLASHEQ:
		return "\\=", true
	case lexer.CARETEQ:
		return "^=", true
	case lexer.STARSTAREQ:
		return "**=", true
	case lexer.DOTSTAREQ:
		return ".*=", true
	case lexer.DOTSLASHEQ:
		return "./=", true
	case lexer.DOTBACKSLASHEQ:
		return ".\\=", true
	case lexer.DOTCARETEQ:
		return ".^=", true
	case lexer.DOTSTARSTAREQ:
		return ".**=", true
	case lexer.AMPEQ:
		return "&=", true
	case lexer.PIPEEQ:
		return "|=", true
	default:
		return "", false
	}
}

func (p *Parser) parseIf() ast.Node {
	pos := p.pos()
	n := &ast.If{Base: ast.NewBase(pos)}
	p.next() // consume IF
	cond := p.parseExpr()
	n.Conds = append(n.Conds, cond)
	then := p.parseStatementList(isBlockEnd)
	n.Thens = append(n.Thens, then)

	for p.cur.Type == lexer.ELSEIF {
		p.next()
		cond := p.parseExpr()
		n.Conds = append(n.Conds, cond)
		then := p.parseStatementList(isBlockEnd)
		n.Thens = append(n.Thens, then)
	}
	if p.cur.Type == lexer.ELSE {
		p.next()
		n.Else = p.parseStatementList(isBlockEnd)
	}
	p.expect(lexer.ENDIF, "endif")
	p.next()
	return n
}

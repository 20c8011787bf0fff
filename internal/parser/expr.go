package parser

import (
	"github.com/numl-lang/numl/internal/ast"
	"github.com/numl-lang/numl/internal/lexer"
)

// parseExpr is the entry point for an expression below assignment
// precedence (assignment itself is handled by parseStatement, since
// its left side must be decomposed into targets rather than evaluated).
func (p *Parser) parseExpr() ast.Node {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() ast.Node {
	left := p.parseLogicalAnd()
	for p.cur.Type == lexer.OROR {
		pos := p.pos()
		p.next()
		right := p.parseLogicalAnd()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: "||", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Node {
	left := p.parseElemOr()
	for p.cur.Type == lexer.ANDAND {
		pos := p.pos()
		p.next()
		right := p.parseElemOr()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: "&&", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseElemOr() ast.Node {
	left := p.parseElemAnd()
	for p.cur.Type == lexer.PIPE {
		pos := p.pos()
		p.next()
		right := p.parseElemAnd()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: "|", Left: left, Right: right}
	}
	return left
}

func (p *Parser) parseElemAnd() ast.Node {
	left := p.parseComparison()
	for p.cur.Type == lexer.AMP {
		pos := p.pos()
		p.next()
		right := p.parseComparison()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: "&", Left: left, Right: right}
	}
	return left
}

func comparisonOp(t lexer.TokenType) (string, bool) {
	switch t {
	case lexer.LT:
		return "<", true
	case lexer.LE:
		return "<=", true
	case lexer.GT:
		return ">", true
	case lexer.GE:
		return ">=", true
	case lexer.EQ:
		return "==", true
	case lexer.NE:
		return "!=", true
	case lexer.NE2:
		return "~=", true
	default:
		return "", false
	}
}

func (p *Parser) parseComparison() ast.Node {
	left := p.parseRange()
	for {
		op, ok := comparisonOp(p.cur.Type)
		if !ok {
			return left
		}
		pos := p.pos()
		p.next()
		right := p.parseRange()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
}

// parseRange handles start:stop and start:stride:stop (spec §4.1's
// range construct); operands bind at additive precedence, so
// `1:n-1` parses as `1:(n-1)`.
func (p *Parser) parseRange() ast.Node {
	start := p.parseAdditive()
	if p.cur.Type != lexer.COLON {
		return start
	}
	pos := p.pos()
	p.next()
	second := p.parseAdditive()
	if p.cur.Type == lexer.COLON {
		p.next()
		third := p.parseAdditive()
		return &ast.Range{Base: ast.NewBase(pos), Start: start, Stride: second, Stop: third}
	}
	return &ast.Range{Base: ast.NewBase(pos), Start: start, Stop: second}
}

func (p *Parser) parseAdditive() ast.Node {
	left := p.parseMultiplicative()
	for p.cur.Type == lexer.PLUS || p.cur.Type == lexer.MINUS {
		op := "+"
		if p.cur.Type == lexer.MINUS {
			op = "-"
		}
		pos := p.pos()
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
	return left
}

func multiplicativeOp(t lexer.TokenType) (string, bool) {
	switch t {
	case lexer.STAR:
		return "*", true
	case lexer.SLASH:
		return "/", true
	case lexer.BACKSLASH:
		return "\\", true
	case lexer.DOTSTAR:
		return ".*", true
	case lexer.DOTSLASH:
		return "./", true
	case lexer.DOTBACKSLASH:
		return ".\\", true
	default:
		return "", false
	}
}

func (p *Parser) parseMultiplicative() ast.Node {
	left := p.parseUnary()
	for {
		op, ok := multiplicativeOp(p.cur.Type)
		if !ok {
			return left
		}
		pos := p.pos()
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
}

// parseUnary handles prefix + - ! ~ ++ --. A bare `~` immediately
// followed by an assignment/list-separator token is the wildcard
// discard target (spec §3.2), not the logical-NOT prefix; that
// ambiguity is resolved here since both share the TILDE token.
func (p *Parser) parseUnary() ast.Node {
	switch p.cur.Type {
	case lexer.TILDE:
		if isWildcardContext(p.peek.Type) {
			pos := p.pos()
			p.next()
			return &ast.Wildcard{Base: ast.NewBase(pos)}
		}
		pos := p.pos()
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Base: ast.NewBase(pos), Op: "~_", Operand: operand}
	case lexer.PLUS:
		pos := p.pos()
		p.next()
		return &ast.UnaryExpr{Base: ast.NewBase(pos), Op: "+_", Operand: p.parseUnary()}
	case lexer.MINUS:
		pos := p.pos()
		p.next()
		return &ast.UnaryExpr{Base: ast.NewBase(pos), Op: "-_", Operand: p.parseUnary()}
	case lexer.BANG:
		pos := p.pos()
		p.next()
		return &ast.UnaryExpr{Base: ast.NewBase(pos), Op: "!_", Operand: p.parseUnary()}
	case lexer.PLUSPLUS:
		pos := p.pos()
		p.next()
		return &ast.UnaryExpr{Base: ast.NewBase(pos), Op: "++_", Operand: p.parseUnary()}
	case lexer.MINUSMINUS:
		pos := p.pos()
		p.next()
		return &ast.UnaryExpr{Base: ast.NewBase(pos), Op: "--_", Operand: p.parseUnary()}
	default:
		return p.parsePower()
	}
}

func isWildcardContext(t lexer.TokenType) bool {
	switch t {
	case lexer.ASSIGN, lexer.COMMA, lexer.RBRACKET:
		return true
	default:
		return false
	}
}

func powerOp(t lexer.TokenType) (string, bool) {
	switch t {
	case lexer.CARET:
		return "^", true
	case lexer.STARSTAR:
		return "**", true
	case lexer.DOTCARET:
		return ".^", true
	case lexer.DOTSTARSTAR:
		return ".**", true
	default:
		return "", false
	}
}

// parsePower is right-associative and binds tighter than unary prefix
// on its left operand but allows a signed exponent: `2^-3`.
func (p *Parser) parsePower() ast.Node {
	left := p.parsePostfix()
	if op, ok := powerOp(p.cur.Type); ok {
		pos := p.pos()
		p.next()
		right := p.parseUnary()
		return &ast.BinaryExpr{Base: ast.NewBase(pos), Op: op, Left: left, Right: right}
	}
	return left
}

func (p *Parser) parsePostfix() ast.Node {
	n := p.parsePrimaryChain()
	for {
		switch p.cur.Type {
		case lexer.PLUSPLUS:
			pos := p.pos()
			p.next()
			n = &ast.PostfixExpr{Base: ast.NewBase(pos), Op: "_++", Operand: n}
		case lexer.MINUSMINUS:
			pos := p.pos()
			p.next()
			n = &ast.PostfixExpr{Base: ast.NewBase(pos), Op: "_--", Operand: n}
		case lexer.TRANSPOSE:
			pos := p.pos()
			p.next()
			n = &ast.PostfixExpr{Base: ast.NewBase(pos), Op: "'", Operand: n}
		case lexer.DOTTRANSPOSE:
			pos := p.pos()
			p.next()
			n = &ast.PostfixExpr{Base: ast.NewBase(pos), Op: ".'", Operand: n}
		default:
			return n
		}
	}
}

// parsePrimaryChain parses a primary atom followed by any number of
// `(args)`, `{args}`, and `.field` suffixes, e.g. `a(1).b{2}.c`.
func (p *Parser) parsePrimaryChain() ast.Node {
	n := p.parsePrimary()
	for {
		switch p.cur.Type {
		case lexer.LPAREN:
			n = p.parseIdxArgs(n, false)
		case lexer.LBRACE:
			n = p.parseIdxArgs(n, true)
		case lexer.DOT:
			n = p.parseFieldChain(n)
		default:
			return n
		}
	}
}

func (p *Parser) parseIdxArgs(head ast.Node, brace bool) ast.Node {
	pos := p.pos()
	open, close := lexer.LPAREN, lexer.RPAREN
	if brace {
		open, close = lexer.LBRACE, lexer.RBRACE
	}
	p.expect(open, "( or {")
	p.next()
	var args []ast.Node
	for p.cur.Type != close && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.COLON && (p.peek.Type == close || p.peek.Type == lexer.COMMA) {
			cpos := p.pos()
			args = append(args, &ast.Colon{Base: ast.NewBase(cpos)})
			p.next()
		} else {
			args = append(args, p.parseExpr())
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		break
	}
	p.expect(close, "closing delimiter")
	p.next()
	return &ast.Idx{Base: ast.NewBase(pos), Head: head, Args: args, Brace: brace}
}

func (p *Parser) parseFieldChain(object ast.Node) ast.Node {
	pos := p.pos()
	var path []ast.FieldDesignator
	for p.cur.Type == lexer.DOT {
		p.next()
		if p.cur.Type == lexer.LPAREN {
			p.next()
			expr := p.parseExpr()
			p.expect(lexer.RPAREN, ")")
			p.next()
			path = append(path, ast.FieldDesignator{Expr: expr})
		} else {
			name := p.cur.Literal
			p.expect(lexer.IDENT, "field name")
			p.next()
			path = append(path, ast.FieldDesignator{Name: name})
		}
		if p.cur.Type != lexer.DOT {
			break
		}
	}
	return &ast.Field{Base: ast.NewBase(pos), Object: object, Path: path}
}

func (p *Parser) parsePrimary() ast.Node {
	pos := p.pos()
	switch p.cur.Type {
	case lexer.NUMBER, lexer.IMAGNUMBER:
		lit := p.cur.Literal
		imag := p.cur.Type == lexer.IMAGNUMBER
		p.next()
		return &ast.ScalarLiteral{Base: ast.NewBase(pos), Literal: lit, Imaginary: imag}
	case lexer.STRING:
		lit := p.cur.Literal
		double := p.cur.Double
		p.next()
		return &ast.StringLiteral{Base: ast.NewBase(pos), Value: lit, DoubleQuote: double}
	case lexer.END:
		p.next()
		return &ast.EndRange{Base: ast.NewBase(pos)}
	case lexer.COLON:
		p.next()
		return &ast.Colon{Base: ast.NewBase(pos)}
	case lexer.IDENT:
		name := p.cur.Literal
		p.next()
		return &ast.Identifier{Base: ast.NewBase(pos), Name: name}
	case lexer.LPAREN:
		p.next()
		inner := p.parseExpr()
		p.expect(lexer.RPAREN, ")")
		p.next()
		return &ast.Paren{Base: ast.NewBase(pos), Inner: inner}
	case lexer.LBRACKET:
		return p.parseMatrix(false)
	case lexer.LBRACE:
		return p.parseMatrix(true)
	default:
		p.errorf("unexpected token %q", p.cur.Literal)
		p.next()
		return nil
	}
}

// parseMatrix parses `[...]` / `{...}` literals. Rows are separated by
// `;` or NEWLINE; elements within a row by `,`. The lexer does not
// preserve whitespace, so without a `,` a new element starts only where
// the previous expression cannot continue: `[1 2]` has two elements,
// while `[1 -2]` reads as the single element `1-2`.
func (p *Parser) parseMatrix(cell bool) ast.Node {
	pos := p.pos()
	open, close := lexer.LBRACKET, lexer.RBRACKET
	if cell {
		open, close = lexer.LBRACE, lexer.RBRACE
	}
	p.next() // consume open
	n := &ast.Matrix{Base: ast.NewBase(pos), Cell: cell}
	var row []ast.Node
	for p.cur.Type != close && p.cur.Type != lexer.EOF {
		if p.cur.Type == lexer.SEMI || p.cur.Type == lexer.NEWLINE {
			if len(row) > 0 {
				n.Rows = append(n.Rows, row)
				row = nil
			}
			p.next()
			continue
		}
		if p.cur.Type == lexer.COMMA {
			p.next()
			continue
		}
		row = append(row, p.parseExpr())
	}
	if len(row) > 0 {
		n.Rows = append(n.Rows, row)
	}
	p.expect(close, "closing delimiter")
	p.next()
	return n
}

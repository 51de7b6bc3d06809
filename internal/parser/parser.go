// Package parser implements the recursive-descent parser described in
// spec.md §4.2: a single mutable cursor walks the preprocessor's logical
// line list, dispatching on each line's leading keyword.
package parser

import (
	"strings"

	"bvc/internal/ast"
	"bvc/internal/lexer"
	"bvc/internal/preprocess"
	"bvc/internal/token"
	"bvc/internal/verrors"
)

// Parser walks a line list with a single cursor, as spec.md requires
// rather than a token-stream-wide lookahead parser.
type Parser struct {
	lines []preprocess.Line
	idx   int
}

// New creates a Parser over an already-preprocessed logical line list.
func New(lines []preprocess.Line) *Parser {
	return &Parser{lines: lines}
}

// ParseSource preprocesses and parses a complete program, returning its
// top-level block.
func ParseSource(source string) (*ast.Block, error) {
	lines, err := preprocess.Run(source)
	if err != nil {
		return nil, err
	}
	p := New(lines)
	return p.ParseBlock()
}

func (p *Parser) peekLine() (preprocess.Line, bool) {
	if p.idx >= len(p.lines) {
		return preprocess.Line{}, false
	}
	return p.lines[p.idx], true
}

// ParseBlock consumes statements until a line containing only "}" (which it
// also consumes) or until the line list is exhausted.
func (p *Parser) ParseBlock() (*ast.Block, error) {
	block := &ast.Block{}
	for {
		line, ok := p.peekLine()
		if !ok {
			return block, nil
		}
		if line.Text == "}" {
			p.idx++
			return block, nil
		}

		stmt, err := p.parseStmt(line)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
}

func (p *Parser) parseStmt(line preprocess.Line) (ast.Stmt, error) {
	switch {
	case startsWithKeyword(line.Text, "if"):
		return p.parseIf(line)
	case startsWithKeyword(line.Text, "while"):
		return p.parseWhile(line)
	case startsWithKeyword(line.Text, "for"):
		return p.parseFor(line)
	case startsWithKeyword(line.Text, "assert"):
		return p.parseAssert(line)
	default:
		return p.parseAssignLike(line)
	}
}

func startsWithKeyword(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	return len(s) == len(kw) || !isIdentByte(s[len(kw)])
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func headerPos(line preprocess.Line) ast.Position { return ast.Position{Line: line.Num, Column: 1} }

// parseIf parses `if ( cond ) {` and consumes the then-block, then an
// optional `else {` line and else-block. The preprocessor guarantees the
// else clause, if any, occupies its own following line.
func (p *Parser) parseIf(line preprocess.Line) (ast.Stmt, error) {
	toks := lexer.Tokenize(line.Text, line.Num)
	c := newCursor(toks, line.Num)

	if !c.is(token.IF) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidIfHeader, "expected 'if'", headerPos(line), line.Text)
	}
	c.advance()
	cond, lbrace, err := parseParenCondHeader(c, line, verrors.InvalidIfHeader)
	if err != nil {
		return nil, err
	}
	_ = lbrace
	p.idx++

	thenBlock, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block
	if nextLine, ok := p.peekLine(); ok && startsWithKeyword(nextLine.Text, "else") {
		p.idx++
		elseBlock, err = p.ParseBlock()
		if err != nil {
			return nil, err
		}
	}

	return &ast.If{Position: headerPos(line), Cond: cond, Then: thenBlock, Else: elseBlock}, nil
}

func (p *Parser) parseWhile(line preprocess.Line) (ast.Stmt, error) {
	toks := lexer.Tokenize(line.Text, line.Num)
	c := newCursor(toks, line.Num)

	if !c.is(token.WHILE) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidWhileHeader, "expected 'while'", headerPos(line), line.Text)
	}
	c.advance()
	cond, _, err := parseParenCondHeader(c, line, verrors.InvalidWhileHeader)
	if err != nil {
		return nil, err
	}
	p.idx++

	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Position: headerPos(line), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor(line preprocess.Line) (ast.Stmt, error) {
	toks := lexer.Tokenize(line.Text, line.Num)
	c := newCursor(toks, line.Num)

	if !c.is(token.FOR) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidForHeader, "expected 'for'", headerPos(line), line.Text)
	}
	c.advance()
	if !c.is(token.LPAREN) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidForHeader, "expected '(' after 'for'", headerPos(line), line.Text)
	}
	c.advance()

	init, err := parseAssignTokens(c, line)
	if err != nil {
		return nil, invalidFor(line, err)
	}
	if !c.is(token.SEMICOLON) {
		return nil, invalidForMsg(line, "expected ';' after for-init")
	}
	c.advance()

	cond, err := parseExpr(c)
	if err != nil {
		return nil, invalidFor(line, err)
	}
	if !c.is(token.SEMICOLON) {
		return nil, invalidForMsg(line, "expected ';' after for-condition")
	}
	c.advance()

	update, err := parseAssignTokens(c, line)
	if err != nil {
		return nil, invalidFor(line, err)
	}
	if !c.is(token.RPAREN) {
		return nil, invalidForMsg(line, "expected ')' after for-update")
	}
	c.advance()
	if !c.is(token.LBRACE) {
		return nil, invalidForMsg(line, "expected '{' to open for-body")
	}
	p.idx++

	body, err := p.ParseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.For{Position: headerPos(line), Init: init, Cond: cond, Update: update, Body: body}, nil
}

func invalidFor(line preprocess.Line, err error) error {
	return verrors.NewDetailed(verrors.ParseError, verrors.InvalidForHeader, err.Error(), headerPos(line), line.Text)
}

func invalidForMsg(line preprocess.Line, msg string) error {
	return verrors.NewDetailed(verrors.ParseError, verrors.InvalidForHeader, msg, headerPos(line), line.Text)
}

// parseParenCondHeader parses `( expr ) {` for if/while headers.
func parseParenCondHeader(c *cursor, line preprocess.Line, detail string) (ast.Expr, bool, error) {
	if !c.is(token.LPAREN) {
		return nil, false, verrors.NewDetailed(verrors.ParseError, detail, "expected '(' after keyword", headerPos(line), line.Text)
	}
	c.advance()
	cond, err := parseExpr(c)
	if err != nil {
		return nil, false, verrors.NewDetailed(verrors.ParseError, detail, err.Error(), headerPos(line), line.Text)
	}
	if !c.is(token.RPAREN) {
		return nil, false, verrors.NewDetailed(verrors.ParseError, detail, "expected ')' after condition", headerPos(line), line.Text)
	}
	c.advance()
	if !c.is(token.LBRACE) {
		return nil, false, verrors.NewDetailed(verrors.ParseError, detail, "expected '{' to open block", headerPos(line), line.Text)
	}
	return cond, true, nil
}

// parseAssert parses `assert(cond);` on its own line, rejecting quantified
// assertions per spec.md §4.2.
func (p *Parser) parseAssert(line preprocess.Line) (ast.Stmt, error) {
	if strings.Contains(line.Text, "forall") {
		return nil, verrors.New(verrors.UnsupportedFeature, "quantified assertions are not supported; use a bounded loop instead", headerPos(line))
	}

	toks := lexer.Tokenize(line.Text, line.Num)
	c := newCursor(toks, line.Num)
	if !c.is(token.ASSERT) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssert, "expected 'assert'", headerPos(line), line.Text)
	}
	c.advance()
	if !c.is(token.LPAREN) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssert, "expected '(' after 'assert'", headerPos(line), line.Text)
	}
	c.advance()
	cond, err := parseExpr(c)
	if err != nil {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssert, err.Error(), headerPos(line), line.Text)
	}
	if !c.is(token.RPAREN) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssert, "expected ')'", headerPos(line), line.Text)
	}
	c.advance()
	if !c.is(token.SEMICOLON) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssert, "expected ';' to end assert statement", headerPos(line), line.Text)
	}
	p.idx++
	return &ast.Assert{Position: headerPos(line), Cond: cond}, nil
}

// parseAssignLike parses `ident := expr;` and `ident[index] := expr;`.
func (p *Parser) parseAssignLike(line preprocess.Line) (ast.Stmt, error) {
	toks := lexer.Tokenize(line.Text, line.Num)
	c := newCursor(toks, line.Num)

	if !c.is(token.IDENT) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected an identifier", headerPos(line), line.Text)
	}
	name := c.advance().Literal

	if c.is(token.LBRACKET) {
		c.advance()
		index, err := parseExpr(c)
		if err != nil {
			return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, err.Error(), headerPos(line), line.Text)
		}
		if !c.is(token.RBRACKET) {
			return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected ']'", headerPos(line), line.Text)
		}
		c.advance()
		if !c.is(token.DEFINE) {
			return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected ':=' in array assignment", headerPos(line), line.Text)
		}
		c.advance()
		expr, err := parseExpr(c)
		if err != nil {
			return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, err.Error(), headerPos(line), line.Text)
		}
		if !c.is(token.SEMICOLON) {
			return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected ';' to end statement", headerPos(line), line.Text)
		}
		p.idx++
		return &ast.ArrayAssign{Position: headerPos(line), Array: name, Index: index, Expr: expr}, nil
	}

	if !c.is(token.DEFINE) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected ':=' in assignment", headerPos(line), line.Text)
	}
	c.advance()
	expr, err := parseExpr(c)
	if err != nil {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, err.Error(), headerPos(line), line.Text)
	}
	if !c.is(token.SEMICOLON) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected ';' to end statement", headerPos(line), line.Text)
	}
	p.idx++
	return &ast.Assign{Position: headerPos(line), Name: name, Expr: expr}, nil
}

// parseAssignTokens parses `ident := expr` without requiring a trailing
// ';' — used for the for-loop's init and update clauses, which are
// terminated by ';' or ')' rather than ';'.
func parseAssignTokens(c *cursor, line preprocess.Line) (*ast.Assign, error) {
	pos := c.pos()
	if !c.is(token.IDENT) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected an identifier", pos, line.Text)
	}
	name := c.advance().Literal
	if !c.is(token.DEFINE) {
		return nil, verrors.NewDetailed(verrors.ParseError, verrors.InvalidAssign, "expected ':=' ", pos, line.Text)
	}
	c.advance()
	expr, err := parseExpr(c)
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Position: pos, Name: name, Expr: expr}, nil
}

package parser

import (
	"strconv"

	"bvc/internal/ast"
	"bvc/internal/token"
	"bvc/internal/verrors"
)

// parseExpr parses a full expression by precedence climbing: `||` binds
// loosest, unary `! -` and array indexing bind tightest. This replaces the
// original's regex-based expression handling with a small recursive-
// descent expression grammar, per spec.md §9.
func parseExpr(c *cursor) (ast.Expr, error) {
	return parseOr(c)
}

func parseOr(c *cursor) (ast.Expr, error) {
	left, err := parseAnd(c)
	if err != nil {
		return nil, err
	}
	for c.is(token.OR) {
		pos := c.pos()
		c.advance()
		right, err := parseAnd(c)
		if err != nil {
			return nil, err
		}
		left = &ast.BoolOp{Position: pos, Op: "||", X: left, Y: right}
	}
	return left, nil
}

func parseAnd(c *cursor) (ast.Expr, error) {
	left, err := parseEquality(c)
	if err != nil {
		return nil, err
	}
	for c.is(token.AND) {
		pos := c.pos()
		c.advance()
		right, err := parseEquality(c)
		if err != nil {
			return nil, err
		}
		left = &ast.BoolOp{Position: pos, Op: "&&", X: left, Y: right}
	}
	return left, nil
}

func parseEquality(c *cursor) (ast.Expr, error) {
	left, err := parseRelational(c)
	if err != nil {
		return nil, err
	}
	for c.is(token.EQ) || c.is(token.NOT_EQ) {
		op := c.advance()
		right, err := parseRelational(c)
		if err != nil {
			return nil, err
		}
		left = &ast.Compare{Position: ast.Position{Line: op.Line, Column: op.Column}, Op: opText(op), X: left, Y: right}
	}
	return left, nil
}

func parseRelational(c *cursor) (ast.Expr, error) {
	left, err := parseAdditive(c)
	if err != nil {
		return nil, err
	}
	for c.is(token.LT) || c.is(token.LE) || c.is(token.GT) || c.is(token.GE) {
		op := c.advance()
		right, err := parseAdditive(c)
		if err != nil {
			return nil, err
		}
		left = &ast.Compare{Position: ast.Position{Line: op.Line, Column: op.Column}, Op: opText(op), X: left, Y: right}
	}
	return left, nil
}

func parseAdditive(c *cursor) (ast.Expr, error) {
	left, err := parseMultiplicative(c)
	if err != nil {
		return nil, err
	}
	for c.is(token.PLUS) || c.is(token.MINUS) {
		op := c.advance()
		right, err := parseMultiplicative(c)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: ast.Position{Line: op.Line, Column: op.Column}, Op: opText(op), X: left, Y: right}
	}
	return left, nil
}

func parseMultiplicative(c *cursor) (ast.Expr, error) {
	left, err := parseUnary(c)
	if err != nil {
		return nil, err
	}
	for c.is(token.ASTERISK) || c.is(token.SLASH) {
		op := c.advance()
		right, err := parseUnary(c)
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Position: ast.Position{Line: op.Line, Column: op.Column}, Op: opText(op), X: left, Y: right}
	}
	return left, nil
}

func parseUnary(c *cursor) (ast.Expr, error) {
	if c.is(token.NOT) || c.is(token.MINUS) {
		op := c.advance()
		x, err := parseUnary(c)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Position: ast.Position{Line: op.Line, Column: op.Column}, Op: opText(op), X: x}, nil
	}
	return parsePrimary(c)
}

func parsePrimary(c *cursor) (ast.Expr, error) {
	pos := c.pos()
	switch c.cur().Type {
	case token.INT:
		t := c.advance()
		v, err := strconv.ParseInt(t.Literal, 10, 64)
		if err != nil {
			return nil, verrors.New(verrors.ParseError, "invalid integer literal '"+t.Literal+"'", pos)
		}
		return &ast.NumLit{Position: pos, Value: v}, nil
	case token.TRUE:
		c.advance()
		return &ast.BoolLit{Position: pos, Value: true}, nil
	case token.FALSE:
		c.advance()
		return &ast.BoolLit{Position: pos, Value: false}, nil
	case token.IDENT:
		name := c.advance().Literal
		if c.is(token.LBRACKET) {
			c.advance()
			idx, err := parseExpr(c)
			if err != nil {
				return nil, err
			}
			if !c.is(token.RBRACKET) {
				return nil, verrors.New(verrors.ParseError, "expected ']' after array index", c.pos())
			}
			c.advance()
			return &ast.ArrayRead{Position: pos, Array: name, Index: idx}, nil
		}
		return &ast.Ident{Position: pos, Name: name}, nil
	case token.LPAREN:
		c.advance()
		e, err := parseExpr(c)
		if err != nil {
			return nil, err
		}
		if !c.is(token.RPAREN) {
			return nil, verrors.New(verrors.ParseError, "expected ')'", c.pos())
		}
		c.advance()
		return e, nil
	default:
		return nil, verrors.New(verrors.ParseError, "expected an expression, found '"+c.cur().Literal+"'", pos)
	}
}

func opText(t token.Token) string {
	switch t.Type {
	case token.EQ:
		return "=="
	case token.NOT_EQ:
		return "!="
	case token.LT:
		return "<"
	case token.LE:
		return "<="
	case token.GT:
		return ">"
	case token.GE:
		return ">="
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.ASTERISK:
		return "*"
	case token.SLASH:
		return "/"
	case token.NOT:
		return "!"
	default:
		return t.Literal
	}
}

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvc/internal/ast"
	"bvc/internal/parser"
	"bvc/internal/verrors"
)

func TestParseSourceSimpleAssignment(t *testing.T) {
	block, err := parser.ParseSource("x := 1;\n")
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
	assign, ok := block.Stmts[0].(*ast.Assign)
	require.True(t, ok)
	assert.Equal(t, "x", assign.Name)
	num, ok := assign.Expr.(*ast.NumLit)
	require.True(t, ok)
	assert.EqualValues(t, 1, num.Value)
}

func TestParseSourceArrayAssignment(t *testing.T) {
	block, err := parser.ParseSource("a[0] := 5;\n")
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
	aa, ok := block.Stmts[0].(*ast.ArrayAssign)
	require.True(t, ok)
	assert.Equal(t, "a", aa.Array)
}

func TestParseSourceIfElse(t *testing.T) {
	src := "if (x == 1) {\n  y := 1;\n} else {\n  y := 2;\n}\n"
	block, err := parser.ParseSource(src)
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
	ifStmt, ok := block.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Else)
	require.Len(t, ifStmt.Then.Stmts, 1)
	require.Len(t, ifStmt.Else.Stmts, 1)
}

func TestParseSourceIfWithoutElse(t *testing.T) {
	src := "if (x == 1) {\n  y := 1;\n}\n"
	block, err := parser.ParseSource(src)
	require.NoError(t, err)
	ifStmt, ok := block.Stmts[0].(*ast.If)
	require.True(t, ok)
	assert.Nil(t, ifStmt.Else)
}

func TestParseSourceWhileLoop(t *testing.T) {
	src := "while (x < 10) {\n  x := x + 1;\n}\n"
	block, err := parser.ParseSource(src)
	require.NoError(t, err)
	w, ok := block.Stmts[0].(*ast.While)
	require.True(t, ok)
	require.Len(t, w.Body.Stmts, 1)
}

func TestParseSourceForLoop(t *testing.T) {
	src := "for (i := 0; i < 10; i := i + 1) {\n  x := x + i;\n}\n"
	block, err := parser.ParseSource(src)
	require.NoError(t, err)
	f, ok := block.Stmts[0].(*ast.For)
	require.True(t, ok)
	assert.Equal(t, "i", f.Init.Name)
	assert.Equal(t, "i", f.Update.Name)
	require.Len(t, f.Body.Stmts, 1)
}

func TestParseSourceAssert(t *testing.T) {
	block, err := parser.ParseSource("assert(x == 1);\n")
	require.NoError(t, err)
	a, ok := block.Stmts[0].(*ast.Assert)
	require.True(t, ok)
	_, ok = a.Cond.(*ast.Compare)
	require.True(t, ok)
}

func TestParseSourceRejectsQuantifiedAssert(t *testing.T) {
	_, err := parser.ParseSource("assert(forall x);\n")
	require.Error(t, err)
	verr, ok := err.(*verrors.Error)
	require.True(t, ok)
	assert.Equal(t, verrors.UnsupportedFeature, verr.Kind)
}

func TestParseSourceRejectsMalformedAssignment(t *testing.T) {
	_, err := parser.ParseSource("x = 1;\n")
	require.Error(t, err)
	verr, ok := err.(*verrors.Error)
	require.True(t, ok)
	assert.Equal(t, verrors.ParseError, verr.Kind)
	assert.Equal(t, verrors.InvalidAssign, verr.Detail)
}

func TestParseSourceOperatorPrecedence(t *testing.T) {
	block, err := parser.ParseSource("x := 1 + 2 * 3;\n")
	require.NoError(t, err)
	assign := block.Stmts[0].(*ast.Assign)
	bin, ok := assign.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)
	_, ok = bin.X.(*ast.NumLit)
	require.True(t, ok)
	rhs, ok := bin.Y.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, "*", rhs.Op)
}

func TestParseSourceBooleanConnectiveAndComparisonMix(t *testing.T) {
	block, err := parser.ParseSource("assert(x < 10 && y >= 0 || z != 3);\n")
	require.NoError(t, err)
	a := block.Stmts[0].(*ast.Assert)
	top, ok := a.Cond.(*ast.BoolOp)
	require.True(t, ok)
	assert.Equal(t, "||", top.Op)
}

func TestParseSourceArrayReadInExpression(t *testing.T) {
	block, err := parser.ParseSource("x := a[0] + 1;\n")
	require.NoError(t, err)
	assign := block.Stmts[0].(*ast.Assign)
	bin := assign.Expr.(*ast.Binary)
	read, ok := bin.X.(*ast.ArrayRead)
	require.True(t, ok)
	assert.Equal(t, "a", read.Array)
}

func TestParseSourceNestedIfInsideWhile(t *testing.T) {
	src := "while (x < 10) {\n  if (x == 5) {\n    x := 0;\n  } else {\n    x := x + 1;\n  }\n}\n"
	block, err := parser.ParseSource(src)
	require.NoError(t, err)
	w := block.Stmts[0].(*ast.While)
	require.Len(t, w.Body.Stmts, 1)
	inner, ok := w.Body.Stmts[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, inner.Else)
}

func TestParseSourcePropagatesUnbalancedBraceError(t *testing.T) {
	_, err := parser.ParseSource("if (x == 1) {\n  y := 1;\n")
	require.Error(t, err)
	verr, ok := err.(*verrors.Error)
	require.True(t, ok)
	assert.Equal(t, verrors.LexicalError, verr.Kind)
}

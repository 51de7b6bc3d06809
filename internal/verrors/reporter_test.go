package verrors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bvc/internal/ast"
)

func TestReporterFormatIncludesLocationAndCaret(t *testing.T) {
	source := "x := 1;\nassert(x == 2)\n"
	reporter := NewReporter("test.bv", source)

	err := NewDetailed(ParseError, InvalidAssert, "missing ';' after assert", ast.Position{Line: 2, Column: 15}, "assert(x == 2)")
	formatted := reporter.Format(err)

	assert.Contains(t, formatted, "ParseError[InvalidAssert]")
	assert.Contains(t, formatted, "missing ';' after assert")
	assert.Contains(t, formatted, "test.bv:2:15")
	assert.Contains(t, formatted, "assert(x == 2)")
}

func TestErrorErrorString(t *testing.T) {
	err := New(LexicalError, "unbalanced braces", ast.Position{Line: 4, Column: 1})
	assert.Contains(t, err.Error(), "LexicalError")
	assert.Contains(t, err.Error(), "line 4")
}

func TestReporterWithoutPosition(t *testing.T) {
	reporter := NewReporter("test.bv", "x := 1;")
	err := New(SolverMissing, "z3 not found on PATH", ast.Position{})
	formatted := reporter.Format(err)
	assert.Contains(t, formatted, "SolverMissing")
	assert.NotContains(t, formatted, "-->")
}

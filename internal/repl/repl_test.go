package repl_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"bvc/internal/repl"
)

func TestStartEvaluatesABlockAndPrintsSSA(t *testing.T) {
	in := strings.NewReader("x := 1;\nassert(x == 1);\n\n")
	var out strings.Builder

	repl.Start(in, &out)

	got := out.String()
	assert.Contains(t, got, "AST:")
	assert.Contains(t, got, "SSA:")
	assert.Contains(t, got, "x_1 := 1")
}

func TestStartReportsParseErrors(t *testing.T) {
	in := strings.NewReader("x := ;\n\n")
	var out strings.Builder

	repl.Start(in, &out)

	assert.Contains(t, out.String(), "error:")
}

package ssa_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvc/internal/parser"
	"bvc/internal/ssa"
)

var guardConditionRe = regexp.MustCompile(`cond_\d+ := `)

func parseSource(t *testing.T, src string) *ssa.Result {
	t.Helper()
	block, err := parser.ParseSource(src)
	require.NoError(t, err)
	r, err := ssa.Convert(block, 3)
	require.NoError(t, err)
	return r
}

func TestConvertStraightLineAssignVersions(t *testing.T) {
	r := parseSource(t, "x := 1;\nx := x + 1;\n")
	dump := ssa.Dump(r)
	assert.Contains(t, dump, "x_1 := 1")
	assert.Contains(t, dump, "x_2 := (x_1 + 1)")
}

func TestConvertArrayStoreUsesSelectStoreForm(t *testing.T) {
	r := parseSource(t, "a[0] := 5;\n")
	dump := ssa.Dump(r)
	assert.Contains(t, dump, "a_1 := (store a_0 0 5)")
}

func TestConvertIfInsertsPhiOnDivergentBranches(t *testing.T) {
	r := parseSource(t, "x := 0;\nif (x == 0) {\n  x := 1;\n} else {\n  x := 2;\n}\n")
	dump := ssa.Dump(r)
	assert.Contains(t, dump, "cond_1 := (x_1 == 0)")
	assert.Contains(t, dump, "x_2 := 1")
	assert.Contains(t, dump, "x_3 := 2")
	assert.True(t, strings.Contains(dump, "φ(cond_1, x_2, x_3)"))
}

func TestConvertIfEmitsPhiEvenWhenBranchesAssignSameValue(t *testing.T) {
	r := parseSource(t, "x := 0;\nif (x == 0) {\n  x := 5;\n} else {\n  x := 5;\n}\n")
	dump := ssa.Dump(r)
	assert.Contains(t, dump, "x_4 := φ(cond_1, x_2, x_3)")
}

func TestConvertWhileUnrollsExactlyDepthTimes(t *testing.T) {
	block, err := parser.ParseSource("i := 0;\nwhile (i < 3) {\n  i := i + 1;\n}\n")
	require.NoError(t, err)
	r, err := ssa.Convert(block, 3)
	require.NoError(t, err)
	dump := ssa.Dump(r)
	// Each unrolled copy of the loop body is its own guarded if, with its
	// own fresh cond_k; the guarded variable's version advances between
	// copies (i_1 < 3, then i_3 < 3, then i_5 < 3), so a fixed operand name
	// like "i_0 < 3" can't be what establishes "exactly depth copies" — the
	// number of distinct guard-defining instructions is.
	assert.Len(t, guardConditionRe.FindAllString(dump, -1), 3)
}

func TestConvertWhileRecordsLoopInterfaceForModifiedScalar(t *testing.T) {
	block, err := parser.ParseSource("i := 0;\nwhile (i < 3) {\n  i := i + 1;\n}\n")
	require.NoError(t, err)
	r, err := ssa.Convert(block, 3)
	require.NoError(t, err)
	dump := ssa.DumpLoopInterfaces(r)
	assert.Contains(t, dump, "while_cond")
	assert.Contains(t, dump, "φ")
}

func TestConvertStraightLineRecordsNoLoopInterface(t *testing.T) {
	r := parseSource(t, "x := 1;\nx := x + 1;\n")
	assert.Empty(t, ssa.DumpLoopInterfaces(r))
}

func TestConvertZeroDepthIsRejected(t *testing.T) {
	block, err := parser.ParseSource("x := 1;\n")
	require.NoError(t, err)
	_, err = ssa.Convert(block, 0)
	assert.Error(t, err)
}

func TestConvertArrayVersionsStayUniqueAcrossBranches(t *testing.T) {
	r := parseSource(t, "if (True) {\n  a[0] := 1;\n} else {\n  a[1] := 2;\n}\n")
	seen := map[string]bool{}
	for _, instr := range r.Instructions {
		target := instr.TargetName()
		if target == "assert" {
			continue
		}
		assert.False(t, seen[target], "target %s assigned more than once", target)
		seen[target] = true
	}
}

func TestConvertAssertIsNegatedDownstreamNotHere(t *testing.T) {
	r := parseSource(t, "x := 1;\nassert(x == 1);\n")
	dump := ssa.Dump(r)
	assert.Contains(t, dump, "assert := (x_1 == 1)")
}

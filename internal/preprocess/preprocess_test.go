package preprocess_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvc/internal/preprocess"
	"bvc/internal/verrors"
)

func texts(lines []preprocess.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestRunDropsBlankLinesAndTrimsWhitespace(t *testing.T) {
	lines, err := preprocess.Run("\n  x := 1;  \n\n  y := 2;\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"x := 1;", "y := 2;"}, texts(lines))
}

func TestRunPreservesOriginalLineNumbers(t *testing.T) {
	lines, err := preprocess.Run("x := 1;\n\ny := 2;\n")
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Num)
	assert.Equal(t, 3, lines[1].Num)
}

func TestRunSplitsElseOntoItsOwnLines(t *testing.T) {
	src := "if (x == 1) {\n  y := 1;\n} else {\n  y := 2;\n}\n"
	lines, err := preprocess.Run(src)
	require.NoError(t, err)
	got := texts(lines)
	assert.Contains(t, got, "}")
	assert.Contains(t, got, "else {")
}

func TestRunRejectsBlockHeaderMissingOpeningBrace(t *testing.T) {
	_, err := preprocess.Run("if (x == 1)\n  y := 1;\n")
	require.Error(t, err)
	verr, ok := err.(*verrors.Error)
	require.True(t, ok)
	assert.Equal(t, verrors.LexicalError, verr.Kind)
}

func TestRunRejectsUnbalancedBraces(t *testing.T) {
	_, err := preprocess.Run("if (x == 1) {\n  y := 1;\n")
	require.Error(t, err)
	verr, ok := err.(*verrors.Error)
	require.True(t, ok)
	assert.Equal(t, verrors.LexicalError, verr.Kind)
}

func TestRunRejectsUnmatchedClosingBrace(t *testing.T) {
	_, err := preprocess.Run("y := 1;\n}\n")
	require.Error(t, err)
	verr, ok := err.(*verrors.Error)
	require.True(t, ok)
	assert.Equal(t, verrors.LexicalError, verr.Kind)
}

func TestRunAcceptsNestedBlocks(t *testing.T) {
	src := "if (x == 1) {\n  while (y < 10) {\n    y := y + 1;\n  }\n}\n"
	lines, err := preprocess.Run(src)
	require.NoError(t, err)
	assert.NotEmpty(t, lines)
}

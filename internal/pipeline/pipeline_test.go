package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bvc/internal/pipeline"
)

func TestRunRejectsZeroDepth(t *testing.T) {
	_, err := pipeline.Run(context.Background(), pipeline.Request{
		Code1: "x := 1;\n",
		Depth: 0,
		Mode:  pipeline.ModeVerify,
	})
	assert.Error(t, err)
}

func TestRunRejectsMalformedSource(t *testing.T) {
	_, err := pipeline.Run(context.Background(), pipeline.Request{
		Code1: "x := ;\n",
		Depth: 1,
		Mode:  pipeline.ModeVerify,
	})
	assert.Error(t, err)
}

func TestRunProducesParsedUnrolledAndSMTBeforeInvokingSolver(t *testing.T) {
	res, err := pipeline.Run(context.Background(), pipeline.Request{
		Code1:      "x := 1;\nassert(x == 2);\n",
		Depth:      1,
		Mode:       pipeline.ModeVerify,
		SolverPath: "bvc-nonexistent-solver-binary",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Parsed)
	assert.NotEmpty(t, res.Unrolled)
	assert.NotEmpty(t, res.SSA)
	assert.Contains(t, res.SMT, "(set-logic QF_AUFLIA)")
	assert.Equal(t, "error", res.Status)
	assert.NotEmpty(t, res.RunID)
}

func TestRunPopulatesLoopInterfacesForLoopingProgram(t *testing.T) {
	res, err := pipeline.Run(context.Background(), pipeline.Request{
		Code1:      "i := 0;\nwhile (i < 3) {\n  i := i + 1;\n}\n",
		Depth:      3,
		Mode:       pipeline.ModeVerify,
		SolverPath: "bvc-nonexistent-solver-binary",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.LoopInterfaces)
	assert.Contains(t, res.LoopInterfaces, "while_cond")
}

func TestRunEquivalenceEncodesBothProgramsWithSuffixes(t *testing.T) {
	res, err := pipeline.Run(context.Background(), pipeline.Request{
		Code1:      "x := a + b;\n",
		Code2:      "x := b + a;\n",
		Depth:      1,
		Mode:       pipeline.ModeEquivalence,
		SolverPath: "bvc-nonexistent-solver-binary",
	})
	require.NoError(t, err)
	assert.Contains(t, res.SMT, "_1")
	assert.Contains(t, res.SMT, "_2")
}

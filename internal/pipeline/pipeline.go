// Package pipeline wires the parser, SSA converter, SMT encoder, and
// solver adapter into the single entry point every front end (CLI, LSP,
// REPL) calls, per the input/output contract. Grounded on
// original_source/app.py's index() view function, which performs exactly
// this sequence of steps for each request.
package pipeline

import (
	"context"
	"time"

	"github.com/segmentio/ksuid"

	"bvc/internal/ast"
	"bvc/internal/parser"
	"bvc/internal/smt"
	"bvc/internal/solver"
	"bvc/internal/ssa"
	"bvc/internal/verrors"
)

// Mode selects verification of one program or equivalence checking of two.
type Mode string

const (
	ModeVerify      Mode = "verify"
	ModeEquivalence Mode = "equivalence"
)

// Request is the caller-facing input contract.
type Request struct {
	Code1 string
	Code2 string // required when Mode is ModeEquivalence
	Depth int
	Mode  Mode

	// CheckSorted opts into the built-in non-decreasing postcondition over
	// the final array version, when arrays appear. Off by default.
	CheckSorted bool
	// SolverPath overrides the solver executable; defaults to "z3" on PATH.
	SolverPath string
	// SolverTimeout overrides the default 10s solver wall-clock budget.
	SolverTimeout time.Duration
}

// Result is the caller-facing output contract.
type Result struct {
	RunID           string
	Parsed          string
	Unrolled        string
	SSA             string
	SMT             string
	Status          string
	Counterexamples []string

	// LoopInterfaces renders the non-bounded loop-header φ sketch recorded
	// alongside the bounded unrolling (spec.md §4.3.3), one dump per
	// program. The bounded check never reads it; it's exposed for
	// tooling/display only (see cmd/bvc-cli's -dump-loop-interfaces).
	LoopInterfaces string
}

// Run executes the full pipeline for req and returns the decoded verdict.
// A non-nil error means a pipeline stage before the solver rejected the
// input (lexical/parse/conversion/encoding failure); solver-side failures
// are instead reported through Result.Status/Counterexamples, matching
// the error taxonomy's split between user-visible errors and
// status=error/unknown outcomes.
func Run(ctx context.Context, req Request) (*Result, error) {
	if req.Depth < 1 {
		return nil, verrors.NewDetailed(verrors.ConversionError, verrors.LoopUnrollDepthZero,
			"loop unroll depth must be at least 1", ast.Position{}, "")
	}

	res := &Result{RunID: ksuid.New().String()}

	block1, err := parser.ParseSource(req.Code1)
	if err != nil {
		return nil, err
	}
	res.Parsed = ast.Print(block1)
	res.Unrolled = ast.PrintSource(ast.Unroll(block1, req.Depth))

	ssa1, err := ssa.Convert(block1, req.Depth)
	if err != nil {
		return nil, err
	}

	opts := smt.Options{CheckSorted: req.CheckSorted}

	var script string
	switch req.Mode {
	case ModeEquivalence:
		block2, err := parser.ParseSource(req.Code2)
		if err != nil {
			return nil, err
		}
		ssa2, err := ssa.Convert(block2, req.Depth)
		if err != nil {
			return nil, err
		}
		res.SSA = ssa.Dump(ssa1) + ssa.Dump(ssa2)
		res.LoopInterfaces = ssa.DumpLoopInterfaces(ssa1) + ssa.DumpLoopInterfaces(ssa2)
		script, err = smt.EncodeEquivalence(ssa1, ssa2, opts)
		if err != nil {
			return nil, err
		}
	default:
		res.SSA = ssa.Dump(ssa1)
		res.LoopInterfaces = ssa.DumpLoopInterfaces(ssa1)
		script, err = smt.EncodeVerification(ssa1, opts)
		if err != nil {
			return nil, err
		}
	}
	res.SMT = script

	adapter := solver.NewAdapter()
	if req.SolverPath != "" {
		adapter.Path = req.SolverPath
	}
	if req.SolverTimeout > 0 {
		adapter.Timeout = req.SolverTimeout
	}

	solved, err := adapter.Run(ctx, script)
	if err != nil {
		res.Status = "error"
		res.Counterexamples = []string{err.Error()}
		return res, nil
	}
	res.Status = string(solved.Status)
	res.Counterexamples = solved.Model
	return res, nil
}

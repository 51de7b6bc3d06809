// Package solver invokes an external QF_AUFLIA-capable SMT solver as a
// child process and parses its output, grounded on
// original_source/app.py's run_z3 (temp-file-plus-timeout invocation,
// sat/unsat/unknown plus define-fun model-line parsing) and adapted to
// Go's context.Context cancellation the way
// opal-lang-opal/runtime/executor/shell_worker.go drives its subprocess
// calls with exec.CommandContext.
package solver

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"bvc/internal/ast"
	"bvc/internal/verrors"
)

// Status is the decoded outcome of a solver invocation.
type Status string

const (
	StatusSat     Status = "sat"
	StatusUnsat   Status = "unsat"
	StatusUnknown Status = "unknown"
	StatusError   Status = "error"
)

// Result carries the decoded status and the solver's model lines,
// rendered `name = value` for define-funs and passed through verbatim for
// anything else (mirroring the original's fallback behavior).
type Result struct {
	Status Status
	Model  []string
}

// Adapter runs a solver binary against a generated script.
type Adapter struct {
	// Path is the solver executable, resolved via exec.LookPath if not
	// absolute. Defaults to "z3".
	Path string
	// Timeout bounds the solver's wall-clock run time. Defaults to 10s.
	Timeout time.Duration
}

// NewAdapter returns an Adapter with the default z3/10s configuration.
func NewAdapter() *Adapter {
	return &Adapter{Path: "z3", Timeout: 10 * time.Second}
}

var defineFunRe = regexp.MustCompile(`^\(define-fun (\S+) \(\) (Int|Bool) (.+)\)$`)

// Run writes script to a scoped temporary file, invokes the solver with a
// timeout, and parses its stdout into a Result. The temp file is removed
// on every exit path.
func (a *Adapter) Run(ctx context.Context, script string) (*Result, error) {
	path := a.Path
	if path == "" {
		path = "z3"
	}
	timeout := a.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	if _, err := exec.LookPath(path); err != nil {
		return nil, verrors.New(verrors.SolverMissing, "solver executable \""+path+"\" not found on PATH", ast.Position{})
	}

	f, err := os.CreateTemp("", "bvc-*.smt2")
	if err != nil {
		return nil, err
	}
	scriptPath := f.Name()
	defer os.Remove(scriptPath)

	if _, err := f.WriteString(script); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, path, scriptPath)
	out, runErr := cmd.Output()

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return nil, verrors.New(verrors.SolverTimeout, "solver exceeded its timeout", ast.Position{})
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, runErr
		}
		// Exit codes are ignored per spec; stdout is the sole truth, so
		// fall through and parse whatever was produced.
	}

	return parseOutput(string(out)), nil
}

func parseOutput(output string) *Result {
	status := StatusUnknown
	var model []string

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "sat":
			status = StatusSat
		case line == "unsat":
			status = StatusUnsat
		case strings.HasPrefix(line, "(define-fun"):
			if m := defineFunRe.FindStringSubmatch(line); m != nil {
				name, value := m[1], m[3]
				if value == "true" {
					value = "True"
				} else if value == "false" {
					value = "False"
				}
				model = append(model, name+" = "+value)
			}
		case strings.HasPrefix(line, "(error"):
			// suppressed, per spec.
		case line != "":
			model = append(model, line)
		}
	}

	switch status {
	case StatusSat:
		if len(model) == 0 {
			model = []string{"no model available"}
		}
	case StatusUnsat:
		model = []string{"no counterexamples found within the unrolled horizon"}
	case StatusUnknown:
		if len(model) == 0 {
			model = []string{"verification inconclusive"}
		}
	}

	return &Result{Status: status, Model: model}
}

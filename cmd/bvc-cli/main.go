// SPDX-License-Identifier: Apache-2.0
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"bvc/internal/config"
	"bvc/internal/pipeline"
	"bvc/internal/verrors"
)

func main() {
	var (
		depth       = flag.Int("depth", 3, "loop unroll depth (>= 1)")
		equivalence = flag.String("equivalence", "", "path to a second program; enables equivalence mode")
		checkSorted = flag.Bool("check-sorted", false, "append the built-in non-decreasing array postcondition")
		solverPath  = flag.String("solver", "z3", "path to the QF_AUFLIA solver executable")
		timeout     = flag.Duration("timeout", 10*time.Second, "solver wall-clock timeout")
		dumpSMT     = flag.Bool("dump-smt", false, "print the generated SMT-LIB script before solving")
		dumpLoops   = flag.Bool("dump-loop-interfaces", false, "print the non-bounded loop-header sketch before solving")
		configPath  = flag.String("config", "", "path to a YAML file of default flag values")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: bvc-cli [flags] <program.bvc>")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			color.Red("failed to read config %s: %s", *configPath, err)
			os.Exit(1)
		}
		applyConfigDefaults(cfg, depth, checkSorted, solverPath, timeout)
	}

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	req := pipeline.Request{
		Code1:         string(source),
		Depth:         *depth,
		Mode:          pipeline.ModeVerify,
		CheckSorted:   *checkSorted,
		SolverPath:    *solverPath,
		SolverTimeout: *timeout,
	}

	if *equivalence != "" {
		second, err := os.ReadFile(*equivalence)
		if err != nil {
			color.Red("failed to read %s: %s", *equivalence, err)
			os.Exit(1)
		}
		req.Code2 = string(second)
		req.Mode = pipeline.ModeEquivalence
	}

	res, err := pipeline.Run(context.Background(), req)
	if err != nil {
		reportError(path, string(source), err)
		os.Exit(1)
	}

	if *dumpSMT {
		fmt.Println(res.SMT)
	}

	if *dumpLoops {
		fmt.Print(res.LoopInterfaces)
	}

	switch res.Status {
	case "unsat":
		color.Green("unsat — no counterexample found within depth %d", *depth)
	case "sat":
		color.Yellow("sat — counterexample found:")
		for _, line := range res.Counterexamples {
			fmt.Println("  " + line)
		}
	default:
		color.Red("%s", res.Status)
		for _, line := range res.Counterexamples {
			fmt.Println("  " + line)
		}
	}
}

// applyConfigDefaults fills in flag values still at their built-in default
// from cfg. A flag passed explicitly with its default value (e.g. -depth 3)
// counts as unset and is overridden by the file, and check_sorted: true in
// the file turns -check-sorted on regardless of the command line.
func applyConfigDefaults(cfg *config.File, depth *int, checkSorted *bool, solverPath *string, timeout *time.Duration) {
	if cfg.Depth > 0 && *depth == 3 {
		*depth = cfg.Depth
	}
	if cfg.CheckSorted {
		*checkSorted = true
	}
	if cfg.SolverPath != "" && *solverPath == "z3" {
		*solverPath = cfg.SolverPath
	}
	if cfg.TimeoutSecs > 0 && *timeout == 10*time.Second {
		*timeout = time.Duration(cfg.TimeoutSecs) * time.Second
	}
}

func reportError(path, source string, err error) {
	verr, ok := err.(*verrors.Error)
	if !ok {
		color.Red("error: %s", err)
		return
	}
	reporter := verrors.NewReporter(path, source)
	fmt.Print(reporter.Format(verr))
}

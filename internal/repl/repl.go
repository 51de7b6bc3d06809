// Package repl SPDX-License-Identifier: Apache-2.0
//
// Package repl implements an interactive read-eval-print loop over the
// parser and SSA converter, adapted from the teacher's orphaned
// repl/repl.go (prompt loop, line-buffered scanning) and generalized from
// single-line statements to multi-line blocks terminated by a blank line,
// since this language's if/while/for bodies span several lines.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bvc/internal/ast"
	"bvc/internal/ssa"

	"bvc/internal/parser"
)

// Prompt is printed before each new block; Continuation before each
// subsequent line of a block still being entered.
const (
	Prompt       = "bvc> "
	Continuation = "...> "
)

// DefaultUnrollDepth is the loop unroll depth the REPL uses for every
// block.
const DefaultUnrollDepth = 3

// Start runs the loop, reading from in and writing prompts/output to out,
// until in is exhausted.
func Start(in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	var buf strings.Builder

	fmt.Fprint(out, Prompt)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" && buf.Len() > 0 {
			evalBlock(out, buf.String())
			buf.Reset()
			fmt.Fprint(out, Prompt)
			continue
		}
		if strings.TrimSpace(line) == "" {
			fmt.Fprint(out, Prompt)
			continue
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		fmt.Fprint(out, Continuation)
	}
	if buf.Len() > 0 {
		evalBlock(out, buf.String())
	}
}

func evalBlock(out io.Writer, src string) {
	block, err := parser.ParseSource(src)
	if err != nil {
		fmt.Fprintf(out, "error: %s\n", err)
		return
	}
	fmt.Fprintln(out, "AST:")
	fmt.Fprint(out, ast.Print(block))

	result, err := ssa.Convert(block, DefaultUnrollDepth)
	if err != nil {
		fmt.Fprintf(out, "ssa error: %s\n", err)
		return
	}
	fmt.Fprintln(out, "SSA:")
	fmt.Fprint(out, ssa.Dump(result))
}

package ssa

import "strings"

// Dump renders a Result's main instruction list one-per-line, in emission
// order. Used for the pipeline's SSA output field, by the REPL, and by
// tests.
func Dump(r *Result) string {
	var b strings.Builder
	for _, instr := range r.Instructions {
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// DumpLoopInterfaces renders the non-bounded loop-header sketch, if any.
func DumpLoopInterfaces(r *Result) string {
	var b strings.Builder
	for _, instr := range r.LoopInterfaces {
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}
	return b.String()
}

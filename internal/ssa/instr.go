// Package ssa implements the SSA Converter: renaming variables into
// versioned form, inserting φ-joins at conditional merges, and bounded
// loop unrolling. Grounded on original_source/ssa_converter.py's
// versioning scheme, adapted into the tagged-variant shape spec.md §9
// recommends (Define | Phi | ArrayStore | Condition | Assert) instead of
// the original's single (target, expression-string) pair, and on
// internal/ir.Builder's variableStack-based construction in the teacher.
package ssa

import (
	"fmt"

	"bvc/internal/ast"
)

// Instr is implemented by every SSA instruction kind. The sentinel target
// "assert" is only used by Assert; every other kind's target is a unique,
// versioned name.
type Instr interface {
	TargetName() string
	String() string
}

// Define is a scalar assignment: `target := value`.
type Define struct {
	Target string
	Value  ast.Expr
}

func (d *Define) TargetName() string { return d.Target }
func (d *Define) String() string     { return fmt.Sprintf("%s := %s", d.Target, ast.ExprString(d.Value)) }

// ArrayStore is an array assignment: `target := (store prev index value)`.
type ArrayStore struct {
	Target string
	Prev   string
	Index  ast.Expr
	Value  ast.Expr
}

func (a *ArrayStore) TargetName() string { return a.Target }
func (a *ArrayStore) String() string {
	return fmt.Sprintf("%s := (store %s %s %s)", a.Target, a.Prev, ast.ExprString(a.Index), ast.ExprString(a.Value))
}

// Condition is a fresh branch selector: `cond_k := value`. The
// `while_cond`/`for_cond` selectors in Result.LoopInterfaces appear only
// inside Phi instructions; no Condition defines them.
type Condition struct {
	Target string
	Value  ast.Expr
}

func (c *Condition) TargetName() string { return c.Target }
func (c *Condition) String() string {
	return fmt.Sprintf("%s := %s", c.Target, ast.ExprString(c.Value))
}

// Phi is a control-flow merge: `target := φ(selector, thenVal, elseVal)`.
// Both thenVal and elseVal are previously defined versioned names.
type Phi struct {
	Target           string
	Selector         string
	ThenVal, ElseVal string
}

func (p *Phi) TargetName() string { return p.Target }
func (p *Phi) String() string {
	return fmt.Sprintf("%s := φ(%s, %s, %s)", p.Target, p.Selector, p.ThenVal, p.ElseVal)
}

// Assert carries a user-written assertion in source order. Its target is
// always the sentinel "assert" and may repeat.
type Assert struct {
	Value ast.Expr
}

func (a *Assert) TargetName() string { return "assert" }
func (a *Assert) String() string     { return fmt.Sprintf("assert := %s", ast.ExprString(a.Value)) }

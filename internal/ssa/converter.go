package ssa

import (
	"fmt"

	"bvc/internal/ast"
	"bvc/internal/verrors"
)

// Result is the output of Convert: the linear instruction list fed to the
// encoder, plus a separate, non-bounded loop-header sketch kept for
// tooling/documentation only (see Converter.recordLoopInterface).
type Result struct {
	Instructions   []Instr
	LoopInterfaces []Instr
}

// Converter renames a parsed program into SSA form. Scalar and array
// counters are tracked separately: counters are monotonic and never roll
// back across a branch (so every defined name is globally unique), while
// the "current" maps are restorable pointers used to resolve reads and to
// compute φ operands at a merge. The original Python converter conflates
// an array's counter and current-pointer into one field that IS rolled
// back across branches; that lets sibling branches allocate the same
// array version number for different stores, which would violate the
// "each a_k has exactly one defining instruction" and "strictly
// increasing k" invariants. Splitting array tracking the same way scalars
// already are (as the original itself does for scalars) fixes that.
type Converter struct {
	scalarCounter map[string]int
	scalarCurrent map[string]string
	arrayCounter  map[string]int
	arrayCurrent  map[string]string
	condCounter   int

	instrs     []Instr
	loopIfaces []Instr
}

// NewConverter returns an empty Converter ready to convert a program.
func NewConverter() *Converter {
	return &Converter{
		scalarCounter: map[string]int{},
		scalarCurrent: map[string]string{},
		arrayCounter:  map[string]int{},
		arrayCurrent:  map[string]string{},
	}
}

// Convert renames block into SSA form, unrolling every while/for loop up
// to depth times. depth must be at least 1.
func Convert(block *ast.Block, depth int) (*Result, error) {
	if depth < 1 {
		return nil, verrors.NewDetailed(verrors.ConversionError, verrors.LoopUnrollDepthZero,
			"loop unroll depth must be at least 1", ast.Position{}, "")
	}
	c := NewConverter()
	if err := c.convertBlock(block, depth); err != nil {
		return nil, err
	}
	return &Result{Instructions: c.instrs, LoopInterfaces: c.loopIfaces}, nil
}

func (c *Converter) emit(i Instr) { c.instrs = append(c.instrs, i) }

func (c *Converter) lookupScalar(name string) string {
	if v, ok := c.scalarCurrent[name]; ok {
		return v
	}
	v := name + "_0"
	c.scalarCurrent[name] = v
	return v
}

func (c *Converter) freshScalar(name string) string {
	c.scalarCounter[name]++
	v := fmt.Sprintf("%s_%d", name, c.scalarCounter[name])
	c.scalarCurrent[name] = v
	return v
}

func (c *Converter) lookupArray(name string) string {
	if v, ok := c.arrayCurrent[name]; ok {
		return v
	}
	v := name + "_0"
	c.arrayCurrent[name] = v
	return v
}

func (c *Converter) freshArray(name string) string {
	c.arrayCounter[name]++
	v := fmt.Sprintf("%s_%d", name, c.arrayCounter[name])
	c.arrayCurrent[name] = v
	return v
}

func (c *Converter) freshCond() string {
	c.condCounter++
	return fmt.Sprintf("cond_%d", c.condCounter)
}

func cloneStrMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (c *Converter) rewriteExpr(e ast.Expr) ast.Expr {
	switch x := e.(type) {
	case *ast.NumLit, *ast.BoolLit:
		return x
	case *ast.Ident:
		return &ast.Ident{Position: x.Position, Name: c.lookupScalar(x.Name)}
	case *ast.ArrayRead:
		return &ast.ArrayRead{Position: x.Position, Array: c.lookupArray(x.Array), Index: c.rewriteExpr(x.Index)}
	case *ast.Unary:
		return &ast.Unary{Position: x.Position, Op: x.Op, X: c.rewriteExpr(x.X)}
	case *ast.Binary:
		return &ast.Binary{Position: x.Position, Op: x.Op, X: c.rewriteExpr(x.X), Y: c.rewriteExpr(x.Y)}
	case *ast.Compare:
		return &ast.Compare{Position: x.Position, Op: x.Op, X: c.rewriteExpr(x.X), Y: c.rewriteExpr(x.Y)}
	case *ast.BoolOp:
		return &ast.BoolOp{Position: x.Position, Op: x.Op, X: c.rewriteExpr(x.X), Y: c.rewriteExpr(x.Y)}
	default:
		return x
	}
}

func (c *Converter) convertBlock(block *ast.Block, depth int) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Stmts {
		if err := c.convertStmt(stmt, depth); err != nil {
			return err
		}
	}
	return nil
}

func (c *Converter) convertStmt(stmt ast.Stmt, depth int) error {
	switch s := stmt.(type) {
	case *ast.Assign:
		return c.convertAssign(s)
	case *ast.ArrayAssign:
		return c.convertArrayAssign(s)
	case *ast.Assert:
		return c.convertAssert(s)
	case *ast.If:
		return c.convertIf(s, depth)
	case *ast.While:
		return c.convertWhile(s, depth)
	case *ast.For:
		return c.convertFor(s, depth)
	default:
		return verrors.NewDetailed(verrors.ConversionError, verrors.UnknownStatementType,
			fmt.Sprintf("unknown statement type %T", stmt), ast.Position{}, "")
	}
}

func (c *Converter) convertAssign(a *ast.Assign) error {
	val := c.rewriteExpr(a.Expr)
	target := c.freshScalar(a.Name)
	c.emit(&Define{Target: target, Value: val})
	return nil
}

func (c *Converter) convertArrayAssign(a *ast.ArrayAssign) error {
	idx := c.rewriteExpr(a.Index)
	val := c.rewriteExpr(a.Expr)
	prev := c.lookupArray(a.Array)
	target := c.freshArray(a.Array)
	c.emit(&ArrayStore{Target: target, Prev: prev, Index: idx, Value: val})
	return nil
}

func (c *Converter) convertAssert(a *ast.Assert) error {
	c.emit(&Assert{Value: c.rewriteExpr(a.Cond)})
	return nil
}

// convertIf handles both a genuine if/else and, via convertWhile/convertFor,
// every unrolled loop iteration (which is modeled as an if with no else: a
// false guard simply φ-restores each modified variable to its pre-iteration
// value, matching the "false guard ⇒ body has no effect" property).
func (c *Converter) convertIf(n *ast.If, depth int) error {
	condVal := c.rewriteExpr(n.Cond)
	condName := c.freshCond()
	c.emit(&Condition{Target: condName, Value: condVal})

	beforeScalar := cloneStrMap(c.scalarCurrent)
	beforeArray := cloneStrMap(c.arrayCurrent)

	if err := c.convertBlock(n.Then, depth); err != nil {
		return err
	}
	afterThenScalar := cloneStrMap(c.scalarCurrent)
	afterThenArray := cloneStrMap(c.arrayCurrent)

	afterElseScalar := beforeScalar
	afterElseArray := beforeArray
	if n.Else != nil {
		c.scalarCurrent = cloneStrMap(beforeScalar)
		c.arrayCurrent = cloneStrMap(beforeArray)
		if err := c.convertBlock(n.Else, depth); err != nil {
			return err
		}
		afterElseScalar = cloneStrMap(c.scalarCurrent)
		afterElseArray = cloneStrMap(c.arrayCurrent)
	}

	modified := collectModifiedVars(n.Then)
	if n.Else != nil {
		modified.union(collectModifiedVars(n.Else))
	}
	c.scalarCurrent = cloneStrMap(beforeScalar)
	for _, v := range modified.sortedKeys() {
		thenVer := resolveVersion(afterThenScalar, beforeScalar, v)
		elseVer := resolveVersion(afterElseScalar, beforeScalar, v)
		if thenVer == elseVer {
			c.scalarCurrent[v] = thenVer
			continue
		}
		target := c.freshScalar(v)
		c.emit(&Phi{Target: target, Selector: condName, ThenVal: thenVer, ElseVal: elseVer})
	}

	arrModified := collectModifiedArrays(n.Then)
	if n.Else != nil {
		arrModified.union(collectModifiedArrays(n.Else))
	}
	c.arrayCurrent = cloneStrMap(beforeArray)
	for _, a := range arrModified.sortedKeys() {
		thenVer := resolveVersion(afterThenArray, beforeArray, a)
		elseVer := resolveVersion(afterElseArray, beforeArray, a)
		if thenVer == elseVer {
			c.arrayCurrent[a] = thenVer
			continue
		}
		target := c.freshArray(a)
		c.emit(&Phi{Target: target, Selector: condName, ThenVal: thenVer, ElseVal: elseVer})
	}
	return nil
}

func resolveVersion(after, before map[string]string, name string) string {
	if v, ok := after[name]; ok {
		return v
	}
	if v, ok := before[name]; ok {
		return v
	}
	return name + "_0"
}

// convertWhile emits depth guarded copies of the loop body, each a fresh
// if(cond){body} with no else, per spec.md §4.3.3. It also records a
// single, non-bounded loop-header interface for documentation purposes;
// that interface is never consumed by the encoder.
func (c *Converter) convertWhile(w *ast.While, depth int) error {
	modified := collectModifiedVars(w.Body)
	beforeScalar := cloneStrMap(c.scalarCurrent)

	for i := 0; i < depth; i++ {
		ifStmt := &ast.If{Position: w.Position, Cond: w.Cond, Then: w.Body}
		if err := c.convertIf(ifStmt, depth); err != nil {
			return err
		}
	}

	c.recordLoopInterface("while_cond", w.Cond, modified, beforeScalar, c.scalarCurrent)
	return nil
}

// convertFor treats `for(init; cond; update){body}` as `init;
// while(cond){body; update}`, bounding it the same way convertWhile does.
func (c *Converter) convertFor(f *ast.For, depth int) error {
	if err := c.convertAssign(f.Init); err != nil {
		return err
	}

	bodyStmts := append(append([]ast.Stmt{}, f.Body.Stmts...), f.Update)
	bodyWithUpdate := &ast.Block{Stmts: bodyStmts}

	modified := collectModifiedVars(bodyWithUpdate)
	beforeScalar := cloneStrMap(c.scalarCurrent)

	for i := 0; i < depth; i++ {
		ifStmt := &ast.If{Position: f.Position, Cond: f.Cond, Then: bodyWithUpdate}
		if err := c.convertIf(ifStmt, depth); err != nil {
			return err
		}
	}

	c.recordLoopInterface("for_cond", f.Cond, modified, beforeScalar, c.scalarCurrent)
	return nil
}

// recordLoopInterface appends one φ per modified scalar to LoopInterfaces,
// approximating the loop as a single fixed-point step: entry is the
// pre-loop version, the back edge is whatever version bounded unrolling
// left the variable at. This is a sketch of the unbounded loop header, not
// a verified abstraction, and the encoder never reads it.
func (c *Converter) recordLoopInterface(selector string, cond ast.Expr, modified varSet, before, after map[string]string) {
	_ = cond
	for _, v := range modified.sortedKeys() {
		entry, ok := before[v]
		if !ok {
			entry = v + "_0"
		}
		back := after[v]
		if back == "" {
			back = entry
		}
		c.loopIfaces = append(c.loopIfaces, &Phi{
			Target:   v + "_loophead",
			Selector: selector,
			ThenVal:  back,
			ElseVal:  entry,
		})
	}
}

// Package smt lowers SSA instruction lists into a QF_AUFLIA SMT-LIB
// script, grounded on original_source/smt_generator.py's declaration and
// assertion emission, restructured around the typed ssa.Instr variants
// instead of string pattern-matching on an "expression" field.
package smt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"

	"bvc/internal/ast"
	"bvc/internal/ssa"
	"bvc/internal/verrors"
)

// sym canonicalizes a versioned SSA name into a valid, consistent SMT-LIB
// symbol. Source identifiers may be written in any case; solvers don't
// care, but a canonical form keeps generated scripts stable and readable
// regardless of the program's own naming convention.
func sym(name string) string {
	return strcase.ToSnake(name)
}

// Options controls encoder behavior that the original hard-coded.
type Options struct {
	// CheckSorted appends the built-in non-decreasing postcondition over
	// the final array version, when true and at least one array appears.
	// Off by default: see spec decision on making this opt-in.
	CheckSorted bool
}

type declKind int

const (
	declInt declKind = iota
	declArray
	declBool
)

// Encoder accumulates declarations and assertions while walking one or two
// SSA instruction lists, then renders a complete script.
type Encoder struct {
	opts Options

	decls      map[string]declKind
	asserts    []string
	initials   []string // "(assert (= name value))" line for each side's first instruction, when it is a Define
	seenInit   map[string]bool
	hasArrays  bool            // true if any processed side has arrays (drives sortedness opt-in)
	arraySides map[string]bool // suffix -> whether that side uses arrays
	scalarVers map[string][]string // base name -> ordered list of versioned names seen, per side
	arrayVers  map[string][]string
}

func newEncoder(opts Options) *Encoder {
	return &Encoder{
		opts:       opts,
		decls:      map[string]declKind{},
		seenInit:   map[string]bool{},
		arraySides: map[string]bool{},
		scalarVers: map[string][]string{},
		arrayVers:  map[string][]string{},
	}
}

// EncodeVerification builds a single-program verification script: the
// conjunction of program constraints and the negation of every
// user-written assertion.
func EncodeVerification(r *ssa.Result, opts Options) (string, error) {
	e := newEncoder(opts)
	if err := e.process(r.Instructions, "", true); err != nil {
		return "", err
	}
	if opts.CheckSorted && e.hasArrays {
		if err := e.addSortedProperty(""); err != nil {
			return "", err
		}
	}
	return e.render(), nil
}

// EncodeEquivalence builds a two-program equivalence script: programs are
// encoded with disjoint `_1`/`_2` suffixes and compared at their final
// observable versions. User-written asserts are constraints here, not
// obligations to negate: negating them is a verification-mode-only
// transformation (it turns "prove no input violates this" into a
// counterexample search), and applying it in equivalence mode too would
// make equivalence(p, p, d) spuriously sat for any p containing an assert.
func EncodeEquivalence(r1, r2 *ssa.Result, opts Options) (string, error) {
	e := newEncoder(opts)
	if err := e.process(r1.Instructions, "_1", false); err != nil {
		return "", err
	}
	if err := e.process(r2.Instructions, "_2", false); err != nil {
		return "", err
	}
	if err := e.addEquivalenceProperty(); err != nil {
		return "", err
	}
	return e.render(), nil
}

func (e *Encoder) declareScalar(name string) {
	name = sym(name)
	if _, ok := e.decls[name]; !ok {
		e.decls[name] = declInt
	}
}

func (e *Encoder) declareArray(name string) {
	name = sym(name)
	if _, ok := e.decls[name]; !ok {
		e.decls[name] = declArray
	}
}

func (e *Encoder) declareBool(name string) {
	name = sym(name)
	if _, ok := e.decls[name]; !ok {
		e.decls[name] = declBool
	}
}

func baseName(target string) string {
	idx := strings.LastIndexByte(target, '_')
	if idx < 0 {
		return target
	}
	return target[:idx]
}

func isReservedBase(base string) bool {
	switch base {
	case "cond", "while", "for", "assert":
		return true
	}
	return false
}

// process walks instrs, emitting declarations and assertions with suffix
// appended to every name. negateAsserts controls how *ssa.Assert is
// encoded: true (verification mode) emits the negated obligation so `sat`
// reports a counterexample; false (equivalence mode) emits the assert as a
// plain constraint on the program's behavior, per spec.md Open Question 1.
func (e *Encoder) process(instrs []ssa.Instr, suffix string, negateAsserts bool) error {
	sideHasArrays := false
	arrayBases := map[string]bool{}
	for _, instr := range instrs {
		if isArrayInstr(instr) {
			sideHasArrays = true
		}
		if st, ok := instr.(*ssa.ArrayStore); ok {
			arrayBases[baseName(st.Target)] = true
		}
	}
	if sideHasArrays {
		e.hasArrays = true
		e.arraySides[suffix] = true
		arr0 := sym("arr_0" + suffix)
		e.declareArray(arr0)
		e.arrayVers["arr"] = append(e.arrayVers["arr"], arr0)
	}

	for i, instr := range instrs {
		switch n := instr.(type) {
		case *ssa.Assert:
			expr := e.translate(n.Value, suffix)
			if negateAsserts {
				e.asserts = append(e.asserts, fmt.Sprintf("(assert (not %s))", expr))
			} else {
				e.asserts = append(e.asserts, fmt.Sprintf("(assert %s)", expr))
			}
		case *ssa.Condition:
			target := sym(n.Target + suffix)
			e.declareBool(target)
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", target, e.translate(n.Value, suffix)))
		case *ssa.Phi:
			target := sym(n.Target + suffix)
			if arrayBases[baseName(n.Target)] {
				e.declareArray(target)
				e.arrayVers["arr"] = append(e.arrayVers["arr"], target)
			} else {
				e.declareScalar(target)
				e.recordScalarVersion(n.Target, target)
			}
			cond := sym(n.Selector + suffix)
			thenVal := sym(n.ThenVal + suffix)
			elseVal := sym(n.ElseVal + suffix)
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s (ite %s %s %s)))", target, cond, thenVal, elseVal))
		case *ssa.ArrayStore:
			target := sym(n.Target + suffix)
			e.declareArray(target)
			e.arrayVers["arr"] = append(e.arrayVers["arr"], target)
			prev := sym(n.Prev + suffix)
			e.declareArray(prev)
			expr := fmt.Sprintf("(store %s %s %s)", prev, e.translate(n.Index, suffix), e.translate(n.Value, suffix))
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", target, expr))
		case *ssa.Define:
			target := sym(n.Target + suffix)
			e.declareScalar(target)
			e.recordScalarVersion(n.Target, target)
			expr := e.translate(n.Value, suffix)
			if i == 0 && !e.seenInit[target] {
				e.seenInit[target] = true
				e.initials = append(e.initials, fmt.Sprintf("(assert (= %s %s))", target, expr))
				continue
			}
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", target, expr))
		default:
			return verrors.New(verrors.EncodingError, fmt.Sprintf("unrecognized SSA instruction %T", instr), ast.Position{})
		}
	}
	return nil
}

func (e *Encoder) recordScalarVersion(base, versioned string) {
	root := baseName(base)
	if isReservedBase(root) {
		return
	}
	e.scalarVers[root] = append(e.scalarVers[root], versioned)
}

func isArrayInstr(instr ssa.Instr) bool {
	switch n := instr.(type) {
	case *ssa.ArrayStore:
		return true
	case *ssa.Phi:
		return strings.HasPrefix(n.Target, "arr_")
	}
	return false
}

// translate lowers an expression AST into an S-expression string, renaming
// every identifier with suffix (the SSA rewrite has already versioned
// names; suffix further disambiguates equivalence-mode program sides).
func (e *Encoder) translate(expr ast.Expr, suffix string) string {
	switch n := expr.(type) {
	case *ast.NumLit:
		return fmt.Sprintf("%d", n.Value)
	case *ast.BoolLit:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.Ident:
		return sym(n.Name + suffix)
	case *ast.ArrayRead:
		return fmt.Sprintf("(select %s %s)", sym(n.Array+suffix), e.translate(n.Index, suffix))
	case *ast.Unary:
		return fmt.Sprintf("(%s %s)", lowerUnaryOp(n.Op), e.translate(n.X, suffix))
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", n.Op, e.translate(n.X, suffix), e.translate(n.Y, suffix))
	case *ast.Compare:
		return fmt.Sprintf("(%s %s %s)", lowerCompareOp(n.Op), e.translate(n.X, suffix), e.translate(n.Y, suffix))
	case *ast.BoolOp:
		return fmt.Sprintf("(%s %s %s)", lowerBoolOp(n.Op), e.translate(n.X, suffix), e.translate(n.Y, suffix))
	default:
		return "?"
	}
}

func lowerUnaryOp(op string) string {
	if op == "!" {
		return "not"
	}
	return op
}

func lowerCompareOp(op string) string {
	if op == "==" {
		return "="
	}
	if op == "!=" {
		return "distinct"
	}
	return op
}

func lowerBoolOp(op string) string {
	switch op {
	case "&&":
		return "and"
	case "||":
		return "or"
	}
	return op
}

func (e *Encoder) addSortedProperty(suffix string) error {
	versions := e.arrayVers["arr"]
	if len(versions) == 0 {
		return verrors.New(verrors.EncodingError, "no array version to apply the sortedness obligation to", ast.Position{})
	}
	final := versions[len(versions)-1]
	nVar := sym("n_1" + suffix)
	e.declareScalar(nVar)
	e.declareScalar("k")
	e.asserts = append(e.asserts, fmt.Sprintf(
		"(assert (forall ((k Int)) (=> (and (<= 0 k) (< k (- %s 1))) (<= (select %s k) (select %s (+ k 1))))))",
		nVar, final, final,
	))
	return nil
}

func (e *Encoder) addEquivalenceProperty() error {
	compared := false

	if e.arraySides["_1"] && e.arraySides["_2"] {
		v1 := lastWithSuffix(e.arrayVers["arr"], "_1")
		v2 := lastWithSuffix(e.arrayVers["arr"], "_2")
		if v1 == "" || v2 == "" {
			return verrors.New(verrors.NothingToCompare, "array versions missing on one side of the comparison", ast.Position{})
		}
		e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", sym("arr_0_1"), sym("arr_0_2")))
		e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", v1, v2))
		compared = true
	}

	names := make([]string, 0, len(e.scalarVers))
	for name := range e.scalarVers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v1 := lastWithSuffix(e.scalarVers[name], "_1")
		v2 := lastWithSuffix(e.scalarVers[name], "_2")
		switch {
		case v1 != "" && v2 != "":
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", v1, v2))
			compared = true
		case v1 != "":
			zero := sym(name + "_0_2")
			e.declareScalar(zero)
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s 0))", zero))
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", v1, zero))
			compared = true
		case v2 != "":
			zero := sym(name + "_0_1")
			e.declareScalar(zero)
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s 0))", zero))
			e.asserts = append(e.asserts, fmt.Sprintf("(assert (= %s %s))", zero, v2))
			compared = true
		}
	}

	if !compared {
		return verrors.New(verrors.NothingToCompare, "the two programs share no observable variable or array", ast.Position{})
	}
	return nil
}

func lastWithSuffix(versions []string, suffix string) string {
	for i := len(versions) - 1; i >= 0; i-- {
		if strings.HasSuffix(versions[i], suffix) {
			return versions[i]
		}
	}
	return ""
}

func (e *Encoder) render() string {
	var b strings.Builder
	b.WriteString("(set-logic QF_AUFLIA)\n")

	names := make([]string, 0, len(e.decls))
	for name := range e.decls {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		switch e.decls[name] {
		case declArray:
			b.WriteString(fmt.Sprintf("(declare-fun %s () (Array Int Int))\n", name))
		case declBool:
			b.WriteString(fmt.Sprintf("(declare-fun %s () Bool)\n", name))
		default:
			b.WriteString(fmt.Sprintf("(declare-fun %s () Int)\n", name))
		}
	}

	for _, line := range e.initials {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, line := range e.asserts {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString("(check-sat)\n")
	b.WriteString("(get-model)\n")
	b.WriteString("(exit)\n")
	return b.String()
}

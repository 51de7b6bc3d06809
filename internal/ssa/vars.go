package ssa

import (
	"sort"

	"bvc/internal/ast"
)

type varSet map[string]bool

func (s varSet) add(name string) { s[name] = true }

func (s varSet) union(o varSet) varSet {
	for k := range o {
		s[k] = true
	}
	return s
}

func (s varSet) sortedKeys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// collectModifiedVars returns the set of scalar names assigned anywhere in
// block, including inside nested if/while/for bodies.
func collectModifiedVars(block *ast.Block) varSet {
	out := varSet{}
	if block == nil {
		return out
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.Assign:
			out.add(s.Name)
		case *ast.If:
			out.union(collectModifiedVars(s.Then))
			out.union(collectModifiedVars(s.Else))
		case *ast.While:
			out.union(collectModifiedVars(s.Body))
		case *ast.For:
			if s.Init != nil {
				out.add(s.Init.Name)
			}
			if s.Update != nil {
				out.add(s.Update.Name)
			}
			out.union(collectModifiedVars(s.Body))
		}
	}
	return out
}

// collectModifiedArrays returns the set of array names written anywhere in
// block, including inside nested if/while/for bodies.
func collectModifiedArrays(block *ast.Block) varSet {
	out := varSet{}
	if block == nil {
		return out
	}
	for _, stmt := range block.Stmts {
		switch s := stmt.(type) {
		case *ast.ArrayAssign:
			out.add(s.Array)
		case *ast.If:
			out.union(collectModifiedArrays(s.Then))
			out.union(collectModifiedArrays(s.Else))
		case *ast.While:
			out.union(collectModifiedArrays(s.Body))
		case *ast.For:
			out.union(collectModifiedArrays(s.Body))
		}
	}
	return out
}

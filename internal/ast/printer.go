package ast

import (
	"fmt"
	"strings"
)

// Printer renders a Block as an indented tree, mirroring the shape of the
// source program. Used for the pipeline's "parsed" output field.
type Printer struct {
	indent int
	out    strings.Builder
}

// Print returns the tree representation of a block.
func Print(b *Block) string {
	p := &Printer{}
	p.printBlock(b)
	return p.out.String()
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.out.WriteString(strings.Repeat("  ", p.indent))
	p.out.WriteString(fmt.Sprintf(format, args...))
	p.out.WriteString("\n")
}

func (p *Printer) printBlock(b *Block) {
	for _, stmt := range b.Stmts {
		p.printStmt(stmt)
	}
}

func (p *Printer) printStmt(s Stmt) {
	switch n := s.(type) {
	case *Assign:
		p.writeLine("Assign(%s := %s)", n.Name, ExprString(n.Expr))
	case *ArrayAssign:
		p.writeLine("ArrayAssign(%s[%s] := %s)", n.Array, ExprString(n.Index), ExprString(n.Expr))
	case *Assert:
		p.writeLine("Assert(%s)", ExprString(n.Cond))
	case *If:
		p.writeLine("If(%s)", ExprString(n.Cond))
		p.indent++
		p.writeLine("then:")
		p.indent++
		p.printBlock(n.Then)
		p.indent--
		if n.Else != nil {
			p.writeLine("else:")
			p.indent++
			p.printBlock(n.Else)
			p.indent--
		}
		p.indent--
	case *While:
		p.writeLine("While(%s)", ExprString(n.Cond))
		p.indent++
		p.printBlock(n.Body)
		p.indent--
	case *For:
		p.writeLine("For(%s := %s; %s; %s := %s)",
			n.Init.Name, ExprString(n.Init.Expr), ExprString(n.Cond), n.Update.Name, ExprString(n.Update.Expr))
		p.indent++
		p.printBlock(n.Body)
		p.indent--
	default:
		p.writeLine("<unknown statement %T>", s)
	}
}

// ExprString renders an expression back into source-like infix notation.
func ExprString(e Expr) string {
	switch n := e.(type) {
	case *NumLit:
		return fmt.Sprintf("%d", n.Value)
	case *BoolLit:
		if n.Value {
			return "True"
		}
		return "False"
	case *Ident:
		return n.Name
	case *ArrayRead:
		return fmt.Sprintf("%s[%s]", n.Array, ExprString(n.Index))
	case *Unary:
		return fmt.Sprintf("%s%s", n.Op, ExprString(n.X))
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", ExprString(n.X), n.Op, ExprString(n.Y))
	case *Compare:
		return fmt.Sprintf("(%s %s %s)", ExprString(n.X), n.Op, ExprString(n.Y))
	case *BoolOp:
		return fmt.Sprintf("(%s %s %s)", ExprString(n.X), n.Op, ExprString(n.Y))
	default:
		return "<?>"
	}
}

// Package ast defines the abstract syntax tree for the verifier's source
// language: scalar and one-dimensional array assignment, assertions,
// conditionals, and bounded while/for loops.
package ast

// Position is a 1-based line/column location in the original source, used
// for error reporting and LSP diagnostics.
type Position struct {
	Line   int
	Column int
}

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
	Pos() Position
}

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
	Pos() Position
}

// Block is an ordered sequence of statements; every If/While/For/top-level
// program owns one.
type Block struct {
	Stmts []Stmt
}

// Assign is `name := expr;`.
type Assign struct {
	Position Position
	Name     string
	Expr     Expr
}

// ArrayAssign is `name[index] := expr;`.
type ArrayAssign struct {
	Position Position
	Array    string
	Index    Expr
	Expr     Expr
}

// Assert is `assert(cond);`.
type Assert struct {
	Position Position
	Cond     Expr
}

// If is `if (cond) { Then } [else { Else }]`. Else is nil when absent.
type If struct {
	Position Position
	Cond     Expr
	Then     *Block
	Else     *Block
}

// While is `while (cond) { Body }`.
type While struct {
	Position Position
	Cond     Expr
	Body     *Block
}

// For is `for (Init; Cond; Update) { Body }`. Init and Update are
// assignment statements written with `:=`.
type For struct {
	Position Position
	Init     *Assign
	Cond     Expr
	Update   *Assign
	Body     *Block
}

func (a *Assign) stmtNode()      {}
func (a *ArrayAssign) stmtNode() {}
func (a *Assert) stmtNode()      {}
func (a *If) stmtNode()          {}
func (a *While) stmtNode()       {}
func (a *For) stmtNode()         {}

func (a *Assign) Pos() Position      { return a.Position }
func (a *ArrayAssign) Pos() Position { return a.Position }
func (a *Assert) Pos() Position      { return a.Position }
func (a *If) Pos() Position          { return a.Position }
func (a *While) Pos() Position       { return a.Position }
func (a *For) Pos() Position         { return a.Position }

// NumLit is an integer literal.
type NumLit struct {
	Position Position
	Value    int64
}

// BoolLit is the `True` or `False` keyword literal.
type BoolLit struct {
	Position Position
	Value    bool
}

// Ident is a bare identifier reference. After SSA rewriting, Name holds the
// versioned form (`x_3`) instead of the source name.
type Ident struct {
	Position Position
	Name     string
}

// ArrayRead is `array[Index]`. After SSA rewriting, Array holds the
// versioned array name and the node represents `(select Array Index)`.
type ArrayRead struct {
	Position Position
	Array    string
	Index    Expr
}

// Unary is a prefix operator: `!`, `-`.
type Unary struct {
	Position Position
	Op       string
	X        Expr
}

// Binary is an arithmetic binary operator: `+ - * /`.
type Binary struct {
	Position Position
	Op       string
	X, Y     Expr
}

// Compare is a comparison operator: `== != < <= > >=`.
type Compare struct {
	Position Position
	Op       string
	X, Y     Expr
}

// BoolOp is a boolean connective: `&& ||`.
type BoolOp struct {
	Position Position
	Op       string
	X, Y     Expr
}

func (n *NumLit) exprNode()    {}
func (n *BoolLit) exprNode()   {}
func (n *Ident) exprNode()     {}
func (n *ArrayRead) exprNode() {}
func (n *Unary) exprNode()     {}
func (n *Binary) exprNode()    {}
func (n *Compare) exprNode()   {}
func (n *BoolOp) exprNode()    {}

func (n *NumLit) Pos() Position    { return n.Position }
func (n *BoolLit) Pos() Position   { return n.Position }
func (n *Ident) Pos() Position     { return n.Position }
func (n *ArrayRead) Pos() Position { return n.Position }
func (n *Unary) Pos() Position     { return n.Position }
func (n *Binary) Pos() Position    { return n.Position }
func (n *Compare) Pos() Position   { return n.Position }
func (n *BoolOp) Pos() Position    { return n.Position }

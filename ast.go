// ast.go — the typed AST node union produced by the parser.
//
// Every node carries the 1-based line/column of its defining token; binary,
// unary, and assignment nodes record the operator token's position. The node
// set is closed: the evaluator dispatches with an exhaustive type switch, so
// adding a node kind here forces the evaluator to handle it.
package tint

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() (line, col int)
}

// Expr marks nodes that produce a value when evaluated. Statements and
// expressions share the Node interface because an expression is a legal
// statement on its own.
type Expr interface {
	Node
	exprNode()
}

// Program is the root node: statements executed in order.
type Program struct {
	Line, Col int
	Stmts     []Node
}

// Block is a braced statement list executed in a fresh child scope.
type Block struct {
	Line, Col int
	Stmts     []Node
}

// Assign binds the value of an expression to a name. Position is the name
// token's.
type Assign struct {
	Line, Col int
	Name      string
	Value     Expr
}

// Print evaluates an expression and emits its string form.
type Print struct {
	Line, Col int
	Value     Expr
}

// If branches on the truthiness of Cond. Else may be nil.
type If struct {
	Line, Col  int
	Cond       Expr
	Then, Else Node
}

// While repeats Body while Cond is truthy.
type While struct {
	Line, Col int
	Cond      Expr
	Body      Node
}

// Binary applies Op to Left and Right. Op is the canonical operator text
// ("+", "==", "&&", ...); word operators are canonicalized by the parser.
type Binary struct {
	Line, Col   int
	Op          string
	Left, Right Expr
}

// Unary applies "-" or "!" to Operand.
type Unary struct {
	Line, Col int
	Op        string
	Operand   Expr
}

// NumberLit holds an integer or float literal as a runtime Value.
type NumberLit struct {
	Line, Col int
	Val       Value
}

// StringLit holds a string literal with quotes stripped and escapes decoded.
type StringLit struct {
	Line, Col int
	Val       string
}

// BoolLit holds TRUE or FALSE.
type BoolLit struct {
	Line, Col int
	Val       bool
}

// Ident is a variable reference.
type Ident struct {
	Line, Col int
	Name      string
}

func (n *Program) Pos() (int, int)   { return n.Line, n.Col }
func (n *Block) Pos() (int, int)     { return n.Line, n.Col }
func (n *Assign) Pos() (int, int)    { return n.Line, n.Col }
func (n *Print) Pos() (int, int)     { return n.Line, n.Col }
func (n *If) Pos() (int, int)        { return n.Line, n.Col }
func (n *While) Pos() (int, int)     { return n.Line, n.Col }
func (n *Binary) Pos() (int, int)    { return n.Line, n.Col }
func (n *Unary) Pos() (int, int)     { return n.Line, n.Col }
func (n *NumberLit) Pos() (int, int) { return n.Line, n.Col }
func (n *StringLit) Pos() (int, int) { return n.Line, n.Col }
func (n *BoolLit) Pos() (int, int)   { return n.Line, n.Col }
func (n *Ident) Pos() (int, int)     { return n.Line, n.Col }

func (n *Binary) exprNode()    {}
func (n *Unary) exprNode()     {}
func (n *NumberLit) exprNode() {}
func (n *StringLit) exprNode() {}
func (n *BoolLit) exprNode()   {}
func (n *Ident) exprNode()     {}

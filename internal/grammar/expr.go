package grammar

import "fmt"

// Expr is a generated expression shape.
type Expr interface {
	String() string
	isExpr()
}

// Literal is a bare value: a numeric literal or a variable name.
type Literal struct {
	Text string
}

// Variable is a bare variable name.
type Variable struct {
	Name string
}

// BinaryOp is "<left> <op> <right>".
type BinaryOp struct {
	Left  string
	Op    string
	Right string
}

// FunctionCall is "<name>(<args>)" with one or two arguments.
type FunctionCall struct {
	Name string
	Args []string
}

// Conditional is a chained three-branch conditional over single-letter
// string literals.
type Conditional struct {
	A, B, C    string
	V1, V2, V3 int
}

func (Literal) isExpr()      {}
func (Variable) isExpr()     {}
func (BinaryOp) isExpr()     {}
func (FunctionCall) isExpr() {}
func (Conditional) isExpr()  {}

func (e Literal) String() string  { return e.Text }
func (e Variable) String() string { return e.Name }

func (e BinaryOp) String() string {
	return e.Left + " " + e.Op + " " + e.Right
}

func (e FunctionCall) String() string {
	switch len(e.Args) {
	case 0:
		return e.Name + "()"
	case 1:
		return e.Name + "(" + e.Args[0] + ")"
	default:
		out := e.Name + "(" + e.Args[0]
		for _, a := range e.Args[1:] {
			out += ", " + a
		}
		return out + ")"
	}
}

func (e Conditional) String() string {
	return fmt.Sprintf("'%s' if %d > %d else '%s' if %d < %d else '%s'",
		e.A, e.V1, e.V2, e.B, e.V3, e.V2, e.C)
}

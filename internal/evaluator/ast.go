package evaluator

import "math/big"

// Node is a parsed expression.
type Node interface {
	Pos() int
}

type (
	IntLit struct {
		At    int
		Value *big.Int
	}
	FloatLit struct {
		At    int
		Value float64
	}
	StrLit struct {
		At    int
		Value string
	}
	Name struct {
		At    int
		Ident string
	}
	Unary struct {
		At int
		Op TokenKind // TokPlus, TokMinus, TokTilde
		X  Node
	}
	Not struct {
		At int
		X  Node
	}
	Binary struct {
		At   int
		Op   TokenKind
		L, R Node
	}
	// BoolOp is a short-circuit and/or.
	BoolOp struct {
		At   int
		Op   TokenKind // TokAnd, TokOr
		L, R Node
	}
	// Compare is a comparison chain: First Ops[0] Rest[0] Ops[1] Rest[1] ...
	Compare struct {
		At    int
		First Node
		Ops   []CmpOp
		Rest  []Node
	}
	// Cond is `Body if Test else Else`.
	Cond struct {
		At               int
		Body, Test, Else Node
	}
	Call struct {
		At   int
		Func string
		Args []Node
	}
)

func (n *IntLit) Pos() int   { return n.At }
func (n *FloatLit) Pos() int { return n.At }
func (n *StrLit) Pos() int   { return n.At }
func (n *Name) Pos() int     { return n.At }
func (n *Unary) Pos() int    { return n.At }
func (n *Not) Pos() int      { return n.At }
func (n *Binary) Pos() int   { return n.At }
func (n *BoolOp) Pos() int   { return n.At }
func (n *Compare) Pos() int  { return n.At }
func (n *Cond) Pos() int     { return n.At }
func (n *Call) Pos() int     { return n.At }

// CmpOp is one comparison operator of a chain.
type CmpOp uint8

const (
	CmpEq CmpOp = iota
	CmpNotEq
	CmpLt
	CmpGt
	CmpLtEq
	CmpGtEq
	CmpIn
	CmpNotIn
	CmpIs
	CmpIsNot
)

var cmpNames = [...]string{"==", "!=", "<", ">", "<=", ">=", "in", "not in", "is", "is not"}

func (op CmpOp) String() string {
	if int(op) < len(cmpNames) {
		return cmpNames[op]
	}
	return "?"
}

package grammar

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ValidShape identifies the template used for a valid expression.
type ValidShape uint8

const (
	ShapeBinary ValidShape = iota
	ShapeValue
	ShapeVariable
	ShapeFunction
	ShapeConditional

	validShapeCount
)

func (s ValidShape) String() string {
	switch s {
	case ShapeBinary:
		return "binary"
	case ShapeValue:
		return "value"
	case ShapeVariable:
		return "variable"
	case ShapeFunction:
		return "function"
	case ShapeConditional:
		return "conditional"
	default:
		return fmt.Sprintf("ValidShape(%d)", s)
	}
}

// InvalidShape identifies the family of an invalid expression.
type InvalidShape uint8

const (
	InvalidNoise InvalidShape = iota
	InvalidMalformed
	InvalidUnbalanced
	InvalidEscape
	InvalidUndefinedCall

	invalidShapeCount
)

func (s InvalidShape) String() string {
	switch s {
	case InvalidNoise:
		return "noise"
	case InvalidMalformed:
		return "malformed"
	case InvalidUnbalanced:
		return "unbalanced"
	case InvalidEscape:
		return "escape"
	case InvalidUndefinedCall:
		return "undefined-call"
	default:
		return fmt.Sprintf("InvalidShape(%d)", s)
	}
}

// ValidShapes and InvalidShapes list every shape in declaration order.
var (
	ValidShapes   = []ValidShape{ShapeBinary, ShapeValue, ShapeVariable, ShapeFunction, ShapeConditional}
	InvalidShapes = []InvalidShape{InvalidNoise, InvalidMalformed, InvalidUnbalanced, InvalidEscape, InvalidUndefinedCall}
)

// ParseValidShape maps a shape name back to its ValidShape.
func ParseValidShape(name string) (ValidShape, error) {
	for _, s := range ValidShapes {
		if s.String() == strings.ToLower(strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown valid shape %q", name)
}

// ParseInvalidShape maps a shape name back to its InvalidShape.
func ParseInvalidShape(name string) (InvalidShape, error) {
	for _, s := range InvalidShapes {
		if s.String() == strings.ToLower(strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown invalid shape %q", name)
}

// Generator produces fresh candidate expressions.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator drawing from rnd.
func New(rnd *rand.Rand) *Generator {
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rnd: rnd}
}

// GenerateValid returns a new expression that is valid under the target's
// grammar in most cases.
func (g *Generator) GenerateValid() string {
	return g.ValidExpr().String()
}

// ValidExpr picks one of the valid shapes uniformly and builds it.
func (g *Generator) ValidExpr() Expr {
	return g.ValidExprOf(ValidShape(g.rnd.IntN(int(validShapeCount))))
}

// GenerateValidShape is GenerateValid that also reports the shape used.
func (g *Generator) GenerateValidShape() (string, ValidShape) {
	shape := ValidShape(g.rnd.IntN(int(validShapeCount)))
	return g.ValidExprOf(shape).String(), shape
}

// ValidExprOf builds an expression of the given shape.
func (g *Generator) ValidExprOf(shape ValidShape) Expr {
	switch shape {
	case ShapeBinary:
		return g.binary(g.Value())
	case ShapeVariable:
		name := g.pick(Variables)
		if g.rnd.Float64() < 0.2 {
			return Variable{Name: name}
		}
		return g.binary(name)
	case ShapeFunction:
		name := g.pick(Functions)
		if isBinaryFunc(name) {
			return FunctionCall{Name: name, Args: []string{g.Value(), g.Value()}}
		}
		return FunctionCall{Name: name, Args: []string{g.Value()}}
	case ShapeConditional:
		return Conditional{
			A:  g.upper(1),
			B:  g.upper(1),
			C:  g.upper(1),
			V1: g.intRange(1, 10),
			V2: g.intRange(1, 10),
			V3: g.intRange(1, 10),
		}
	default:
		return Literal{Text: g.Value()}
	}
}

// binary combines left with a random value through a random operator.
// A literal zero divisor is resampled.
func (g *Generator) binary(left string) BinaryOp {
	right := g.Value()
	op := g.pick(BinaryOps)
	if op == "/" && right == "0" {
		right = strconv.Itoa(g.intRange(1, 100))
	}
	return BinaryOp{Left: left, Op: op, Right: right}
}

// Value draws from the four numeric literal forms and the variable names.
func (g *Generator) Value() string {
	i := g.rnd.IntN(4 + len(Variables))
	switch i {
	case 0:
		return strconv.Itoa(g.intRange(1, 1000))
	case 1:
		return formatFloat(g.uniform(1, 10))
	case 2:
		return strconv.Itoa(g.intRange(-1000, 1))
	case 3:
		return formatFloat(g.uniform(-10, 1))
	default:
		return Variables[i-4]
	}
}

// GenerateInvalid returns a new expression built to exercise error paths.
func (g *Generator) GenerateInvalid() string {
	s, _ := g.GenerateInvalidShape()
	return s
}

// GenerateInvalidShape is GenerateInvalid that also reports the shape used.
func (g *Generator) GenerateInvalidShape() (string, InvalidShape) {
	shape := InvalidShape(g.rnd.IntN(int(invalidShapeCount)))
	return g.InvalidOf(shape), shape
}

// InvalidOf builds an invalid expression of the given shape.
func (g *Generator) InvalidOf(shape InvalidShape) string {
	switch shape {
	case InvalidNoise:
		n := g.intRange(3, 20)
		var b strings.Builder
		b.Grow(n)
		for range n {
			b.WriteByte(printable[g.rnd.IntN(len(printable))])
		}
		return b.String()
	case InvalidMalformed:
		return g.pick(MalformedLiterals)
	case InvalidUnbalanced:
		return strconv.Itoa(g.intRange(1, 100)) + strings.Repeat(g.pick(brackets), g.intRange(1, 5))
	case InvalidEscape:
		return g.pick(EscapeAttempts)
	default:
		return g.undefinedCall().String()
	}
}

func (g *Generator) undefinedCall() FunctionCall {
	var name string
	if i := g.rnd.IntN(len(UndefinedFuncs) + 1); i < len(UndefinedFuncs) {
		name = UndefinedFuncs[i]
	} else {
		name = g.upper(5)
	}
	if binaryUndefined[name] {
		return FunctionCall{Name: name, Args: []string{g.Value(), g.Value()}}
	}
	return FunctionCall{Name: name, Args: []string{g.Value()}}
}

func (g *Generator) pick(list []string) string {
	return list[g.rnd.IntN(len(list))]
}

// intRange returns an integer in [lo, hi].
func (g *Generator) intRange(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rnd.Float64()
}

func (g *Generator) upper(n int) string {
	var b strings.Builder
	for range n {
		b.WriteByte(upperLetters[g.rnd.IntN(len(upperLetters))])
	}
	return b.String()
}

func isBinaryFunc(name string) bool {
	for _, f := range BinaryFuncs {
		if f == name {
			return true
		}
	}
	return false
}

// formatFloat renders f the way the target prints floats: shortest
// round-trip digits and always a decimal point.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEn") {
		s += ".0"
	}
	return s
}

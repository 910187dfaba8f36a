package evaluator

import (
	"math"
	"math/big"
)

// Value is an evaluation result: Int, Float, Str, Bool or None.
type Value interface {
	TypeName() string
	Truthy() bool
}

// Int is an arbitrary-precision integer.
type Int struct{ V *big.Int }

// Float is an IEEE-754 double.
type Float float64

// Str is a text value.
type Str string

// Bool is a boolean. In arithmetic it behaves as 0 or 1.
type Bool bool

// NoneValue is the absent value.
type NoneValue struct{}

// None is the single NoneValue.
var None Value = NoneValue{}

func (Int) TypeName() string       { return "int" }
func (Float) TypeName() string     { return "float" }
func (Str) TypeName() string       { return "str" }
func (Bool) TypeName() string      { return "bool" }
func (NoneValue) TypeName() string { return "NoneType" }

func (v Int) Truthy() bool     { return v.V.Sign() != 0 }
func (v Float) Truthy() bool   { return v != 0 }
func (v Str) Truthy() bool     { return v != "" }
func (v Bool) Truthy() bool    { return bool(v) }
func (NoneValue) Truthy() bool { return false }

// IntOf wraps n.
func IntOf(n int64) Int { return Int{V: big.NewInt(n)} }

// number is the numeric view of a value.
type number struct {
	isInt bool
	i     *big.Int
	f     float64
}

// asNumber converts ints, bools and floats. ok is false for other types.
func asNumber(v Value) (number, bool) {
	switch x := v.(type) {
	case Int:
		return number{isInt: true, i: x.V}, true
	case Bool:
		if x {
			return number{isInt: true, i: big.NewInt(1)}, true
		}
		return number{isInt: true, i: big.NewInt(0)}, true
	case Float:
		return number{f: float64(x)}, true
	default:
		return number{}, false
	}
}

// float converts n to float64, failing when an int does not fit.
func (n number) float() (float64, error) {
	if !n.isInt {
		return n.f, nil
	}
	f, _ := new(big.Float).SetInt(n.i).Float64()
	if math.IsInf(f, 0) {
		return 0, newError(KindValueType, "int too large to convert to float")
	}
	return f, nil
}

func (n number) isZero() bool {
	if n.isInt {
		return n.i.Sign() == 0
	}
	return n.f == 0
}

func (n number) value() Value {
	if n.isInt {
		return Int{V: n.i}
	}
	return Float(n.f)
}

// cmpNumbers compares two numbers exactly. ok is false when a NaN is
// involved.
func cmpNumbers(a, b number) (c int, ok bool) {
	if a.isInt && b.isInt {
		return a.i.Cmp(b.i), true
	}
	if !a.isInt && math.IsNaN(a.f) || !b.isInt && math.IsNaN(b.f) {
		return 0, false
	}
	return toBigFloat(a).Cmp(toBigFloat(b)), true
}

func toBigFloat(n number) *big.Float {
	if n.isInt {
		return new(big.Float).SetPrec(uint(max(n.i.BitLen(), 64))).SetInt(n.i)
	}
	return big.NewFloat(n.f)
}

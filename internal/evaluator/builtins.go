package evaluator

import (
	"math"
	"math/big"
	"strconv"
)

// DefaultNames returns the variables visible to every expression.
func DefaultNames() map[string]Value {
	return map[string]Value{
		"x":     IntOf(-10),
		"y":     IntOf(22),
		"z":     IntOf(13),
		"pi":    Float(3.14159),
		"e":     Float(2.71828),
		"value": IntOf(67),
		"True":  Bool(true),
		"False": Bool(false),
		"None":  None,
	}
}

// DefaultFuncs returns the callable functions.
func DefaultFuncs() map[string]Func {
	return map[string]Func{
		"abs":      builtinAbs,
		"max":      func(ev *Evaluator, args []Value) (Value, error) { return extreme("max", args, 1) },
		"min":      func(ev *Evaluator, args []Value) (Value, error) { return extreme("min", args, -1) },
		"round":    builtinRound,
		"triple":   triple,
		"advanced": advanced,
	}
}

func builtinAbs(_ *Evaluator, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, typeError("abs() takes exactly one argument (%d given)", len(args))
	}
	n, ok := asNumber(args[0])
	if !ok {
		return nil, typeError("bad operand type for abs(): '%s'", args[0].TypeName())
	}
	if n.isInt {
		return Int{V: new(big.Int).Abs(n.i)}, nil
	}
	return Float(math.Abs(n.f)), nil
}

// extreme implements max (want=1) and min (want=-1). A single string
// argument is iterated by character.
func extreme(name string, args []Value, want int) (Value, error) {
	switch len(args) {
	case 0:
		return nil, typeError("%s expected at least 1 argument, got 0", name)
	case 1:
		s, ok := args[0].(Str)
		if !ok {
			return nil, typeError("'%s' object is not iterable", args[0].TypeName())
		}
		if s == "" {
			return nil, newError(KindValueType, "%s() arg is an empty sequence", name)
		}
		chars := make([]Value, 0, len(s))
		for _, r := range string(s) {
			chars = append(chars, Str(string(r)))
		}
		args = chars
	}
	best := args[0]
	for _, v := range args[1:] {
		c, ok, err := order(CmpGt, v, best)
		if err != nil {
			return nil, err
		}
		if ok && c == want {
			best = v
		}
	}
	return best, nil
}

func builtinRound(_ *Evaluator, args []Value) (Value, error) {
	if len(args) == 0 || len(args) > 2 {
		return nil, typeError("round() takes at most 2 arguments (%d given)", len(args))
	}
	n, ok := asNumber(args[0])
	if !ok {
		return nil, typeError("type %s doesn't define __round__ method", args[0].TypeName())
	}
	if len(args) == 1 || args[1] == None {
		if n.isInt {
			return n.value(), nil
		}
		return floatToInt(math.RoundToEven(n.f))
	}
	nd, ok := asNumber(args[1])
	if !ok || !nd.isInt {
		return nil, typeError("'%s' object cannot be interpreted as an integer", args[1].TypeName())
	}
	if !nd.i.IsInt64() {
		return nil, newError(KindValueType, "Python int too large to convert to C ssize_t")
	}
	digits := nd.i.Int64()
	if n.isInt {
		return roundInt(n.i, digits), nil
	}
	return roundFloat(n.f, digits), nil
}

func floatToInt(f float64) (Value, error) {
	if math.IsNaN(f) {
		return nil, newError(KindValueType, "cannot convert float NaN to integer")
	}
	if math.IsInf(f, 0) {
		return nil, newError(KindValueType, "cannot convert float infinity to integer")
	}
	i, _ := big.NewFloat(f).Int(nil)
	return Int{V: i}, nil
}

// roundInt rounds to a multiple of 10**-digits, half to even.
func roundInt(v *big.Int, digits int64) Value {
	if digits >= 0 {
		return Int{V: v}
	}
	if -digits > int64(len(v.String())) {
		return IntOf(0)
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(-digits), nil)
	q, m := floorQuoRem(v, pow)
	twice := new(big.Int).Lsh(m, 1)
	if c := twice.Cmp(pow); c > 0 || c == 0 && q.Bit(0) == 1 {
		q.Add(q, big.NewInt(1))
	}
	return Int{V: q.Mul(q, pow)}
}

func roundFloat(f float64, digits int64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) || digits > 323 {
		return Float(f)
	}
	if digits >= 0 {
		// FormatFloat rounds the exact binary value half to even.
		r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', int(digits), 64), 64)
		return Float(r)
	}
	if digits < -308 {
		return Float(math.Copysign(0, f))
	}
	pow := math.Pow(10, float64(-digits))
	return Float(math.RoundToEven(f/pow) * pow)
}

func triple(ev *Evaluator, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, typeError("triple() takes 1 positional argument but %d were given", len(args))
	}
	return ev.binary(TokStar, args[0], IntOf(3))
}

// advanced computes (x ^ 3.14159) / x ** 2. The xor of a float always
// raises, which makes it a stable source of type errors.
func advanced(ev *Evaluator, args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, typeError("advanced() takes 1 positional argument but %d were given", len(args))
	}
	x := args[0]
	num, err := ev.binary(TokCaret, x, Float(3.14159))
	if err != nil {
		return nil, err
	}
	den, err := ev.binary(TokStarStar, x, IntOf(2))
	if err != nil {
		return nil, err
	}
	return trueDiv(num, den)
}

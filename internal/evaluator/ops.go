package evaluator

import (
	"math"
	"math/big"
	"strings"

	"fortio.org/safecast"
)

func unary(op TokenKind, x Value) (Value, error) {
	if op == TokTilde {
		n, ok := asNumber(x)
		if !ok || !n.isInt {
			return nil, typeError("bad operand type for unary ~: '%s'", x.TypeName())
		}
		return Int{V: new(big.Int).Not(n.i)}, nil
	}
	n, ok := asNumber(x)
	if !ok {
		return nil, typeError("bad operand type for unary %s: '%s'", op, x.TypeName())
	}
	if op == TokPlus {
		return n.value(), nil
	}
	if n.isInt {
		return Int{V: new(big.Int).Neg(n.i)}, nil
	}
	return Float(-n.f), nil
}

func (ev *Evaluator) binary(op TokenKind, l, r Value) (Value, error) {
	switch op {
	case TokPlus:
		if ls, ok := l.(Str); ok {
			if rs, ok := r.(Str); ok {
				return ls + rs, nil
			}
		}
		return arith(op, l, r, new(big.Int).Add, func(a, b float64) float64 { return a + b })
	case TokMinus:
		return arith(op, l, r, new(big.Int).Sub, func(a, b float64) float64 { return a - b })
	case TokStar:
		if s, n, ok := repetition(l, r); ok {
			return ev.repeat(s, n)
		}
		return arith(op, l, r, new(big.Int).Mul, func(a, b float64) float64 { return a * b })
	case TokSlash:
		return trueDiv(l, r)
	case TokSlashSlash, TokPercent:
		return floorDivMod(op, l, r)
	case TokStarStar:
		return ev.power(l, r)
	case TokAmp, TokPipe, TokCaret:
		return bitwise(op, l, r)
	case TokShl, TokShr:
		return ev.shift(op, l, r)
	default:
		return nil, newError(KindUnexpected, "unknown operator %s", op)
	}
}

func arith(op TokenKind, l, r Value, ints func(a, b *big.Int) *big.Int, floats func(a, b float64) float64) (Value, error) {
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 {
		return nil, unsupported(op.String(), l, r)
	}
	if a.isInt && b.isInt {
		return Int{V: ints(a.i, b.i)}, nil
	}
	x, err := a.float()
	if err != nil {
		return nil, err
	}
	y, err := b.float()
	if err != nil {
		return nil, err
	}
	return Float(floats(x, y)), nil
}

// repetition matches str*int and int*str.
func repetition(l, r Value) (Str, number, bool) {
	if s, ok := l.(Str); ok {
		if n, ok := asNumber(r); ok && n.isInt {
			return s, n, true
		}
	}
	if s, ok := r.(Str); ok {
		if n, ok := asNumber(l); ok && n.isInt {
			return s, n, true
		}
	}
	return "", number{}, false
}

func (ev *Evaluator) repeat(s Str, n number) (Value, error) {
	if n.i.Sign() <= 0 || s == "" {
		return Str(""), nil
	}
	limit := int64(ev.Limits.MaxStringLen)
	if !n.i.IsInt64() || n.i.Int64() > limit || int64(len(s))*n.i.Int64() > limit {
		return nil, newError(KindInvalidExpression, "Sorry, a string that long is not allowed")
	}
	count, err := safecast.Conv[int](n.i.Int64())
	if err != nil {
		return nil, newError(KindInvalidExpression, "Sorry, a string that long is not allowed")
	}
	return Str(strings.Repeat(string(s), count)), nil
}

func trueDiv(l, r Value) (Value, error) {
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 {
		return nil, unsupported("/", l, r)
	}
	if b.isZero() {
		return nil, newError(KindZeroDivision, "division by zero")
	}
	if a.isInt && b.isInt {
		q, _ := new(big.Rat).SetFrac(a.i, b.i).Float64()
		if math.IsInf(q, 0) {
			return nil, newError(KindValueType, "integer division result too large for a float")
		}
		return Float(q), nil
	}
	x, err := a.float()
	if err != nil {
		return nil, err
	}
	y, err := b.float()
	if err != nil {
		return nil, err
	}
	return Float(x / y), nil
}

func floorDivMod(op TokenKind, l, r Value) (Value, error) {
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 {
		return nil, unsupported(op.String(), l, r)
	}
	if a.isInt && b.isInt {
		if b.i.Sign() == 0 {
			return nil, newError(KindZeroDivision, "integer division or modulo by zero")
		}
		q, m := floorQuoRem(a.i, b.i)
		if op == TokSlashSlash {
			return Int{V: q}, nil
		}
		return Int{V: m}, nil
	}
	x, err := a.float()
	if err != nil {
		return nil, err
	}
	y, err := b.float()
	if err != nil {
		return nil, err
	}
	if y == 0 {
		if op == TokSlashSlash {
			return nil, newError(KindZeroDivision, "float floor division by zero")
		}
		return nil, newError(KindZeroDivision, "float modulo by zero")
	}
	m := math.Mod(x, y)
	if m != 0 && (m < 0) != (y < 0) {
		m += y
	}
	if op == TokPercent {
		return Float(m), nil
	}
	return Float(math.Floor((x - m) / y)), nil
}

// floorQuoRem divides rounding towards negative infinity; the remainder
// takes the sign of the divisor.
func floorQuoRem(a, b *big.Int) (q, m *big.Int) {
	q, m = new(big.Int).QuoRem(a, b, new(big.Int))
	if m.Sign() != 0 && m.Sign() != b.Sign() {
		q.Sub(q, big.NewInt(1))
		m.Add(m, b)
	}
	return q, m
}

func (ev *Evaluator) power(l, r Value) (Value, error) {
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 {
		return nil, unsupported("** or pow()", l, r)
	}
	if exceeds(a, ev.Limits.MaxPower) || exceeds(b, ev.Limits.MaxPower) {
		return nil, newError(KindInvalidExpression, "Sorry! I don't want to evaluate %s ** %s", describe(l), describe(r))
	}
	if a.isInt && b.isInt && b.i.Sign() >= 0 {
		return Int{V: new(big.Int).Exp(a.i, b.i, nil)}, nil
	}
	x, err := a.float()
	if err != nil {
		return nil, err
	}
	y, err := b.float()
	if err != nil {
		return nil, err
	}
	if x == 0 && y < 0 {
		return nil, newError(KindZeroDivision, "0.0 cannot be raised to a negative power")
	}
	if x < 0 && y != math.Trunc(y) && !math.IsInf(y, 0) {
		return nil, newError(KindValueType, "negative number cannot be raised to a fractional power")
	}
	res := math.Pow(x, y)
	if math.IsInf(res, 0) && !math.IsInf(x, 0) && !math.IsInf(y, 0) {
		return nil, newError(KindValueType, "(34, 'Numerical result out of range')")
	}
	return Float(res), nil
}

// exceeds reports |n| > limit. NaN never exceeds.
func exceeds(n number, limit int64) bool {
	if n.isInt {
		return new(big.Int).Abs(n.i).Cmp(big.NewInt(limit)) > 0
	}
	return math.Abs(n.f) > float64(limit)
}

func bitwise(op TokenKind, l, r Value) (Value, error) {
	if lb, ok := l.(Bool); ok {
		if rb, ok := r.(Bool); ok {
			switch op {
			case TokAmp:
				return lb && rb, nil
			case TokPipe:
				return lb || rb, nil
			default:
				return Bool(lb != rb), nil
			}
		}
	}
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 || !a.isInt || !b.isInt {
		return nil, unsupported(op.String(), l, r)
	}
	switch op {
	case TokAmp:
		return Int{V: new(big.Int).And(a.i, b.i)}, nil
	case TokPipe:
		return Int{V: new(big.Int).Or(a.i, b.i)}, nil
	default:
		return Int{V: new(big.Int).Xor(a.i, b.i)}, nil
	}
}

func (ev *Evaluator) shift(op TokenKind, l, r Value) (Value, error) {
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 || !a.isInt || !b.isInt {
		return nil, unsupported(op.String(), l, r)
	}
	if b.i.Sign() < 0 {
		return nil, newError(KindValueType, "negative shift count")
	}
	if op == TokShl && b.i.Cmp(big.NewInt(ev.Limits.MaxShift)) > 0 {
		return nil, newError(KindInvalidExpression, "Sorry! I don't want to evaluate %s << %s", describe(l), describe(r))
	}
	var count uint
	if b.i.IsInt64() {
		c, err := safecast.Conv[uint](b.i.Int64())
		if err != nil {
			return nil, newError(KindValueType, "shift count too large")
		}
		count = c
	} else {
		count = math.MaxUint
	}
	if op == TokShl {
		return Int{V: new(big.Int).Lsh(a.i, count)}, nil
	}
	if count >= uint(a.i.BitLen()) {
		if a.i.Sign() < 0 {
			return IntOf(-1), nil
		}
		return IntOf(0), nil
	}
	// big.Int.Rsh rounds towards negative infinity like an arithmetic shift.
	return Int{V: new(big.Int).Rsh(a.i, count)}, nil
}

func compare(op CmpOp, l, r Value) (bool, error) {
	switch op {
	case CmpEq:
		return equal(l, r), nil
	case CmpNotEq:
		return !equal(l, r), nil
	case CmpIs:
		return identical(l, r), nil
	case CmpIsNot:
		return !identical(l, r), nil
	case CmpIn, CmpNotIn:
		hay, ok := r.(Str)
		if !ok {
			return false, typeError("argument of type '%s' is not iterable", r.TypeName())
		}
		needle, ok := l.(Str)
		if !ok {
			return false, typeError("'in <string>' requires string as left operand, not %s", l.TypeName())
		}
		found := strings.Contains(string(hay), string(needle))
		return found == (op == CmpIn), nil
	}

	c, ok, err := order(op, l, r)
	if err != nil || !ok {
		return false, err
	}
	switch op {
	case CmpLt:
		return c < 0, nil
	case CmpGt:
		return c > 0, nil
	case CmpLtEq:
		return c <= 0, nil
	default:
		return c >= 0, nil
	}
}

// order compares two orderable values. ok is false for NaN operands.
func order(op CmpOp, l, r Value) (c int, ok bool, err error) {
	if ls, isStr := l.(Str); isStr {
		if rs, isStr := r.(Str); isStr {
			return strings.Compare(string(ls), string(rs)), true, nil
		}
	}
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 {
		return 0, false, typeError("'%s' not supported between instances of '%s' and '%s'", op, l.TypeName(), r.TypeName())
	}
	c, ok = cmpNumbers(a, b)
	return c, ok, nil
}

func equal(l, r Value) bool {
	switch x := l.(type) {
	case Str:
		y, ok := r.(Str)
		return ok && x == y
	case NoneValue:
		_, ok := r.(NoneValue)
		return ok
	}
	a, ok1 := asNumber(l)
	b, ok2 := asNumber(r)
	if !ok1 || !ok2 {
		return false
	}
	c, ok := cmpNumbers(a, b)
	return ok && c == 0
}

// identical approximates object identity: same type and equal value.
func identical(l, r Value) bool {
	if l.TypeName() != r.TypeName() {
		return false
	}
	if f, ok := l.(Float); ok && math.IsNaN(float64(f)) {
		return false
	}
	return equal(l, r)
}

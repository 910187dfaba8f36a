package evaluator

import (
	"errors"
	"fmt"
	"strings"
)

// Limits bound the work a single expression may request.
type Limits struct {
	MaxPower     int64 // |base| and |exponent| bound for **
	MaxShift     int64 // largest left-shift count
	MaxStringLen int   // largest string a repetition may build
	MaxIntDigits int   // largest integer Format will print
}

// DefaultLimits mirror the thresholds of the reference evaluator.
var DefaultLimits = Limits{
	MaxPower:     4_000_000,
	MaxShift:     10_000,
	MaxStringLen: 100_000,
	MaxIntDigits: 4300,
}

// Func is a callable exposed to expressions.
type Func func(ev *Evaluator, args []Value) (Value, error)

// Evaluator evaluates expressions against fixed names and functions.
// It holds no per-call state and is safe for concurrent use once built.
type Evaluator struct {
	Names  map[string]Value
	Funcs  map[string]Func
	Limits Limits
}

// New returns an Evaluator with the default names, functions and limits.
func New() *Evaluator {
	return &Evaluator{
		Names:  DefaultNames(),
		Funcs:  DefaultFuncs(),
		Limits: DefaultLimits,
	}
}

// Eval parses and evaluates src. Errors are always *Error.
func (ev *Evaluator) Eval(src string) (v Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = nil, newError(KindUnexpected, "internal error: %v", r)
		}
	}()
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	c := &call{ev: ev, src: src}
	return c.eval(n)
}

// EvalString evaluates src and formats the result.
func (ev *Evaluator) EvalString(src string) (string, error) {
	v, err := ev.Eval(src)
	if err != nil {
		return "", err
	}
	return ev.Format(v)
}

// KindOf reports the kind of err, or KindUnexpected for foreign errors.
func KindOf(err error) (k ErrorKind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return KindUnexpected, false
}

// call carries the source text so name errors can quote it.
type call struct {
	ev  *Evaluator
	src string
}

func (c *call) eval(n Node) (Value, error) {
	switch n := n.(type) {
	case *IntLit:
		return Int{V: n.Value}, nil
	case *FloatLit:
		return Float(n.Value), nil
	case *StrLit:
		return Str(n.Value), nil
	case *Name:
		return c.name(n)
	case *Unary:
		x, err := c.eval(n.X)
		if err != nil {
			return nil, err
		}
		return unary(n.Op, x)
	case *Not:
		x, err := c.eval(n.X)
		if err != nil {
			return nil, err
		}
		return Bool(!x.Truthy()), nil
	case *Binary:
		l, err := c.eval(n.L)
		if err != nil {
			return nil, err
		}
		r, err := c.eval(n.R)
		if err != nil {
			return nil, err
		}
		return c.ev.binary(n.Op, l, r)
	case *BoolOp:
		l, err := c.eval(n.L)
		if err != nil {
			return nil, err
		}
		if (n.Op == TokAnd) != l.Truthy() {
			return l, nil
		}
		return c.eval(n.R)
	case *Compare:
		return c.compare(n)
	case *Cond:
		test, err := c.eval(n.Test)
		if err != nil {
			return nil, err
		}
		if test.Truthy() {
			return c.eval(n.Body)
		}
		return c.eval(n.Else)
	case *Call:
		return c.call(n)
	default:
		return nil, newError(KindUnexpected, "unknown node %T", n)
	}
}

func (c *call) name(n *Name) (Value, error) {
	if strings.HasPrefix(n.Ident, "__") {
		return nil, newError(KindInvalidExpression, "names starting with '__' are not available: %s", n.Ident)
	}
	if v, ok := c.ev.Names[n.Ident]; ok {
		return v, nil
	}
	return nil, newError(KindNameNotDefined, "'%s' is not defined for expression '%s'", n.Ident, c.src)
}

func (c *call) call(n *Call) (Value, error) {
	if strings.HasPrefix(n.Func, "__") {
		return nil, newError(KindInvalidExpression, "names starting with '__' are not available: %s", n.Func)
	}
	fn, ok := c.ev.Funcs[n.Func]
	if !ok {
		return nil, newError(KindFunctionNotDefined, "Function '%s' not defined, for expression '%s'.", n.Func, c.src)
	}
	args := make([]Value, 0, len(n.Args))
	for _, a := range n.Args {
		v, err := c.eval(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	return fn(c.ev, args)
}

func (c *call) compare(n *Compare) (Value, error) {
	left, err := c.eval(n.First)
	if err != nil {
		return nil, err
	}
	for i, op := range n.Ops {
		right, err := c.eval(n.Rest[i])
		if err != nil {
			return nil, err
		}
		ok, err := compare(op, left, right)
		if err != nil {
			return nil, err
		}
		if !ok {
			return Bool(false), nil
		}
		left = right
	}
	return Bool(true), nil
}

// Format renders v the way the target prints results.
func (ev *Evaluator) Format(v Value) (string, error) {
	switch x := v.(type) {
	case Int:
		return formatInt(x, ev.Limits.MaxIntDigits)
	case Float:
		return formatFloat(float64(x)), nil
	case Str:
		return string(x), nil
	case Bool:
		if x {
			return "True", nil
		}
		return "False", nil
	case NoneValue:
		return "None", nil
	default:
		return "", newError(KindUnexpected, "cannot format %T", v)
	}
}

func describe(v Value) string {
	s, err := (&Evaluator{Limits: DefaultLimits}).Format(v)
	if err != nil {
		return fmt.Sprintf("<%s>", v.TypeName())
	}
	return s
}

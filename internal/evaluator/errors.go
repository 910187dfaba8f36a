package evaluator

import (
	"fmt"

	"exprfuzz/internal/protocol"
)

// ErrorKind is the closed error classification shared with the wire protocol.
type ErrorKind = protocol.ErrorKind

const (
	KindInvalidExpression  = protocol.InvalidExpression
	KindFunctionNotDefined = protocol.FunctionNotDefined
	KindNameNotDefined     = protocol.NameNotDefined
	KindZeroDivision       = protocol.ZeroDivision
	KindValueType          = protocol.ValueTypeArithmetic
	KindUnexpected         = protocol.UnexpectedError
)

// Error is an evaluation failure with a closed kind.
type Error struct {
	Kind protocol.ErrorKind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(kind protocol.ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func typeError(format string, args ...any) *Error {
	return newError(KindValueType, format, args...)
}

func unsupported(op string, l, r Value) *Error {
	return typeError("unsupported operand type(s) for %s: '%s' and '%s'", op, l.TypeName(), r.TypeName())
}

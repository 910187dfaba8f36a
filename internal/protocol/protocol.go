// Package protocol defines the text contract between the fuzzer and an
// evaluation target.
//
// The target reads one expression from stdin until EOF and trims it. Empty
// input prints EmptyInput to stdout and exits 0. A successful evaluation
// prints "SUCCESS: <value>" to stdout and exits 0. A failure prints
// "<KIND>: <message>" to stderr and exits 1, where KIND is one of the
// ErrorKind tokens.
package protocol

import (
	"fmt"
	"strings"
)

const (
	// EmptyInput is printed for blank input.
	EmptyInput = "Empty input"
	// SuccessPrefix starts every successful result line.
	SuccessPrefix = "SUCCESS: "

	ExitSuccess = 0
	ExitFailure = 1
)

// ErrorKind is the closed set of failure kinds a target may report.
type ErrorKind uint8

const (
	// Unrecognized is any stderr token outside the documented vocabulary.
	Unrecognized ErrorKind = iota
	InvalidExpression
	FunctionNotDefined
	NameNotDefined
	ZeroDivision
	ValueTypeArithmetic
	UnexpectedError
)

// Kinds lists every documented kind, Unrecognized excluded.
var Kinds = []ErrorKind{
	InvalidExpression,
	FunctionNotDefined,
	NameNotDefined,
	ZeroDivision,
	ValueTypeArithmetic,
	UnexpectedError,
}

var kindTokens = [...]string{
	Unrecognized:        "UNRECOGNIZED",
	InvalidExpression:   "INVALID_EXPRESSION",
	FunctionNotDefined:  "FUNCTION_NOT_DEFINED",
	NameNotDefined:      "NAME_NOT_DEFINED",
	ZeroDivision:        "ZERO_DIVISION_ERROR",
	ValueTypeArithmetic: "VALUE/TYPE/ARITHMETIC_ERROR",
	UnexpectedError:     "UNEXPECTED_ERROR",
}

// Token returns the wire token for k.
func (k ErrorKind) Token() string {
	if int(k) < len(kindTokens) {
		return kindTokens[k]
	}
	return kindTokens[Unrecognized]
}

func (k ErrorKind) String() string { return k.Token() }

// ParseErrorKind maps a wire token to its kind. Unknown tokens map to
// Unrecognized.
func ParseErrorKind(token string) ErrorKind {
	token = strings.TrimSpace(token)
	for _, k := range Kinds {
		if kindTokens[k] == token {
			return k
		}
	}
	return Unrecognized
}

// ParseErrorLine extracts the kind from the first line of a target's
// stderr. The kind is the text before the first colon.
func ParseErrorLine(stderr string) ErrorKind {
	line, _, _ := strings.Cut(strings.TrimSpace(stderr), "\n")
	token, _, found := strings.Cut(line, ":")
	if !found {
		return Unrecognized
	}
	return ParseErrorKind(token)
}

// FormatError renders a failure line.
func FormatError(k ErrorKind, msg string) string {
	return fmt.Sprintf("%s: %s", k.Token(), msg)
}

// FormatSuccess renders a success line.
func FormatSuccess(value string) string {
	return SuccessPrefix + value
}

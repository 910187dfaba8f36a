package evaluator

import (
	"strings"
	"testing"
)

func TestEvalSuccess(t *testing.T) {
	ev := New()
	tests := []struct {
		src  string
		want string
	}{
		{"2 + 3", "5"},
		{"2 * 3 + 4", "10"},
		{"2 * (3 + 4)", "14"},
		{"7 / 2", "3.5"},
		{"6 / 3", "2.0"},
		{"7 // 2", "3"},
		{"-7 // 2", "-4"},
		{"-7 % 3", "2"},
		{"7 % -3", "-2"},
		{"-2 ** 2", "-4"},
		{"2 ** 3 ** 2", "512"},
		{"2 ** -1", "0.5"},
		{"x + y", "12"},
		{"value - z", "54"},
		{"pi * 2", "6.28318"},
		{"1 < 2 < 3", "True"},
		{"3 < 2 < 1", "False"},
		{"1 == 1.0", "True"},
		{"'a' + 'b'", "ab"},
		{"'ab' * 3", "ababab"},
		{"'b' in 'abc'", "True"},
		{"'d' not in 'abc'", "True"},
		{"None is None", "True"},
		{"1 is not None", "True"},
		{"not 0", "True"},
		{"0 or 'fallback'", "fallback"},
		{"1 and 2", "2"},
		{"'A' if x > y else 'B' if z < y else 'C'", "B"},
		{"5 & 3", "1"},
		{"5 | 3", "7"},
		{"5 ^ 3", "6"},
		{"~5", "-6"},
		{"1 << 10", "1024"},
		{"-16 >> 2", "-4"},
		{"True + True", "2"},
		{"True & False", "False"},
		{"abs(x)", "10"},
		{"max(1, 5, 3)", "5"},
		{"min(y, z)", "13"},
		{"max('abc')", "c"},
		{"round(2.5)", "2"},
		{"round(3.5)", "4"},
		{"round(2.675, 2)", "2.67"},
		{"round(1250, -2)", "1200"},
		{"triple(4)", "12"},
		{"triple('ab')", "ababab"},
		{"0x1f + 0b11 + 0o7", "41"},
		{"1e3", "1000.0"},
		{"1e16", "1e+16"},
		{"0.00001", "1e-05"},
		{"0.0001", "0.0001"},
		{"0.1 + 0.2", "0.30000000000000004"},
		{"1e400", "inf"},
		{"2 ** 100", "1267650600228229401496703205376"},
		{"  (((1)))  ", "1"},
	}
	for _, tt := range tests {
		got, err := ev.EvalString(tt.src)
		if err != nil {
			t.Errorf("EvalString(%q) error: %v", tt.src, err)
			continue
		}
		if got != tt.want {
			t.Errorf("EvalString(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	ev := New()
	tests := []struct {
		src  string
		kind ErrorKind
	}{
		{"1/0", KindZeroDivision},
		{"1 // 0", KindZeroDivision},
		{"1 % 0", KindZeroDivision},
		{"1.5 % 0.0", KindZeroDivision},
		{"0 ** -1", KindZeroDivision},
		{"undefined_var", KindNameNotDefined},
		{"maximum(1, 2)", KindFunctionNotDefined},
		{"x(1)", KindFunctionNotDefined},
		{"1 +", KindInvalidExpression},
		{"(1 + 2", KindInvalidExpression},
		{"1 + 2)", KindInvalidExpression},
		{"(1, 2)", KindInvalidExpression},
		{"()", KindInvalidExpression},
		{"[1]", KindInvalidExpression},
		{"x.real", KindInvalidExpression},
		{"import os", KindInvalidExpression},
		{"lambda: 1", KindInvalidExpression},
		{"__import__('os')", KindInvalidExpression},
		{"abs(x=1)", KindInvalidExpression},
		{"triple(1)(2)", KindInvalidExpression},
		{"'unterminated", KindInvalidExpression},
		{"01", KindInvalidExpression},
		{"9 ** 9999999", KindInvalidExpression},
		{"1 << 100000", KindInvalidExpression},
		{"'a' * 1000000", KindInvalidExpression},
		{"1.5 ^ 2", KindValueType},
		{"'a' - 1", KindValueType},
		{"'a' < 1", KindValueType},
		{"1 in 'abc'", KindValueType},
		{"1 >> -1", KindValueType},
		{"(-8) ** 0.5", KindValueType},
		{"advanced(2)", KindValueType},
		{"abs('a')", KindValueType},
		{"max(1)", KindValueType},
		{"10 ** 5000", KindValueType},
		{"1e308 * 10 ** 400", KindValueType},
	}
	for _, tt := range tests {
		_, err := ev.EvalString(tt.src)
		if err == nil {
			t.Errorf("EvalString(%q) succeeded, want %s", tt.src, tt.kind)
			continue
		}
		kind, ok := KindOf(err)
		if !ok {
			t.Errorf("EvalString(%q) error %T is not *Error", tt.src, err)
			continue
		}
		if kind != tt.kind {
			t.Errorf("EvalString(%q) kind = %s (%v), want %s", tt.src, kind, err, tt.kind)
		}
	}
}

func TestNameErrorQuotesExpression(t *testing.T) {
	_, err := New().Eval("undefined_var + 1")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "'undefined_var' is not defined for expression 'undefined_var + 1'"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestFunctionErrorQuotesExpression(t *testing.T) {
	_, err := New().Eval("maximum(1, 2)")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "Function 'maximum' not defined") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestDeepNestingIsRejected(t *testing.T) {
	src := strings.Repeat("(", 5000) + "1" + strings.Repeat(")", 5000)
	_, err := New().Eval(src)
	if kind, _ := KindOf(err); err == nil || kind != KindInvalidExpression {
		t.Fatalf("Eval(deep) = %v, want invalid expression", err)
	}
	src = strings.Repeat("-", 5000) + "1"
	if _, err := New().Eval(src); err == nil {
		t.Fatal("Eval(deep unary) succeeded")
	}
}

func TestPanicBecomesUnexpected(t *testing.T) {
	ev := New()
	ev.Funcs["boom"] = func(*Evaluator, []Value) (Value, error) { panic("boom") }
	_, err := ev.Eval("boom()")
	if kind, _ := KindOf(err); kind != KindUnexpected {
		t.Fatalf("kind = %v, want unexpected (err=%v)", kind, err)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{-0.5, "-0.5"},
		{1.5, "1.5"},
		{123456789012345.0, "123456789012345.0"},
		{1234567890123456789.0, "1.2345678901234568e+18"},
		{1e-7, "1e-07"},
		{2.5e-5, "2.5e-05"},
		{1e100, "1e+100"},
	}
	for _, tt := range tests {
		if got := formatFloat(tt.in); got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

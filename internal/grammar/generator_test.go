package grammar

import (
	"math/rand/v2"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"testing"
)

func newTestGenerator(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func isValue(s string) bool {
	if slices.Contains(Variables, s) {
		return true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return (n >= 1 && n <= 1000) || (n >= -1000 && n <= 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && f >= -10 && f <= 10 && strings.Contains(s, ".")
}

func TestValueDistribution(t *testing.T) {
	g := newTestGenerator(1)
	for range 2000 {
		if v := g.Value(); !isValue(v) {
			t.Fatalf("Value() = %q is outside the value forms", v)
		}
	}
}

func TestBinaryNeverDividesByLiteralZero(t *testing.T) {
	g := newTestGenerator(2)
	divisions := 0
	for range 20000 {
		for _, shape := range []ValidShape{ShapeBinary, ShapeVariable} {
			e := g.ValidExprOf(shape)
			bin, ok := e.(BinaryOp)
			if !ok || bin.Op != "/" {
				continue
			}
			divisions++
			if bin.Right == "0" {
				t.Fatalf("generated %q with a literal zero divisor", bin.String())
			}
		}
	}
	if divisions == 0 {
		t.Fatal("no divisions generated")
	}
}

func TestValidShapes(t *testing.T) {
	g := newTestGenerator(3)
	cond := regexp.MustCompile(`^'[A-Z]' if (\d+) > (\d+) else '[A-Z]' if (\d+) < (\d+) else '[A-Z]'$`)
	for range 500 {
		switch e := g.ValidExpr().(type) {
		case Literal:
			if !isValue(e.Text) {
				t.Fatalf("Literal %q", e.Text)
			}
		case Variable:
			if !slices.Contains(Variables, e.Name) {
				t.Fatalf("Variable %q", e.Name)
			}
		case BinaryOp:
			if !isValue(e.Left) || !isValue(e.Right) && !isSmallPositive(e.Right) {
				t.Fatalf("BinaryOp operands %q", e.String())
			}
			if !slices.Contains(BinaryOps, e.Op) {
				t.Fatalf("BinaryOp operator %q", e.Op)
			}
		case FunctionCall:
			want := 1
			if isBinaryFunc(e.Name) {
				want = 2
			}
			if len(e.Args) != want || !slices.Contains(Functions, e.Name) {
				t.Fatalf("FunctionCall %q", e.String())
			}
		case Conditional:
			m := cond.FindStringSubmatch(e.String())
			if m == nil {
				t.Fatalf("Conditional %q", e.String())
			}
			if m[2] != m[4] {
				t.Fatalf("Conditional %q compares against different middle values", e.String())
			}
			for _, v := range []int{e.V1, e.V2, e.V3} {
				if v < 1 || v > 10 {
					t.Fatalf("Conditional value %d out of range", v)
				}
			}
		default:
			t.Fatalf("unexpected shape %T", e)
		}
	}
}

func isSmallPositive(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 1 && n <= 100
}

func TestFunctionCallString(t *testing.T) {
	tests := []struct {
		call FunctionCall
		want string
	}{
		{FunctionCall{Name: "abs", Args: []string{"-3"}}, "abs(-3)"},
		{FunctionCall{Name: "max", Args: []string{"x", "2.5"}}, "max(x, 2.5)"},
		{FunctionCall{Name: "f"}, "f()"},
	}
	for _, tt := range tests {
		if got := tt.call.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestInvalidShapes(t *testing.T) {
	g := newTestGenerator(4)
	unbalanced := regexp.MustCompile(`^\d+([()\[\]{}])+$`)
	undefined := regexp.MustCompile(`^([a-z0-9_]+|[A-Z]{5})\((.*)\)$`)
	seen := make(map[InvalidShape]bool)
	for range 1000 {
		s, shape := g.GenerateInvalidShape()
		seen[shape] = true
		switch shape {
		case InvalidNoise:
			if len(s) < 3 || len(s) > 20 {
				t.Fatalf("noise %q has length %d", s, len(s))
			}
		case InvalidMalformed:
			if !slices.Contains(MalformedLiterals, s) {
				t.Fatalf("malformed %q", s)
			}
		case InvalidUnbalanced:
			m := unbalanced.FindStringSubmatch(s)
			if m == nil {
				t.Fatalf("unbalanced %q", s)
			}
			tail := strings.TrimLeft(s, "0123456789")
			if strings.Count(tail, m[1]) != len(tail) || len(tail) > 5 {
				t.Fatalf("unbalanced %q mixes or overruns brackets", s)
			}
		case InvalidEscape:
			if !slices.Contains(EscapeAttempts, s) {
				t.Fatalf("escape %q", s)
			}
		case InvalidUndefinedCall:
			m := undefined.FindStringSubmatch(s)
			if m == nil {
				t.Fatalf("undefined call %q", s)
			}
			args := strings.Count(m[2], ", ") + 1
			if binaryUndefined[m[1]] && args != 2 || !binaryUndefined[m[1]] && args != 1 {
				t.Fatalf("undefined call %q has %d arguments", s, args)
			}
			if slices.Contains(Functions, m[1]) {
				t.Fatalf("undefined call uses bound function %q", m[1])
			}
		}
	}
	for shape := range invalidShapeCount {
		if !seen[shape] {
			t.Errorf("shape %s never generated", shape)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := map[float64]string{
		5:     "5.0",
		-2.5:  "-2.5",
		3.125: "3.125",
	}
	for in, want := range tests {
		if got := formatFloat(in); got != want {
			t.Errorf("formatFloat(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestGeneratorDeterministic(t *testing.T) {
	a, b := newTestGenerator(9), newTestGenerator(9)
	for range 100 {
		if x, y := a.GenerateValid(), b.GenerateValid(); x != y {
			t.Fatalf("same seed diverged: %q vs %q", x, y)
		}
		if x, y := a.GenerateInvalid(), b.GenerateInvalid(); x != y {
			t.Fatalf("same seed diverged: %q vs %q", x, y)
		}
	}
}

func TestParseShapes(t *testing.T) {
	for _, s := range ValidShapes {
		got, err := ParseValidShape(s.String())
		if err != nil || got != s {
			t.Errorf("ParseValidShape(%q) = %v, %v", s, got, err)
		}
	}
	for _, s := range InvalidShapes {
		got, err := ParseInvalidShape(" " + strings.ToUpper(s.String()))
		if err != nil || got != s {
			t.Errorf("ParseInvalidShape(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseValidShape("noise"); err == nil {
		t.Error("ParseValidShape accepted an invalid shape name")
	}
	if len(ValidShapes) != int(validShapeCount) || len(InvalidShapes) != int(invalidShapeCount) {
		t.Error("shape lists out of sync with the enums")
	}
}

func TestGenerateValidShapeCoversEveryShape(t *testing.T) {
	g := newTestGenerator(9)
	seen := make(map[ValidShape]bool)
	for range 500 {
		s, shape := g.GenerateValidShape()
		if s == "" {
			t.Fatalf("empty expression for shape %s", shape)
		}
		seen[shape] = true
	}
	for _, shape := range ValidShapes {
		if !seen[shape] {
			t.Errorf("shape %s never generated", shape)
		}
	}
}

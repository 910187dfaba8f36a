package grammar

// Variables are the names bound by the reference target.
var Variables = []string{"x", "y", "z", "pi", "e", "value"}

// ArithmeticOps, ComparisonOps and BitwiseOps together form the binary
// operator set.
var (
	ArithmeticOps = []string{"+", "-", "/", "*", "%", "**"}
	ComparisonOps = []string{"==", "!=", "<", ">", "<=", ">="}
	BitwiseOps    = []string{"^", "|", "&", "<<", ">>"}
)

// BinaryOps is the full operator set used by valid shapes.
var BinaryOps = concat(ArithmeticOps, ComparisonOps, BitwiseOps)

// UnaryFuncs and BinaryFuncs are the whitelisted call targets.
var (
	UnaryFuncs  = []string{"abs", "round"}
	BinaryFuncs = []string{"max", "min"}
	Functions   = []string{"abs", "max", "min", "round"}
)

// UndefinedFuncs are plausible function names the target does not bind.
var UndefinedFuncs = []string{
	"maximum", "minimum", "rounding", "multiply", "add", "abs_value", "log10", "sqrt", "exp", "sin",
}

// binaryUndefined lists the undefined names that are called with two arguments.
var binaryUndefined = map[string]bool{
	"maximum":  true,
	"minimum":  true,
	"multiply": true,
	"add":      true,
}

// MalformedLiterals are fixed inputs known to be rejected.
var MalformedLiterals = []string{
	"", " ", "()", "((()))", "undefined_var", "1++2", "**2", "1///2", "1+2*", "c",
}

// EscapeAttempts are inputs that try to leave the expression sandbox.
var EscapeAttempts = []string{
	"import os",
	`exec("print('Hello World')")`,
	`__import__("os")`,
	`eval("0+1")`,
	"objdump -d src/fuzzer.py",
	"dir()",
	"locals()",
	"globals()",
}

// brackets are repeated after a number by the unbalanced shape.
var brackets = []string{"(", ")", "[", "]", "{", "}"}

const (
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	// printable is ASCII letters, digits and punctuation.
	printable = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789" +
		"!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

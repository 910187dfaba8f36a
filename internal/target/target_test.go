package target

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"exprfuzz/internal/protocol"
)

func run(t *testing.T, input string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = Main(strings.NewReader(input), &out, &errOut, Options{})
	return code, out.String(), errOut.String()
}

func TestMainProtocol(t *testing.T) {
	tests := []struct {
		input      string
		code       int
		stdout     string
		stderrKind protocol.ErrorKind
	}{
		{"2 + 3", 0, "SUCCESS: 5\n", 0},
		{"  6 / 2\n", 0, "SUCCESS: 3.0\n", 0},
		{"", 0, "Empty input\n", 0},
		{" \n\t ", 0, "Empty input\n", 0},
		{"1/0", 1, "", protocol.ZeroDivision},
		{"undefined_var", 1, "", protocol.NameNotDefined},
		{"maximum(1, 2)", 1, "", protocol.FunctionNotDefined},
		{"1 +", 1, "", protocol.InvalidExpression},
		{"1.5 ^ 2", 1, "", protocol.ValueTypeArithmetic},
	}
	for _, tt := range tests {
		code, stdout, stderr := run(t, tt.input)
		if code != tt.code {
			t.Errorf("Main(%q) exit = %d, want %d", tt.input, code, tt.code)
		}
		if stdout != tt.stdout {
			t.Errorf("Main(%q) stdout = %q, want %q", tt.input, stdout, tt.stdout)
		}
		if tt.code != 0 {
			if got := protocol.ParseErrorLine(stderr); got != tt.stderrKind {
				t.Errorf("Main(%q) stderr kind = %s (%q), want %s", tt.input, got, stderr, tt.stderrKind)
			}
		} else if stderr != "" {
			t.Errorf("Main(%q) wrote stderr %q", tt.input, stderr)
		}
	}
}

func TestParseDelay(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		ok   bool
	}{
		{"750ms", 750 * time.Millisecond, true},
		{"2", 2 * time.Second, true},
		{"0.5", 500 * time.Millisecond, true},
		{"-1", 0, false},
		{"soon", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseDelay(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseDelay(%q) err = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDelay(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv(DelayEnv, "10ms")
	opts, err := OptionsFromEnv()
	if err != nil {
		t.Fatalf("OptionsFromEnv: %v", err)
	}
	if opts.Delay != 10*time.Millisecond {
		t.Errorf("Delay = %v, want 10ms", opts.Delay)
	}
	t.Setenv(DelayEnv, "nope")
	if _, err := OptionsFromEnv(); err == nil {
		t.Error("OptionsFromEnv accepted a malformed delay")
	}
}

package oracle

import (
	"fmt"
	"time"

	"exprfuzz/internal/protocol"
)

// Kind is the classification of one trial.
type Kind uint8

const (
	Success Kind = iota
	ExpectedError
	Timeout
	Crash
)

// Kinds lists every classification.
var Kinds = []Kind{Success, ExpectedError, Timeout, Crash}

func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case ExpectedError:
		return "error"
	case Timeout:
		return "timeout"
	case Crash:
		return "crash"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Outcome is the result of running one candidate.
type Outcome struct {
	Kind Kind
	// Output is the trimmed stdout of a successful run.
	Output string
	// Stderr is the trimmed stderr of a failed run.
	Stderr string
	// ErrorKind is parsed from Stderr for ExpectedError outcomes.
	ErrorKind protocol.ErrorKind
	// Err describes a Crash: launch, pipe or signal failure.
	Err      string
	ExitCode int
	// PID of the target process, zero when it never started.
	PID     int
	Elapsed time.Duration
}

// IsFinding reports whether the outcome should be kept for triage.
func (o Outcome) IsFinding() bool {
	return o.Kind == Timeout || o.Kind == Crash
}

// Summary renders a one-line description for logs.
func (o Outcome) Summary() string {
	switch o.Kind {
	case Success:
		return "Result: " + o.Output
	case ExpectedError:
		return "Error: " + o.Stderr
	case Timeout:
		return "Error: Timeout"
	default:
		return "Error: " + o.Err
	}
}

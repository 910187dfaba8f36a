// Package target is the reference evaluation target: it reads one
// expression from stdin and answers in the protocol format.
package target

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"exprfuzz/internal/evaluator"
	"exprfuzz/internal/protocol"
)

// DelayEnv names the environment variable that postpones evaluation.
// It accepts a Go duration ("750ms") or a number of seconds ("2.5").
const DelayEnv = "EXPRTARGET_DELAY"

// maxInput caps how much stdin is read.
const maxInput = 1 << 20

// Options tune a target run.
type Options struct {
	Delay     time.Duration
	Evaluator *evaluator.Evaluator
}

// OptionsFromEnv reads DelayEnv. A malformed value is an error.
func OptionsFromEnv() (Options, error) {
	raw, ok := os.LookupEnv(DelayEnv)
	if !ok || strings.TrimSpace(raw) == "" {
		return Options{}, nil
	}
	d, err := ParseDelay(raw)
	if err != nil {
		return Options{}, fmt.Errorf("%s: %w", DelayEnv, err)
	}
	return Options{Delay: d}, nil
}

// ParseDelay accepts a duration or plain seconds.
func ParseDelay(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if d, err := time.ParseDuration(raw); err == nil {
		return d, nil
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil || secs < 0 {
		return 0, fmt.Errorf("invalid delay %q", raw)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// Main runs one evaluation and returns the process exit code.
func Main(stdin io.Reader, stdout, stderr io.Writer, opts Options) int {
	data, err := io.ReadAll(io.LimitReader(stdin, maxInput))
	if err != nil {
		fmt.Fprintln(stderr, protocol.FormatError(protocol.UnexpectedError, err.Error()))
		return protocol.ExitFailure
	}
	src := strings.TrimSpace(norm.NFC.String(string(data)))
	if src == "" {
		fmt.Fprintln(stdout, protocol.EmptyInput)
		return protocol.ExitSuccess
	}
	if opts.Delay > 0 {
		time.Sleep(opts.Delay)
	}

	ev := opts.Evaluator
	if ev == nil {
		ev = evaluator.New()
	}
	out, err := ev.EvalString(src)
	if err != nil {
		kind, _ := evaluator.KindOf(err)
		fmt.Fprintln(stderr, protocol.FormatError(kind, err.Error()))
		return protocol.ExitFailure
	}
	fmt.Fprintln(stdout, protocol.FormatSuccess(out))
	return protocol.ExitSuccess
}

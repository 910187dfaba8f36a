package oracle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"exprfuzz/internal/protocol"
	"exprfuzz/internal/trace"
)

// DefaultTimeout is the per-trial wall-clock limit.
const DefaultTimeout = 5 * time.Second

// waitDelay bounds how long Wait keeps copying output after the target
// exits or is killed.
const waitDelay = 500 * time.Millisecond

// ErrNoTarget is returned by Resolve when the target cannot be found.
var ErrNoTarget = errors.New("target executable not found")

// Runner launches a fresh target process per candidate.
type Runner struct {
	// Command is the target argv; Command[0] is resolved through PATH.
	Command []string
	Timeout time.Duration
	// Env, when non-nil, replaces the inherited environment.
	Env []string
	Dir string
}

// NewRunner returns a Runner for command with the given timeout.
func NewRunner(command []string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{Command: command, Timeout: timeout}
}

// Resolve checks that the target executable can be found and returns its
// path.
func (r *Runner) Resolve() (string, error) {
	if len(r.Command) == 0 || strings.TrimSpace(r.Command[0]) == "" {
		return "", fmt.Errorf("%w: empty command", ErrNoTarget)
	}
	path, err := exec.LookPath(r.Command[0])
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNoTarget, r.Command[0], err)
	}
	return path, nil
}

// Run executes candidate against a fresh target process and classifies the
// outcome. It never returns an error; see Outcome.
func (r *Runner) Run(ctx context.Context, candidate string) Outcome {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeExec, "exec", trace.CurrentSpan(ctx))

	out := r.run(ctx, candidate)

	span.WithExtra("outcome", out.Kind.String()).
		WithExtra("exit", fmt.Sprint(out.ExitCode))
	out.Elapsed = span.End("")
	return out
}

func (r *Runner) run(ctx context.Context, candidate string) Outcome {
	if len(r.Command) == 0 {
		return Outcome{Kind: Crash, Err: "no target command configured", ExitCode: -1}
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cmd := exec.Command(r.Command[0], r.Command[1:]...)
	cmd.Dir = r.Dir
	if r.Env != nil {
		cmd.Env = r.Env
	}
	// own process group so the whole tree can be killed on timeout
	isolate(cmd)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdin = strings.NewReader(candidate)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return Outcome{Kind: Crash, Err: fmt.Sprintf("failed to start target: %v", err), ExitCode: -1}
	}

	pid := cmd.Process.Pid
	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
		killTree(cmd)
		<-done // reap before returning
		return Outcome{Kind: Timeout, ExitCode: -1, PID: pid, Stderr: strings.TrimSpace(stderr.String())}
	case <-ctx.Done():
		killTree(cmd)
		<-done
		return Outcome{Kind: Crash, Err: fmt.Sprintf("execution cancelled: %v", ctx.Err()), ExitCode: -1, PID: pid}
	case err := <-done:
		out := classify(err, stdout.String(), stderr.String())
		out.PID = pid
		return out
	}
}

// classify maps a finished process to an outcome.
func classify(waitErr error, stdout, stderr string) Outcome {
	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)

	if waitErr == nil {
		return Outcome{Kind: Success, Output: stdout, ExitCode: 0}
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// terminated by a signal
			return Outcome{Kind: Crash, Err: exitErr.Error(), Stderr: stderr, ExitCode: code}
		}
		return Outcome{
			Kind:      ExpectedError,
			Stderr:    stderr,
			ErrorKind: protocol.ParseErrorLine(stderr),
			ExitCode:  code,
		}
	}
	// I/O failure copying the target's streams
	return Outcome{Kind: Crash, Err: fmt.Sprintf("failed to communicate with target: %v", waitErr), Stderr: stderr, ExitCode: -1}
}

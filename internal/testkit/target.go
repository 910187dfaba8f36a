// Package testkit lets test binaries double as the reference target, so
// process-level tests need no prebuilt executable.
package testkit

import (
	"os"
	"testing"
	"time"

	"exprfuzz/internal/target"
)

const targetEnv = "EXPRFUZZ_TESTKIT_TARGET"

// RunTargetIfRequested turns the current process into the reference target
// when it was launched by TargetCommand. Call it first thing in TestMain.
func RunTargetIfRequested() {
	if os.Getenv(targetEnv) != "1" {
		return
	}
	opts, err := target.OptionsFromEnv()
	if err != nil {
		os.Exit(2)
	}
	os.Exit(target.Main(os.Stdin, os.Stdout, os.Stderr, opts))
}

// TargetCommand returns the argv and environment that re-execute the test
// binary as the target. A positive delay makes a slow target.
func TargetCommand(t testing.TB, delay time.Duration) (argv, env []string) {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatalf("testkit: resolve test binary: %v", err)
	}
	env = append(os.Environ(), targetEnv+"=1")
	if delay > 0 {
		env = append(env, target.DelayEnv+"="+delay.String())
	}
	return []string{exe}, env
}

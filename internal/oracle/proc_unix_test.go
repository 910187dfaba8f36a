//go:build unix

package oracle

import (
	"errors"
	"syscall"
	"testing"
)

// requireProcessGone fails unless pid no longer exists. The runner reaps
// the target before returning, so signal 0 must report ESRCH.
func requireProcessGone(t *testing.T, pid int) {
	t.Helper()
	err := syscall.Kill(pid, 0)
	if !errors.Is(err, syscall.ESRCH) {
		t.Fatalf("process %d still present after timeout (kill 0: %v)", pid, err)
	}
}

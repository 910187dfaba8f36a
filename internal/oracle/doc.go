// Package oracle executes one candidate against an isolated target process
// and classifies what happened.
//
// Every Run call resolves to exactly one Outcome kind: Success,
// ExpectedError, Timeout or Crash. Failures to launch or talk to the target
// become Crash outcomes; nothing escapes as a Go error or a panic.
package oracle

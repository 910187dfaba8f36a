package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota
	LevelError        // findings and heartbeats
	LevelPhase        // campaign span
	LevelDetail       // trial spans
	LevelDebug        // target process spans
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for l, n := range levelNames {
		if n == name {
			return Level(l), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether spans of scope are recorded at this level.
// Each level above error admits one more scope.
func (l Level) ShouldEmit(scope Scope) bool {
	return l > LevelError && scope > 0 && uint8(scope) <= uint8(l-LevelError)
}

// Accepts reports whether ev passes this level. Heartbeats and findings
// pass every level except off.
func (l Level) Accepts(ev *Event) bool {
	switch {
	case l == LevelOff || ev == nil:
		return false
	case ev.Kind == KindHeartbeat || ev.Kind == KindFinding:
		return true
	default:
		return l.ShouldEmit(ev.Scope)
	}
}

package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives trace events. Implementations are goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written out as they happen
	ModeRing                          // kept in memory
	ModeBoth
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return "unknown"
}

// ParseMode converts a mode name to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	for _, m := range []StorageMode{ModeStream, ModeRing, ModeBoth} {
		if m.String() == strings.ToLower(strings.TrimSpace(s)) {
			return m, nil
		}
	}
	return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config describes a tracer.
type Config struct {
	Level Level
	Mode  StorageMode
	// Format of the stream; FormatAuto picks from OutputPath.
	Format Format
	// Output overrides OutputPath when set.
	Output io.Writer
	// OutputPath is a file, or "-" and "" for stderr.
	OutputPath string
	RingSize   int
}

// New builds the tracer cfg describes. LevelOff yields Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatFor(cfg.OutputPath)
	}

	var stream, ring Tracer
	if cfg.Mode == ModeStream || cfg.Mode == ModeBoth {
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream = NewStreamTracer(w, cfg.Level, format)
	}
	if cfg.Mode == ModeRing || cfg.Mode == ModeBoth {
		ring = NewRingTracer(cfg.RingSize, cfg.Level)
	}

	switch {
	case stream != nil && ring != nil:
		return &teeTracer{leveled: leveled{cfg.Level}, tracers: []Tracer{stream, ring}}, nil
	case stream != nil:
		return stream, nil
	case ring != nil:
		return ring, nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func openOutput(cfg Config) (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		// stderr must survive Close
		return struct{ io.Writer }{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

// Ring returns the ring buffer inside t, if any.
func Ring(t Tracer) (*RingTracer, bool) {
	switch tr := t.(type) {
	case *RingTracer:
		return tr, true
	case *teeTracer:
		for _, inner := range tr.tracers {
			if r, ok := Ring(inner); ok {
				return r, true
			}
		}
	}
	return nil, false
}

// Package observ records wall-clock phases of a fuzz campaign (seed
// loading, trials, export) for the end-of-run timing report.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step of a campaign.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases in the order they were started. Safe for
// concurrent use.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

// NewTimer returns an empty Timer.
func NewTimer() *Timer { return &Timer{phases: make([]Phase, 0, 4)} }

// Begin starts a phase and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase started by Begin. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur = time.Since(p.Start)
	p.Note = note
}

// Measure times fn as a phase named name and returns its error.
func (t *Timer) Measure(name string, fn func() (note string, err error)) error {
	idx := t.Begin(name)
	note, err := fn()
	if err != nil && note == "" {
		note = "failed"
	}
	t.End(idx, note)
	return err
}

// PhaseReport is the serialisable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the aggregated timing of a campaign.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

// Report снимает копию фаз с суммарной длительностью в миллисекундах.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.phases))}
	var total time.Duration
	for i, phase := range t.phases {
		total += phase.Dur
		report.Phases[i] = PhaseReport{
			Name:       phase.Name,
			DurationMS: millis(phase.Dur),
			Note:       phase.Note,
		}
	}
	report.TotalMS = millis(total)
	return report
}

// Merge appends the phases of other after r's, e.g. CLI setup phases
// followed by the campaign's own.
func (r Report) Merge(other Report) Report {
	out := Report{
		TotalMS: r.TotalMS + other.TotalMS,
		Phases:  make([]PhaseReport, 0, len(r.Phases)+len(other.Phases)),
	}
	out.Phases = append(out.Phases, r.Phases...)
	out.Phases = append(out.Phases, other.Phases...)
	return out
}

// String renders the report as an aligned table.
func (r Report) String() string {
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range r.Phases {
		fmt.Fprintf(&b, "  %-20s %10.2f ms", p.Name, p.DurationMS)
		if p.Note != "" {
			b.WriteString("  // " + p.Note)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-20s %10.2f ms\n", "total", r.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

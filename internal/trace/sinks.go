package trace

import (
	"errors"
	"io"
	"sync"
)

// leveled supplies Level and Enabled for the tracers below.
type leveled struct{ level Level }

func (l leveled) Level() Level  { return l.level }
func (l leveled) Enabled() bool { return l.level > LevelOff }

type nopTracer struct{ leveled }

func (nopTracer) Emit(*Event)  {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }

// Nop discards everything; it is what FromContext returns by default.
var Nop Tracer = nopTracer{}

// StreamTracer writes every accepted event to w as it arrives. Write
// errors are dropped; tracing never fails a campaign.
type StreamTracer struct {
	leveled
	mu     sync.Mutex
	w      io.Writer
	format Format
}

// NewStreamTracer returns a tracer writing to w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{leveled: leveled{level}, w: w, format: format}
}

func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.Accepts(ev) {
		return
	}
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	data := Encode(ev, t.format)
	t.mu.Lock()
	_, _ = t.w.Write(data)
	t.mu.Unlock()
}

// Flush flushes w when it buffers.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if f, ok := t.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Close flushes and closes w when it is a Closer.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	t.mu.Lock()
	defer t.mu.Unlock()
	if c, ok := t.w.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

// RingTracer keeps the most recent events in memory.
type RingTracer struct {
	leveled
	mu    sync.Mutex
	buf   []Event
	next  int
	count int
}

// NewRingTracer returns a ring holding up to capacity events (4096 when
// capacity is not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{leveled: leveled{level}, buf: make([]Event, capacity)}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Accepts(ev) {
		return
	}
	stored := *ev
	if stored.Seq == 0 {
		stored.Seq = NextSeq()
	}
	t.mu.Lock()
	t.buf[t.next] = stored
	t.next = (t.next + 1) % len(t.buf)
	t.count = min(t.count+1, len(t.buf))
	t.mu.Unlock()
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, t.count)
	start := (t.next - t.count + len(t.buf)) % len(t.buf)
	for i := range t.count {
		out = append(out, t.buf[(start+i)%len(t.buf)])
	}
	return out
}

// Dump writes the stored events to w in format.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	for _, ev := range t.Snapshot() {
		if _, err := w.Write(Encode(&ev, format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }
func (t *RingTracer) Close() error { return nil }

// teeTracer sends every event to each of its tracers.
type teeTracer struct {
	leveled
	tracers []Tracer
}

func (t *teeTracer) Emit(ev *Event) {
	if ev.Seq == 0 {
		ev.Seq = NextSeq()
	}
	for _, tr := range t.tracers {
		tr.Emit(ev)
	}
}

func (t *teeTracer) Flush() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Flush())
	}
	return errors.Join(errs...)
}

func (t *teeTracer) Close() error {
	var errs []error
	for _, tr := range t.tracers {
		errs = append(errs, tr.Close())
	}
	return errors.Join(errs...)
}

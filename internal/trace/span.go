package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq returns the next process-wide event sequence number.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID returns a fresh span ID. IDs start at 1; 0 means no span.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// Span is an open begin/end pair. A span created while its scope is
// filtered out is inert but still measures its duration, so callers can
// use End for timing regardless of the trace level.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Begin emits a begin event for name under parent and returns the span.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	now := time.Now()
	if t == nil || !t.Level().ShouldEmit(scope) {
		return &Span{started: now}
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: now,
	}
	t.Emit(s.event(KindSpanBegin, now, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// End emits the end event and returns the time since Begin.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	if s.tracer != nil {
		s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	}
	return now.Sub(s.started)
}

// ID returns the span ID, 0 for an inert span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	instant(t, KindPoint, scope, name, detail, parent, extra)
}

// Finding emits a finding; it passes every level except off.
func Finding(t Tracer, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	instant(t, KindFinding, scope, name, detail, parent, extra)
}

func instant(t Tracer, kind Kind, scope Scope, name, detail string, parent uint64, extra map[string]string) {
	if t == nil {
		return
	}
	ev := &Event{
		Kind:     kind,
		Scope:    scope,
		ParentID: parent,
		Name:     name,
		Detail:   detail,
		Extra:    extra,
	}
	if !t.Level().Accepts(ev) {
		return
	}
	ev.Time = time.Now()
	ev.Seq = NextSeq()
	t.Emit(ev)
}

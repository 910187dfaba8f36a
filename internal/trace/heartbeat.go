package trace

import (
	"strconv"
	"sync"
	"time"
)

// Heartbeat emits a campaign-scope event every interval, so a stalled
// campaign can be told apart from a slow one.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat starts beating on tracer. status, when non-nil, supplies
// the event detail. It returns nil when tracing is off or interval is not
// positive; Stop on a nil Heartbeat is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration, status func() string) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.loop(tracer, interval, status)
	return h
}

func (h *Heartbeat) loop(tracer Tracer, interval time.Duration, status func() string) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for beat := 1; ; beat++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			ev := &Event{
				Time:  now,
				Seq:   NextSeq(),
				Kind:  KindHeartbeat,
				Scope: ScopeCampaign,
				Name:  "heartbeat",
				Extra: map[string]string{"beat": strconv.Itoa(beat)},
			}
			if status != nil {
				ev.Detail = status()
			}
			tracer.Emit(ev)
		}
	}
}

// Stop ends the heartbeat and waits for the goroutine to exit.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}

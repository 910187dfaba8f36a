package campaign

import (
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/strategy"
)

// Event reports one finished trial.
type Event struct {
	Trial     int // 1-based
	Total     int
	Strategy  strategy.Strategy
	Candidate string
	Outcome   oracle.Outcome
	// Admitted is true when the trial added a seed to the corpus.
	Admitted   bool
	CorpusSize int
}

// Sink consumes trial events. Implementations must be safe for concurrent
// use when the campaign runs more than one worker.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }

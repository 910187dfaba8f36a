package campaign

import (
	"time"

	"exprfuzz/internal/observ"
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/protocol"
	"exprfuzz/internal/strategy"
)

// Summary aggregates a campaign.
type Summary struct {
	Trials     int
	Success    int
	Errors     int
	Timeouts   int
	Crashes    int
	ErrorKinds map[protocol.ErrorKind]int
	Strategies map[strategy.Strategy]int
	// Admitted counts seeds added to the corpus during the campaign.
	Admitted   int
	Findings   int
	CorpusSize int
	Elapsed    time.Duration
	Timings    observ.Report
	// Interrupted is set when the context ended the campaign early.
	Interrupted bool
}

func newSummary() Summary {
	return Summary{
		ErrorKinds: make(map[protocol.ErrorKind]int),
		Strategies: make(map[strategy.Strategy]int),
	}
}

// Count returns the tally for one outcome kind.
func (s *Summary) Count(k oracle.Kind) int {
	switch k {
	case oracle.Success:
		return s.Success
	case oracle.ExpectedError:
		return s.Errors
	case oracle.Timeout:
		return s.Timeouts
	case oracle.Crash:
		return s.Crashes
	default:
		return 0
	}
}

func (s *Summary) add(st strategy.Strategy, out oracle.Outcome) {
	s.Trials++
	s.Strategies[st]++
	switch out.Kind {
	case oracle.Success:
		s.Success++
	case oracle.ExpectedError:
		s.Errors++
		s.ErrorKinds[out.ErrorKind]++
	case oracle.Timeout:
		s.Timeouts++
	case oracle.Crash:
		s.Crashes++
	}
}

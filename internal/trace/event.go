package trace

import "time"

// Kind is the type of a trace event.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
	// KindFinding marks a timeout or crash worth keeping.
	KindFinding
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindHeartbeat: "heartbeat",
	KindFinding:   "finding",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeCampaign covers a whole campaign.
	ScopeCampaign Scope = iota + 1
	// ScopeTrial is one candidate's select, execute and classify cycle.
	ScopeTrial
	// ScopeExec is the lifetime of one target process.
	ScopeExec
)

var scopeNames = [...]string{
	ScopeCampaign: "campaign",
	ScopeTrial:    "trial",
	ScopeExec:     "exec",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record. The msgpack tags define the binary trace
// file layout.
type Event struct {
	Time     time.Time         `msgpack:"time"`
	Seq      uint64            `msgpack:"seq"`
	Kind     Kind              `msgpack:"kind"`
	Scope    Scope             `msgpack:"scope"`
	SpanID   uint64            `msgpack:"span,omitempty"`
	ParentID uint64            `msgpack:"parent,omitempty"`
	Name     string            `msgpack:"name"`
	Detail   string            `msgpack:"detail,omitempty"`
	Extra    map[string]string `msgpack:"extra,omitempty"`
}

package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Format is the encoding of trace output.
type Format uint8

const (
	FormatAuto Format = iota // pick from the output path
	FormatText
	FormatNDJSON
	FormatMsgpack // a stream of msgpack-encoded Events
)

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json", "jsonl":
		return FormatNDJSON, nil
	case "msgpack", "mpk":
		return FormatMsgpack, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson|msgpack)", s)
}

// FormatFor picks a format from the extension of path. Unknown extensions
// and stderr ("-") get text.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ndjson", ".jsonl", ".json":
		return FormatNDJSON
	case ".msgpack", ".mpk":
		return FormatMsgpack
	}
	return FormatText
}

// Encode renders ev in format. Text is the fallback for FormatAuto.
func Encode(ev *Event, format Format) []byte {
	switch format {
	case FormatNDJSON:
		return encodeNDJSON(ev)
	case FormatMsgpack:
		data, err := msgpack.Marshal(ev)
		if err != nil {
			return nil
		}
		return data
	default:
		return encodeText(ev)
	}
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id,omitempty"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func encodeNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = [...]string{
	KindSpanBegin: "→ ",
	KindSpanEnd:   "← ",
	KindPoint:     "• ",
	KindHeartbeat: "♡ ",
	KindFinding:   "! ",
}

// encodeText renders one line: "[clock] <mark> name (detail) {k=v, ...}",
// indented by nesting depth for trial and exec events.
func encodeText(ev *Event) []byte {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(ev.Time.Format("15:04:05.000"))
	sb.WriteString("] ")
	if ev.ParentID > 0 && ev.Scope > ScopeCampaign {
		sb.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeCampaign)))
	}
	if int(ev.Kind) < len(kindMarks) {
		sb.WriteString(kindMarks[ev.Kind])
	}
	sb.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&sb, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k + "=" + ev.Extra[k])
		}
		sb.WriteString("}")
	}
	sb.WriteByte('\n')
	return []byte(sb.String())
}

// ReadEvents decodes a msgpack trace stream, calling fn for each event
// until the stream ends or fn returns an error.
func ReadEvents(r io.Reader, fn func(Event) error) error {
	dec := msgpack.NewDecoder(r)
	for {
		var ev Event
		if err := dec.Decode(&ev); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("trace: decode event: %w", err)
		}
		if err := fn(ev); err != nil {
			return err
		}
	}
}

package ui

import (
	"strings"
	"testing"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/oracle"
)

func TestApplyEventTracksCounts(t *testing.T) {
	m := NewProgressModel("fuzz", 20, nil).(*progressModel)
	for i := range 12 {
		kind := oracle.Success
		if i%3 == 0 {
			kind = oracle.Crash
		}
		m.applyEvent(campaign.Event{
			Trial:      i + 1,
			Total:      20,
			Candidate:  "1 +\n2",
			Outcome:    oracle.Outcome{Kind: kind},
			CorpusSize: i,
		})
	}
	if m.done != 12 {
		t.Errorf("done = %d, want 12", m.done)
	}
	if m.counts[oracle.Crash] != 4 || m.counts[oracle.Success] != 8 {
		t.Errorf("counts = %v", m.counts)
	}
	if len(m.recent) != recentLimit {
		t.Errorf("recent = %d, want %d", len(m.recent), recentLimit)
	}
	if m.corpus != 11 {
		t.Errorf("corpus = %d, want 11", m.corpus)
	}

	view := m.View()
	if !strings.Contains(view, "(12/20)") {
		t.Errorf("View() missing progress header:\n%s", view)
	}
	if strings.Contains(view, "1 +\n2") {
		t.Errorf("View() kept a raw newline from a candidate")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"abcdef", 2, "ab"},
		{"anything", 0, "anything"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

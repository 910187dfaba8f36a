package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/protocol"
	"exprfuzz/internal/strategy"
)

func withoutColor(t *testing.T) {
	t.Helper()
	orig := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = orig })
}

func TestPrintSummary(t *testing.T) {
	withoutColor(t)
	sum := campaign.Summary{
		Trials:   10,
		Success:  6,
		Errors:   3,
		Timeouts: 1,
		ErrorKinds: map[protocol.ErrorKind]int{
			protocol.ZeroDivision:      2,
			protocol.InvalidExpression: 1,
		},
		Strategies: map[strategy.Strategy]int{strategy.Mutate: 7, strategy.Replay: 3},
		Admitted:   4,
		CorpusSize: 19,
		Elapsed:    1234 * time.Millisecond,
	}
	cfg := campaign.DefaultConfig()
	cfg.Trials = 10

	var buf bytes.Buffer
	printSummary(&buf, sum, cfg)
	got := buf.String()
	for _, want := range []string{
		"Campaign finished: 10/10 trials in 1.234s",
		"ZERO_DIVISION_ERROR",
		"INVALID_EXPRESSION",
		"mutate=7",
		"generate-invalid=0",
		"corpus: 19 seeds (4 admitted, capacity 1000)",
		"1 findings not saved",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "NAME_NOT_DEFINED") {
		t.Errorf("zero error kinds should be omitted:\n%s", got)
	}
}

func TestPrintSummaryInterrupted(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	printSummary(&buf, campaign.Summary{Trials: 2, Interrupted: true}, campaign.DefaultConfig())
	if !strings.Contains(buf.String(), "Campaign interrupted: 2/1000") {
		t.Fatalf("unexpected header:\n%s", buf.String())
	}
}

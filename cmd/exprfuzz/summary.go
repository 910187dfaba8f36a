package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/protocol"
	"exprfuzz/internal/strategy"
)

var (
	headerColor  = color.New(color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgYellow)
	findingColor = color.New(color.FgRed, color.Bold)
	dimColor     = color.New(color.Faint)
)

// printSummary writes the end-of-campaign report.
func printSummary(out io.Writer, sum campaign.Summary, cfg campaign.Config) {
	title := "Campaign finished"
	if sum.Interrupted {
		title = "Campaign interrupted"
	}
	headerColor.Fprintf(out, "\n%s: %d/%d trials in %s\n", title, sum.Trials, cfg.Trials, sum.Elapsed.Round(time.Millisecond))

	fmt.Fprintf(out, "  %-10s %s\n", "success", successColor.Sprint(sum.Success))
	fmt.Fprintf(out, "  %-10s %s\n", "error", errorColor.Sprint(sum.Errors))
	for _, k := range protocol.Kinds {
		if n := sum.ErrorKinds[k]; n > 0 {
			dimColor.Fprintf(out, "    %-28s %d\n", k.Token(), n)
		}
	}
	if n := sum.ErrorKinds[protocol.Unrecognized]; n > 0 {
		dimColor.Fprintf(out, "    %-28s %d\n", protocol.Unrecognized.Token(), n)
	}
	fmt.Fprintf(out, "  %-10s %s\n", "timeout", countColor(sum.Timeouts).Sprint(sum.Timeouts))
	fmt.Fprintf(out, "  %-10s %s\n", "crash", countColor(sum.Crashes).Sprint(sum.Crashes))

	fmt.Fprint(out, "  strategies:")
	for _, st := range strategy.All {
		fmt.Fprintf(out, " %s=%d", st, sum.Strategies[st])
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  corpus: %d seeds (%d admitted, capacity %d)\n", sum.CorpusSize, sum.Admitted, cfg.Capacity)
	switch {
	case sum.Findings > 0:
		findingColor.Fprintf(out, "  %d new findings written to %s\n", sum.Findings, cfg.FindingsDir)
	case cfg.FindingsDir == "" && sum.Timeouts+sum.Crashes > 0:
		findingColor.Fprintf(out, "  %d findings not saved (set --findings to keep them)\n", sum.Timeouts+sum.Crashes)
	}
}

func countColor(n int) *color.Color {
	if n > 0 {
		return findingColor
	}
	return successColor
}

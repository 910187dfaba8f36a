package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/config"
	"exprfuzz/internal/corpus"
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/strategy"
)

func TestApplyRunFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "run"}
	registerRunFlags(cmd)
	if err := cmd.ParseFlags([]string{
		"--trials", "25",
		"--timeout", "750ms",
		"--workers", "4",
		"--findings", "out",
		"--target", "python3  target.py",
	}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	cfg := config.Default()
	cfg.Corpus.Dir = "from-file"
	if err := applyRunFlags(cmd, &cfg); err != nil {
		t.Fatalf("applyRunFlags: %v", err)
	}
	if cfg.Campaign.Trials != 25 || cfg.Campaign.Workers != 4 {
		t.Fatalf("trials/workers = %d/%d", cfg.Campaign.Trials, cfg.Campaign.Workers)
	}
	if cfg.Campaign.Timeout.Duration != 750*time.Millisecond {
		t.Fatalf("timeout = %s", cfg.Campaign.Timeout)
	}
	if cfg.Findings.Dir != "out" {
		t.Fatalf("findings = %q", cfg.Findings.Dir)
	}
	if want := []string{"python3", "target.py"}; !slices.Equal(cfg.Target.Command, want) {
		t.Fatalf("target = %q, want %q", cfg.Target.Command, want)
	}
	// flags that were not given leave file values alone
	if cfg.Corpus.Dir != "from-file" {
		t.Fatalf("corpus dir overwritten: %q", cfg.Corpus.Dir)
	}
	if cfg.Campaign.Seed != 0 {
		t.Fatalf("seed overwritten: %d", cfg.Campaign.Seed)
	}
}

func TestLoadSeedsMergesSnapshot(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "corpus")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("1 + 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	snapPath := filepath.Join(root, "corpus.msgpack")
	if err := corpus.SaveSnapshot(snapPath, []string{"abs(-3)"}); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Corpus.Dir = dir
	cfg.Corpus.Snapshot = snapPath
	var warn bytes.Buffer
	seeds, err := loadSeeds(cfg, &warn)
	if err != nil {
		t.Fatalf("loadSeeds: %v", err)
	}
	if want := []string{"1 + 2", "abs(-3)"}; !slices.Equal(seeds, want) {
		t.Fatalf("seeds = %q, want %q", seeds, want)
	}
	if warn.Len() != 0 {
		t.Fatalf("unexpected warnings: %s", warn.String())
	}
}

func TestLoadSeedsToleratesMissingAndCorruptInputs(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Corpus.Dir = filepath.Join(root, "nope")
	cfg.Corpus.Snapshot = filepath.Join(root, "missing.msgpack")

	var warn bytes.Buffer
	seeds, err := loadSeeds(cfg, &warn)
	if err != nil {
		t.Fatalf("loadSeeds: %v", err)
	}
	if len(seeds) != 0 {
		t.Fatalf("seeds = %q", seeds)
	}
	if !strings.Contains(warn.String(), "not found") {
		t.Fatalf("missing directory not reported: %q", warn.String())
	}
	if strings.Contains(warn.String(), "missing.msgpack") {
		t.Fatalf("absent snapshot should be silent: %q", warn.String())
	}

	corrupt := filepath.Join(root, "corrupt.msgpack")
	if err := os.WriteFile(corrupt, []byte("not msgpack"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg.Corpus.Snapshot = corrupt
	warn.Reset()
	if _, err := loadSeeds(cfg, &warn); err != nil {
		t.Fatalf("loadSeeds: %v", err)
	}
	if !strings.Contains(warn.String(), "ignoring corpus snapshot") {
		t.Fatalf("corrupt snapshot not reported: %q", warn.String())
	}
}

func TestLineSink(t *testing.T) {
	var buf bytes.Buffer
	sink := newLineSink(&buf)
	sink.OnEvent(campaign.Event{
		Trial:     3,
		Total:     10,
		Strategy:  strategy.Mutate,
		Candidate: "1 + 1",
		Outcome:   oracle.Outcome{Kind: oracle.Success, Output: "SUCCESS: 2"},
	})
	got := buf.String()
	want := "Case 3/10 [mutate] Input: 1 + 1, Result: SUCCESS: 2\n"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

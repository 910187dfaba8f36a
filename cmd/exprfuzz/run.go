package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/config"
	"exprfuzz/internal/corpus"
	"exprfuzz/internal/observ"
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/trace"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a fuzz campaign against the target",
	Long: `Run loads the seed corpus, then runs the configured number of trials.
Each trial picks a strategy (replay, mutate, generate valid, generate
invalid), executes the candidate in a fresh target process and tallies the
outcome. Settings come from exprfuzz.toml; flags override them.`,
	Args: cobra.NoArgs,
	RunE: runCampaign,
}

func init() {
	registerRunFlags(runCmd)
}

func registerRunFlags(cmd *cobra.Command) {
	cmd.Flags().Int("trials", 0, "number of trials (default 1000)")
	cmd.Flags().Duration("timeout", 0, "per-trial timeout (default 5s)")
	cmd.Flags().Uint64("seed", 0, "random seed for a reproducible campaign (0 = random)")
	cmd.Flags().Int("workers", 0, "target processes run in parallel (default 1)")
	cmd.Flags().String("corpus", "", "seed corpus directory (default \"corpus\")")
	cmd.Flags().String("snapshot", "", "msgpack corpus snapshot to resume from and save to")
	cmd.Flags().String("export", "", "directory the final corpus is exported to as seed files")
	cmd.Flags().String("findings", "", "directory receiving timeout and crash candidates")
	cmd.Flags().String("target", "", "target command line, split on whitespace (default \"exprtarget\")")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	cmd.Flags().Bool("timings", false, "print phase timings")
}

// applyRunFlags overlays explicitly set flags on cfg.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error
	if flags.Changed("trials") {
		if cfg.Campaign.Trials, err = flags.GetInt("trials"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Campaign.Timeout.Duration, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("seed") {
		if cfg.Campaign.Seed, err = flags.GetUint64("seed"); err != nil {
			return err
		}
	}
	if flags.Changed("workers") {
		if cfg.Campaign.Workers, err = flags.GetInt("workers"); err != nil {
			return err
		}
	}
	for name, dst := range map[string]*string{
		"corpus":   &cfg.Corpus.Dir,
		"snapshot": &cfg.Corpus.Snapshot,
		"export":   &cfg.Corpus.ExportDir,
		"findings": &cfg.Findings.Dir,
	} {
		if flags.Changed(name) {
			if *dst, err = flags.GetString(name); err != nil {
				return err
			}
		}
	}
	if flags.Changed("target") {
		line, err := flags.GetString("target")
		if err != nil {
			return err
		}
		cfg.Target.Command = strings.Fields(line)
	}
	return nil
}

func runCampaign(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	heartbeatInterval, err := cmd.Root().PersistentFlags().GetDuration("trace-heartbeat")
	if err != nil {
		return fmt.Errorf("failed to get trace-heartbeat flag: %w", err)
	}

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	runner := oracle.NewRunner(cfg.Target.Command, cfg.Campaign.Timeout.Duration)
	// единственный фатальный путь: цель не найдена
	if _, err := runner.Resolve(); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	timer := observ.NewTimer()
	var seeds []string
	err = timer.Measure("load seeds", func() (string, error) {
		var err error
		seeds, err = loadSeeds(cfg, stderr)
		return fmt.Sprintf("%d seeds", len(seeds)), err
	})
	if err != nil {
		// не фатально: кампания стартует с пустым корпусом
		fmt.Fprintf(stderr, "warning: %v; starting with an empty corpus\n", err)
		seeds = nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := func(sink campaign.Sink) (*campaign.Driver, error) {
		cc := cfg.CampaignConfig()
		cc.Sink = sink
		return campaign.New(cc, runner, seeds)
	}

	var (
		d   *campaign.Driver
		sum campaign.Summary
		hb  *trace.Heartbeat
	)
	out := cmd.OutOrStdout()
	if shouldUseTUI(mode, quiet) {
		title := fmt.Sprintf("fuzzing %s", strings.Join(cfg.Target.Command, " "))
		d, sum, err = runCampaignWithUI(ctx, title, func(sink campaign.Sink) (*campaign.Driver, error) {
			d, err := build(sink)
			if err == nil {
				hb = trace.StartHeartbeat(tracer, heartbeatInterval, d.Status)
			}
			return d, err
		})
	} else {
		var sink campaign.Sink
		if !quiet {
			sink = newLineSink(out)
		}
		if d, err = build(sink); err == nil {
			hb = trace.StartHeartbeat(tracer, heartbeatInterval, d.Status)
			sum, err = d.Run(ctx)
		}
	}
	hb.Stop()
	if d == nil {
		return err
	}
	runErr := err

	seedsOut := d.Queue().Snapshot()
	if path := cfg.Corpus.Snapshot; path != "" {
		if err := timer.Measure("snapshot", func() (string, error) {
			return path, corpus.SaveSnapshot(path, seedsOut)
		}); err != nil {
			fmt.Fprintf(stderr, "warning: failed to save corpus snapshot: %v\n", err)
		}
	}
	if dir := cfg.Corpus.ExportDir; dir != "" {
		if err := timer.Measure("export", func() (string, error) {
			n, err := corpus.ExportDir(dir, seedsOut, cfg.Corpus.Extension)
			return fmt.Sprintf("%d seeds", n), err
		}); err != nil {
			fmt.Fprintf(stderr, "warning: failed to export corpus: %v\n", err)
		}
	}

	printSummary(out, sum, d.Config())
	if showTimings {
		fmt.Fprint(out, timer.Report().Merge(sum.Timings).String())
	}
	if sum.Crashes > 0 {
		if ring, ok := trace.Ring(tracer); ok {
			fmt.Fprintln(stderr, "last trace events:")
			if err := ring.Dump(stderr, trace.FormatText); err != nil {
				fmt.Fprintf(stderr, "trace: dump error: %v\n", err)
			}
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return errors.New("campaign interrupted")
	}
	return runErr
}

// loadSeeds reads the seed directory and, when configured and present, the
// corpus snapshot. Unreadable seed files are reported and skipped.
func loadSeeds(cfg config.Config, warn io.Writer) ([]string, error) {
	res, err := corpus.LoadDir(cfg.Corpus.Dir, cfg.Corpus.Extension, func(path string, err error) {
		fmt.Fprintf(warn, "warning: skipping seed %s: %v\n", path, err)
	})
	if err != nil {
		return nil, err
	}
	if res.Missing {
		fmt.Fprintf(warn, "warning: corpus directory %q not found\n", cfg.Corpus.Dir)
	}
	if res.Truncated > 0 {
		fmt.Fprintf(warn, "warning: %d oversized seed files in %s were truncated\n", res.Truncated, cfg.Corpus.Dir)
	}
	seeds := res.Seeds

	if path := cfg.Corpus.Snapshot; path != "" {
		snap, err := corpus.LoadSnapshot(path)
		switch {
		case err == nil:
			seeds = append(seeds, snap.Seeds...)
		case errors.Is(err, os.ErrNotExist):
			// first run with this snapshot path
		default:
			fmt.Fprintf(warn, "warning: ignoring corpus snapshot %s: %v\n", path, err)
		}
	}
	return seeds, nil
}

// lineSink prints one line per trial.
type lineSink struct {
	mu  sync.Mutex
	out io.Writer
}

func newLineSink(out io.Writer) *lineSink { return &lineSink{out: out} }

func (s *lineSink) OnEvent(ev campaign.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "Case %d/%d [%s] Input: %s, %s\n",
		ev.Trial, ev.Total, ev.Strategy, ev.Candidate, ev.Outcome.Summary())
}

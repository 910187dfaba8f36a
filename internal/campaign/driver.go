package campaign

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"exprfuzz/internal/corpus"
	"exprfuzz/internal/grammar"
	"exprfuzz/internal/mutate"
	"exprfuzz/internal/observ"
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/strategy"
	"exprfuzz/internal/trace"
)

const (
	// DefaultTrials matches the classic campaign length.
	DefaultTrials = 1000
	// DefaultFeedbackThreshold gates mutated and generated feedback.
	DefaultFeedbackThreshold = 800
)

// ErrNoTrials is returned for a non-positive trial count.
var ErrNoTrials = errors.New("trial count must be positive")

// Executor runs one candidate. *oracle.Runner implements it.
type Executor interface {
	Run(ctx context.Context, candidate string) oracle.Outcome
}

// Config holds campaign parameters.
type Config struct {
	Trials  int
	Weights strategy.Weights
	// Capacity is the corpus hard bound.
	Capacity int
	// FeedbackThreshold is the corpus size at which mutated and generated
	// candidates stop being admitted. Successful candidates are admitted up
	// to Capacity regardless.
	FeedbackThreshold int
	Workers           int
	// FindingsDir, when set, receives timeout and crash candidates.
	FindingsDir string
	// RandSeed makes a campaign reproducible. Zero picks a random seed.
	RandSeed uint64
	Sink     Sink
}

// DefaultConfig returns the classic campaign parameters.
func DefaultConfig() Config {
	return Config{
		Trials:            DefaultTrials,
		Weights:           strategy.DefaultWeights,
		Capacity:          corpus.DefaultCapacity,
		FeedbackThreshold: DefaultFeedbackThreshold,
		Workers:           1,
	}
}

// Driver owns the state of one campaign.
type Driver struct {
	cfg      Config
	queue    *corpus.Queue
	selector *strategy.Selector
	exec     Executor

	mu      sync.Mutex
	summary Summary
	done    int
}

// New builds a Driver seeded with seeds. The random seed in use is
// available through Config().RandSeed.
func New(cfg Config, exec Executor, seeds []string) (*Driver, error) {
	if cfg.Trials <= 0 {
		return nil, ErrNoTrials
	}
	if exec == nil {
		return nil, errors.New("campaign: nil executor")
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = corpus.DefaultCapacity
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.RandSeed == 0 {
		cfg.RandSeed = rand.Uint64() | 1
	}

	pickRand := rand.New(rand.NewPCG(cfg.RandSeed, 1))
	queue := corpus.NewQueue(cfg.Capacity, rand.New(rand.NewPCG(cfg.RandSeed, 2)))
	queue.Seed(seeds, cfg.Capacity)

	sel, err := strategy.New(cfg.Weights, pickRand, mutate.New(pickRand), grammar.New(pickRand))
	if err != nil {
		return nil, err
	}
	return &Driver{
		cfg:      cfg,
		queue:    queue,
		selector: sel,
		exec:     exec,
		summary:  newSummary(),
	}, nil
}

// Config returns the effective configuration.
func (d *Driver) Config() Config { return d.cfg }

// Queue exposes the corpus for snapshots and export.
func (d *Driver) Queue() *corpus.Queue { return d.queue }

// Status renders a one-line progress report, suitable for heartbeats.
func (d *Driver) Status() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := &d.summary
	return fmt.Sprintf("trial %d/%d ok=%d err=%d timeout=%d crash=%d corpus=%d",
		d.done, d.cfg.Trials, s.Success, s.Errors, s.Timeouts, s.Crashes, d.queue.Len())
}

// Run executes the campaign. Trial outcomes never abort it; only context
// cancellation stops it early, in which case the partial summary is
// returned together with the context error.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeCampaign, "campaign", trace.CurrentSpan(ctx)).
		WithExtra("trials", strconv.Itoa(d.cfg.Trials)).
		WithExtra("workers", strconv.Itoa(d.cfg.Workers)).
		WithExtra("seed", strconv.FormatUint(d.cfg.RandSeed, 10))
	ctx = trace.WithSpan(ctx, span.ID())

	timer := observ.NewTimer()
	start := time.Now()

	phase := timer.Begin("trials")
	runErr := d.runTrials(ctx)
	timer.End(phase, fmt.Sprintf("%d workers", d.cfg.Workers))

	d.mu.Lock()
	sum := d.summary
	d.mu.Unlock()
	sum.CorpusSize = d.queue.Len()
	sum.Elapsed = time.Since(start)
	sum.Timings = timer.Report()
	sum.Interrupted = runErr != nil

	span.WithExtra("success", strconv.Itoa(sum.Success)).
		WithExtra("errors", strconv.Itoa(sum.Errors)).
		WithExtra("timeouts", strconv.Itoa(sum.Timeouts)).
		WithExtra("crashes", strconv.Itoa(sum.Crashes))
	span.End("")
	return sum, runErr
}

func (d *Driver) runTrials(ctx context.Context) error {
	if d.cfg.Workers == 1 {
		for i := range d.cfg.Trials {
			if err := ctx.Err(); err != nil {
				return err
			}
			d.trial(ctx, i+1, d.selector.Select(d.queue))
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)
	for i := range d.cfg.Trials {
		if gctx.Err() != nil {
			break
		}
		pick := d.selector.Select(d.queue)
		trial := i + 1
		g.Go(func() error {
			d.trial(gctx, trial, pick)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// trial runs one candidate and records the result.
func (d *Driver) trial(ctx context.Context, n int, pick strategy.Pick) {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeTrial, "trial", trace.CurrentSpan(ctx)).
		WithExtra("n", strconv.Itoa(n)).
		WithExtra("strategy", pick.Strategy.String())
	out := d.exec.Run(trace.WithSpan(ctx, span.ID()), pick.Candidate)
	if ctx.Err() != nil && out.Kind == oracle.Crash {
		// cancelled mid-run; not a finding
		span.End("cancelled")
		return
	}

	admitted := d.feedback(pick, out)
	detail := fmt.Sprintf("Input: %s, %s", pick.Candidate, out.Summary())
	span.WithExtra("outcome", out.Kind.String())
	span.End(detail)

	found := false
	if out.IsFinding() {
		trace.Finding(tr, trace.ScopeTrial, out.Kind.String(), detail, span.ID(), map[string]string{
			"strategy": pick.Strategy.String(),
		})
		if d.cfg.FindingsDir != "" {
			wrote, err := writeFinding(d.cfg.FindingsDir, pick.Candidate, out)
			if err != nil {
				trace.Point(tr, trace.ScopeTrial, "finding-write-failed", err.Error(), span.ID(), nil)
			}
			found = wrote
		}
	}

	d.mu.Lock()
	d.summary.add(pick.Strategy, out)
	if admitted {
		d.summary.Admitted++
	}
	if found {
		d.summary.Findings++
	}
	d.done++
	d.mu.Unlock()

	if d.cfg.Sink != nil {
		d.cfg.Sink.OnEvent(Event{
			Trial:      n,
			Total:      d.cfg.Trials,
			Strategy:   pick.Strategy,
			Candidate:  pick.Candidate,
			Outcome:    out,
			Admitted:   admitted,
			CorpusSize: d.queue.Len(),
		})
	}
}

// feedback applies the admission rules: the selector's proposal goes in
// under the feedback threshold, and a successful candidate not yet in the
// corpus goes in up to the hard capacity.
func (d *Driver) feedback(pick strategy.Pick, out oracle.Outcome) bool {
	admitted := false
	if pick.HasFeedback {
		admitted = d.queue.Offer(pick.Feedback, d.cfg.FeedbackThreshold)
	}
	// blank input only reaches the target's empty-input path
	if out.Kind == oracle.Success && strings.TrimSpace(pick.Candidate) != "" {
		admitted = d.queue.Push(pick.Candidate) || admitted
	}
	return admitted
}

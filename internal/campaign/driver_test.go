package campaign

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"exprfuzz/internal/evaluator"
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/protocol"
	"exprfuzz/internal/strategy"
	"exprfuzz/internal/testkit"
)

func TestMain(m *testing.M) {
	testkit.RunTargetIfRequested()
	os.Exit(m.Run())
}

// inProcess evaluates candidates without spawning a target.
type inProcess struct {
	ev *evaluator.Evaluator

	mu    sync.Mutex
	calls []string
}

func newInProcess() *inProcess { return &inProcess{ev: evaluator.New()} }

func (p *inProcess) Run(_ context.Context, candidate string) oracle.Outcome {
	p.mu.Lock()
	p.calls = append(p.calls, candidate)
	p.mu.Unlock()

	out, err := p.ev.EvalString(candidate)
	if err != nil {
		kind, _ := evaluator.KindOf(err)
		return oracle.Outcome{Kind: oracle.ExpectedError, ErrorKind: kind, Stderr: protocol.FormatError(kind, err.Error()), ExitCode: 1}
	}
	return oracle.Outcome{Kind: oracle.Success, Output: protocol.FormatSuccess(out)}
}

// fixed returns the same outcome for every candidate.
type fixed oracle.Outcome

func (f fixed) Run(context.Context, string) oracle.Outcome { return oracle.Outcome(f) }

func testConfig(trials int) Config {
	cfg := DefaultConfig()
	cfg.Trials = trials
	cfg.RandSeed = 42
	return cfg
}

var seeds = []string{"2 + 3", "x * y", "abs(-5)", "max(1, 2)", "10 / 4"}

func TestRunTalliesEveryTrial(t *testing.T) {
	d, err := New(testConfig(200), newInProcess(), seeds)
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 200, sum.Trials)
	require.Equal(t, 200, sum.Success+sum.Errors+sum.Timeouts+sum.Crashes)

	total := 0
	for _, n := range sum.Strategies {
		total += n
	}
	require.Equal(t, 200, total)

	kinds := 0
	for _, n := range sum.ErrorKinds {
		kinds += n
	}
	require.Equal(t, sum.Errors, kinds)
	require.Equal(t, d.Queue().Len(), sum.CorpusSize)
	require.LessOrEqual(t, sum.CorpusSize, d.Config().Capacity)
	require.NotEmpty(t, sum.Timings.Phases)
}

func TestRunNeverAbortsOnCrash(t *testing.T) {
	d, err := New(testConfig(25), fixed{Kind: oracle.Crash, Err: "boom", ExitCode: -1}, seeds)
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 25, sum.Crashes)
	require.Equal(t, 25, sum.Count(oracle.Crash))
	require.Zero(t, sum.Success)
}

func TestRunWritesFindings(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(30)
	cfg.FindingsDir = dir
	d, err := New(cfg, fixed{Kind: oracle.Timeout, ExitCode: -1}, seeds)
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 30, sum.Timeouts)
	require.Positive(t, sum.Findings)

	entries, err := os.ReadDir(filepath.Join(dir, "timeout"))
	require.NoError(t, err)
	require.Len(t, entries, sum.Findings)
	for _, e := range entries {
		require.Equal(t, ".txt", filepath.Ext(e.Name()))
		require.Len(t, e.Name(), 64+len(".txt"))
	}
}

func TestFeedbackRespectsBounds(t *testing.T) {
	cfg := testConfig(300)
	cfg.Weights = strategy.Weights{Mutate: 1, GenerateValid: 1}
	cfg.Capacity = 20
	cfg.FeedbackThreshold = 10
	d, err := New(cfg, fixed{Kind: oracle.ExpectedError, ErrorKind: protocol.ZeroDivision, ExitCode: 1}, []string{"1 + 1"})
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	// failures only enter through the feedback threshold
	require.Equal(t, 10, sum.CorpusSize)
	require.Equal(t, 9, sum.Admitted)
	require.Equal(t, 300, sum.ErrorKinds[protocol.ZeroDivision])
}

func TestSuccessfulCandidatesFillToCapacity(t *testing.T) {
	cfg := testConfig(300)
	cfg.Weights = strategy.Weights{GenerateInvalid: 1}
	cfg.Capacity = 15
	cfg.FeedbackThreshold = 5
	d, err := New(cfg, fixed{Kind: oracle.Success, Output: "SUCCESS: 1"}, nil)
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 15, sum.CorpusSize)
}

func TestBlankSuccessNotAdmitted(t *testing.T) {
	d, err := New(testConfig(1), fixed{Kind: oracle.Success, Output: "SUCCESS: 0"}, []string{"1"})
	require.NoError(t, err)

	success := oracle.Outcome{Kind: oracle.Success, Output: "SUCCESS: 0"}
	for _, c := range []string{"", " ", "\t\n "} {
		require.False(t, d.feedback(strategy.Pick{Candidate: c}, success), "candidate %q", c)
	}
	require.Equal(t, 1, d.queue.Len())

	require.True(t, d.feedback(strategy.Pick{Candidate: "2 + 2"}, success))
	require.Equal(t, 2, d.queue.Len())
}

func TestRunWorkerPool(t *testing.T) {
	cfg := testConfig(120)
	cfg.Workers = 4
	var (
		mu     sync.Mutex
		trials []int
		totals []int
	)
	cfg.Sink = SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		trials = append(trials, ev.Trial)
		totals = append(totals, ev.Total)
	})
	d, err := New(cfg, newInProcess(), seeds)
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 120, sum.Trials)

	slices.Sort(trials)
	require.Len(t, trials, 120)
	for _, total := range totals {
		require.Equal(t, 120, total)
	}
	for i, n := range trials {
		require.Equal(t, i+1, n)
	}
}

func TestRunIsReproducible(t *testing.T) {
	run := func() []string {
		exec := newInProcess()
		d, err := New(testConfig(60), exec, seeds)
		require.NoError(t, err)
		_, err = d.Run(context.Background())
		require.NoError(t, err)
		return exec.calls
	}
	require.Equal(t, run(), run())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d, err := New(testConfig(10), newInProcess(), seeds)
	require.NoError(t, err)

	sum, err := d.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, sum.Interrupted)
	require.Zero(t, sum.Trials)
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{}, newInProcess(), nil)
	require.ErrorIs(t, err, ErrNoTrials)

	cfg := testConfig(1)
	cfg.Weights = strategy.Weights{}
	_, err = New(cfg, newInProcess(), nil)
	require.ErrorIs(t, err, strategy.ErrNoWeight)

	_, err = New(testConfig(1), nil, nil)
	require.Error(t, err)
}

func TestStatus(t *testing.T) {
	d, err := New(testConfig(5), newInProcess(), seeds)
	require.NoError(t, err)
	_, err = d.Run(context.Background())
	require.NoError(t, err)
	require.Contains(t, d.Status(), "trial 5/5")
}

func TestRunAgainstTarget(t *testing.T) {
	if testing.Short() {
		t.Skip("spawns processes")
	}
	argv, env := testkit.TargetCommand(t, 0)
	runner := oracle.NewRunner(argv, 5*time.Second)
	runner.Env = env

	cfg := testConfig(12)
	cfg.Workers = 3
	d, err := New(cfg, runner, seeds)
	require.NoError(t, err)

	sum, err := d.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 12, sum.Success+sum.Errors)
	require.Zero(t, sum.Crashes)
	require.Zero(t, sum.Timeouts)
}

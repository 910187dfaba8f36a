// Package config loads exprfuzz.toml. A missing file yields defaults;
// command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"exprfuzz/internal/campaign"
	"exprfuzz/internal/corpus"
	"exprfuzz/internal/oracle"
	"exprfuzz/internal/strategy"
)

// FileName is the configuration file searched for.
const FileName = "exprfuzz.toml"

// DefaultTargetCommand is the reference target, resolved through PATH.
var DefaultTargetCommand = []string{"exprtarget"}

// Config mirrors exprfuzz.toml.
type Config struct {
	Campaign CampaignConfig   `toml:"campaign"`
	Corpus   CorpusConfig     `toml:"corpus"`
	Strategy strategy.Weights `toml:"strategy"`
	Target   TargetConfig     `toml:"target"`
	Findings FindingsConfig   `toml:"findings"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

type CampaignConfig struct {
	Trials  int      `toml:"trials"`
	Timeout Duration `toml:"timeout"`
	// Seed fixes the random source; zero means random.
	Seed    uint64 `toml:"seed"`
	Workers int    `toml:"workers"`
}

type CorpusConfig struct {
	Dir       string `toml:"dir"`
	Extension string `toml:"extension"`
	Capacity  int    `toml:"capacity"`
	// FeedbackThreshold is the corpus size at which mutated and generated
	// seeds stop being admitted; it must lie in [1, capacity].
	FeedbackThreshold int `toml:"feedback_threshold"`
	// Snapshot, when set, is a msgpack file the final corpus is saved to
	// and, when present, loaded from at startup.
	Snapshot  string `toml:"snapshot"`
	ExportDir string `toml:"export_dir"`
}

type TargetConfig struct {
	Command []string `toml:"command"`
}

type FindingsConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Campaign: CampaignConfig{
			Trials:  campaign.DefaultTrials,
			Timeout: Duration{oracle.DefaultTimeout},
			Workers: 1,
		},
		Corpus: CorpusConfig{
			Dir:               "corpus",
			Extension:         corpus.DefaultExtension,
			Capacity:          corpus.DefaultCapacity,
			FeedbackThreshold: campaign.DefaultFeedbackThreshold,
		},
		Strategy: strategy.DefaultWeights,
		Target:   TargetConfig{Command: append([]string(nil), DefaultTargetCommand...)},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load decodes path over the defaults. A [strategy] table replaces the
// default weights as a whole: weights it does not mention become zero.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("strategy") {
		w := &cfg.Strategy
		for key, field := range map[string]*int{
			"replay":           &w.Replay,
			"mutate":           &w.Mutate,
			"generate_valid":   &w.GenerateValid,
			"generate_invalid": &w.GenerateInvalid,
		} {
			if !meta.IsDefined("strategy", key) {
				*field = 0
			}
		}
	}
	if meta.IsDefined("corpus", "capacity") && !meta.IsDefined("corpus", "feedback_threshold") {
		cfg.Corpus.FeedbackThreshold = min(cfg.Corpus.FeedbackThreshold, cfg.Corpus.Capacity)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadOrDefault loads the first FileName found from startDir upwards, or
// returns the defaults when there is none.
func LoadOrDefault(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if c.Campaign.Trials <= 0 {
		errs = append(errs, fmt.Errorf("campaign.trials must be positive, got %d", c.Campaign.Trials))
	}
	if c.Campaign.Timeout.Duration <= 0 {
		errs = append(errs, fmt.Errorf("campaign.timeout must be positive, got %s", c.Campaign.Timeout))
	}
	if c.Campaign.Workers <= 0 {
		errs = append(errs, fmt.Errorf("campaign.workers must be positive, got %d", c.Campaign.Workers))
	}
	if c.Corpus.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("corpus.capacity must be positive, got %d", c.Corpus.Capacity))
	}
	if c.Corpus.FeedbackThreshold <= 0 || c.Corpus.FeedbackThreshold > c.Corpus.Capacity {
		errs = append(errs, fmt.Errorf("corpus.feedback_threshold must be within [1, %d], got %d",
			c.Corpus.Capacity, c.Corpus.FeedbackThreshold))
	}
	if ext := c.Corpus.Extension; ext != "" && !strings.HasPrefix(ext, ".") {
		errs = append(errs, fmt.Errorf("corpus.extension must start with '.', got %q", ext))
	}
	if err := c.Strategy.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(c.Target.Command) == 0 || strings.TrimSpace(c.Target.Command[0]) == "" {
		errs = append(errs, errors.New("target.command must name an executable"))
	}
	return errors.Join(errs...)
}

// CampaignConfig converts the file settings into driver parameters.
func (c Config) CampaignConfig() campaign.Config {
	return campaign.Config{
		Trials:            c.Campaign.Trials,
		Weights:           c.Strategy,
		Capacity:          c.Corpus.Capacity,
		FeedbackThreshold: c.Corpus.FeedbackThreshold,
		Workers:           c.Campaign.Workers,
		FindingsDir:       c.Findings.Dir,
		RandSeed:          c.Campaign.Seed,
	}
}

// Duration is a time.Duration that decodes from a Go duration string
// ("750ms") or a number of seconds.
type Duration struct {
	time.Duration
}

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Duration) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(x))
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", x, err)
		}
		d.Duration = parsed
	case int64:
		d.Duration = time.Duration(x) * time.Second
	case float64:
		d.Duration = time.Duration(x * float64(time.Second))
	default:
		return fmt.Errorf("invalid duration %v (%T)", v, v)
	}
	return nil
}

// MarshalText renders the duration for `exprfuzz config`.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Package strategy chooses how each trial's candidate is produced: replaying
// a corpus seed, mutating one, or generating a fresh valid or invalid
// expression.
package strategy

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"exprfuzz/internal/grammar"
	"exprfuzz/internal/mutate"
)

// Strategy is one branch of the selector.
type Strategy uint8

const (
	Replay Strategy = iota
	Mutate
	GenerateValid
	GenerateInvalid

	strategyCount
)

// All lists every strategy in weight order.
var All = []Strategy{Replay, Mutate, GenerateValid, GenerateInvalid}

func (s Strategy) String() string {
	switch s {
	case Replay:
		return "replay"
	case Mutate:
		return "mutate"
	case GenerateValid:
		return "generate-valid"
	case GenerateInvalid:
		return "generate-invalid"
	default:
		return fmt.Sprintf("Strategy(%d)", s)
	}
}

// ParseStrategy converts a name produced by Strategy.String back to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range All {
		if st.String() == strings.ToLower(strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("invalid strategy: %q (expected: replay|mutate|generate-valid|generate-invalid)", s)
}

// Weights are relative selection weights. They need not sum to 100.
type Weights struct {
	Replay          int `toml:"replay"`
	Mutate          int `toml:"mutate"`
	GenerateValid   int `toml:"generate_valid"`
	GenerateInvalid int `toml:"generate_invalid"`
}

// DefaultWeights is 15% replay, 50% mutate, 20% valid, 15% invalid.
var DefaultWeights = Weights{Replay: 15, Mutate: 50, GenerateValid: 20, GenerateInvalid: 15}

// ErrNoWeight is returned when every weight is zero.
var ErrNoWeight = errors.New("strategy weights are all zero")

// Validate rejects negative weights and an all-zero configuration.
func (w Weights) Validate() error {
	total := 0
	for i, v := range w.values() {
		if v < 0 {
			return fmt.Errorf("strategy weight %s is negative: %d", All[i], v)
		}
		total += v
	}
	if total == 0 {
		return ErrNoWeight
	}
	return nil
}

// Of returns the weight of s.
func (w Weights) Of(s Strategy) int {
	if int(s) >= len(All) {
		return 0
	}
	return w.values()[s]
}

func (w Weights) values() [strategyCount]int {
	return [strategyCount]int{w.Replay, w.Mutate, w.GenerateValid, w.GenerateInvalid}
}

// Source is the corpus view the selector needs.
type Source interface {
	Sample() (string, bool)
	Len() int
	Cap() int
}

// Pick is the selector's decision for one trial.
type Pick struct {
	Strategy  Strategy // branch that produced Candidate, after fallbacks
	Requested Strategy // branch drawn from the weights
	Candidate string
	// Feedback is a value proposed for admission to the corpus. The caller
	// makes the final decision.
	Feedback    string
	HasFeedback bool
	// Seed is the corpus entry that was replayed or mutated.
	Seed         string
	MutationKind mutate.Kind
}

// Selector performs the weighted choice.
type Selector struct {
	weights  Weights
	cum      [strategyCount]int
	total    int
	rnd      *rand.Rand
	mutator  *mutate.Mutator
	generate *grammar.Generator
}

// New returns a Selector. Weights must be valid.
func New(w Weights, rnd *rand.Rand, m *mutate.Mutator, g *grammar.Generator) (*Selector, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m == nil {
		m = mutate.New(rnd)
	}
	if g == nil {
		g = grammar.New(rnd)
	}
	s := &Selector{weights: w, rnd: rnd, mutator: m, generate: g}
	for i, v := range w.values() {
		s.total += v
		s.cum[i] = s.total
	}
	return s, nil
}

// Weights returns the configured weights.
func (s *Selector) Weights() Weights { return s.weights }

// Draw picks a strategy according to the weights.
func (s *Selector) Draw() Strategy {
	n := s.rnd.IntN(s.total)
	for i, c := range s.cum {
		if n < c {
			return Strategy(i)
		}
	}
	return GenerateInvalid
}

// Select draws a strategy and produces the trial's candidate.
func (s *Selector) Select(src Source) Pick {
	return s.SelectWith(s.Draw(), src)
}

// SelectWith produces a candidate using a fixed strategy. Replay and
// mutate fall back to generate-invalid on an empty corpus.
func (s *Selector) SelectWith(st Strategy, src Source) Pick {
	p := Pick{Strategy: st, Requested: st}
	switch st {
	case Replay:
		seed, ok := src.Sample()
		if !ok {
			return s.invalid(p)
		}
		p.Seed = seed
		p.Candidate = seed
	case Mutate:
		seed, ok := src.Sample()
		if !ok {
			return s.invalid(p)
		}
		p.Seed = seed
		p.Candidate, p.MutationKind = s.mutator.Mutate(seed)
		if p.Candidate != seed && src.Len() < src.Cap() {
			p.Feedback, p.HasFeedback = p.Candidate, true
		}
	case GenerateValid:
		p.Candidate = s.generate.GenerateValid()
		if src.Len() < src.Cap() {
			p.Feedback, p.HasFeedback = p.Candidate, true
		}
	default:
		return s.invalid(p)
	}
	return p
}

func (s *Selector) invalid(p Pick) Pick {
	p.Strategy = GenerateInvalid
	p.Candidate = s.generate.GenerateInvalid()
	p.Feedback, p.HasFeedback = "", false
	return p
}

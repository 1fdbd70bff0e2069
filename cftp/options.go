// SPDX-License-Identifier: MIT
// Package: cftp
//
// options.go: functional options for Sampler.
//
// Contract:
//   • Option constructors validate and panic on nil inputs.
//   • Defaults are deterministic: serial backend, ChaCha20 draws with
//     DefaultSeed, Ising heat-bath rule, discarded logs, no metrics.

package cftp

import (
	"io"
	"log/slog"
	"time"

	"github.com/katalvlaran/cftp/backend"
	"github.com/katalvlaran/cftp/draws"
	"github.com/katalvlaran/cftp/ising"
	"github.com/katalvlaran/cftp/lattice"
)

// DefaultSeed keys the default draw source.
const DefaultSeed uint64 = 1

// Rule is a single-sweep update that is monotone under shared randomness:
// if a ≤ b site-wise and both receive the same field, then a' ≤ b'.
// Sweep updates c in place and reads field[i] for site i.
type Rule interface {
	Sweep(c lattice.Config, field []float64)
}

// RuleFactory builds the Rule for lattice side k and chain parameter param.
// It must reject parameters for which the rule would not be monotone.
type RuleFactory func(k int, param float64) (Rule, error)

// HeatBathRule is the default factory: the Ising checkerboard heat-bath
// sweep with param as the inverse temperature.
func HeatBathRule(k int, beta float64) (Rule, error) {
	h, err := ising.NewHeatBath(k, beta)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// RoundStats describes one doubling round of Sample.
type RoundStats struct {
	// T is the window length: the round ran times −T … −1.
	T int
	// Active is the number of requests that entered the round.
	Active int
	// Coalesced is the number of requests that converged in this round.
	Coalesced int
	// Duration is the wall time of the round.
	Duration time.Duration
}

// Option customises a Sampler.
type Option func(*samplerConfig)

type samplerConfig struct {
	rule          RuleFactory
	source        draws.Source
	backend       backend.Backend
	logger        *slog.Logger
	metrics       *Metrics
	checkMonotone bool
	onRound       func(RoundStats)
}

func newSamplerConfig(opts ...Option) samplerConfig {
	cfg := samplerConfig{
		rule:    HeatBathRule,
		source:  draws.NewChaCha(DefaultSeed),
		backend: backend.Serial{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithRule replaces the update rule factory. Panics on nil.
func WithRule(f RuleFactory) Option {
	if f == nil {
		panic("cftp: WithRule(nil)")
	}
	return func(c *samplerConfig) { c.rule = f }
}

// WithSource sets the draw source. Panics on nil.
func WithSource(src draws.Source) Option {
	if src == nil {
		panic("cftp: WithSource(nil)")
	}
	return func(c *samplerConfig) { c.source = src }
}

// WithSeed keys the default ChaCha20 source with seed.
func WithSeed(seed uint64) Option {
	return func(c *samplerConfig) { c.source = draws.NewChaCha(seed) }
}

// WithBackend sets the execution backend. Panics on nil.
func WithBackend(b backend.Backend) Option {
	if b == nil {
		panic("cftp: WithBackend(nil)")
	}
	return func(c *samplerConfig) { c.backend = b }
}

// WithLogger sets the structured logger. Panics on nil.
func WithLogger(l *slog.Logger) Option {
	if l == nil {
		panic("cftp: WithLogger(nil)")
	}
	return func(c *samplerConfig) { c.logger = l }
}

// WithMetrics records Prometheus metrics into m. Panics on nil.
func WithMetrics(m *Metrics) Option {
	if m == nil {
		panic("cftp: WithMetrics(nil)")
	}
	return func(c *samplerConfig) { c.metrics = m }
}

// WithMonotoneCheck verifies min ≤ max after every update and aborts with
// ErrMonotonicityViolated otherwise. Costs one O(K²) comparison per step.
func WithMonotoneCheck(on bool) Option {
	return func(c *samplerConfig) { c.checkMonotone = on }
}

// WithRoundHook calls fn after each round of Sample. Panics on nil.
func WithRoundHook(fn func(RoundStats)) Option {
	if fn == nil {
		panic("cftp: WithRoundHook(nil)")
	}
	return func(c *samplerConfig) { c.onRound = fn }
}

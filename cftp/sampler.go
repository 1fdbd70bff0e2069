package cftp

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/cftp/lattice"
)

// Sampler runs coupling from the past with a fixed rule factory, draw
// source and backend. It is safe for concurrent use; each call owns its chains.
type Sampler struct {
	cfg samplerConfig
}

// New builds a Sampler from options applied in order.
func New(opts ...Option) *Sampler {
	return &Sampler{cfg: newSamplerConfig(opts...)}
}

// Backend returns the name of the configured execution backend.
func (s *Sampler) Backend() string {
	return s.cfg.backend.Name()
}

// Sample produces up to req.N exact samples.
//
// Requests that did not coalesce by the last window ≤ req.MaxTime are
// marked non-converged in the Result; this is not an error (see Result.Err).
// Invalid requests fail before any simulation. If ctx is cancelled, or the
// monotone check fires, Sample returns the partial Result together with the
// error; outcomes already recorded remain exact.
func (s *Sampler) Sample(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodSample, err)
	}
	rule, err := s.cfg.rule(req.K, req.Beta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodSample, ErrInvalidParam, err)
	}
	if rule == nil {
		return nil, fmt.Errorf("%s: k=%d, param=%v: %w", methodSample, req.K, req.Beta, ErrNoRule)
	}

	log := s.cfg.logger.With("method", methodSample, "k", req.K, "beta", req.Beta, "n", req.N)
	start := time.Now()
	res := newResult(req)

	active := make([]int, req.N)
	for i := range active {
		active[i] = i
	}

	var runErr error
	for T := 1; len(active) > 0 && T <= req.MaxTime; T *= 2 {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		stats, pending, err := s.round(ctx, rule, req.K, T, active, res)
		if err != nil {
			runErr = err
			break
		}
		active = pending

		res.Rounds = append(res.Rounds, stats)
		s.cfg.metrics.observeRound(stats)
		if s.cfg.onRound != nil {
			s.cfg.onRound(stats)
		}
		log.Debug("round done", "T", T, "active", stats.Active, "coalesced", stats.Coalesced, "duration", stats.Duration)

		// Stop before the next doubling would exceed the budget (or overflow).
		if T > req.MaxTime/2 {
			break
		}
	}

	res.Elapsed = time.Since(start)
	sum := res.Summary()
	s.cfg.metrics.observeResult(res)

	if runErr != nil {
		log.Error("sampling aborted", "err", runErr, "converged", sum.Converged, "rounds", sum.Rounds)
		return res, fmt.Errorf("%s: %w", methodSample, runErr)
	}
	if sum.NonConverged > 0 {
		log.Warn("samples did not coalesce within budget",
			"non_converged", sum.NonConverged, "max_time", req.MaxTime)
	}
	log.Info("sampling done",
		"converged", sum.Converged,
		"mean_time", sum.MeanTime,
		"max_time", sum.MaxTime,
		"rounds", sum.Rounds,
		"elapsed", res.Elapsed,
		"backend", s.cfg.backend.Name())

	return res, nil
}

// round runs window T for the active ids, records coalesced outcomes in res
// and returns the ids still pending.
func (s *Sampler) round(ctx context.Context, rule Rule, k, T int, active []int, res *Result) (RoundStats, []int, error) {
	began := time.Now()
	n := len(active)

	// Fresh extremal chains every round; nothing carries over from window T/2.
	lo, err := lattice.NewBatch(n, k, lattice.Low)
	if err != nil {
		return RoundStats{}, nil, err
	}
	hi, err := lattice.NewBatch(n, k, lattice.High)
	if err != nil {
		return RoundStats{}, nil, err
	}

	src, check := s.cfg.source, s.cfg.checkMonotone
	err = s.cfg.backend.Run(ctx, n, func(from, to int) error {
		field := make([]float64, k*k)
		for t := -T; t <= -1; t++ {
			for j := from; j < to; j++ {
				src.Fill(int64(t), active[j], field)
				a, b := lo.At(j), hi.At(j)
				rule.Sweep(a, field)
				rule.Sweep(b, field)
				if check && !lattice.LessEq(a, b) {
					return fmt.Errorf("sample %d at t=%d: %w", active[j], t, ErrMonotonicityViolated)
				}
			}
		}
		return nil
	})
	if err != nil {
		return RoundStats{}, nil, err
	}

	pending := active[:0:0]
	coalesced := 0
	for j, id := range active {
		a := lo.At(j)
		if !lattice.Equal(a, hi.At(j)) {
			pending = append(pending, id)
			continue
		}
		cfg := a.Clone()
		res.Outcomes[id] = Outcome{Index: id, Converged: true, Time: T, Config: &cfg}
		coalesced++
	}
	s.cfg.metrics.addSweeps(methodSample, 2*T*n)

	return RoundStats{T: T, Active: n, Coalesced: coalesced, Duration: time.Since(began)}, pending, nil
}

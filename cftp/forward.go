package cftp

import (
	"context"
	"fmt"
	"time"

	"github.com/katalvlaran/cftp/lattice"
)

// ForwardResult holds the final states of forward chains.
type ForwardResult struct {
	Request ForwardRequest
	// Samples is the arena of final states, one per chain.
	Samples *lattice.Batch
	Elapsed time.Duration
}

// Magnetization returns the mean and standard deviation of the per-chain magnetisation.
func (r *ForwardResult) Magnetization() (mean, std float64) {
	mags := make([]float64, r.Samples.Len())
	for i := range mags {
		mags[i] = r.Samples.At(i).Magnetization()
	}
	return meanStd(mags)
}

// Forward runs req.N independent chains from random starts for req.BurnIn
// sweeps and returns their final states. The output is only approximately
// stationary; it exists to compare against Sample.
//
// Chain i starts from the field at key (0, i) and sweep s reads key (s, i),
// so forward chains never share draws with the backward windows of Sample.
func (s *Sampler) Forward(ctx context.Context, req ForwardRequest) (*ForwardResult, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", methodForward, err)
	}
	rule, err := s.cfg.rule(req.K, req.Beta)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", methodForward, ErrInvalidParam, err)
	}
	if rule == nil {
		return nil, fmt.Errorf("%s: k=%d, param=%v: %w", methodForward, req.K, req.Beta, ErrNoRule)
	}

	start := time.Now()
	batch, err := lattice.NewBatch(req.N, req.K, lattice.Low)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodForward, err)
	}

	src := s.cfg.source
	err = s.cfg.backend.Run(ctx, req.N, func(from, to int) error {
		field := make([]float64, req.K*req.K)
		for j := from; j < to; j++ {
			src.Fill(0, j, field)
			batch.At(j).Randomize(field)
		}
		for t := 1; t <= req.BurnIn; t++ {
			for j := from; j < to; j++ {
				src.Fill(int64(t), j, field)
				rule.Sweep(batch.At(j), field)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodForward, err)
	}
	s.cfg.metrics.addSweeps(methodForward, req.BurnIn*req.N)

	res := &ForwardResult{Request: req, Samples: batch, Elapsed: time.Since(start)}
	mean, std := res.Magnetization()
	s.cfg.logger.Info("forward chains done",
		"method", methodForward,
		"k", req.K, "beta", req.Beta, "n", req.N, "burn_in", req.BurnIn,
		"magnetization_mean", mean, "magnetization_std", std,
		"elapsed", res.Elapsed)

	return res, nil
}

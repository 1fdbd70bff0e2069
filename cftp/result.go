package cftp

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/cftp/lattice"
)

// Outcome is the fate of one request.
type Outcome struct {
	// Index is the request's sample id, 0 … N−1.
	Index int
	// Converged reports whether the chains coalesced within the budget.
	Converged bool
	// Time is the window length T at which the chains coalesced; 0 if not converged.
	Time int
	// Config is the exact sample; nil if not converged.
	Config *lattice.Config
}

// Result holds every Outcome of a Sample call, indexed by sample id.
type Result struct {
	Request  Request
	Outcomes []Outcome
	Rounds   []RoundStats
	Elapsed  time.Duration
}

// Summary aggregates a Result.
type Summary struct {
	Requested    int
	Converged    int
	NonConverged int
	// MeanTime and MaxTime are taken over converged samples only.
	MeanTime float64
	MaxTime  int
	// MeanMagnetization and StdMagnetization are taken over converged samples only.
	MeanMagnetization float64
	StdMagnetization  float64
	Rounds            int
	Elapsed           time.Duration
}

func newResult(req Request) *Result {
	res := &Result{Request: req, Outcomes: make([]Outcome, req.N)}
	for i := range res.Outcomes {
		res.Outcomes[i].Index = i
	}
	return res
}

// ConvergedIndices lists sample ids that coalesced, ascending.
func (r *Result) ConvergedIndices() []int {
	return r.indices(true)
}

// NonConvergedIndices lists sample ids that did not coalesce, ascending.
func (r *Result) NonConvergedIndices() []int {
	return r.indices(false)
}

func (r *Result) indices(converged bool) []int {
	out := make([]int, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Converged == converged {
			out = append(out, o.Index)
		}
	}
	return out
}

// Samples returns the exact samples of converged requests in index order.
func (r *Result) Samples() []lattice.Config {
	out := make([]lattice.Config, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Converged {
			out = append(out, *o.Config)
		}
	}
	return out
}

// Times returns the coalescence times of converged requests in index order.
func (r *Result) Times() []int {
	out := make([]int, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if o.Converged {
			out = append(out, o.Time)
		}
	}
	return out
}

// Err returns a wrapped ErrNotConverged if any request is pending, nil otherwise.
func (r *Result) Err() error {
	if n := len(r.NonConvergedIndices()); n > 0 {
		return fmt.Errorf("%d of %d within max_time=%d: %w", n, len(r.Outcomes), r.Request.MaxTime, ErrNotConverged)
	}
	return nil
}

// Summary aggregates times and magnetisation over converged samples.
func (r *Result) Summary() Summary {
	s := Summary{Requested: len(r.Outcomes), Rounds: len(r.Rounds), Elapsed: r.Elapsed}
	times := make([]float64, 0, len(r.Outcomes))
	mags := make([]float64, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		if !o.Converged {
			s.NonConverged++
			continue
		}
		s.Converged++
		times = append(times, float64(o.Time))
		mags = append(mags, o.Config.Magnetization())
		if o.Time > s.MaxTime {
			s.MaxTime = o.Time
		}
	}
	s.MeanTime, _ = meanStd(times)
	s.MeanMagnetization, s.StdMagnetization = meanStd(mags)
	return s
}

// meanStd returns the mean and population standard deviation; zeros for empty input.
func meanStd(xs []float64) (mean, std float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	for _, x := range xs {
		d := x - mean
		std += d * d
	}
	return mean, math.Sqrt(std / float64(len(xs)))
}

// Package report turns sampler results into JSON run reports and keeps a
// history of them in SQLite.
package report

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sugawarayuuta/sonnet"

	"github.com/katalvlaran/cftp/cftp"
	"github.com/katalvlaran/cftp/ising"
	"github.com/katalvlaran/cftp/lattice"
)

// Method names recorded in reports.
const (
	MethodSample  = "sample"
	MethodForward = "forward"
	MethodExact   = "exact"
)

// ErrNotFound indicates an unknown run id.
var ErrNotFound = errors.New("report: run not found")

// Run describes how a run was produced beyond its request.
type Run struct {
	Seed    uint64 `json:"seed"`
	Source  string `json:"source"`
	Backend string `json:"backend"`
}

// Params is the union of request parameters across methods.
type Params struct {
	K       int     `json:"k"`
	Beta    float64 `json:"beta"`
	N       int     `json:"n,omitempty"`
	MaxTime int     `json:"max_time,omitempty"`
	BurnIn  int     `json:"burn_in,omitempty"`
	Run
}

// Summary carries aggregate statistics. Time fields are zero for
// methods without a coalescence time.
type Summary struct {
	Requested         int     `json:"requested"`
	Converged         int     `json:"converged"`
	NonConverged      int     `json:"non_converged"`
	MeanTime          float64 `json:"mean_time"`
	MaxTime           int     `json:"max_time"`
	MagnetizationMean float64 `json:"magnetization_mean"`
	MagnetizationStd  float64 `json:"magnetization_std"`
	AbsMagnetization  float64 `json:"abs_magnetization,omitempty"`
	Aligned           float64 `json:"aligned,omitempty"`
	LargestCluster    float64 `json:"largest_cluster,omitempty"`
	Rounds            int     `json:"rounds"`
	ElapsedSeconds    float64 `json:"elapsed_seconds"`
}

// Round mirrors cftp.RoundStats.
type Round struct {
	T               int     `json:"t"`
	Active          int     `json:"active"`
	Coalesced       int     `json:"coalesced"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Report is one persisted run.
type Report struct {
	ID           string     `json:"id"`
	Method       string     `json:"method"`
	CreatedAt    string     `json:"created_at"`
	Params       Params     `json:"params"`
	Summary      Summary    `json:"summary"`
	Times        []int      `json:"times,omitempty"`
	NonConverged []int      `json:"non_converged,omitempty"`
	Rounds       []Round    `json:"rounds,omitempty"`
	SiteHigh     []float64  `json:"site_high,omitempty"`
	Samples      [][][]int8 `json:"samples,omitempty"`
}

func newReport(method string) Report {
	return Report{
		ID:        uuid.NewString(),
		Method:    method,
		CreatedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// FromSample builds a report from an exact-sampling result. Samples are
// embedded only when withSamples is set.
func FromSample(res *cftp.Result, run Run, withSamples bool) Report {
	r := newReport(MethodSample)
	req := res.Request
	r.Params = Params{K: req.K, Beta: req.Beta, N: req.N, MaxTime: req.MaxTime, Run: run}

	s := res.Summary()
	r.Summary = Summary{
		Requested:         s.Requested,
		Converged:         s.Converged,
		NonConverged:      s.NonConverged,
		MeanTime:          s.MeanTime,
		MaxTime:           s.MaxTime,
		MagnetizationMean: s.MeanMagnetization,
		MagnetizationStd:  s.StdMagnetization,
		Rounds:            s.Rounds,
		ElapsedSeconds:    s.Elapsed.Seconds(),
	}
	r.Summary.LargestCluster = meanLargestCluster(res.Samples())
	r.Times = res.Times()
	r.NonConverged = res.NonConvergedIndices()
	for _, st := range res.Rounds {
		r.Rounds = append(r.Rounds, Round{
			T:               st.T,
			Active:          st.Active,
			Coalesced:       st.Coalesced,
			DurationSeconds: st.Duration.Seconds(),
		})
	}
	if withSamples {
		for _, c := range res.Samples() {
			r.Samples = append(r.Samples, rows(c))
		}
	}
	return r
}

// FromForward builds a report from forward chains.
func FromForward(res *cftp.ForwardResult, run Run, withSamples bool) Report {
	r := newReport(MethodForward)
	req := res.Request
	r.Params = Params{K: req.K, Beta: req.Beta, N: req.N, BurnIn: req.BurnIn, Run: run}

	mean, std := res.Magnetization()
	r.Summary = Summary{
		Requested:         req.N,
		Converged:         req.N,
		MagnetizationMean: mean,
		MagnetizationStd:  std,
		ElapsedSeconds:    res.Elapsed.Seconds(),
	}
	finals := make([]lattice.Config, res.Samples.Len())
	for i := range finals {
		finals[i] = res.Samples.At(i)
	}
	r.Summary.LargestCluster = meanLargestCluster(finals)
	if withSamples {
		for i := 0; i < res.Samples.Len(); i++ {
			r.Samples = append(r.Samples, rows(res.Samples.At(i)))
		}
	}
	return r
}

// FromExact builds a report from an enumerated Gibbs law.
func FromExact(law *ising.Law) Report {
	r := newReport(MethodExact)
	r.Params = Params{K: law.K, Beta: law.Beta}
	r.Summary = Summary{
		MagnetizationMean: law.Magnetization,
		AbsMagnetization:  law.AbsMagnetization,
		Aligned:           law.Aligned,
	}
	r.SiteHigh = append([]float64(nil), law.SiteHigh...)
	return r
}

// meanLargestCluster averages the largest equal-spin cluster fraction.
func meanLargestCluster(cs []lattice.Config) float64 {
	if len(cs) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range cs {
		sum += c.LargestCluster()
	}
	return sum / float64(len(cs))
}

func rows(c lattice.Config) [][]int8 {
	src := c.Rows()
	out := make([][]int8, len(src))
	for y, row := range src {
		out[y] = make([]int8, len(row))
		for x, s := range row {
			out[y][x] = int8(s)
		}
	}
	return out
}

// Marshal encodes r as compact JSON.
func Marshal(r Report) ([]byte, error) {
	return sonnet.Marshal(r)
}

// Unmarshal decodes a report produced by Marshal.
func Unmarshal(data []byte) (Report, error) {
	var r Report
	err := sonnet.Unmarshal(data, &r)
	return r, err
}

// Write encodes r to w followed by a newline.
func Write(w io.Writer, r Report) error {
	data, err := Marshal(r)
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

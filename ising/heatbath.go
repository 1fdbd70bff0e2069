package ising

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cftp/lattice"
)

// maxDegree bounds |neighbour sum| on the square lattice.
const maxDegree = 4

type site struct {
	idx, x, y int
}

// HeatBath is the checkerboard heat-bath sweep for a fixed (K, β).
// It holds no per-call state and is safe for concurrent use.
type HeatBath struct {
	k     int
	beta  float64
	pHigh [2*maxDegree + 1]float64 // indexed by neighbour sum + maxDegree
	even  []site
	odd   []site
}

// NewHeatBath prepares the sweep for side k at inverse temperature beta.
func NewHeatBath(k int, beta float64) (*HeatBath, error) {
	if k < 1 {
		return nil, fmt.Errorf("NewHeatBath: k=%d: %w", k, ErrBadSize)
	}
	if err := ValidateBeta(beta); err != nil {
		return nil, fmt.Errorf("NewHeatBath: %w", err)
	}

	h := &HeatBath{k: k, beta: beta}
	for s := -maxDegree; s <= maxDegree; s++ {
		h.pHigh[s+maxDegree] = HighProbability(beta, s)
	}
	h.even = make([]site, 0, (k*k+1)/2)
	h.odd = make([]site, 0, k*k/2)
	for y := 0; y < k; y++ {
		for x := 0; x < k; x++ {
			st := site{idx: y*k + x, x: x, y: y}
			if lattice.Parity(x, y) == 0 {
				h.even = append(h.even, st)
			} else {
				h.odd = append(h.odd, st)
			}
		}
	}

	return h, nil
}

// ValidateBeta reports whether beta lies in the monotone domain.
func ValidateBeta(beta float64) error {
	if math.IsNaN(beta) || math.IsInf(beta, 0) || beta < 0 {
		return fmt.Errorf("beta=%v: %w", beta, ErrInvalidBeta)
	}
	return nil
}

// HighProbability is the conditional probability of High given neighbour sum s.
func HighProbability(beta float64, s int) float64 {
	return 1.0 / (1.0 + math.Exp(-2.0*beta*float64(s)))
}

// K returns the lattice side the sweep was built for.
func (h *HeatBath) K() int { return h.k }

// Beta returns the inverse temperature.
func (h *HeatBath) Beta() float64 { return h.beta }

// Sweep applies one full update to c in place, reading field[y*K+x] for site (x,y).
// c.K must equal K() and len(field) must be at least K².
func (h *HeatBath) Sweep(c lattice.Config, field []float64) {
	h.half(c, field, h.even)
	h.half(c, field, h.odd)
}

func (h *HeatBath) half(c lattice.Config, field []float64, sites []site) {
	for _, st := range sites {
		if field[st.idx] < h.pHigh[c.NeighborSum(st.x, st.y)+maxDegree] {
			c.Spins[st.idx] = lattice.High
		} else {
			c.Spins[st.idx] = lattice.Low
		}
	}
}

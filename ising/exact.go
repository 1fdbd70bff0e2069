package ising

import (
	"fmt"
	"math"

	"github.com/katalvlaran/cftp/lattice"
)

// maxEnumerateSide keeps 2^(K²) within 65536 configurations.
const maxEnumerateSide = 4

// Law summarises the stationary distribution of a small lattice.
type Law struct {
	K    int
	Beta float64
	// SiteHigh[y*K+x] is the probability that site (x,y) is High.
	SiteHigh []float64
	// Magnetization is E[m]; zero by symmetry without an external field.
	Magnetization float64
	// AbsMagnetization is E[|m|].
	AbsMagnetization float64
	// Aligned is the probability that every site carries the same spin.
	Aligned float64
}

// Energy returns −Σ s_i·s_j over nearest-neighbour pairs (coupling J = 1).
func Energy(c lattice.Config) float64 {
	e := 0
	for y := 0; y < c.K; y++ {
		for x := 0; x < c.K; x++ {
			s := int(c.At(x, y))
			if x+1 < c.K {
				e -= s * int(c.At(x+1, y))
			}
			if y+1 < c.K {
				e -= s * int(c.At(x, y+1))
			}
		}
	}

	return float64(e)
}

// Enumerate calls fn once per configuration of side k with its stationary
// probability exp(−β·E)/Z. The Config passed to fn is reused between calls.
func Enumerate(k int, beta float64, fn func(c lattice.Config, p float64)) error {
	if k < 1 {
		return fmt.Errorf("Enumerate: k=%d: %w", k, ErrBadSize)
	}
	if k > maxEnumerateSide {
		return fmt.Errorf("Enumerate: k=%d > %d: %w", k, maxEnumerateSide, ErrTooLarge)
	}
	if err := ValidateBeta(beta); err != nil {
		return fmt.Errorf("Enumerate: %w", err)
	}

	n := k * k
	total := 1 << n
	weights := make([]float64, total)
	c, _ := lattice.NewConfig(k, lattice.Low)
	z := 0.0
	for mask := 0; mask < total; mask++ {
		decode(c, mask)
		weights[mask] = math.Exp(-beta * Energy(c))
		z += weights[mask]
	}
	for mask := 0; mask < total; mask++ {
		decode(c, mask)
		fn(c, weights[mask]/z)
	}

	return nil
}

// ExactLaw computes the Law of side k by enumeration.
func ExactLaw(k int, beta float64) (*Law, error) {
	law := &Law{K: k, Beta: beta}
	err := Enumerate(k, beta, func(c lattice.Config, p float64) {
		if law.SiteHigh == nil {
			law.SiteHigh = make([]float64, len(c.Spins))
		}
		aligned := true
		for i, s := range c.Spins {
			if s == lattice.High {
				law.SiteHigh[i] += p
			}
			if s != c.Spins[0] {
				aligned = false
			}
		}
		m := c.Magnetization()
		law.Magnetization += p * m
		law.AbsMagnetization += p * math.Abs(m)
		if aligned {
			law.Aligned += p
		}
	})
	if err != nil {
		return nil, fmt.Errorf("ExactLaw: %w", err)
	}

	return law, nil
}

// decode writes bit i of mask into site i (1 = High).
func decode(c lattice.Config, mask int) {
	for i := range c.Spins {
		if mask&(1<<i) != 0 {
			c.Spins[i] = lattice.High
		} else {
			c.Spins[i] = lattice.Low
		}
	}
}

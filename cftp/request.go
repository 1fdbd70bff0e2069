package cftp

import "fmt"

// Method names used as error context.
const (
	methodSample  = "Sample"
	methodForward = "Forward"
)

// Request asks for N exact samples on a K×K lattice at chain parameter Beta.
type Request struct {
	// K is the lattice side.
	K int `json:"k"`
	// Beta is the chain parameter handed to the rule factory (inverse temperature).
	Beta float64 `json:"beta"`
	// N is the number of independent samples.
	N int `json:"n"`
	// MaxTime bounds the window length; windows are 1, 2, 4, … ≤ MaxTime.
	MaxTime int `json:"max_time"`
}

// Validate checks the sizes and budget. The chain parameter is checked by
// the rule factory, which knows its monotone domain.
func (r Request) Validate() error {
	if r.K < 1 || r.N < 1 {
		return fmt.Errorf("k=%d, n=%d: %w", r.K, r.N, ErrBadSize)
	}
	if r.MaxTime < 1 {
		return fmt.Errorf("max_time=%d: %w", r.MaxTime, ErrBadBudget)
	}
	return nil
}

// ForwardRequest asks for N approximate samples from forward chains run BurnIn sweeps.
type ForwardRequest struct {
	K      int     `json:"k"`
	Beta   float64 `json:"beta"`
	N      int     `json:"n"`
	BurnIn int     `json:"burn_in"`
}

// Validate checks sizes and burn-in.
func (r ForwardRequest) Validate() error {
	if r.K < 1 || r.N < 1 {
		return fmt.Errorf("k=%d, n=%d: %w", r.K, r.N, ErrBadSize)
	}
	if r.BurnIn < 0 {
		return fmt.Errorf("burn_in=%d: %w", r.BurnIn, ErrBadBudget)
	}
	return nil
}

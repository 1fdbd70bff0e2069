package lattice

import "fmt"

// NewBatch allocates n configurations of side k, every site set to fill.
// Returns ErrBadSize if n < 1 or k < 1.
// Complexity: O(n·k²) time and memory, one allocation.
func NewBatch(n, k int, fill Spin) (*Batch, error) {
	if n < 1 || k < 1 {
		return nil, fmt.Errorf("NewBatch: n=%d, k=%d: %w", n, k, ErrBadSize)
	}
	b := &Batch{K: k, N: n, Spins: make([]Spin, n*k*k)}
	for i := range b.Spins {
		b.Spins[i] = fill
	}

	return b, nil
}

// Len returns the number of configurations in the arena.
func (b *Batch) Len() int {
	return b.N
}

// At returns configuration i as a view into the arena. Writes through the
// view mutate the batch.
func (b *Batch) At(i int) Config {
	sz := b.K * b.K
	return Config{K: b.K, Spins: b.Spins[i*sz : (i+1)*sz : (i+1)*sz]}
}

package lattice

// Spin is a single site value.
type Spin int8

const (
	// Low is the minimal spin value.
	Low Spin = -1
	// High is the maximal spin value.
	High Spin = 1
)

// neighborOffsets lists the 4-neighbourhood as (dx, dy): N, E, S, W.
var neighborOffsets = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// NeighborOffsets returns the orthogonal neighbour offsets used by every
// lattice traversal in this module.
func NeighborOffsets() [4][2]int {
	return neighborOffsets
}

// Config is a K×K configuration stored row-major: site (x,y) lives at
// Spins[y*K+x]. A Config obtained from a Batch aliases the arena.
type Config struct {
	K     int
	Spins []Spin
}

// Batch is an arena of N configurations of side K, stored contiguously.
type Batch struct {
	K     int
	N     int
	Spins []Spin
}

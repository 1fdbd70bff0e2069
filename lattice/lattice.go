package lattice

import "fmt"

// NewConfig allocates a k×k configuration with every site set to fill.
// Returns ErrBadSize if k < 1.
func NewConfig(k int, fill Spin) (Config, error) {
	if k < 1 {
		return Config{}, fmt.Errorf("NewConfig: k=%d: %w", k, ErrBadSize)
	}
	c := Config{K: k, Spins: make([]Spin, k*k)}
	c.Fill(fill)

	return c, nil
}

// FromRows builds a configuration from a square matrix of spins, deep-copying it.
func FromRows(rows [][]Spin) (Config, error) {
	k := len(rows)
	if k == 0 {
		return Config{}, fmt.Errorf("FromRows: %w", ErrBadSize)
	}
	c := Config{K: k, Spins: make([]Spin, k*k)}
	for y, row := range rows {
		if len(row) != k {
			return Config{}, fmt.Errorf("FromRows: row %d has %d sites, want %d: %w", y, len(row), k, ErrShapeMismatch)
		}
		copy(c.Spins[y*k:(y+1)*k], row)
	}

	return c, nil
}

// Fill sets every site to s.
func (c Config) Fill(s Spin) {
	for i := range c.Spins {
		c.Spins[i] = s
	}
}

// InBounds reports whether (x,y) lies on the lattice.
func (c Config) InBounds(x, y int) bool {
	return x >= 0 && x < c.K && y >= 0 && y < c.K
}

// Index maps (x,y) to its row-major position.
func (c Config) Index(x, y int) int {
	return y*c.K + x
}

// Coordinate converts a row-major position back to (x,y).
func (c Config) Coordinate(idx int) (x, y int) {
	return idx % c.K, idx / c.K
}

// At returns the spin at (x,y). The caller guarantees InBounds.
func (c Config) At(x, y int) Spin {
	return c.Spins[y*c.K+x]
}

// Set assigns the spin at (x,y). The caller guarantees InBounds.
func (c Config) Set(x, y int, s Spin) {
	c.Spins[y*c.K+x] = s
}

// NeighborSum returns the sum of the orthogonal neighbours of (x,y).
// Sites outside the lattice contribute zero (free boundary).
func (c Config) NeighborSum(x, y int) int {
	sum := 0
	if y > 0 {
		sum += int(c.Spins[(y-1)*c.K+x])
	}
	if x+1 < c.K {
		sum += int(c.Spins[y*c.K+x+1])
	}
	if y+1 < c.K {
		sum += int(c.Spins[(y+1)*c.K+x])
	}
	if x > 0 {
		sum += int(c.Spins[y*c.K+x-1])
	}

	return sum
}

// Parity returns the checkerboard colour of (x,y): 0 when x+y is even, 1 otherwise.
func Parity(x, y int) int {
	return (x + y) & 1
}

// Clone returns a deep copy detached from any arena.
func (c Config) Clone() Config {
	out := Config{K: c.K, Spins: make([]Spin, len(c.Spins))}
	copy(out.Spins, c.Spins)

	return out
}

// CopyFrom overwrites c with the sites of src.
func (c Config) CopyFrom(src Config) error {
	if c.K != src.K {
		return fmt.Errorf("CopyFrom: k=%d vs k=%d: %w", c.K, src.K, ErrShapeMismatch)
	}
	copy(c.Spins, src.Spins)

	return nil
}

// Equal reports whether a and b have the same side and identical sites.
// The comparison is exact; there is no tolerance on a discrete field.
func Equal(a, b Config) bool {
	if a.K != b.K {
		return false
	}
	for i := range a.Spins {
		if a.Spins[i] != b.Spins[i] {
			return false
		}
	}

	return true
}

// LessEq reports whether a ≤ b site-wise. Configurations of different
// side are incomparable and yield false.
func LessEq(a, b Config) bool {
	if a.K != b.K {
		return false
	}
	for i := range a.Spins {
		if a.Spins[i] > b.Spins[i] {
			return false
		}
	}

	return true
}

// Magnetization returns the mean spin, a value in [−1, 1].
func (c Config) Magnetization() float64 {
	if len(c.Spins) == 0 {
		return 0
	}
	sum := 0
	for _, s := range c.Spins {
		sum += int(s)
	}

	return float64(sum) / float64(len(c.Spins))
}

// Rows returns the configuration as a freshly allocated [][]Spin, y-major.
func (c Config) Rows() [][]Spin {
	rows := make([][]Spin, c.K)
	for y := 0; y < c.K; y++ {
		rows[y] = make([]Spin, c.K)
		copy(rows[y], c.Spins[y*c.K:(y+1)*c.K])
	}

	return rows
}

// String renders the lattice with '+' for High and '-' for Low, one row per line.
func (c Config) String() string {
	buf := make([]byte, 0, c.K*(c.K+1))
	for y := 0; y < c.K; y++ {
		for x := 0; x < c.K; x++ {
			if c.At(x, y) == High {
				buf = append(buf, '+')
			} else {
				buf = append(buf, '-')
			}
		}
		buf = append(buf, '\n')
	}

	return string(buf)
}

// Randomize sets each site High with probability one half, reading one
// uniform per site from field (len(field) must be K²).
func (c Config) Randomize(field []float64) {
	for i, u := range field[:len(c.Spins)] {
		if u < 0.5 {
			c.Spins[i] = High
		} else {
			c.Spins[i] = Low
		}
	}
}

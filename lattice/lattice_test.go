package lattice_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/cftp/lattice"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNewConfig_Errors verifies that non-positive sides are rejected.
func TestNewConfig_Errors(t *testing.T) {
	for _, k := range []int{0, -1, -7} {
		_, err := lattice.NewConfig(k, lattice.Low)
		if !errors.Is(err, lattice.ErrBadSize) {
			t.Errorf("NewConfig(%d) error = %v; want ErrBadSize", k, err)
		}
	}
}

// TestFromRows checks deep copy and shape validation.
func TestFromRows(t *testing.T) {
	rows := [][]lattice.Spin{
		{lattice.High, lattice.Low},
		{lattice.Low, lattice.Low},
	}
	c, err := lattice.FromRows(rows)
	require.NoError(t, err)
	rows[0][0] = lattice.Low
	assert.Equal(t, lattice.High, c.At(0, 0), "FromRows must copy its input")

	_, err = lattice.FromRows([][]lattice.Spin{{lattice.High, lattice.Low}, {lattice.Low}})
	assert.ErrorIs(t, err, lattice.ErrShapeMismatch)
	_, err = lattice.FromRows(nil)
	assert.ErrorIs(t, err, lattice.ErrBadSize)
}

// TestIndexCoordinate verifies the row-major mapping round-trips.
func TestIndexCoordinate(t *testing.T) {
	c, err := lattice.NewConfig(5, lattice.Low)
	require.NoError(t, err)
	for idx := 0; idx < 25; idx++ {
		x, y := c.Coordinate(idx)
		require.True(t, c.InBounds(x, y))
		require.Equal(t, idx, c.Index(x, y))
	}
	assert.False(t, c.InBounds(-1, 0))
	assert.False(t, c.InBounds(0, 5))
}

//----------------------------------------------------------------------------//
// Neighbourhood
//----------------------------------------------------------------------------//

// TestNeighborSum_FreeBoundary checks corner, edge and bulk sites on an all-High lattice.
func TestNeighborSum_FreeBoundary(t *testing.T) {
	c, err := lattice.NewConfig(3, lattice.High)
	require.NoError(t, err)

	cases := []struct {
		name string
		x, y int
		want int
	}{
		{"Corner", 0, 0, 2},
		{"Edge", 1, 0, 3},
		{"Bulk", 1, 1, 4},
		{"OppositeCorner", 2, 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.NeighborSum(tc.x, tc.y); got != tc.want {
				t.Errorf("NeighborSum(%d,%d) = %d; want %d", tc.x, tc.y, got, tc.want)
			}
		})
	}

	c.Set(1, 0, lattice.Low)
	assert.Equal(t, 2, c.NeighborSum(1, 1), "one Low neighbour flips its contribution")
}

// TestNeighborSum_MatchesOffsets cross-checks the unrolled sum against NeighborOffsets.
func TestNeighborSum_MatchesOffsets(t *testing.T) {
	rows := [][]lattice.Spin{
		{1, -1, 1, 1},
		{-1, -1, 1, -1},
		{1, 1, -1, 1},
		{-1, 1, 1, -1},
	}
	c, err := lattice.FromRows(rows)
	require.NoError(t, err)
	for y := 0; y < c.K; y++ {
		for x := 0; x < c.K; x++ {
			want := 0
			for _, d := range lattice.NeighborOffsets() {
				nx, ny := x+d[0], y+d[1]
				if c.InBounds(nx, ny) {
					want += int(c.At(nx, ny))
				}
			}
			require.Equalf(t, want, c.NeighborSum(x, y), "site (%d,%d)", x, y)
		}
	}
}

// TestParity checks the checkerboard colouring.
func TestParity(t *testing.T) {
	assert.Equal(t, 0, lattice.Parity(0, 0))
	assert.Equal(t, 1, lattice.Parity(1, 0))
	assert.Equal(t, 1, lattice.Parity(0, 1))
	assert.Equal(t, 0, lattice.Parity(3, 5))
}

//----------------------------------------------------------------------------//
// Order and comparison
//----------------------------------------------------------------------------//

// TestOrder verifies Equal and LessEq on extremal and mixed configurations.
func TestOrder(t *testing.T) {
	lo, _ := lattice.NewConfig(3, lattice.Low)
	hi, _ := lattice.NewConfig(3, lattice.High)
	mid := lo.Clone()
	mid.Set(1, 2, lattice.High)

	assert.True(t, lattice.LessEq(lo, hi))
	assert.True(t, lattice.LessEq(lo, mid))
	assert.True(t, lattice.LessEq(mid, hi))
	assert.False(t, lattice.LessEq(hi, mid))
	assert.True(t, lattice.LessEq(mid, mid))
	assert.True(t, lattice.Equal(mid, mid.Clone()))
	assert.False(t, lattice.Equal(lo, mid))

	other, _ := lattice.NewConfig(2, lattice.Low)
	assert.False(t, lattice.Equal(lo, other))
	assert.False(t, lattice.LessEq(other, hi))
}

// TestMagnetizationAndString covers the summary helpers.
func TestMagnetizationAndString(t *testing.T) {
	c, _ := lattice.NewConfig(2, lattice.High)
	c.Set(0, 1, lattice.Low)
	assert.InDelta(t, 0.5, c.Magnetization(), 1e-12)
	assert.Equal(t, "++\n-+\n", c.String())
	assert.Equal(t, [][]lattice.Spin{{1, 1}, {-1, 1}}, c.Rows())
}

// TestCopyFrom checks shape enforcement.
func TestCopyFrom(t *testing.T) {
	a, _ := lattice.NewConfig(2, lattice.Low)
	b, _ := lattice.NewConfig(2, lattice.High)
	require.NoError(t, a.CopyFrom(b))
	assert.True(t, lattice.Equal(a, b))

	c, _ := lattice.NewConfig(3, lattice.High)
	assert.ErrorIs(t, a.CopyFrom(c), lattice.ErrShapeMismatch)
}

//----------------------------------------------------------------------------//
// Batch arena
//----------------------------------------------------------------------------//

// TestBatch verifies views alias the arena and do not overlap.
func TestBatch(t *testing.T) {
	_, err := lattice.NewBatch(0, 3, lattice.Low)
	require.ErrorIs(t, err, lattice.ErrBadSize)

	b, err := lattice.NewBatch(3, 2, lattice.Low)
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	v := b.At(1)
	v.Fill(lattice.High)
	assert.Equal(t, -1.0, b.At(0).Magnetization())
	assert.Equal(t, 1.0, b.At(1).Magnetization())
	assert.Equal(t, -1.0, b.At(2).Magnetization())

	// Views have capped capacity: appending must not spill into a neighbour.
	grown := append(v.Spins, lattice.Low)
	grown[0] = lattice.Low
	assert.Equal(t, lattice.High, b.At(1).At(0, 0))
}

// TestRandomize checks the one-half threshold.
func TestRandomize(t *testing.T) {
	c, _ := lattice.NewConfig(2, lattice.Low)
	c.Randomize([]float64{0.1, 0.5, 0.49, 0.99})
	assert.Equal(t, []lattice.Spin{1, -1, 1, -1}, c.Spins)
}

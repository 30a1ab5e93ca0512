package raster_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/commandarea/raster"
)

//----------------------------------------------------------------------------//
// NewDense and InBounds Tests
//----------------------------------------------------------------------------//

// TestNewDense_Errors verifies that NewDense rejects empty or ragged inputs.
func TestNewDense_Errors(t *testing.T) {
	cases := []struct {
		name string
		grid [][]float64
		err  error
	}{
		{"EmptyRows", [][]float64{}, raster.ErrEmptyGrid},
		{"EmptyCols", [][]float64{{}}, raster.ErrEmptyGrid},
		{"NonRectangular", [][]float64{{1, 2}, {3}}, raster.ErrNonRectangular},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := raster.NewDense(tc.grid)
			if !errors.Is(err, tc.err) {
				t.Errorf("NewDense(%v) error = %v; want %v", tc.grid, err, tc.err)
			}
		})
	}
}

// TestNewDense_DeepCopy ensures later mutation of the input does not leak in.
func TestNewDense_DeepCopy(t *testing.T) {
	values := [][]float64{{1, 2, 3}, {4, 5, 6}}
	g, err := raster.NewDense(values, raster.WithNoData(-9999))
	require.NoError(t, err)

	values[1][2] = 42
	assert.Equal(t, 6.0, g.At(1, 2))

	rows, cols := g.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	nd, ok := g.NoData()
	assert.True(t, ok)
	assert.Equal(t, -9999.0, nd)
	assert.Equal(t, raster.Identity(), g.Transform())
}

// TestInBounds checks InBounds on a 2×3 grid.
func TestInBounds(t *testing.T) {
	g, err := raster.NewDense([][]float64{{0, 1, 0}, {1, 0, 1}})
	require.NoError(t, err)

	valid := [][2]int{{0, 0}, {1, 2}, {1, 1}}
	for _, rc := range valid {
		if !g.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d)=false; want true", rc[0], rc[1])
		}
	}
	invalid := [][2]int{{-1, 0}, {0, 3}, {2, 1}, {1, -1}}
	for _, rc := range invalid {
		if g.InBounds(rc[0], rc[1]) {
			t.Errorf("InBounds(%d,%d)=true; want false", rc[0], rc[1])
		}
	}
}

// TestFromMatrix copies a gonum matrix and rejects empty ones.
func TestFromMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	g, err := raster.FromMatrix(m, raster.WithTransform(raster.NorthUp(10, 20, 2)))
	require.NoError(t, err)

	m.Set(0, 0, 99)
	assert.Equal(t, 1.0, g.At(0, 0))
	assert.Equal(t, 4.0, g.At(1, 1))
	assert.Equal(t, 4.0, g.Transform().PixelArea())

	_, err = raster.FromMatrix(nil)
	assert.ErrorIs(t, err, raster.ErrEmptyGrid)
}

// TestIndexCoordinate checks the row-major round trip.
func TestIndexCoordinate(t *testing.T) {
	const cols = 7
	for idx := 0; idx < 3*cols; idx++ {
		r, c := raster.Coordinate(cols, idx)
		assert.Equal(t, idx, raster.Index(cols, r, c))
	}
}

// TestOffsets checks neighbour counts and that diagonals only appear under Conn8.
func TestOffsets(t *testing.T) {
	assert.Len(t, raster.Offsets(raster.Conn4), 4)
	assert.Len(t, raster.Offsets(raster.Conn8), 8)
	for _, d := range raster.Offsets(raster.Conn4) {
		assert.Equal(t, 1, abs(d[0])+abs(d[1]), "Conn4 offset %v is not orthogonal", d)
	}
}

// TestNoDataMatcher covers sentinel, NaN sentinel and grids without one.
func TestNoDataMatcher(t *testing.T) {
	withSentinel, _ := raster.NewDense([][]float64{{1}}, raster.WithNoData(-9999))
	m := raster.NoDataMatcher(withSentinel)
	assert.True(t, m(-9999))
	assert.True(t, m(math.NaN()))
	assert.False(t, m(0))

	nanSentinel, _ := raster.NewDense([][]float64{{1}}, raster.WithNoData(math.NaN()))
	m = raster.NoDataMatcher(nanSentinel)
	assert.True(t, m(math.NaN()))
	assert.False(t, m(-9999))

	none, _ := raster.NewDense([][]float64{{1}})
	m = raster.NoDataMatcher(none)
	assert.False(t, m(-9999))
	assert.True(t, m(math.NaN()))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

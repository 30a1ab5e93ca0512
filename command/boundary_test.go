package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/raster"
)

func TestBoundary_Pit(t *testing.T) {
	m, err := command.Delineate(mustGrid(t, bowl), center)
	require.NoError(t, err)
	assert.Equal(t, []command.Cell{center}, command.Boundary(m))
}

// TestBoundary_GridEdgeIsNotOutside: a mask covering the whole grid has no
// boundary even though every edge cell touches the grid border.
func TestBoundary_GridEdgeIsNotOutside(t *testing.T) {
	m, err := command.Delineate(mustGrid(t, [][]float64{{1, 1, 1}, {1, 1, 1}}), command.Cell{})
	require.NoError(t, err)
	assert.Empty(t, command.Boundary(m))
}

// TestBoundary_RowMajor checks ordering and that interior cells are excluded.
func TestBoundary_RowMajor(t *testing.T) {
	g := mustGrid(t, [][]float64{
		{9, 9, 9, 9, 9},
		{9, 5, 5, 5, 9},
		{9, 5, 5, 5, 9},
		{9, 5, 5, 5, 9},
		{9, 9, 9, 9, 9},
	})
	m, err := command.Delineate(g, command.Cell{Row: 2, Col: 2})
	require.NoError(t, err)

	got := command.Boundary(m)
	assert.Len(t, got, 8)
	assert.NotContains(t, got, command.Cell{Row: 2, Col: 2})
	assert.Equal(t, command.Cell{Row: 1, Col: 1}, got[0])
	assert.Equal(t, command.Cell{Row: 3, Col: 3}, got[len(got)-1])
}

// TestBoundary_Property: a Default cell is a boundary cell iff one of its
// in-bounds 8-neighbours is Unvisited.
func TestBoundary_Property(t *testing.T) {
	for seed := int64(1); seed <= 6; seed++ {
		g := randomGrid(t, seed, 25, 35, 5, 5)
		m, err := command.Delineate(g, validOutlet(g))
		require.NoError(t, err)

		set := make(map[command.Cell]bool)
		for _, c := range command.Boundary(m) {
			set[c] = true
		}
		rows, cols := m.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				want := false
				if m.At(r, c) == command.Default {
					for _, d := range raster.Offsets(raster.Conn8) {
						nr, nc := r+d[0], c+d[1]
						if raster.InBounds(rows, cols, nr, nc) && m.At(nr, nc) == command.Unvisited {
							want = true
							break
						}
					}
				}
				assert.Equal(t, want, set[command.Cell{Row: r, Col: c}], "seed %d cell (%d,%d)", seed, r, c)
			}
		}
	}
}

package command_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/raster"
)

const nodata = -9999.0

// bowl is the 3×3 grid of the basic scenarios: a single pit at the centre.
var bowl = [][]float64{
	{10, 10, 10},
	{10, 5, 10},
	{10, 10, 10},
}

var center = command.Cell{Row: 1, Col: 1}

func mustGrid(t testing.TB, values [][]float64, opts ...raster.Option) *raster.Dense {
	t.Helper()
	g, err := raster.NewDense(values, opts...)
	require.NoError(t, err)
	return g
}

// randomGrid returns a deterministic rows×cols grid of integer elevations in
// [0,levels) with roughly holes% nodata cells; integers create plateaus.
func randomGrid(t testing.TB, seed int64, rows, cols, levels, holes int) *raster.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	values := make([][]float64, rows)
	for r := range values {
		values[r] = make([]float64, cols)
		for c := range values[r] {
			if rng.Intn(100) < holes {
				values[r][c] = nodata
				continue
			}
			values[r][c] = float64(rng.Intn(levels))
		}
	}
	return mustGrid(t, values, raster.WithNoData(nodata))
}

// validOutlet picks the first non-nodata cell scanning from the grid centre row.
func validOutlet(g raster.Grid) command.Cell {
	rows, cols := g.Dims()
	for r := rows / 2; r < rows; r++ {
		for c := cols / 2; c < cols; c++ {
			if g.At(r, c) != nodata {
				return command.Cell{Row: r, Col: c}
			}
		}
	}
	return command.Cell{}
}

// classes flattens m into [row][col] for readable comparisons.
func classes(m *command.Mask) [][]command.Class {
	rows, cols := m.Dims()
	out := make([][]command.Class, rows)
	for r := range out {
		out[r] = make([]command.Class, cols)
		for c := range out[r] {
			out[r][c] = m.At(r, c)
		}
	}
	return out
}

// monotoneReach walks from outlet over cells of class want, moving only to
// neighbours that are no higher than the current cell, and returns how many
// cells it reaches.
func monotoneReach(g raster.Grid, m *command.Mask, outlet command.Cell, want command.Class) int {
	rows, cols := g.Dims()
	seen := make([]bool, rows*cols)
	queue := []command.Cell{outlet}
	seen[outlet.Row*cols+outlet.Col] = true
	for qi := 0; qi < len(queue); qi++ {
		u := queue[qi]
		for _, d := range raster.Offsets(raster.Conn8) {
			v := command.Cell{Row: u.Row + d[0], Col: u.Col + d[1]}
			if !raster.InBounds(rows, cols, v.Row, v.Col) || seen[v.Row*cols+v.Col] {
				continue
			}
			if m.At(v.Row, v.Col) != want || g.At(v.Row, v.Col) > g.At(u.Row, u.Col) {
				continue
			}
			seen[v.Row*cols+v.Col] = true
			queue = append(queue, v)
		}
	}
	return len(queue)
}

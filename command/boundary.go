package command

import (
	"github.com/katalvlaran/commandarea/raster"
)

// Boundary returns the Default cells of m with at least one in-bounds
// 8-neighbour that is Unvisited, in row-major order. Cells on the grid edge
// are not boundary cells merely for touching the edge.
// Complexity: O(W×H×8) time.
func Boundary(m *Mask) []Cell {
	var ring []Cell
	offsets := raster.Offsets(raster.Conn8)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			if m.cells[raster.Index(m.cols, r, c)] != Default {
				continue
			}
			for _, d := range offsets {
				nr, nc := r+d[0], c+d[1]
				if !raster.InBounds(m.rows, m.cols, nr, nc) {
					continue
				}
				if m.cells[raster.Index(m.cols, nr, nc)] == Unvisited {
					ring = append(ring, Cell{Row: r, Col: c})
					break
				}
			}
		}
	}
	return ring
}

package vector

import (
	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/raster"
)

// Region is one 4-connected set of cells sharing a class.
type Region struct {
	ID    int
	Class command.Class
	// Cells holds row-major indices in discovery order; Cells[0] is the
	// region's first cell in row-major order.
	Cells []int
}

// Labeling assigns every non-Unvisited mask cell to a Region.
type Labeling struct {
	Rows, Cols int
	// Labels holds a region ID per cell in row-major order, -1 for Unvisited.
	Labels  []int
	Regions []Region
}

// Label finds all contiguous regions of equal, non-Unvisited class in m.
// Regions are numbered in row-major order of their first cell.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for labels and output.
func Label(m *command.Mask) *Labeling {
	rows, cols := m.Dims()
	l := &Labeling{
		Rows:   rows,
		Cols:   cols,
		Labels: make([]int, rows*cols),
	}
	for i := range l.Labels {
		l.Labels[i] = -1
	}
	offsets := raster.Offsets(raster.Conn4)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			class := m.At(r, c)
			i0 := raster.Index(cols, r, c)
			if class == command.Unvisited || l.Labels[i0] >= 0 {
				continue
			}
			id := len(l.Regions)
			// BFS to collect region
			queue := []int{i0}
			l.Labels[i0] = id
			for qi := 0; qi < len(queue); qi++ {
				ur, uc := raster.Coordinate(cols, queue[qi])
				for _, d := range offsets {
					vr, vc := ur+d[0], uc+d[1]
					if !raster.InBounds(rows, cols, vr, vc) || m.At(vr, vc) != class {
						continue
					}
					vi := raster.Index(cols, vr, vc)
					if l.Labels[vi] < 0 {
						l.Labels[vi] = id
						queue = append(queue, vi)
					}
				}
			}
			l.Regions = append(l.Regions, Region{ID: id, Class: class, Cells: queue})
		}
	}
	return l
}

// contains reports whether (row, col) is in region id.
func (l *Labeling) contains(id, row, col int) bool {
	return raster.InBounds(l.Rows, l.Cols, row, col) && l.Labels[raster.Index(l.Cols, row, col)] == id
}

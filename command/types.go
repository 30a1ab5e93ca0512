package command

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/commandarea/raster"
)

// Sentinel errors for command-area computations.
var (
	// ErrEmptyGrid indicates the grid is nil or has no cells.
	ErrEmptyGrid = raster.ErrEmptyGrid
	// ErrSingularTransform indicates the outlet cannot be resolved because
	// the grid transform is not invertible.
	ErrSingularTransform = raster.ErrSingularTransform
	// ErrOutOfBounds indicates the outlet lies outside the grid.
	ErrOutOfBounds = errors.New("command: outlet outside grid bounds")
	// ErrNoDataOutlet indicates the outlet cell holds the nodata value.
	ErrNoDataOutlet = errors.New("command: outlet is on a nodata cell")
	// ErrInvalidFloodLevel indicates a flood level outside the valid range.
	ErrInvalidFloodLevel = errors.New("command: invalid flood level")
	// ErrMaskMismatch indicates a mask whose shape or content does not fit
	// the grid and outlet it is used with.
	ErrMaskMismatch = errors.New("command: mask does not match grid")
)

// Class is the state of one mask cell.
type Class uint8

const (
	// Unvisited cells are outside the command area.
	Unvisited Class = iota
	// Default cells belong to the area delineated without flood tolerance.
	Default
	// FloodExpansion cells were added by the flood-level expansion.
	FloodExpansion
)

// String returns the label used in feature records.
func (c Class) String() string {
	switch c {
	case Unvisited:
		return "unvisited"
	case Default:
		return "default"
	case FloodExpansion:
		return "flood_expansion"
	}
	return fmt.Sprintf("class(%d)", uint8(c))
}

// Cell is a pixel coordinate.
type Cell struct {
	Row, Col int
}

// String formats the cell as "row,col".
func (c Cell) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Mask holds one Class per grid cell in row-major order.
// A zero Mask is unusable; create one with NewMask.
type Mask struct {
	rows, cols int
	cells      []Class
}

// NewMask returns an all-Unvisited rows×cols mask.
func NewMask(rows, cols int) *Mask {
	return &Mask{rows: rows, cols: cols, cells: make([]Class, rows*cols)}
}

// Dims returns the number of rows and columns.
func (m *Mask) Dims() (rows, cols int) {
	return m.rows, m.cols
}

// At returns the class of (row, col). It panics when out of bounds.
func (m *Mask) At(row, col int) Class {
	return m.cells[raster.Index(m.cols, row, col)]
}

// Count returns the number of cells of class c.
// Complexity: O(W×H).
func (m *Mask) Count(c Class) int {
	n := 0
	for _, v := range m.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of m.
func (m *Mask) Clone() *Mask {
	cells := make([]Class, len(m.cells))
	copy(cells, m.cells)
	return &Mask{rows: m.rows, cols: m.cols, cells: cells}
}

// Equal reports whether m and o have the same shape and contents.
func (m *Mask) Equal(o *Mask) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// AsGrid exposes m as a raster.Grid of class values georeferenced by t,
// ready for the raster writers. The view shares m's storage.
func (m *Mask) AsGrid(t raster.Affine) raster.Grid {
	return maskGrid{mask: m, transform: t}
}

func (m *Mask) fits(g raster.Grid) bool {
	rows, cols := g.Dims()
	return m != nil && m.rows == rows && m.cols == cols
}

type maskGrid struct {
	mask      *Mask
	transform raster.Affine
}

func (g maskGrid) Dims() (int, int)         { return g.mask.Dims() }
func (g maskGrid) At(row, col int) float64  { return float64(g.mask.At(row, col)) }
func (g maskGrid) NoData() (float64, bool)  { return 0, false }
func (g maskGrid) Transform() raster.Affine { return g.transform }

package raster

import (
	"errors"
	"math"
)

// Sentinel errors for raster operations.
var (
	// ErrEmptyGrid indicates the grid has no rows or no columns.
	ErrEmptyGrid = errors.New("raster: grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("raster: all rows must have the same length")
	// ErrSingularTransform indicates an affine transform with a zero determinant.
	ErrSingularTransform = errors.New("raster: affine transform is not invertible")
	// ErrMalformedASCII indicates an unreadable ESRI ASCII grid.
	ErrMalformedASCII = errors.New("raster: malformed ASCII grid")
	// ErrNotNorthUp indicates a rotated or non-square transform where a
	// north-up square-pixel one is required.
	ErrNotNorthUp = errors.New("raster: transform is not north-up with square pixels")
)

// Grid is a read-only elevation raster.
// Row 0 is the first (top) row; At must not be called out of bounds.
type Grid interface {
	// Dims returns the number of rows and columns.
	Dims() (rows, cols int)
	// At returns the value stored at (row, col).
	At(row, col int) float64
	// NoData returns the nodata sentinel and whether the grid defines one.
	NoData() (value float64, ok bool)
	// Transform returns the pixel→geographic affine transform.
	Transform() Affine
}

// Connectivity selects neighbour connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity: N, NE, E, SE, S, SW, W, NW.
	Conn8
)

var (
	offsets4 = [][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}
	offsets8 = [][2]int{{-1, 0}, {-1, 1}, {0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}}
)

// Offsets returns the (dRow, dCol) neighbour offsets for conn.
// The returned slice is shared and must not be modified.
// Complexity: O(1).
func Offsets(conn Connectivity) [][2]int {
	if conn == Conn8 {
		return offsets8
	}
	return offsets4
}

// InBounds reports whether (row, col) lies within a rows×cols grid.
// Complexity: O(1).
func InBounds(rows, cols, row, col int) bool {
	return row >= 0 && row < rows && col >= 0 && col < cols
}

// NoDataMatcher returns a predicate that reports whether a value read from g
// is missing. NaN is always treated as missing; the grid's sentinel, when
// defined, matches by equality.
func NoDataMatcher(g Grid) func(v float64) bool {
	nd, ok := g.NoData()
	if !ok || math.IsNaN(nd) {
		return math.IsNaN
	}
	return func(v float64) bool {
		return v == nd || math.IsNaN(v)
	}
}

package raster

import (
	"gonum.org/v1/gonum/mat"
)

// Dense is an immutable in-memory Grid backed by a gonum matrix.
type Dense struct {
	values    *mat.Dense
	rows      int
	cols      int
	nodata    float64
	hasNoData bool
	transform Affine
}

// Option configures a Dense during construction.
type Option func(*Dense)

// WithNoData sets the nodata sentinel.
func WithNoData(v float64) Option {
	return func(d *Dense) {
		d.nodata = v
		d.hasNoData = true
	}
}

// WithTransform sets the pixel→geographic transform. The default is Identity.
func WithTransform(t Affine) Option {
	return func(d *Dense) {
		d.transform = t
	}
}

// NewDense constructs a Dense from a non-empty, rectangular 2D slice indexed
// [row][col]. It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if values has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H) time and memory.
func NewDense(values [][]float64, opts ...Option) (*Dense, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(values), len(values[0])
	for _, row := range values {
		if len(row) != cols {
			return nil, ErrNonRectangular
		}
	}
	data := make([]float64, 0, rows*cols)
	for _, row := range values {
		data = append(data, row...)
	}

	return newDense(mat.NewDense(rows, cols, data), opts), nil
}

// FromMatrix constructs a Dense from any gonum matrix, copying its contents.
// Returns ErrEmptyGrid for a nil or zero-sized matrix.
func FromMatrix(m mat.Matrix, opts ...Option) (*Dense, error) {
	if m == nil {
		return nil, ErrEmptyGrid
	}
	if r, c := m.Dims(); r == 0 || c == 0 {
		return nil, ErrEmptyGrid
	}

	return newDense(mat.DenseCopyOf(m), opts), nil
}

func newDense(values *mat.Dense, opts []Option) *Dense {
	rows, cols := values.Dims()
	d := &Dense{
		values:    values,
		rows:      rows,
		cols:      cols,
		transform: Identity(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dims returns the number of rows and columns.
func (d *Dense) Dims() (rows, cols int) {
	return d.rows, d.cols
}

// At returns the elevation at (row, col). It panics when out of bounds.
func (d *Dense) At(row, col int) float64 {
	return d.values.At(row, col)
}

// NoData returns the nodata sentinel, if any.
func (d *Dense) NoData() (float64, bool) {
	return d.nodata, d.hasNoData
}

// Transform returns the pixel→geographic transform.
func (d *Dense) Transform() Affine {
	return d.transform
}

// InBounds reports whether (row, col) lies within the grid.
// Complexity: O(1).
func (d *Dense) InBounds(row, col int) bool {
	return InBounds(d.rows, d.cols, row, col)
}

// Index maps (row, col) to a row-major index: row*cols + col.
// Complexity: O(1).
func Index(cols, row, col int) int {
	return row*cols + col
}

// Coordinate converts a row-major index back to (row, col).
// Complexity: O(1).
func Coordinate(cols, idx int) (row, col int) {
	return idx / cols, idx % cols
}

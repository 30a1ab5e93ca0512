package raster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine maps pixel coordinates to geographic coordinates:
//
//	x = A·col + B·row + C
//	y = D·col + E·row + F
//
// The coefficient order matches rasterio's Affine(a, b, c, d, e, f).
type Affine struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the transform that maps pixel (col,row) onto itself.
func Identity() Affine {
	return Affine{A: 1, E: 1}
}

// NorthUp returns a square-pixel, unrotated transform whose top-left corner
// is at (west, north).
func NorthUp(west, north, cellSize float64) Affine {
	return Affine{A: cellSize, C: west, E: -cellSize, F: north}
}

// FromGDAL converts a GDAL geotransform (c, a, b, f, d, e) to an Affine.
func FromGDAL(gt [6]float64) Affine {
	return Affine{A: gt[1], B: gt[2], C: gt[0], D: gt[4], E: gt[5], F: gt[3]}
}

// GDAL returns the transform as a GDAL geotransform.
func (t Affine) GDAL() [6]float64 {
	return [6]float64{t.C, t.A, t.B, t.F, t.D, t.E}
}

// Apply maps (col, row) to (x, y).
func (t Affine) Apply(col, row float64) (x, y float64) {
	return t.A*col + t.B*row + t.C, t.D*col + t.E*row + t.F
}

// WorldFile renders t as an ESRI world file (.tfw), which references the
// centre of the top-left pixel.
func (t Affine) WorldFile() []byte {
	x, y := t.Apply(0.5, 0.5)
	return []byte(fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n%s\n",
		formatFloat(t.A), formatFloat(t.D), formatFloat(t.B), formatFloat(t.E), formatFloat(x), formatFloat(y)))
}

// Determinant returns A·E − B·D.
func (t Affine) Determinant() float64 {
	return t.A*t.E - t.B*t.D
}

// PixelArea returns |A·E|, the area of one pixel in the grid's squared
// linear units.
func (t Affine) PixelArea() float64 {
	return math.Abs(t.A * t.E)
}

// Inverse returns the geographic→pixel transform.
// Returns ErrSingularTransform when the determinant is zero or not finite.
func (t Affine) Inverse() (Affine, error) {
	det := t.Determinant()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, ErrSingularTransform
	}
	m := mat.NewDense(3, 3, []float64{
		t.A, t.B, t.C,
		t.D, t.E, t.F,
		0, 0, 1,
	})
	var inv mat.Dense
	if err := inv.Inverse(m); err != nil {
		return Affine{}, fmt.Errorf("%w: %v", ErrSingularTransform, err)
	}

	return Affine{
		A: inv.At(0, 0), B: inv.At(0, 1), C: inv.At(0, 2),
		D: inv.At(1, 0), E: inv.At(1, 1), F: inv.At(1, 2),
	}, nil
}

// isNorthUp reports whether t has no rotation and square pixels.
func (t Affine) isNorthUp() bool {
	return t.B == 0 && t.D == 0 && t.A > 0 && t.E == -t.A
}

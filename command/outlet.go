package command

import (
	"fmt"
	"math"

	"github.com/katalvlaran/commandarea/raster"
)

// ResolveOutlet maps the geographic point (x, y) to a pixel of g through the
// inverse of g's transform, truncating the continuous pixel coordinate
// toward zero. A point less than one pixel west or north of the grid
// therefore lands in row or column 0.
// Returns ErrEmptyGrid, ErrSingularTransform, ErrOutOfBounds or
// ErrNoDataOutlet; bounds are checked before the elevation is read.
func ResolveOutlet(g raster.Grid, x, y float64) (Cell, error) {
	if err := checkGrid(g); err != nil {
		return Cell{}, err
	}
	inv, err := g.Transform().Inverse()
	if err != nil {
		return Cell{}, err
	}
	col, row := inv.Apply(x, y)
	rows, cols := g.Dims()
	// Compare as floats first: NaN and huge values must not reach int conversion.
	if !(row > -1 && row < float64(rows) && col > -1 && col < float64(cols)) {
		return Cell{}, fmt.Errorf("%w: (%v, %v) maps to row %v, col %v of %dx%d grid",
			ErrOutOfBounds, x, y, row, col, rows, cols)
	}
	cell := Cell{Row: int(math.Trunc(row)), Col: int(math.Trunc(col))}

	return cell, ValidateOutlet(g, cell)
}

// ValidateOutlet checks that cell lies inside g and does not hold nodata.
func ValidateOutlet(g raster.Grid, cell Cell) error {
	if err := checkGrid(g); err != nil {
		return err
	}
	rows, cols := g.Dims()
	if !raster.InBounds(rows, cols, cell.Row, cell.Col) {
		return fmt.Errorf("%w: cell %s of %dx%d grid", ErrOutOfBounds, cell, rows, cols)
	}
	if raster.NoDataMatcher(g)(g.At(cell.Row, cell.Col)) {
		return fmt.Errorf("%w: cell %s", ErrNoDataOutlet, cell)
	}
	return nil
}

// checkGrid rejects nil and zero-sized grids.
func checkGrid(g raster.Grid) error {
	if g == nil {
		return ErrEmptyGrid
	}
	if rows, cols := g.Dims(); rows <= 0 || cols <= 0 {
		return ErrEmptyGrid
	}
	return nil
}

package command

import (
	"fmt"

	"github.com/katalvlaran/commandarea/raster"
)

// Expand grows m by the flood level h, starting from the fixed boundary set.
//
// Behavior:
//  1. h == 0: nothing happens, 0 is returned.
//  2. Phase 1: for every boundary cell b, each in-bounds, Unvisited,
//     non-nodata neighbour n with elev(n) ≤ elev(b) + h becomes
//     FloodExpansion. A neighbour shared by two boundary cells is admitted
//     once.
//  3. Phase 2: breadth-first continuation from the phase-1 cells with the
//     strict rule elev(n) ≤ elev(current); admitted cells become
//     FloodExpansion.
//
// The boundary is not recomputed while the mask grows; the tolerance is
// applied once. Returns the number of newly admitted cells; m is untouched
// when an error is returned.
// Returns ErrInvalidFloodLevel, ErrEmptyGrid, ErrMaskMismatch, or
// ErrOutOfBounds for a boundary cell outside the grid.
func Expand(g raster.Grid, m *Mask, boundary []Cell, h float64, opts ...Option) (int, error) {
	o, err := newOptions(append(opts[:len(opts):len(opts)], WithFloodLevel(h))...)
	if err != nil {
		return 0, err
	}
	if err := checkGrid(g); err != nil {
		return 0, err
	}
	if !m.fits(g) {
		return 0, ErrMaskMismatch
	}
	if h == 0 {
		return 0, nil
	}
	rows, cols := g.Dims()
	for _, b := range boundary {
		if !raster.InBounds(rows, cols, b.Row, b.Col) {
			return 0, fmt.Errorf("%w: boundary cell %s", ErrOutOfBounds, b)
		}
	}

	w := newWalker(g, m, o)
	offsets := raster.Offsets(raster.Conn8)
	for _, b := range boundary {
		limit := g.At(b.Row, b.Col) + h
		for _, d := range offsets {
			if v, ok := w.admissible(b.Row+d[0], b.Col+d[1], limit); ok {
				w.admit(v, FloodExpansion)
			}
		}
	}
	rim := len(w.queue)
	deeper := w.drain(FloodExpansion)

	o.Logger.Debug("flood expansion applied",
		"flood_level", h,
		"boundary", len(boundary),
		"rim", rim,
		"downstream", deeper)
	return rim + deeper, nil
}

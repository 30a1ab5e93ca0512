package command

import (
	"github.com/katalvlaran/commandarea/raster"
)

// Result is the outcome of one command-area computation.
// Mask is never mutated after the computation returns.
type Result struct {
	// Outlet is the resolved outlet cell.
	Outlet Cell
	// FloodLevel is the tolerance the expansion ran with.
	FloodLevel float64
	// Mask holds Default and FloodExpansion cells.
	Mask *Mask
	// Boundary is the seed ring of the expansion; nil when FloodLevel is 0.
	Boundary []Cell
	// Added is the number of FloodExpansion cells.
	Added int
	// Stats summarises Mask.
	Stats Stats
	// Transform georeferences Mask; it is the grid's transform.
	Transform raster.Affine
}

// Raster returns the mask as a class raster georeferenced like the input grid.
func (r *Result) Raster() raster.Grid {
	return r.Mask.AsGrid(r.Transform)
}

// Compute resolves the geographic outlet (x, y) on g and runs ComputeAt.
func Compute(g raster.Grid, x, y float64, opts ...Option) (*Result, error) {
	if _, err := newOptions(opts...); err != nil {
		return nil, err
	}
	outlet, err := ResolveOutlet(g, x, y)
	if err != nil {
		return nil, err
	}
	return ComputeAt(g, outlet, opts...)
}

// ComputeAt runs Delineate, Boundary, Expand and Summarize for a pixel
// outlet. No partial result is returned on error.
func ComputeAt(g raster.Grid, outlet Cell, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	base, err := Delineate(g, outlet, opts...)
	if err != nil {
		return nil, err
	}
	return extend(g, base, outlet, o, opts)
}

// Extend finishes a computation from a default-area mask previously produced
// by Delineate for the same grid and outlet. base is cloned, never modified,
// so one default area can serve several flood levels.
// Returns ErrMaskMismatch when base does not fit g, does not contain the
// outlet as Default, or already holds FloodExpansion cells.
func Extend(g raster.Grid, base *Mask, outlet Cell, opts ...Option) (*Result, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := ValidateOutlet(g, outlet); err != nil {
		return nil, err
	}
	if !base.fits(g) || base.At(outlet.Row, outlet.Col) != Default || base.Count(FloodExpansion) > 0 {
		return nil, ErrMaskMismatch
	}
	return extend(g, base.Clone(), outlet, o, opts)
}

// extend takes ownership of m.
func extend(g raster.Grid, m *Mask, outlet Cell, o Options, opts []Option) (*Result, error) {
	res := &Result{
		Outlet:     outlet,
		FloodLevel: o.FloodLevel,
		Mask:       m,
		Transform:  g.Transform(),
	}
	if o.FloodLevel > 0 {
		res.Boundary = Boundary(m)
		added, err := Expand(g, m, res.Boundary, o.FloodLevel, opts...)
		if err != nil {
			return nil, err
		}
		res.Added = added
	}
	stats, err := Summarize(g, m, o.FloodLevel)
	if err != nil {
		return nil, err
	}
	res.Stats = stats

	o.Logger.Debug("command area computed",
		"outlet", outlet.String(),
		"flood_level", o.FloodLevel,
		"default_pixels", stats.DefaultPixels,
		"expansion_pixels", stats.ExpansionPixels,
		"total_area", stats.TotalArea)
	return res, nil
}

package command

import (
	"github.com/katalvlaran/commandarea/raster"
)

// walker encapsulates the mutable state of one fill: the mask it writes and
// the queue of admitted cells still to be expanded (row-major indices).
type walker struct {
	grid    raster.Grid
	rows    int
	cols    int
	missing func(float64) bool
	mask    *Mask
	queue   []int
	onAdmit func(Cell, Class)
}

func newWalker(g raster.Grid, m *Mask, o Options) *walker {
	rows, cols := g.Dims()
	return &walker{
		grid:    g,
		rows:    rows,
		cols:    cols,
		missing: raster.NoDataMatcher(g),
		mask:    m,
		onAdmit: o.OnAdmit,
	}
}

// admit marks idx with class and enqueues it. The caller has checked that
// the cell is Unvisited.
func (w *walker) admit(idx int, class Class) {
	w.mask.cells[idx] = class
	w.queue = append(w.queue, idx)
	r, c := raster.Coordinate(w.cols, idx)
	w.onAdmit(Cell{Row: r, Col: c}, class)
}

// admissible reports whether (row, col) is in bounds, Unvisited, not nodata
// and no higher than limit. It returns the row-major index when it is.
func (w *walker) admissible(row, col int, limit float64) (int, bool) {
	if !raster.InBounds(w.rows, w.cols, row, col) {
		return 0, false
	}
	idx := raster.Index(w.cols, row, col)
	if w.mask.cells[idx] != Unvisited {
		return 0, false
	}
	v := w.grid.At(row, col)
	if w.missing(v) || v > limit {
		return 0, false
	}
	return idx, true
}

// drain runs the strict breadth-first rule over the queue: a neighbour is
// admitted iff its elevation is ≤ that of the cell it is reached from.
// Admitted cells get class. Returns the number of cells admitted by drain
// itself; the queue is empty afterwards.
func (w *walker) drain(class Class) int {
	added := 0
	offsets := raster.Offsets(raster.Conn8)
	for qi := 0; qi < len(w.queue); qi++ {
		u := w.queue[qi]
		ur, uc := raster.Coordinate(w.cols, u)
		limit := w.grid.At(ur, uc)
		for _, d := range offsets {
			if v, ok := w.admissible(ur+d[0], uc+d[1], limit); ok {
				w.admit(v, class)
				added++
			}
		}
	}
	w.queue = w.queue[:0]
	return added
}

// Delineate computes the default command area of outlet: a fresh mask where
// the outlet and every cell reachable from it through non-increasing
// 8-connected steps are Default. A single-cell area is a valid result.
//
// Returns ErrEmptyGrid, ErrOutOfBounds or ErrNoDataOutlet for invalid input.
// Complexity: O(W×H×8) time, O(W×H) memory.
func Delineate(g raster.Grid, outlet Cell, opts ...Option) (*Mask, error) {
	o, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := ValidateOutlet(g, outlet); err != nil {
		return nil, err
	}
	rows, cols := g.Dims()
	m := NewMask(rows, cols)
	w := newWalker(g, m, o)

	w.admit(raster.Index(cols, outlet.Row, outlet.Col), Default)
	added := w.drain(Default)

	o.Logger.Debug("default area delineated",
		"outlet", outlet.String(),
		"elevation", g.At(outlet.Row, outlet.Col),
		"cells", added+1)
	return m, nil
}

package vector

import "slices"

// Vertex is a pixel corner: X counts columns, Y counts rows, both from the
// grid's top-left corner.
type Vertex struct {
	X, Y int
}

// Ring is a closed outline; the last vertex repeats the first.
type Ring []Vertex

// Area returns the signed shoelace area in pixel units. With rows pointing
// down, shells are positive and holes negative.
func (r Ring) Area() float64 {
	var sum int
	for i := 0; i+1 < len(r); i++ {
		sum += r[i].X*r[i+1].Y - r[i+1].X*r[i].Y
	}
	return float64(sum) / 2
}

// bounds returns the ring's pixel-space bounding box.
func (r Ring) bounds() (minX, minY, maxX, maxY int) {
	minX, minY = r[0].X, r[0].Y
	maxX, maxY = minX, minY
	for _, v := range r[1:] {
		minX, maxX = min(minX, v.X), max(maxX, v.X)
		minY, maxY = min(minY, v.Y), max(maxY, v.Y)
	}
	return minX, minY, maxX, maxY
}

// Edge directions, clockwise on screen.
const (
	east = iota
	south
	west
	north
)

var step = [4]Vertex{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// edge is one directed unit side of a region cell, keyed by its start corner.
type edge struct {
	v   int
	dir int
}

// tracer collects the boundary edges of one region.
type tracer struct {
	stride int           // corners per row: cols+1
	out    map[int]uint8 // corner -> bitmask of unused outgoing directions
	order  []edge        // insertion order, for deterministic ring starts
}

func (t *tracer) add(x, y, dir int) {
	v := y*t.stride + x
	t.out[v] |= 1 << dir
	t.order = append(t.order, edge{v: v, dir: dir})
}

func (t *tracer) has(v, dir int) bool { return t.out[v]&(1<<dir) != 0 }

func (t *tracer) take(v, dir int) { t.out[v] &^= 1 << dir }

func (t *tracer) vertex(v int) Vertex { return Vertex{X: v % t.stride, Y: v / t.stride} }

func (t *tracer) next(v, dir int) int {
	return v + step[dir].Y*t.stride + step[dir].X
}

// Rings traces every outline of region id. The first ring is the shell
// around the region's first cell; the rest follow in cell order.
//
// Each cell side facing a cell outside the region becomes a directed edge
// with the region on its right. Edges are chained into rings preferring a
// left turn, then straight, then right, which keeps rings touching at a
// diagonal corner apart. Collinear vertices are dropped.
func (l *Labeling) Rings(id int) []Ring {
	if id < 0 || id >= len(l.Regions) {
		return nil
	}
	t := &tracer{stride: l.Cols + 1, out: make(map[int]uint8)}
	for _, idx := range sortedCells(l.Regions[id].Cells) {
		r, c := idx/l.Cols, idx%l.Cols
		if !l.contains(id, r-1, c) {
			t.add(c, r, east)
		}
		if !l.contains(id, r, c+1) {
			t.add(c+1, r, south)
		}
		if !l.contains(id, r+1, c) {
			t.add(c+1, r+1, west)
		}
		if !l.contains(id, r, c-1) {
			t.add(c, r+1, north)
		}
	}

	var rings []Ring
	for _, e := range t.order {
		if t.has(e.v, e.dir) {
			rings = append(rings, t.trace(e))
		}
	}
	return rings
}

func (t *tracer) trace(start edge) Ring {
	ring := Ring{t.vertex(start.v)}
	t.take(start.v, start.dir)
	dir, cur := start.dir, t.next(start.v, start.dir)
	for {
		nd := -1
		closed := false
		for _, cand := range [3]int{(dir + 3) % 4, dir, (dir + 1) % 4} {
			if cur == start.v && cand == start.dir {
				closed = true
				break
			}
			if t.has(cur, cand) {
				nd = cand
				break
			}
		}
		if closed || nd < 0 {
			break
		}
		if nd != dir {
			ring = append(ring, t.vertex(cur))
		}
		t.take(cur, nd)
		dir, cur = nd, t.next(cur, nd)
	}
	// start was mid-side
	if dir == start.dir && len(ring) > 1 {
		ring = ring[1:]
	}
	return append(ring, ring[0])
}

// sortedCells returns a row-major copy of cells.
func sortedCells(cells []int) []int {
	out := make([]int, len(cells))
	copy(out, cells)
	slices.Sort(out)
	return out
}

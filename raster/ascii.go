package raster

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// MaxASCIICells bounds the nrows×ncols a header may declare.
const MaxASCIICells = 1 << 30

// asciiHeader collects the ESRI ASCII grid header fields.
type asciiHeader struct {
	ncols, nrows int
	xll, yll     float64
	centered     bool
	cellSize     float64
	nodata       float64
	hasNoData    bool
}

// ReadASCII parses an ESRI ASCII grid (ncols, nrows, xllcorner|xllcenter,
// yllcorner|yllcenter, cellsize, optional NODATA_value, then nrows×ncols
// values, top row first) into a Dense with a north-up transform.
// Returns ErrMalformedASCII on any header or body error.
func ReadASCII(r io.Reader) (*Dense, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	sc.Split(bufio.ScanWords)

	var (
		h     asciiHeader
		seen  = make(map[string]bool, 6)
		first string
	)
	for sc.Scan() {
		tok := sc.Text()
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			first = tok
			break
		}
		key := strings.ToLower(tok)
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: header key %q has no value", ErrMalformedASCII, tok)
		}
		if err := h.set(key, sc.Text()); err != nil {
			return nil, err
		}
		seen[key] = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedASCII, err)
	}
	if err := h.validate(seen); err != nil {
		return nil, err
	}

	// Grow with the body rather than the header.
	n := h.nrows * h.ncols
	data := make([]float64, 0, min(n, 1<<16))
	store := func(tok string) error {
		if len(data) >= n {
			return fmt.Errorf("%w: more than %d values", ErrMalformedASCII, n)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: value %d: %v", ErrMalformedASCII, len(data), err)
		}
		data = append(data, v)
		return nil
	}
	if first != "" {
		if err := store(first); err != nil {
			return nil, err
		}
	}
	for sc.Scan() {
		if err := store(sc.Text()); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedASCII, err)
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrMalformedASCII, len(data), n)
	}

	opts := []Option{WithTransform(h.transform())}
	if h.hasNoData {
		opts = append(opts, WithNoData(h.nodata))
	}
	return newDense(mat.NewDense(h.nrows, h.ncols, data), opts), nil
}

func (h *asciiHeader) set(key, raw string) error {
	var err error
	switch key {
	case "ncols":
		h.ncols, err = strconv.Atoi(raw)
	case "nrows":
		h.nrows, err = strconv.Atoi(raw)
	case "xllcorner", "xllcenter":
		h.xll, err = strconv.ParseFloat(raw, 64)
		h.centered = h.centered || key == "xllcenter"
	case "yllcorner", "yllcenter":
		h.yll, err = strconv.ParseFloat(raw, 64)
		h.centered = h.centered || key == "yllcenter"
	case "cellsize":
		h.cellSize, err = strconv.ParseFloat(raw, 64)
	case "nodata_value":
		h.nodata, err = strconv.ParseFloat(raw, 64)
		h.hasNoData = true
	default:
		return fmt.Errorf("%w: unknown header key %q", ErrMalformedASCII, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedASCII, key, err)
	}
	return nil
}

func (h *asciiHeader) validate(seen map[string]bool) error {
	for _, key := range []string{"ncols", "nrows", "cellsize"} {
		if !seen[key] {
			return fmt.Errorf("%w: missing %s", ErrMalformedASCII, key)
		}
	}
	if !(seen["xllcorner"] || seen["xllcenter"]) || !(seen["yllcorner"] || seen["yllcenter"]) {
		return fmt.Errorf("%w: missing lower-left origin", ErrMalformedASCII)
	}
	if h.ncols <= 0 || h.nrows <= 0 {
		return ErrEmptyGrid
	}
	if h.nrows > MaxASCIICells/h.ncols {
		return fmt.Errorf("%w: %d×%d cells exceeds %d", ErrMalformedASCII, h.nrows, h.ncols, MaxASCIICells)
	}
	if h.cellSize <= 0 {
		return fmt.Errorf("%w: cellsize must be positive", ErrMalformedASCII)
	}
	return nil
}

func (h *asciiHeader) transform() Affine {
	west, south := h.xll, h.yll
	if h.centered {
		west -= h.cellSize / 2
		south -= h.cellSize / 2
	}
	return NorthUp(west, south+float64(h.nrows)*h.cellSize, h.cellSize)
}

// WriteASCII writes g as an ESRI ASCII grid. The grid's transform must be
// north-up with square pixels (ErrNotNorthUp otherwise).
func WriteASCII(w io.Writer, g Grid) error {
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyGrid
	}
	t := g.Transform()
	if !t.isNorthUp() {
		return ErrNotNorthUp
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "ncols %d\n", cols)
	fmt.Fprintf(bw, "nrows %d\n", rows)
	fmt.Fprintf(bw, "xllcorner %s\n", formatFloat(t.C))
	fmt.Fprintf(bw, "yllcorner %s\n", formatFloat(t.F+float64(rows)*t.E))
	fmt.Fprintf(bw, "cellsize %s\n", formatFloat(t.A))
	if nd, ok := g.NoData(); ok {
		fmt.Fprintf(bw, "NODATA_value %s\n", formatFloat(nd))
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				bw.WriteByte(' ')
			}
			bw.WriteString(formatFloat(g.At(r, c)))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

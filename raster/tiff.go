package raster

import (
	"image"
	"image/color"
	"io"
	"math"

	"golang.org/x/image/tiff"
)

// EncodeClassTIFF writes g as a single-band 8-bit deflate-compressed TIFF.
// It is meant for class rasters: values are rounded and clamped to [0,255],
// nodata and NaN cells are written as 0.
func EncodeClassTIFF(w io.Writer, g Grid) error {
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 {
		return ErrEmptyGrid
	}
	missing := NoDataMatcher(g)
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := g.At(r, c)
			if missing(v) {
				continue
			}
			img.SetGray(c, r, color.Gray{Y: clampByte(v)})
		}
	}

	return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	switch {
	case v <= 0:
		return 0
	case v >= math.MaxUint8:
		return math.MaxUint8
	}
	return uint8(v)
}

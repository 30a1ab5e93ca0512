// Package raster is the grid accessor layer of commandarea: a read-only view
// of an elevation model together with its nodata sentinel and georeferencing.
//
// What:
//
//   - Grid is the interface the delineation core consumes: Dims, At, NoData
//     and Transform.
//   - Dense is the in-memory Grid, backed by a gonum *mat.Dense and deep-copied
//     on construction so the view stays immutable.
//   - Affine maps pixel (col,row) to geographic (x,y) in rasterio order and can
//     be inverted to resolve a geographic point to a pixel.
//   - ReadASCII / WriteASCII move grids in and out of ESRI ASCII grid files.
//   - EncodeClassTIFF writes a small-integer class raster as an 8-bit TIFF.
//
// Connectivity:
//
//   - Conn4: N, E, S, W.
//   - Conn8: N, NE, E, SE, S, SW, W, NW.
//
// Complexity:
//
//   - NewDense, FromMatrix: O(W×H) time and memory (deep copy).
//   - ReadASCII, WriteASCII, EncodeClassTIFF: O(W×H).
//   - Affine.Inverse: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrSingularTransform: the affine transform cannot be inverted.
//   - ErrMalformedASCII: an ASCII grid header or body could not be parsed.
//   - ErrNotNorthUp: the transform cannot be expressed as an ASCII grid header.
package raster

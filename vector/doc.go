// Package vector turns a finished command mask into vector-ready features:
// one polygon per contiguous region of equal class.
//
// What:
//
//   - Label finds 4-connected regions of Default and FloodExpansion cells,
//     the default connectivity of GDAL polygonize.
//   - Labeling.Rings traces a region's outline along pixel edges into closed
//     rings of pixel-corner vertices. Shells have positive area in pixel
//     space (row axis pointing down), holes negative.
//   - Polygonize georeferences the rings through the grid's affine transform
//     and returns Features tagged with value, flood_level, area_sq_units
//     (the whole command area), region_area and type.
//   - WriteGeoJSON encodes features as a GeoJSON FeatureCollection.
//
// Where two cells of a region touch only at a corner, tracing turns toward
// the outside so that each ring follows a single neighbouring component:
// shells and holes may share a vertex but never cross.
//
// Complexity:
//
//   - Label: O(W×H×4) time, O(W×H) memory.
//   - Rings: O(R) time and memory, R = region size.
package vector

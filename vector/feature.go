package vector

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/raster"
)

// ErrNilMask is returned when Polygonize is given no mask.
var ErrNilMask = errors.New("vector: nil mask")

// Feature is one georeferenced region of a command mask.
type Feature struct {
	Class      command.Class
	FloodLevel float64
	// Area is the whole command area (all Default and FloodExpansion
	// pixels), shared by every feature of one mask.
	Area float64
	// RegionArea is this region's pixel count times the absolute pixel area.
	RegionArea float64
	Geometry   geom.Geometry
}

// Properties returns the GeoJSON properties of f.
func (f Feature) Properties() map[string]interface{} {
	return map[string]interface{}{
		"value":         int(f.Class),
		"flood_level":   f.FloodLevel,
		"area_sq_units": f.Area,
		"region_area":   f.RegionArea,
		"type":          f.Class.String(),
	}
}

// Polygonize converts every Default and FloodExpansion region of m into a
// Feature. Coordinates are pixel corners mapped through t; regions come out
// in row-major order of their first cell.
func Polygonize(m *command.Mask, t raster.Affine, floodLevel float64) ([]Feature, error) {
	if m == nil {
		return nil, ErrNilMask
	}
	pixelArea := t.PixelArea()
	l := Label(m)
	total := float64(m.Count(command.Default)+m.Count(command.FloodExpansion)) * pixelArea
	features := make([]Feature, 0, len(l.Regions))
	for _, reg := range l.Regions {
		g, err := geometry(l.Rings(reg.ID), t)
		if err != nil {
			return nil, fmt.Errorf("vector: region %d: %w", reg.ID, err)
		}
		features = append(features, Feature{
			Class:      reg.Class,
			FloodLevel: floodLevel,
			Area:       total,
			RegionArea: float64(len(reg.Cells)) * pixelArea,
			Geometry:   g,
		})
	}
	return features, nil
}

// FromResult polygonizes a computed command area.
func FromResult(res *command.Result) ([]Feature, error) {
	if res == nil {
		return nil, ErrNilMask
	}
	return Polygonize(res.Mask, res.Transform, res.FloodLevel)
}

// geometry assembles traced rings into a Polygon, or a MultiPolygon when a
// region somehow yields more than one shell.
func geometry(rings []Ring, t raster.Affine) (geom.Geometry, error) {
	var shells, holes []Ring
	for _, r := range rings {
		if r.Area() > 0 {
			shells = append(shells, r)
		} else {
			holes = append(holes, r)
		}
	}
	if len(shells) == 0 {
		return geom.Geometry{}, errors.New("no outer ring")
	}

	owned := make([][]Ring, len(shells))
	for _, h := range holes {
		i := owner(shells, h)
		owned[i] = append(owned[i], h)
	}
	polys := make([]geom.Polygon, len(shells))
	for i, s := range shells {
		lss := []geom.LineString{lineString(s, t)}
		for _, h := range owned[i] {
			lss = append(lss, lineString(h, t))
		}
		polys[i] = geom.NewPolygon(lss)
	}
	if len(polys) == 1 {
		return polys[0].AsGeometry(), nil
	}
	return geom.NewMultiPolygon(polys).AsGeometry(), nil
}

// owner picks the first shell whose bounding box covers hole h.
func owner(shells []Ring, h Ring) int {
	hx0, hy0, hx1, hy1 := h.bounds()
	for i, s := range shells {
		sx0, sy0, sx1, sy1 := s.bounds()
		if sx0 <= hx0 && sy0 <= hy0 && sx1 >= hx1 && sy1 >= hy1 {
			return i
		}
	}
	return 0
}

func lineString(r Ring, t raster.Affine) geom.LineString {
	coords := make([]float64, 0, 2*len(r))
	for _, v := range r {
		x, y := t.Apply(float64(v.X), float64(v.Y))
		coords = append(coords, x, y)
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}

// Collection wraps features for GeoJSON encoding.
func Collection(features []Feature) geom.GeoJSONFeatureCollection {
	fc := make(geom.GeoJSONFeatureCollection, len(features))
	for i, f := range features {
		fc[i] = geom.GeoJSONFeature{
			Geometry:   f.Geometry,
			ID:         i,
			Properties: f.Properties(),
		}
	}
	return fc
}

// WriteGeoJSON encodes features to w as a FeatureCollection.
func WriteGeoJSON(w io.Writer, features []Feature) error {
	if err := json.NewEncoder(w).Encode(Collection(features)); err != nil {
		return fmt.Errorf("vector: encode geojson: %w", err)
	}
	return nil
}

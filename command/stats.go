package command

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/commandarea/raster"
)

// ElevationSummary describes the elevations inside the command area.
type ElevationSummary struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Stats is the per-class accounting of a finished mask. Areas are in the
// grid's linear units squared.
type Stats struct {
	FloodLevel      float64          `json:"flood_level"`
	DefaultPixels   int              `json:"default_pixels"`
	ExpansionPixels int              `json:"expansion_pixels"`
	TotalPixels     int              `json:"total_pixels"`
	PixelArea       float64          `json:"pixel_area"`
	DefaultArea     float64          `json:"default_area"`
	ExpansionArea   float64          `json:"expansion_area"`
	TotalArea       float64          `json:"total_area"`
	Elevation       ElevationSummary `json:"elevation"`
}

// Summarize counts the Default and FloodExpansion cells of m, converts them
// to areas with |A·E| of g's transform and summarises their elevations.
// m is not modified.
// Returns ErrEmptyGrid or ErrMaskMismatch.
// Complexity: O(W×H).
func Summarize(g raster.Grid, m *Mask, floodLevel float64) (Stats, error) {
	if err := checkGrid(g); err != nil {
		return Stats{}, err
	}
	if !m.fits(g) {
		return Stats{}, ErrMaskMismatch
	}

	s := Stats{
		FloodLevel: floodLevel,
		PixelArea:  g.Transform().PixelArea(),
	}
	var elev []float64
	for i, c := range m.cells {
		switch c {
		case Default:
			s.DefaultPixels++
		case FloodExpansion:
			s.ExpansionPixels++
		default:
			continue
		}
		r, col := raster.Coordinate(m.cols, i)
		elev = append(elev, g.At(r, col))
	}
	s.TotalPixels = s.DefaultPixels + s.ExpansionPixels
	s.DefaultArea = float64(s.DefaultPixels) * s.PixelArea
	s.ExpansionArea = float64(s.ExpansionPixels) * s.PixelArea
	s.TotalArea = float64(s.TotalPixels) * s.PixelArea
	s.Elevation = summarizeElevation(elev)

	return s, nil
}

func summarizeElevation(elev []float64) ElevationSummary {
	if len(elev) == 0 {
		return ElevationSummary{}
	}
	es := ElevationSummary{Min: floats.Min(elev), Max: floats.Max(elev)}
	if len(elev) == 1 {
		es.Mean = elev[0]
		return es
	}
	es.Mean, es.StdDev = stat.MeanStdDev(elev, nil)
	return es
}

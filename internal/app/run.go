package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"slices"
	"strconv"

	"github.com/katalvlaran/commandarea/batch"
	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/config"
	"github.com/katalvlaran/commandarea/internal/ctxlog"
	"github.com/katalvlaran/commandarea/raster"
	"github.com/katalvlaran/commandarea/store"
	"github.com/katalvlaran/commandarea/vector"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	run, err := resolveRun(cfg)
	if err != nil {
		return err
	}
	a.logger.Info("Run resolved.", "dem", run.DEM, "outlets", len(run.Outlets), "formats", run.Formats)

	grid, err := readDEM(run.DEM)
	if err != nil {
		return err
	}
	rows, cols := grid.Dims()
	a.logger.Debug("DEM loaded.", "rows", rows, "cols", cols)

	sink, err := a.openStore(ctx, run)
	if err != nil {
		return fmt.Errorf("open output store: %w", err)
	}

	opts := []batch.Option{
		batch.WithMaxFloodLevel(run.MaxFloodLevel),
		batch.WithHandler(publish(sink, run)),
	}
	if run.Workers > 0 {
		opts = append(opts, batch.WithWorkers(run.Workers))
	}
	runner, err := batch.New(grid, opts...)
	if err != nil {
		return err
	}
	if _, err := runner.Run(ctx, run.Jobs()); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// resolveRun loads the run file, or builds a single-outlet run, and applies
// command-line overrides.
func resolveRun(cfg *Config) (*config.Run, error) {
	var run *config.Run
	if cfg.ConfigPath != "" {
		r, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		run = r
	} else {
		run = &config.Run{
			OutputDir:     "out",
			MaxFloodLevel: command.DefaultMaxFloodLevel,
			Formats:       slices.Clone(config.AllFormats),
			Outlets:       []config.Outlet{{Name: DefaultOutletName, Lon: *cfg.Lon, Lat: *cfg.Lat}},
		}
	}

	if cfg.DEM != "" {
		run.DEM = cfg.DEM
	}
	if cfg.OutputDir != "" {
		run.OutputDir = cfg.OutputDir
	}
	if cfg.MaxFloodLevel != nil {
		run.MaxFloodLevel = *cfg.MaxFloodLevel
	}
	if cfg.Workers > 0 {
		run.Workers = cfg.Workers
	}
	if cfg.FloodLevel != nil {
		run.FloodLevel = *cfg.FloodLevel
		for i := range run.Outlets {
			run.Outlets[i].FloodLevel = *cfg.FloodLevel
		}
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

// DefaultOutletName names the outlet given on the command line.
const DefaultOutletName = "outlet"

// OutputName is the base name of every output of one flood level.
func OutputName(floodLevel float64) string {
	return "command_area_flood_" + strconv.FormatFloat(floodLevel, 'f', -1, 64) + "m"
}

// report is the stats output of one job.
type report struct {
	Outlet     string        `json:"outlet"`
	Lon        float64       `json:"lon"`
	Lat        float64       `json:"lat"`
	Row        int           `json:"row"`
	Col        int           `json:"col"`
	FloodLevel float64       `json:"flood_level"`
	Stats      command.Stats `json:"stats"`
}

// publish writes the requested formats of each result under
// <outlet>/command_area_flood_<level>m.<ext>.
func publish(sink store.Store, run *config.Run) batch.Handler {
	return func(ctx context.Context, job batch.Job, res *command.Result) error {
		logger := ctxlog.FromContext(ctx)
		base := path.Join(job.Name, OutputName(res.FloodLevel))
		put := func(ext string, data []byte) error {
			if err := sink.Put(ctx, base+ext, data); err != nil {
				return fmt.Errorf("publish %s%s: %w", base, ext, err)
			}
			logger.Debug("Output written.", "name", base+ext, "bytes", len(data))
			return nil
		}

		var buf bytes.Buffer
		if run.Wants(config.FormatTIFF) {
			if err := raster.EncodeClassTIFF(&buf, res.Raster()); err != nil {
				return err
			}
			if err := put(".tif", buf.Bytes()); err != nil {
				return err
			}
			if err := put(".tfw", res.Transform.WorldFile()); err != nil {
				return err
			}
		}
		if run.Wants(config.FormatASCII) {
			buf.Reset()
			if err := raster.WriteASCII(&buf, res.Raster()); err != nil {
				return err
			}
			if err := put(".asc", buf.Bytes()); err != nil {
				return err
			}
		}
		if run.Wants(config.FormatGeoJSON) {
			features, err := vector.FromResult(res)
			if err != nil {
				return err
			}
			buf.Reset()
			if err := vector.WriteGeoJSON(&buf, features); err != nil {
				return err
			}
			if err := put(".geojson", buf.Bytes()); err != nil {
				return err
			}
		}
		if run.Wants(config.FormatStats) {
			data, err := json.MarshalIndent(report{
				Outlet:     job.Name,
				Lon:        job.X,
				Lat:        job.Y,
				Row:        res.Outlet.Row,
				Col:        res.Outlet.Col,
				FloodLevel: res.FloodLevel,
				Stats:      res.Stats,
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("encode stats: %w", err)
			}
			if err := put(".json", data); err != nil {
				return err
			}
		}
		return nil
	}
}

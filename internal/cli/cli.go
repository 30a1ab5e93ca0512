// Package cli turns command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/katalvlaran/commandarea/config"
	"github.com/katalvlaran/commandarea/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// env supplies the default log level.
func Parse(args []string, output io.Writer, env config.Env) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("commandarea", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
commandarea - delineates the land a reservoir outlet can irrigate by gravity.

Usage:
  commandarea -config run.hcl [options]
  commandarea -dem dem.asc -lon X -lat Y [options]

Outputs per outlet and flood level (command_area_flood_<h>m.*):
  .tif/.tfw   class raster (0 outside, 1 default, 2 flood expansion)
  .asc        the same raster as an ESRI ASCII grid
  .geojson    one polygon per contiguous region
  .json       pixel counts, areas and elevation summary

Options:
`)
		flagSet.PrintDefaults()
	}

	defaultLevel := "info"
	if env.LogLevel != "" {
		defaultLevel = env.LogLevel
	}

	configFlag := flagSet.String("config", "", "Path to an HCL run file.")
	demFlag := flagSet.String("dem", "", "Path to the DEM (ESRI ASCII grid). Overrides the run file.")
	lonFlag := flagSet.Float64("lon", 0, "Outlet x coordinate in the DEM's reference system.")
	latFlag := flagSet.Float64("lat", 0, "Outlet y coordinate in the DEM's reference system.")
	floodFlag := flagSet.Float64("flood", 0, "Flood level in metres added at the default area's rim. Overrides the run file.")
	maxFloodFlag := flagSet.Float64("max-flood", 0, "Upper bound for the flood level. Overrides the run file.")
	outFlag := flagSet.String("out", "", "Output directory. Overrides the run file.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent jobs. 0 uses one per CPU.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaultLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 0 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("unexpected arguments: %s", strings.Join(flagSet.Args(), " "))}
	}
	if *configFlag == "" && *demFlag == "" {
		slog.Debug("No run file or DEM provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Only flags given explicitly override the run file.
	set := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { set[f.Name] = true })
	optional := func(name string, v *float64) *float64 {
		if set[name] {
			return v
		}
		return nil
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPath:    *configFlag,
		DEM:           *demFlag,
		Lon:           optional("lon", lonFlag),
		Lat:           optional("lat", latFlag),
		OutputDir:     *outFlag,
		FloodLevel:    optional("flood", floodFlag),
		MaxFloodLevel: optional("max-flood", maxFloodFlag),
		Workers:       *workersFlag,
		LogFormat:     logFormat,
		LogLevel:      logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

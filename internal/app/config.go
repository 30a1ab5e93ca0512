package app

import (
	"errors"
	"math"
)

// Config holds all the necessary configuration for an App instance to run.
// A run comes either from a run file (ConfigPath) or from a single outlet
// given on the command line (DEM, Lon, Lat). Non-nil overrides replace the
// run file's values.
type Config struct {
	ConfigPath string // hcl run file

	DEM       string
	Lon, Lat  *float64
	OutputDir string

	FloodLevel    *float64
	MaxFloodLevel *float64
	Workers       int

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		if cfg.DEM == "" {
			return nil, errors.New("either a run file or a DEM is required")
		}
		if cfg.Lon == nil || cfg.Lat == nil {
			return nil, errors.New("lon and lat are required without a run file")
		}
	} else if cfg.Lon != nil || cfg.Lat != nil {
		return nil, errors.New("lon and lat cannot be combined with a run file; add an outlet block instead")
	}
	for _, v := range []*float64{cfg.Lon, cfg.Lat, cfg.FloodLevel, cfg.MaxFloodLevel} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return nil, errors.New("numeric options must be finite")
		}
	}
	if cfg.Workers < 0 {
		return nil, errors.New("workers must not be negative")
	}
	return &cfg, nil
}

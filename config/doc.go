// Package config loads a command-area run description.
//
// A run is described by an HCL file:
//
//	dem             = "${env.DEM_DIR}/dem.asc"
//	output_dir      = "out"
//	flood_level     = 2.5
//	max_flood_level = 10
//	workers         = 4
//	formats         = ["tiff", "asc", "geojson", "stats"]
//
//	outlet "main" {
//	  lon         = 80.692317
//	  lat         = 6.258161
//	  flood_level = 1 # optional, overrides the file-level value
//	}
//
// Expressions may read the process environment through the env object.
// Settings that do not belong in a shared file, like object-store
// credentials, come from the environment, optionally seeded from a .env
// file; see LoadEnv.
package config

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/commandarea/batch"
	"github.com/katalvlaran/commandarea/command"
)

const fullRun = `
dem             = "${env.DEM_DIR}/dem.asc"
output_dir      = "results"
flood_level     = 2.5
max_flood_level = 8
workers         = 4
formats         = ["tiff", "geojson"]

outlet "main" {
  lon = 80.692317
  lat = 6.258161
}

outlet "spill" {
  lon         = 80.7
  lat         = 6.25
  flood_level = 0
}
`

func TestParse_Full(t *testing.T) {
	run, err := Parse("run.hcl", []byte(fullRun), []string{"DEM_DIR=/data", "1BAD=x", "NOEQUALS"})
	require.NoError(t, err)

	want := &Run{
		DEM:           "/data/dem.asc",
		OutputDir:     "results",
		FloodLevel:    2.5,
		MaxFloodLevel: 8,
		Workers:       4,
		Formats:       []string{FormatTIFF, FormatGeoJSON},
		Outlets: []Outlet{
			{Name: "main", Lon: 80.692317, Lat: 6.258161, FloodLevel: 2.5},
			{Name: "spill", Lon: 80.7, Lat: 6.25, FloodLevel: 0},
		},
	}
	if diff := cmp.Diff(want, run); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, run.Wants(FormatTIFF))
	assert.False(t, run.Wants(FormatStats))
	assert.Equal(t, []batch.Job{
		{Name: "main", X: 80.692317, Y: 6.258161, FloodLevel: 2.5},
		{Name: "spill", X: 80.7, Y: 6.25, FloodLevel: 0},
	}, run.Jobs())
}

func TestParse_Defaults(t *testing.T) {
	src := `
dem = "dem.asc"
outlet "a" {
  lon = 1
  lat = 2
}
`
	run, err := Parse("run.hcl", []byte(src), nil)
	require.NoError(t, err)

	want := &Run{
		DEM:           "dem.asc",
		OutputDir:     "out",
		MaxFloodLevel: command.DefaultMaxFloodLevel,
		Formats:       AllFormats,
		Outlets:       []Outlet{{Name: "a", Lon: 1, Lat: 2}},
	}
	if diff := cmp.Diff(want, run); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want error
	}{
		{"NoOutlets", `dem = "d.asc"`, ErrNoOutlets},
		{"EmptyDEM", `
dem = " "
outlet "a" {
  lon = 1
  lat = 2
}`, ErrInvalid},
		{"DuplicateOutlet", `
dem = "d.asc"
outlet "a" {
  lon = 1
  lat = 2
}
outlet "a" {
  lon = 3
  lat = 4
}`, ErrInvalid},
		{"UnknownFormat", `
dem     = "d.asc"
formats = ["png"]
outlet "a" {
  lon = 1
  lat = 2
}`, ErrInvalid},
		{"NegativeWorkers", `
dem     = "d.asc"
workers = -1
outlet "a" {
  lon = 1
  lat = 2
}`, ErrInvalid},
		{"FloodAboveMax", `
dem             = "d.asc"
max_flood_level = 2
outlet "a" {
  lon         = 1
  lat         = 2
  flood_level = 3
}`, command.ErrInvalidFloodLevel},
		{"NegativeFlood", `
dem         = "d.asc"
flood_level = -1
outlet "a" {
  lon = 1
  lat = 2
}`, command.ErrInvalidFloodLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("run.hcl", []byte(tc.src), nil)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestParse_HCLDiagnostics(t *testing.T) {
	cases := map[string]string{
		"Syntax":       `dem = `,
		"MissingDEM":   "outlet \"a\" {\n  lon = 1\n  lat = 2\n}\n",
		"UnknownEnv":   "dem = env.NOPE\noutlet \"a\" {\n  lon = 1\n  lat = 2\n}\n",
		"UnknownAttr":  "dem = \"d\"\ncolor = \"red\"\n",
		"MissingLabel": "dem = \"d\"\noutlet {\n  lon = 1\n  lat = 2\n}\n",
		"StringForLon": "dem = \"d\"\noutlet \"a\" {\n  lon = \"east\"\n  lat = 2\n}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("run.hcl", []byte(src), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "run.hcl")
		})
	}
}

func TestLoad_ResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.hcl")
	src := "dem = \"dem.asc\"\noutput_dir = \"/abs/out\"\noutlet \"a\" {\n  lon = 1\n  lat = 2\n}\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	run, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dem.asc"), run.DEM)
	assert.Equal(t, "/abs/out", run.OutputDir)

	_, err = Load(filepath.Join(dir, "missing.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

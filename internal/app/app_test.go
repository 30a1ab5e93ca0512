package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/config"
	"github.com/katalvlaran/commandarea/raster"
	"github.com/katalvlaran/commandarea/store"
)

// demASC is a 3×5 slope with a ridge in column 3; 10 m pixels, origin (0,0).
const demASC = `ncols 5
nrows 3
xllcorner 0
yllcorner 0
cellsize 10
NODATA_value -9999
50 48 46 49 40
47 45 44 47 38
52 51 43 46 37
`

func writeDEM(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "dem.asc")
	require.NoError(t, os.WriteFile(p, []byte(demASC), 0o644))
	return p
}

func ptr(v float64) *float64 { return &v }

func newTestApp(t *testing.T, cfg *Config, s store.Store) (*App, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	return NewApp(&logs, cfg, config.Env{}, WithStore(s)), &logs
}

func TestRun_SingleOutlet(t *testing.T) {
	cfg, err := NewConfig(Config{DEM: writeDEM(t), Lon: ptr(5), Lat: ptr(25), FloodLevel: ptr(3), LogLevel: "debug"})
	require.NoError(t, err)
	mem := store.NewMemory()
	a, logs := newTestApp(t, cfg, mem)

	require.NoError(t, a.Run(context.Background(), cfg))

	names, err := mem.List(context.Background())
	require.NoError(t, err)
	base := "outlet/command_area_flood_3m"
	assert.Equal(t, []string{base + ".asc", base + ".geojson", base + ".json", base + ".tfw", base + ".tif"}, names)
	assert.Contains(t, logs.String(), "Batch completed.")

	data, err := mem.Get(context.Background(), base+".json")
	require.NoError(t, err)
	var rep report
	require.NoError(t, json.Unmarshal(data, &rep))
	assert.Equal(t, "outlet", rep.Outlet)
	assert.Equal(t, 0, rep.Row)
	assert.Equal(t, 0, rep.Col)
	assert.Equal(t, 7, rep.Stats.DefaultPixels)
	assert.Equal(t, 6, rep.Stats.ExpansionPixels)
	assert.Equal(t, 1300.0, rep.Stats.TotalArea)

	asc, err := mem.Get(context.Background(), base+".asc")
	require.NoError(t, err)
	mask, err := raster.ReadASCII(bytes.NewReader(asc))
	require.NoError(t, err)
	assert.Equal(t, float64(command.Default), mask.At(0, 0))
	assert.Equal(t, float64(command.Unvisited), mask.At(2, 0))
	assert.Equal(t, raster.NorthUp(0, 30, 10), mask.Transform())
}

func TestRun_RunFile(t *testing.T) {
	dir := t.TempDir()
	dem := writeDEM(t)
	src := `
dem     = "` + filepath.ToSlash(dem) + `"
formats = ["stats", "geojson"]

outlet "west" {
  lon = 5
  lat = 25
}

outlet "west-flooded" {
  lon         = 5
  lat         = 25
  flood_level = 3
}

outlet "east" {
  lon = 45
  lat = 5
}
`
	runFile := filepath.Join(dir, "run.hcl")
	require.NoError(t, os.WriteFile(runFile, []byte(src), 0o644))

	cfg, err := NewConfig(Config{ConfigPath: runFile, Workers: 2})
	require.NoError(t, err)
	mem := store.NewMemory()
	a, _ := newTestApp(t, cfg, mem)
	require.NoError(t, a.Run(context.Background(), cfg))

	names, err := mem.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"east/command_area_flood_0m.geojson",
		"east/command_area_flood_0m.json",
		"west-flooded/command_area_flood_3m.geojson",
		"west-flooded/command_area_flood_3m.json",
		"west/command_area_flood_0m.geojson",
		"west/command_area_flood_0m.json",
	}, names)
}

func TestRun_DirectoryStore(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results")
	cfg, err := NewConfig(Config{DEM: writeDEM(t), Lon: ptr(5), Lat: ptr(25), OutputDir: out})
	require.NoError(t, err)
	a := NewApp(&bytes.Buffer{}, cfg, config.Env{})

	require.NoError(t, a.Run(context.Background(), cfg))
	_, err = os.Stat(filepath.Join(out, "outlet", "command_area_flood_0m.tif"))
	assert.NoError(t, err)
}

func TestRun_Errors(t *testing.T) {
	dem := writeDEM(t)
	cases := []struct {
		name string
		cfg  Config
		want error
	}{
		{"OutletOffGrid", Config{DEM: dem, Lon: ptr(500), Lat: ptr(25)}, command.ErrOutOfBounds},
		{"FloodAboveMax", Config{DEM: dem, Lon: ptr(5), Lat: ptr(25), FloodLevel: ptr(4), MaxFloodLevel: ptr(3)}, command.ErrInvalidFloodLevel},
		{"MissingDEM", Config{DEM: filepath.Join(t.TempDir(), "none.asc"), Lon: ptr(5), Lat: ptr(25)}, os.ErrNotExist},
		{"MissingRunFile", Config{ConfigPath: filepath.Join(t.TempDir(), "none.hcl")}, os.ErrNotExist},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.cfg)
			require.NoError(t, err)
			mem := store.NewMemory()
			a, _ := newTestApp(t, cfg, mem)
			assert.ErrorIs(t, a.Run(context.Background(), cfg), tc.want)
		})
	}
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)
	_, err = NewConfig(Config{DEM: "d.asc", Lon: ptr(1)})
	assert.Error(t, err)
	_, err = NewConfig(Config{ConfigPath: "run.hcl", Lat: ptr(1)})
	assert.Error(t, err)
	_, err = NewConfig(Config{ConfigPath: "run.hcl", Workers: -1})
	assert.Error(t, err)
	_, err = NewConfig(Config{DEM: "d.asc", Lon: ptr(1), Lat: ptr(2), FloodLevel: ptr(0)})
	assert.NoError(t, err)
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "command_area_flood_0m", OutputName(0))
	assert.Equal(t, "command_area_flood_2.5m", OutputName(2.5))
	assert.True(t, strings.HasSuffix(OutputName(10), "_10m"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger("warn", "json", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/commandarea/batch"
	"github.com/katalvlaran/commandarea/command"
)

// Output formats.
const (
	FormatTIFF    = "tiff"
	FormatASCII   = "asc"
	FormatGeoJSON = "geojson"
	FormatStats   = "stats"
)

// AllFormats lists every output format in write order.
var AllFormats = []string{FormatTIFF, FormatASCII, FormatGeoJSON, FormatStats}

var (
	ErrNoOutlets = errors.New("config: at least one outlet block is required")
	ErrInvalid   = errors.New("config: invalid value")
)

// Outlet is one outlet block.
type Outlet struct {
	Name       string
	Lon, Lat   float64
	FloodLevel float64
}

// Run is a validated run description with defaults applied.
type Run struct {
	DEM           string
	OutputDir     string
	FloodLevel    float64
	MaxFloodLevel float64
	// Workers is the batch worker limit; 0 lets the runner choose.
	Workers int
	Formats []string
	Outlets []Outlet
}

// hclRunFile represents the top-level structure of a run file for decoding.
type hclRunFile struct {
	DEM           string       `hcl:"dem"`
	OutputDir     *string      `hcl:"output_dir,optional"`
	FloodLevel    *float64     `hcl:"flood_level,optional"`
	MaxFloodLevel *float64     `hcl:"max_flood_level,optional"`
	Workers       *int         `hcl:"workers,optional"`
	Formats       []string     `hcl:"formats,optional"`
	Outlets       []*hclOutlet `hcl:"outlet,block"`
}

type hclOutlet struct {
	Name       string   `hcl:"name,label"`
	Lon        float64  `hcl:"lon"`
	Lat        float64  `hcl:"lat"`
	FloodLevel *float64 `hcl:"flood_level,optional"`
}

// Load parses the run file at path. Relative dem and output_dir values are
// resolved against the file's directory.
func Load(path string) (*Run, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	run, err := Parse(path, src, os.Environ())
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	run.DEM = resolve(base, run.DEM)
	run.OutputDir = resolve(base, run.OutputDir)
	return run, nil
}

// Parse decodes src as a run file named filename. environ, in os.Environ
// form, populates the env object visible to expressions.
func Parse(filename string, src []byte, environ []string) (*Run, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to parse %s: %w", filename, diags)
	}

	var parsed hclRunFile
	diags = gohcl.DecodeBody(file.Body, evalContext(environ), &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("config: failed to decode %s: %w", filename, diags)
	}
	return parsed.build()
}

// evalContext exposes environ as the env object.
func evalContext(environ []string) *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || !hclIdentifier(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vars)},
	}
}

// hclIdentifier reports whether k can be used as an attribute name in an
// HCL traversal such as env.HOME.
func hclIdentifier(k string) bool {
	for i, r := range k {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

func (f *hclRunFile) build() (*Run, error) {
	run := &Run{
		DEM:           strings.TrimSpace(f.DEM),
		OutputDir:     "out",
		MaxFloodLevel: command.DefaultMaxFloodLevel,
		Formats:       slices.Clone(AllFormats),
	}
	if run.DEM == "" {
		return nil, fmt.Errorf("%w: dem is empty", ErrInvalid)
	}
	if f.OutputDir != nil {
		run.OutputDir = *f.OutputDir
	}
	if f.FloodLevel != nil {
		run.FloodLevel = *f.FloodLevel
	}
	if f.MaxFloodLevel != nil {
		run.MaxFloodLevel = *f.MaxFloodLevel
	}
	if f.Workers != nil {
		run.Workers = *f.Workers
	}
	if f.Formats != nil {
		run.Formats = f.Formats
	}

	seen := make(map[string]bool, len(f.Outlets))
	for _, o := range f.Outlets {
		if seen[o.Name] {
			return nil, fmt.Errorf("%w: duplicate outlet %q", ErrInvalid, o.Name)
		}
		seen[o.Name] = true
		out := Outlet{Name: o.Name, Lon: o.Lon, Lat: o.Lat, FloodLevel: run.FloodLevel}
		if o.FloodLevel != nil {
			out.FloodLevel = *o.FloodLevel
		}
		run.Outlets = append(run.Outlets, out)
	}
	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

// Validate checks a Run, including one assembled or overridden by hand.
func (r *Run) Validate() error {
	if len(r.Outlets) == 0 {
		return ErrNoOutlets
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalid, r.Workers)
	}
	if len(r.Formats) == 0 {
		return fmt.Errorf("%w: formats is empty", ErrInvalid)
	}
	for _, f := range r.Formats {
		if !slices.Contains(AllFormats, f) {
			return fmt.Errorf("%w: unknown format %q", ErrInvalid, f)
		}
	}
	for _, o := range r.Outlets {
		if o.Name == "" {
			return fmt.Errorf("%w: outlet without a name", ErrInvalid)
		}
		if !finite(o.Lon) || !finite(o.Lat) {
			return fmt.Errorf("%w: outlet %q has non-finite coordinates", ErrInvalid, o.Name)
		}
		opts := []command.Option{command.WithFloodLevel(o.FloodLevel), command.WithMaxFloodLevel(r.MaxFloodLevel)}
		if err := command.Validate(opts...); err != nil {
			return fmt.Errorf("config: outlet %q: %w", o.Name, err)
		}
	}
	return nil
}

// Jobs converts the outlets into batch jobs, in file order.
func (r *Run) Jobs() []batch.Job {
	jobs := make([]batch.Job, len(r.Outlets))
	for i, o := range r.Outlets {
		jobs[i] = batch.Job{Name: o.Name, X: o.Lon, Y: o.Lat, FloodLevel: o.FloodLevel}
	}
	return jobs
}

// Wants reports whether format is among the run's outputs.
func (r *Run) Wants(format string) bool {
	return slices.Contains(r.Formats, format)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

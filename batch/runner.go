package batch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/katalvlaran/commandarea/command"
	"github.com/katalvlaran/commandarea/internal/ctxlog"
	"github.com/katalvlaran/commandarea/raster"
)

// DefaultCacheSize is the number of default areas kept per Runner.
const DefaultCacheSize = 16

// ErrInvalidOption is returned by New when an Option carries a bad value.
var ErrInvalidOption = errors.New("batch: invalid option")

// Job is one outlet and flood level to compute.
type Job struct {
	Name       string
	X, Y       float64
	FloodLevel float64
}

// Handler receives each finished job. It runs on the worker that computed
// the result and may be called concurrently.
type Handler func(ctx context.Context, job Job, res *command.Result) error

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers bounds the number of jobs in flight. n must be positive.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			r.err = fmt.Errorf("%w: workers %d", ErrInvalidOption, n)
			return
		}
		r.workers = n
	}
}

// WithCacheSize sets how many default areas are cached. n must be positive.
func WithCacheSize(n int) Option {
	return func(r *Runner) {
		if n < 1 {
			r.err = fmt.Errorf("%w: cache size %d", ErrInvalidOption, n)
			return
		}
		r.cacheSize = n
	}
}

// WithMaxFloodLevel sets the flood-level bound applied to every job.
func WithMaxFloodLevel(h float64) Option {
	return func(r *Runner) { r.maxFlood = h }
}

// WithHandler registers fn to consume results as they complete.
func WithHandler(fn Handler) Option {
	return func(r *Runner) { r.handler = fn }
}

// Runner computes jobs against a single grid.
type Runner struct {
	grid      raster.Grid
	workers   int
	cacheSize int
	maxFlood  float64
	handler   Handler
	err       error

	cache        *lru.Cache[command.Cell, *command.Mask]
	group        singleflight.Group
	delineations atomic.Int64
}

// New returns a Runner over g.
func New(g raster.Grid, opts ...Option) (*Runner, error) {
	r := &Runner{
		grid:      g,
		workers:   runtime.GOMAXPROCS(0),
		cacheSize: DefaultCacheSize,
		maxFlood:  command.DefaultMaxFloodLevel,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.err != nil {
		return nil, r.err
	}
	if err := command.Validate(command.WithMaxFloodLevel(r.maxFlood)); err != nil {
		return nil, err
	}
	cache, err := lru.New[command.Cell, *command.Mask](r.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("batch: create cache: %w", err)
	}
	r.cache = cache
	return r, nil
}

// Delineations returns how many default areas the Runner has computed.
func (r *Runner) Delineations() int64 {
	return r.delineations.Load()
}

// Run computes all jobs and returns their results in job order. On the first
// failure the remaining jobs are cancelled and no results are returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]*command.Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Starting batch.", "jobs", len(jobs), "workers", r.workers)

	results := make([]*command.Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := r.run(gctx, job)
			if err != nil {
				return fmt.Errorf("batch: job %q: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Batch failed.", "error", err)
		return nil, err
	}
	logger.Info("Batch completed.", "jobs", len(jobs), "delineations", r.Delineations())
	return results, nil
}

func (r *Runner) run(ctx context.Context, job Job) (*command.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx = ctxlog.With(ctx, "job", job.Name)
	logger := ctxlog.FromContext(ctx)

	opts := []command.Option{
		command.WithFloodLevel(job.FloodLevel),
		command.WithMaxFloodLevel(r.maxFlood),
		command.WithLogger(logger),
	}
	if err := command.Validate(opts...); err != nil {
		return nil, err
	}
	outlet, err := command.ResolveOutlet(r.grid, job.X, job.Y)
	if err != nil {
		return nil, err
	}
	base, err := r.base(ctx, outlet)
	if err != nil {
		return nil, err
	}
	res, err := command.Extend(r.grid, base, outlet, opts...)
	if err != nil {
		return nil, err
	}
	logger.Info("Job computed.",
		"outlet", outlet.String(),
		"flood_level", res.FloodLevel,
		"total_pixels", res.Stats.TotalPixels,
		"total_area", res.Stats.TotalArea)

	if r.handler != nil {
		if err := r.handler(ctx, job, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// base returns the default area of outlet, delineating it at most once per
// cache lifetime.
func (r *Runner) base(ctx context.Context, outlet command.Cell) (*command.Mask, error) {
	if m, ok := r.cache.Get(outlet); ok {
		return m, nil
	}
	v, err, _ := r.group.Do(outlet.String(), func() (interface{}, error) {
		if m, ok := r.cache.Get(outlet); ok {
			return m, nil
		}
		m, err := command.Delineate(r.grid, outlet, command.WithLogger(ctxlog.FromContext(ctx)))
		if err != nil {
			return nil, err
		}
		r.delineations.Add(1)
		r.cache.Add(outlet, m)
		return m, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*command.Mask), nil
}

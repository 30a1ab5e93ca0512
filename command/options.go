package command

import (
	"fmt"
	"io"
	"log/slog"
	"math"
)

// DefaultMaxFloodLevel is the upper flood-level bound applied unless
// WithMaxFloodLevel overrides it.
const DefaultMaxFloodLevel = 10.0

// Option configures a computation via functional arguments.
// An invalid Option is recorded and surfaced as ErrInvalidFloodLevel when the
// computation starts.
type Option func(*Options)

// Options holds parameters and callbacks of a computation.
type Options struct {
	// FloodLevel is the tolerance added once at the default area's rim.
	// Zero disables the expansion phase.
	FloodLevel float64

	// MaxFloodLevel bounds FloodLevel. Use math.Inf(1) for no bound.
	MaxFloodLevel float64

	// Logger receives phase summaries at Debug level.
	Logger *slog.Logger

	// OnAdmit is called each time a cell enters the command area.
	OnAdmit func(cell Cell, class Class)

	err error
}

// DefaultOptions returns Options with:
//   - FloodLevel 0 (no expansion)
//   - MaxFloodLevel DefaultMaxFloodLevel
//   - a Logger that discards everything
//   - a no-op OnAdmit.
func DefaultOptions() Options {
	return Options{
		FloodLevel:    0,
		MaxFloodLevel: DefaultMaxFloodLevel,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		OnAdmit:       func(Cell, Class) {},
	}
}

// WithFloodLevel sets the flood-level tolerance.
// Negative, NaN or infinite values are rejected.
func WithFloodLevel(h float64) Option {
	return func(o *Options) {
		if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			o.err = fmt.Errorf("%w: %v", ErrInvalidFloodLevel, h)
			return
		}
		o.FloodLevel = h
	}
}

// WithMaxFloodLevel sets the upper bound for the flood level.
// Negative or NaN bounds are rejected.
func WithMaxFloodLevel(h float64) Option {
	return func(o *Options) {
		if h < 0 || math.IsNaN(h) {
			o.err = fmt.Errorf("%w: maximum %v", ErrInvalidFloodLevel, h)
			return
		}
		o.MaxFloodLevel = h
	}
}

// WithLogger sets the logger used for phase summaries.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnAdmit registers a callback run for every admitted cell.
func WithOnAdmit(fn func(cell Cell, class Class)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnAdmit = fn
		}
	}
}

// newOptions applies opts over the defaults and validates the result.
func newOptions(opts ...Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	if o.FloodLevel > o.MaxFloodLevel {
		return o, fmt.Errorf("%w: %v exceeds maximum %v", ErrInvalidFloodLevel, o.FloodLevel, o.MaxFloodLevel)
	}
	return o, nil
}

// Validate reports whether opts form a valid computation, without running one.
func Validate(opts ...Option) error {
	_, err := newOptions(opts...)
	return err
}

// Package app wires the command-area pipeline together: it resolves the run,
// reads the DEM, runs the batch and publishes every output.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/commandarea/config"
	"github.com/katalvlaran/commandarea/internal/ctxlog"
	"github.com/katalvlaran/commandarea/raster"
	"github.com/katalvlaran/commandarea/store"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	env    config.Env
	store  store.Store
}

// Option customizes an App.
type Option func(*App)

// WithStore publishes outputs to s instead of the store chosen from the
// environment and run file.
func WithStore(s store.Store) Option {
	return func(a *App) { a.store = s }
}

// NewApp is the constructor for the main application. It returns an App with
// its own isolated logger writing to outW.
func NewApp(outW io.Writer, cfg *Config, env config.Env, opts ...Option) *App {
	a := &App{
		outW:   outW,
		logger: newLogger(cfg.LogLevel, cfg.LogFormat, outW),
		env:    env,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger.Debug("Logger configured successfully.")
	return a
}

// openStore picks the output sink: an injected store, the S3 bucket from the
// environment, or the run's output directory.
func (a *App) openStore(ctx context.Context, run *config.Run) (store.Store, error) {
	logger := ctxlog.FromContext(ctx)
	switch {
	case a.store != nil:
		return a.store, nil
	case a.env.S3 != nil:
		s3, err := store.NewS3(*a.env.S3)
		if err != nil {
			return nil, err
		}
		logger.Info("Publishing to S3.", "endpoint", a.env.S3.Endpoint, "bucket", s3.Bucket())
		return s3, nil
	default:
		dir, err := store.NewDir(run.OutputDir)
		if err != nil {
			return nil, err
		}
		logger.Info("Writing to directory.", "path", dir.Root())
		return dir, nil
	}
}

func readDEM(path string) (*raster.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open DEM: %w", err)
	}
	defer f.Close()

	g, err := raster.ReadASCII(f)
	if err != nil {
		return nil, fmt.Errorf("read DEM %s: %w", path, err)
	}
	return g, nil
}

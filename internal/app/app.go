package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/logfields"
	"github.com/vk/compilekit/internal/metrics"
	"github.com/vk/compilekit/internal/registry"
)

var (
	// ErrFatal is returned by Run when the compilation ended with a fatal error.
	ErrFatal = errors.New("compilation failed with a fatal error")
	// ErrStopped is returned by Run when a failing task stopped the pipeline
	// before its last task.
	ErrStopped = errors.New("compilation stopped by a failing task")
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *registry.Registry
	config     *Config
	metrics    *metrics.PrometheusRecorder
	httpServer *http.Server
}

// NewApp is the constructor for the main application. Diagnostics and task
// output go to outW, logs to logW. It panics when two modules register the
// same task type.
func NewApp(outW, logW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All task modules registered.", "count", len(modules), "task_types", reg.Types())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   cfg,
		metrics:  metrics.NewPrometheusRecorder(prometheus.NewRegistry()),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Metrics returns the application's metrics recorder.
func (a *App) Metrics() *metrics.PrometheusRecorder {
	return a.metrics
}

// Run compiles once and, in watch mode, keeps recompiling on changes until
// ctx is done. Without watch mode a fatal compilation returns ErrFatal and
// one cut short by a failing task returns ErrStopped.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer a.closeHealthCheckServer(ctx)
	}

	s, err := a.Compile(ctx)
	if err != nil {
		return err
	}

	if a.config.Watch {
		return a.Watch(ctx)
	}
	if s.HasFatalError() {
		return ErrFatal
	}
	if i, ok := s.StoppedAt(); ok {
		a.logger.Debug("Pipeline stopped early.", logfields.TaskIndex(i))
		return ErrStopped
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}

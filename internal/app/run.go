package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/compilekit/internal/compiler"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/feeder"
	"github.com/vk/compilekit/internal/hcl_adapter"
	"github.com/vk/compilekit/internal/logfields"
	"github.com/vk/compilekit/internal/parser"
	"github.com/vk/compilekit/internal/registry"
	"github.com/vk/compilekit/internal/session"
)

// Compile loads the pipeline, data and sources afresh and runs one
// compilation. Diagnostics are written to the app's output. Errors are
// returned only for problems outside the sources: a bad pipeline definition,
// unreadable data or missing source paths.
func (a *App) Compile(ctx context.Context) (*session.Session, error) {
	logger := ctxlog.FromContext(ctx)

	model, err := hcl_adapter.NewLoader().Load(ctx, a.config.PipelinePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline: %w", err)
	}

	c, opts, err := a.registry.Build(ctx, model.Pipeline,
		parser.Builtins(filepath.Base(a.config.PipelinePath)),
		registry.Env{Out: a.outW},
		compiler.WithRecorder(a.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build pipeline: %w", err)
	}

	if a.config.DataPath != "" {
		data, err := loadData(a.config.DataPath)
		if err != nil {
			return nil, err
		}
		opts.Data = mergeData(opts.Data, data)
		logger.Debug("Option data loaded.", logfields.Path(a.config.DataPath), "names", len(data))
	}

	feeders, err := buildFeeders(a.config.Paths, a.config.Suffix)
	if err != nil {
		return nil, err
	}
	for _, f := range feeders {
		logger.Debug("Feeder ready.", "name", f.Name(), "codes", f.CodeCount())
	}

	s := c.Compile(ctx, feeders, opts)

	if err := s.WriteDiagnostics(a.outW, a.config.Width, a.config.Color); err != nil {
		return s, fmt.Errorf("failed to write diagnostics: %w", err)
	}
	if a.config.MetricsFile != "" {
		if err := a.metrics.WriteTextfile(a.config.MetricsFile); err != nil {
			logger.Error("Failed to write metrics file.", logfields.Path(a.config.MetricsFile), logfields.Error(err))
		}
	}
	return s, nil
}

// buildFeeders makes one feeder per path: a file feeder for a file and a
// folder feeder for a directory.
func buildFeeders(paths []string, suffix string) ([]feeder.Feeder, error) {
	feeders := make([]feeder.Feeder, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("error accessing source path %s: %w", p, err)
		}
		if !info.IsDir() {
			feeders = append(feeders, feeder.FromFile(p))
			continue
		}
		f, err := feeder.FromFolder(p, suffix)
		if err != nil {
			return nil, err
		}
		feeders = append(feeders, f)
	}
	return feeders, nil
}

package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/compilekit/internal/ctxlog"
	"github.com/vk/compilekit/internal/feeder"
	"github.com/vk/compilekit/internal/logfields"
)

// Watch recompiles whenever a watched file changes, until ctx is done.
// Rapid changes are debounced into one compilation.
func (a *App) Watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range a.watchTargets() {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
		logger.Debug("Watching directory.", logfields.Path(dir))
	}
	logger.Info("👀 Watching for changes.", "debounce", a.config.Debounce)

	rerun := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch stopped.")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("File change detected.", logfields.Path(event.Name), "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(a.config.Debounce, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			logger.Info("Change detected, recompiling.")
			if _, err := a.Compile(ctx); err != nil {
				logger.Error("Recompilation failed.", logfields.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("File watcher error.", logfields.Error(err))
		}
	}
}

// watchTargets lists the directories holding the pipeline, the data file and
// the sources.
func (a *App) watchTargets() []string {
	set := make(map[string]struct{})
	add := func(p string) {
		if p == "" {
			return
		}
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			set[filepath.Clean(p)] = struct{}{}
			return
		}
		set[filepath.Dir(p)] = struct{}{}
	}

	add(a.config.PipelinePath)
	add(a.config.DataPath)
	for _, p := range a.config.Paths {
		add(p)
	}
	if feeders, err := buildFeeders(a.config.Paths, a.config.Suffix); err == nil {
		for _, f := range feeders {
			if w, ok := f.(feeder.Watchable); ok {
				for _, p := range w.Paths() {
					add(p)
				}
			}
		}
	}

	dirs := make([]string, 0, len(set))
	for d := range set {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/dshills/duotone/internal/config/loader"
	"github.com/dshills/duotone/internal/watcher"
)

// watch re-renders inputs as they change. A theme file change reloads the
// themes and re-renders every input.
func (a *app) watch(ctx context.Context, paths []string, opts renderOptions) error {
	fw, err := watcher.NewFileWatcher()
	if err != nil {
		return err
	}
	w := watcher.NewDebouncedWatcher(fw, watcher.DefaultDelay)
	defer w.Close()

	inputs := make(map[string]string)
	var sources, files []string
	for _, path := range paths {
		if path == stdinPath {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		inputs[abs] = path
		sources = append(sources, path)
	}
	files = append(files, sources...)

	// Keys are the paths the theme loader caches under.
	themeFiles := make(map[string]string)
	for _, dir := range a.cfg.ThemeDirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if entry.IsDir() || !loader.IsThemeFile(entry.Name()) {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			abs, err := filepath.Abs(path)
			if err != nil {
				return err
			}
			themeFiles[abs] = path
			files = append(files, path)
		}
	}

	for _, path := range files {
		if err := w.Add(path); err != nil {
			return err
		}
	}
	a.logger.Info("watching %d files", len(files))

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			a.logger.Debug("%s %s", ev.Op, ev.Path)

			var targets []string
			if key, isTheme := themeFiles[ev.Path]; isTheme {
				a.themes.Invalidate(key)
				if err := a.build(); err != nil {
					a.logger.Error("reloading themes: %v", err)
					continue
				}
				targets = sources
			} else if path, ok := inputs[ev.Path]; ok {
				targets = []string{path}
			}
			if len(targets) == 0 {
				continue
			}
			if err := a.renderAll(ctx, targets, opts); err != nil {
				a.logger.Error("render failed: %v", err)
			}

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			a.logger.Warn("watcher: %v", err)
		}
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/koconv/pkg/adapters/fs"
	"github.com/aretw0/koconv/pkg/convert"
)

// watch re-runs c on every settled change of its source folders until ctx is
// cancelled. Each run is joined before the next one starts.
func watch(ctx context.Context, c *convert.Converter) error {
	layout := c.Layout()

	// Never watch a folder we write into.
	var dirs []string
	for _, d := range c.WatchDirs() {
		d = filepath.Clean(d)
		if d == layout.ParentDir || d == layout.ImplementationDir() {
			continue
		}
		if _, err := os.Stat(d); err == nil {
			dirs = append(dirs, d)
		}
	}

	w := fs.NewWatcher(dirs, settings.Watch.Debounce, slog.Default())
	triggers, err := w.Start(ctx)
	if err != nil {
		return err
	}

	slog.Info("watching for changes", "dirs", dirs)
	for range triggers {
		report, err := c.Run(ctx)
		if ctx.Err() != nil {
			break
		}
		printResult(os.Stdout, c, report, err)
	}
	slog.Info("watch stopped")
	return nil
}

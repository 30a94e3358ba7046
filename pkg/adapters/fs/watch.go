package fs

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors emit on save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher signals when any file in a set of directories changes.
type Watcher struct {
	dirs     []string
	debounce time.Duration
	logger   *slog.Logger
}

// NewWatcher creates a watcher over dirs. Duplicate directories are ignored.
func NewWatcher(dirs []string, debounce time.Duration, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	seen := make(map[string]bool, len(dirs))
	unique := make([]string, 0, len(dirs))
	for _, d := range dirs {
		d = filepath.Clean(d)
		if !seen[d] {
			seen[d] = true
			unique = append(unique, d)
		}
	}
	return &Watcher{dirs: unique, debounce: debounce, logger: logger}
}

// Start begins watching. The returned channel receives one value per settled
// burst of changes and is closed when ctx is done.
func (w *Watcher) Start(ctx context.Context) (<-chan struct{}, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, d := range w.dirs {
		if err := watcher.Add(d); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", d, err)
		}
	}

	triggers := make(chan struct{}, 1)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(triggers)
		defer watcher.Close()
		return w.run(ctx, watcher, triggers)
	}, lifecycle.WithErrorHandler(func(err error) {
		w.logger.Error("watcher panic", "error", err)
	}))

	return triggers, nil
}

func (w *Watcher) run(ctx context.Context, watcher *fsnotify.Watcher, triggers chan<- struct{}) error {
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isTempFile(event.Name) || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
				continue
			}
			w.logger.Debug("event received", "name", event.Name, "op", event.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("fsnotify error", "error", err)
		case <-timer.C:
			select {
			case triggers <- struct{}{}:
			default:
				// a trigger is already pending
			}
		}
	}
}

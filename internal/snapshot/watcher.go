package snapshot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/pocketscore/pocketscore/internal/share"
)

// Watcher observes the linked folder and reports newly arriving .pscore
// packages, so shared data dropped into the folder can be imported without
// user action.
type Watcher struct {
	dir       string
	onPackage func(path string)
	logger    *slog.Logger
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithWatcherLogger sets the logger for the Watcher.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher over dir. onPackage is invoked with the path
// of each arriving package file.
func NewWatcher(dir string, onPackage func(path string), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		dir:       dir,
		onPackage: onPackage,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the folder until ctx is cancelled.
// Should be called in a goroutine: go watcher.Run(ctx)
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %q: %w", w.dir, err)
	}
	w.logger.Info("watching linked folder", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			// Create covers both fresh files and atomic tmp->rename
			// moves into the folder.
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if !strings.HasSuffix(ev.Name, share.FileExt) {
				continue
			}
			w.logger.Debug("package arrived", "path", ev.Name)
			w.onPackage(ev.Name)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

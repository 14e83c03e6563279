package mcp

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/expense-tracker/internal/logger"
)

// CategoryWatcher reports changes to the categories file.
// It watches the parent directory so that editors replacing the file
// through a rename are still seen.
type CategoryWatcher struct {
	path    string
	watcher *fsnotify.Watcher
}

// NewCategoryWatcher starts watching the directory holding path.
// The directory must exist.
func NewCategoryWatcher(path string) (*CategoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	clean := filepath.Clean(path)
	if err := w.Add(filepath.Dir(clean)); err != nil {
		w.Close() //nolint:errcheck
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(clean), err)
	}

	return &CategoryWatcher{path: clean, watcher: w}, nil
}

// Run calls notify for each relevant change until ctx is cancelled.
// Notification failures are logged and do not stop the watcher.
// Run closes the underlying watcher before returning.
func (w *CategoryWatcher) Run(ctx context.Context, notify func(context.Context) error) error {
	defer w.watcher.Close() //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.handleEvent(event) {
				continue
			}
			logger.Debug("categories file changed: %s", event)
			if err := notify(ctx); err != nil {
				logger.Warn("notifying category change: %v", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("category watcher: %v", err)
		}
	}
}

// Close stops the watcher without waiting for Run.
func (w *CategoryWatcher) Close() error {
	return w.watcher.Close()
}

// handleEvent reports whether event changes the categories file contents.
func (w *CategoryWatcher) handleEvent(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

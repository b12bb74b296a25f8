package catalog

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/glorpus-work/addonreg/internal/logger"
	"github.com/glorpus-work/addonreg/pkg/errors"
	"github.com/glorpus-work/addonreg/pkg/model"
)

// Watcher invalidates a catalog's in-memory state when a scan root changes on
// disk, so the next lookup re-reads the cache or rescans. Invalidation is
// delivered through the invalidate callback on the watcher goroutine; wiring
// it back into a Manager is only safe if the owner serializes access.
type Watcher struct {
	watcher    *fsnotify.Watcher
	invalidate func()
}

// NewWatcher creates a watcher over every scan root of the given catalog.
func NewWatcher(m *Manager, invalidate func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create filesystem watcher")
	}

	for _, typ := range model.AllTypes {
		for _, root := range m.Roots(typ) {
			dir := filepath.Join(m.BaseDir(), root)
			if err := fw.Add(dir); err != nil {
				logger.Warn("cannot watch scan root", logger.Fields{"dir": dir, "error": err})
			}
		}
	}

	return &Watcher{watcher: fw, invalidate: invalidate}, nil
}

// Run blocks, dispatching invalidations until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				logger.Debug("scan root changed, invalidating catalog", logger.Fields{"path": event.Name})
				w.invalidate()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("filesystem watcher error", logger.Fields{"error": err})
		}
	}
}

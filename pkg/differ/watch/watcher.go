// Package watch provides recursive filesystem watching for live re-diff:
// change bursts under a sprite's base path are debounced into a single
// callback so the caller can rescan and compare against the last
// checkpoint.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aezell/sprite-differ/pkg/differ/logging"
)

// Watcher watches a directory tree and reports debounced change bursts.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	paths    map[string]bool
	mu       sync.RWMutex
	closed   bool
}

// New creates a Watcher with the given debounce window.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  fsw,
		debounce: debounce,
		paths:    make(map[string]bool),
	}, nil
}

// Watch starts watching a path recursively. Symlinks are not followed to
// avoid loops.
func (w *Watcher) Watch(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	info, err := os.Lstat(absRoot)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return nil // Only watch directories
	}

	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil //nolint:nilerr // Skip entries with errors
		}

		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if d.IsDir() {
			return w.addWatch(path)
		}

		return nil
	})
}

// addWatch adds a single directory to the watch list.
func (w *Watcher) addWatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.paths[path] {
		return nil
	}

	if err := w.watcher.Add(path); err != nil {
		logging.Get("watcher").Warn("failed to add watch", "path", path, "error", err)
		return err
	}

	w.paths[path] = true
	return nil
}

// Run processes filesystem events until the context is cancelled. Each
// debounced burst of changes invokes onChange with the sorted set of
// affected paths. Newly created directories are watched automatically.
func (w *Watcher) Run(ctx context.Context, onChange func(paths []string)) error {
	logger := logging.Get("watcher")

	var timer *time.Timer
	var timerC <-chan time.Time
	pending := make(map[string]bool)

	fire := func() {
		if len(pending) == 0 {
			return
		}
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		pending = make(map[string]bool)
		onChange(paths)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			logger.Debug("fs event", "op", event.Op.String(), "path", event.Name)
			pending[event.Name] = true

			if event.Op&fsnotify.Create != 0 {
				w.handleCreate(event.Name)
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			fire()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// handleCreate adds watches for newly created directories so changes in
// them are seen too.
func (w *Watcher) handleCreate(path string) {
	info, err := os.Lstat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		return
	}
	_ = w.Watch(path)
}

// Close stops watching and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

package catalog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for a burst of changes to
// settle before invalidating.
const DefaultDebounce = 100 * time.Millisecond

// Invalidator is notified when the watched directory changes.
type Invalidator interface {
	Invalidate()
}

// Watcher invalidates a cached catalog whenever a JSON document anywhere
// under the data directory is created, written, removed or renamed.
// Subdirectories created while running are watched as they appear.
type Watcher struct {
	dir      string
	target   Invalidator
	debounce time.Duration
	logger   *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewWatcher creates a Watcher for dir. A non-positive debounce selects
// DefaultDebounce.
func NewWatcher(dir string, target Invalidator, debounce time.Duration, logger *slog.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{
		dir:      dir,
		target:   target,
		debounce: debounce,
		logger:   logger.With("component", "catalog_watcher"),
		ready:    make(chan struct{}),
	}
}

// Ready is closed once the watcher is observing the directory.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Run watches the directory until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addTree(watcher, w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	w.readyOnce.Do(func() { close(w.ready) })
	w.logger.InfoContext(ctx, "watching data directory", "dir", w.dir)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := addTree(watcher, event.Name); err != nil {
					w.logger.WarnContext(ctx, "failed to watch new directory",
						"dir", event.Name,
						"error", err)
				}
			} else if !w.relevant(event) {
				continue
			}
			w.logger.DebugContext(ctx, "data directory changed",
				"name", event.Name,
				"op", event.Op.String())
			if timer == nil {
				timer = time.AfterFunc(w.debounce, w.target.Invalidate)
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.ErrorContext(ctx, "fsnotify error", "error", err)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
		return false
	}
	return event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) ||
		event.Has(fsnotify.Rename)
}

// addTree watches root and every non-hidden directory beneath it.
func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

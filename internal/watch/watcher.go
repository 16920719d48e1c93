// Package watch reports configuration file changes, batched over a
// debounce window, so a burst of editor writes triggers a single reload.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vk/kmpgraph/internal/ctxlog"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 250 * time.Millisecond

// Handler receives the sorted, de-duplicated paths changed during one
// debounce window.
type Handler func(ctx context.Context, changed []string)

// Options configures a Watcher.
type Options struct {
	// Extensions limits events to files with these extensions; empty means all.
	Extensions []string
	Debounce   time.Duration
}

// Watcher watches files and directories (recursively) for changes.
type Watcher struct {
	paths   []string
	opts    Options
	handler Handler
}

// New creates a watcher over paths. Nothing is watched until Run.
func New(paths []string, handler Handler, opts Options) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Watcher{paths: paths, opts: opts, handler: handler}
}

// Run watches until ctx is cancelled. It returns nil on cancellation and
// an error only when watching could not be set up or fsnotify fails.
func (w *Watcher) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range w.paths {
		if err := addRecursive(fw, p); err != nil {
			return err
		}
	}
	logger.Debug("Watching configuration.", "paths", w.paths, "watched_dirs", len(fw.WatchList()))

	var (
		batch  = make(map[string]struct{})
		timer  *time.Timer
		timerC <-chan time.Time
	)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		changed := make([]string, 0, len(batch))
		for p := range batch {
			changed = append(changed, p)
		}
		slices.Sort(changed)
		clear(batch)
		logger.Debug("Configuration changed.", "files", changed)
		w.handler(ctx, changed)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addRecursive(fw, event.Name); err != nil {
						logger.Warn("Failed to watch new directory.", "path", event.Name, "error", err)
					}
					continue
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}

			batch[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.opts.Debounce)
			}

		case <-timerC:
			timer, timerC = nil, nil
			flush()

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("file watcher failed: %w", err)
		}
	}
}

func (w *Watcher) matches(path string) bool {
	if len(w.opts.Extensions) == 0 {
		return true
	}
	return slices.Contains(w.opts.Extensions, filepath.Ext(path))
}

// addRecursive watches a directory tree, or the directory holding a file.
func addRecursive(fw *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error accessing path %s: %w", root, err)
	}
	if !info.IsDir() {
		return fw.Add(filepath.Dir(root))
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.Add(path)
	})
}

// Package watcher implements source tree watching for watch mode rebuilds.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
	"unique"

	"github.com/fsnotify/fsnotify"
	"github.com/stellarforge/ubuild/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// shouldSkipDirectories are directories that never hold source files:
// build artifacts, editor state, and VCS metadata.
var shouldSkipDirectories = map[string]bool{
	".git":             true,
	".vs":              true,
	".idea":            true,
	"Binaries":         true,
	"Intermediate":     true,
	"Saved":            true,
	"DerivedDataCache": true,
}

// watchedExtensions are the file extensions that trigger a rebuild.
var watchedExtensions = map[string]bool{
	".cpp":      true,
	".h":        true,
	".hpp":      true,
	".inl":      true,
	".cs":       true,
	".uproject": true,
	".uplugin":  true,
	".ini":      true,
}

const eventChannelBuffer = 100

// Watcher implements file system watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	root      unique.Handle[string]
	events    chan ports.WatchEvent
}

// NewWatcher creates a new file system watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
	}, nil
}

// Start begins watching the given root directory recursively.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.root = unique.Make(root)

	for dir := range w.watchRecursively(root) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	go w.processEvents(ctx)

	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// Events returns an iterator of file system events.
func (w *Watcher) Events() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for event := range w.events {
			if !yield(event) {
				return
			}
		}
	}
}

// watchRecursively walks the directory tree and yields all directories
// that are not skipped.
func (w *Watcher) watchRecursively(root string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Skip unreadable directories and keep walking.
				return nil //nolint:nilerr
			}
			if d.IsDir() {
				if shouldSkipDirectories[d.Name()] {
					return fs.SkipDir
				}
				if !yield(path) {
					return filepath.SkipAll
				}
			}
			return nil
		})
	}
}

// relevant reports whether a changed path should trigger a rebuild.
func relevant(path string) bool {
	return watchedExtensions[strings.ToLower(filepath.Ext(path))]
}

// processEvents converts raw fsnotify events into ports.WatchEvent values,
// filtering out paths that cannot affect a build.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Newly created directories need to be added to the watch set
			// before any files inside them change.
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if !shouldSkipDirectories[info.Name()] {
						for dir := range w.watchRecursively(event.Name) {
							_ = w.fsWatcher.Add(dir)
						}
					}
					continue
				}
			}

			if !relevant(event.Name) {
				continue
			}

			select {
			case w.events <- ports.WatchEvent{Path: event.Name}:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

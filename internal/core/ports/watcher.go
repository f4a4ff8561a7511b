package ports

import (
	"context"
	"iter"
)

// WatchEvent represents a file system change under the watched root.
type WatchEvent struct {
	// Path is the absolute path of the file that changed.
	Path string
}

// Watcher defines the interface for watching a source tree for changes.
type Watcher interface {
	// Start begins watching the given root directory recursively.
	Start(ctx context.Context, root string) error
	// Stop stops the watcher and releases all resources.
	Stop() error
	// Events returns an iterator of file system events.
	Events() iter.Seq[WatchEvent]
}

package ports

import "context"

// Watcher defines the interface for watching manifest files for changes.
type Watcher interface {
	// Start begins watching the given files. Batched change notifications
	// are delivered to onChange until the context is canceled.
	Start(ctx context.Context, paths []string, onChange func(changed []string)) error

	// Stop stops the watcher and releases all resources.
	Stop() error
}

package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/pinset/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

// debounceWindow is how long to wait after the last event before re-checking.
const debounceWindow = 200 * time.Millisecond

// relevantOps are the fsnotify operations that can change manifest content.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// Watcher implements manifest watching using fsnotify.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	watched   map[string]struct{}
}

// NewWatcher creates a new manifest watcher.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		watched:   make(map[string]struct{}),
	}, nil
}

// Start begins watching the given manifest files. The parent directories are
// registered rather than the files themselves because editors replace files
// on save, which drops inode-based watches.
func (w *Watcher) Start(ctx context.Context, paths []string, onChange func(changed []string)) error {
	w.debouncer = NewDebouncer(debounceWindow, onChange)

	dirs := make(map[string]struct{})
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		w.watched[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
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

// processEvents filters raw fsnotify events down to watched manifests and
// feeds them to the debouncer.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.debouncer.Flush()
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, watched := w.watched[abs]; watched {
				w.debouncer.Add(abs)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: file system error: %v\n", err)
		}
	}
}

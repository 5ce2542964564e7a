package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aledsdavies/rfparse/internal/ctxlog"
)

const watchDebounce = 200 * time.Millisecond

// fileWatcher reports writes to accepted files in a set of directories.
// Bursts of events for one file are collapsed into a single change.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	accept   func(path string) bool
	debounce time.Duration
}

func newFileWatcher(dirs []string, accept func(string) bool) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return &fileWatcher{watcher: watcher, accept: accept, debounce: watchDebounce}, nil
}

// Run calls onChange for changed files until ctx is done. onChange is
// never called concurrently.
func (w *fileWatcher) Run(ctx context.Context, onChange func(path string)) error {
	logger := ctxlog.FromContext(ctx)
	pending := make(map[string]*time.Timer)
	ready := make(chan string)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
		w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.accept(event.Name) {
				continue
			}
			name := event.Name
			if t, ok := pending[name]; ok {
				t.Stop()
			}
			pending[name] = time.AfterFunc(w.debounce, func() {
				select {
				case ready <- name:
				case <-ctx.Done():
				}
			})

		case name := <-ready:
			delete(pending, name)
			logger.Debug("file changed", "path", name)
			onChange(name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		}
	}
}

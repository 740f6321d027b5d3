// Package watch re-runs a callback whenever one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 100 * time.Millisecond

// Watcher calls a function for each watched file that is written or created.
type Watcher struct {
	debounce time.Duration
	onError  func(error)
}

// New creates a watcher. onError receives watcher errors and may be nil.
func New(debounce time.Duration, onError func(error)) *Watcher {
	if onError == nil {
		onError = func(error) {}
	}
	return &Watcher{debounce: debounce, onError: onError}
}

// Run watches paths until ctx is done, calling fn with the changed path.
// Directories are watched rather than the files themselves so that editors
// replacing a file by rename are still noticed.
func (w *Watcher) Run(ctx context.Context, paths []string, fn func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	wanted := make(map[string]string, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		wanted[abs] = p
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if p, ok := wanted[abs]; ok {
				pending[p] = true
				timer.Reset(w.debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.onError(err)
		case <-timer.C:
			for _, p := range paths {
				if pending[p] {
					fn(p)
				}
			}
			clear(pending)
		}
	}
}

// Package watch observes a configuration document on disk and announces
// changes on the event bus. Editors write files in bursts (truncate,
// write, rename), so raw filesystem events are debounced behind a quiet
// window before anyone is told to re-read the document.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rdavey/tabula/internal/bus"
	"github.com/rdavey/tabula/internal/sched"
)

// Watcher publishes a RunStateChange event after the watched file has
// been quiet for the configured window.
type Watcher struct {
	fs       *fsnotify.Watcher
	debounce *sched.Debouncer
	done     chan struct{}
}

// Start begins watching the file at path. The parent directory is
// watched rather than the file itself so the watch survives
// rename-over-save, which replaces the inode.
func Start(path string, quiet time.Duration, b *bus.Bus) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}

	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		fs:       fs,
		debounce: sched.NewDebouncer(quiet),
		done:     make(chan struct{}),
	}
	go w.run(abs, b)
	return w, nil
}

func (w *Watcher) run(path string, b *bus.Bus) {
	name := filepath.Base(path)
	for {
		select {
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(evt.Name) != name {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.debounce.Trigger(func() {
				b.Publish(bus.Event{Type: bus.RunStateChange, Job: path})
			})
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			// Transient watch errors are not actionable; the next
			// event for the file will still arrive or the user will
			// notice the document going stale.
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and cancels any pending notification.
func (w *Watcher) Close() error {
	close(w.done)
	w.debounce.Cancel()
	return w.fs.Close()
}

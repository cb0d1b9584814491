// Package watch notifies the session when its input file changes on disk,
// so the current query can be rerun against fresh content.
package watch

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Iface is the watcher surface the TUI consumes. Enables a fake in tests.
type Iface interface {
	Events() <-chan struct{}
	Close()
}

// Watcher watches one input file for writes.
type Watcher struct {
	events chan struct{}
	done   chan struct{}
	fw     *fsnotify.Watcher
	path   string
}

// Compile-time check that Watcher satisfies Iface.
var _ Iface = (*Watcher)(nil)

// New creates and starts a watcher on the given file. The parent directory
// is watched, not the file itself: editors typically replace files on save,
// which would silently drop a direct file watch.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		events: make(chan struct{}, 4),
		done:   make(chan struct{}),
		fw:     fw,
		path:   abs,
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer close(w.events)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if event.Name != w.path {
				continue
			}
			select {
			case w.events <- struct{}{}:
			default:
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
		}
	}
}

// Events returns the channel on which change notifications are delivered.
func (w *Watcher) Events() <-chan struct{} { return w.events }

// Close stops the watcher.
func (w *Watcher) Close() {
	close(w.done)
	w.fw.Close()
}

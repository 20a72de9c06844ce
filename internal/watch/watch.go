// Package watch reports when the set of names under a source tree changes.
// Content writes are ignored: only creates, removes and renames can change
// what a listing contains.
package watch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounceDelay is the default delay for coalescing bursts of events.
const DefaultDebounceDelay = 100 * time.Millisecond

// Watcher watches a directory tree and signals on Changes after each burst.
type Watcher struct {
	watcher *fsnotify.Watcher
	changes chan struct{}
	errors  chan error
	done    chan struct{}
	root    string

	skipHidden bool

	mu            sync.Mutex
	debounceDelay time.Duration
	timer         *time.Timer
	closed        bool
}

// New starts watching root and every directory below it.
func New(root string, skipHidden bool) (*Watcher, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:       fsw,
		changes:       make(chan struct{}, 1),
		errors:        make(chan error, 10),
		done:          make(chan struct{}),
		root:          root,
		skipHidden:    skipHidden,
		debounceDelay: DefaultDebounceDelay,
	}

	if err := w.addRecursive(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.processEvents()

	return w, nil
}

// addRecursive adds dir and all its subdirectories to the watcher.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Removed between the event and the walk
			if errors.Is(err, fs.ErrNotExist) && path != w.root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.skipHidden && path != w.root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			// Unreadable directories are not listed either
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}
		return nil
	})
}

// processEvents turns fsnotify events into change signals.
func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleEvent processes a single fsnotify event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	// New directories are watched too
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.sendError(err)
			}
		}
	}

	w.debounce()
}

// debounce coalesces a burst of events into one signal.
func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounceDelay, w.signal)
}

// signal sends a change without blocking; one pending signal is enough.
func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	case <-w.done:
	default:
	}
}

func (w *Watcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
		// Error channel full, drop the error
	}
}

// Changes returns the channel signalled after each burst of changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors returns the channel for receiving watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Root returns the absolute root being watched.
func (w *Watcher) Root() string {
	return w.root
}

// SetDebounceDelay sets the delay used to coalesce events.
func (w *Watcher) SetDebounceDelay(delay time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounceDelay = delay
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.watcher.Close()
}

// Package watcher detects when the file being edited is changed on disk by
// another process.
//
// Notifications are debounced on a background goroutine but delivered
// through Poll, so callers that own single-threaded state can check for
// changes from their own loop without sharing anything.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/vertext/internal/log"
)

// Watcher monitors a single file for external modification.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onChange  chan struct{}
	done      chan struct{}

	// suppressUntil holds a UnixNano deadline; events before it are our own writes.
	suppressUntil atomic.Int64
}

// Config holds watcher configuration options.
type Config struct {
	Path        string
	DebounceDur time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(path string) Config {
	return Config{
		Path:        path,
		DebounceDur: 500 * time.Millisecond,
	}
}

// New creates a new file watcher.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      filepath.Clean(cfg.Path),
		debounce:  cfg.DebounceDur,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching the directory containing the file. Watching the
// directory keeps working when editors replace the file via rename.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	log.Debug(log.CatWatcher, "watching file", "path", w.path)
	return nil
}

// Poll reports whether the file changed since the last call. It never blocks.
func (w *Watcher) Poll() bool {
	select {
	case <-w.onChange:
		return true
	default:
		return false
	}
}

// MarkSelfWrite suppresses notifications caused by a write the caller is
// about to make (or just made) to the watched file.
func (w *Watcher) MarkSelfWrite() {
	window := max(w.debounce, 100*time.Millisecond) * 2
	w.suppressUntil.Store(time.Now().Add(window).UnixNano())
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

// loop coalesces bursts of events into one notification per quiet period.
func (w *Watcher) loop() {
	debounce := time.NewTimer(w.debounce)
	debounce.Stop()
	defer debounce.Stop()

	// fire is nil while no change is waiting on the quiet period.
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			return

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "watch error", err, "path", w.path)

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if w.suppressed(time.Now()) {
				log.Debug(log.CatWatcher, "ignoring own write", "op", event.Op.String())
				continue
			}
			debounce.Reset(w.debounce)
			fire = debounce.C

		case <-fire:
			fire = nil
			select {
			case w.onChange <- struct{}{}:
			default:
				// A change is already waiting for Poll.
			}
			log.Info(log.CatWatcher, "file changed on disk", "path", w.path)
		}
	}
}

func (w *Watcher) suppressed(now time.Time) bool {
	return now.UnixNano() < w.suppressUntil.Load()
}

// isRelevantEvent reports whether event modified, replaced or removed the
// watched file.
func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}

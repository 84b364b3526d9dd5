// Package notify feeds file-change events into an emit registry.
//
// A Watcher observes registered files and directories via fsnotify and
// dispatches an open key/value record into a caller-supplied registry
// under a caller-chosen kind per path. Changed YAML and TOML documents
// are decoded into the payload so listeners receive the new content
// along with the change itself.
//
// Delivery still goes through Registry.Dispatch: the watcher is a
// publisher, not a second delivery path.
package notify

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"

	"github.com/dshills/emit"
)

// Watcher observes filesystem paths and dispatches change events.
type Watcher[K comparable] struct {
	mu sync.Mutex

	// fsnotify watcher
	watcher *fsnotify.Watcher

	// Destination registry
	registry *emit.Registry[K, map[string]any]

	// Watched path -> kind dispatched for its changes
	kinds map[string]K

	// Configuration
	config config

	// Watcher errors, dropped when the channel is full
	errs chan error

	// Lifecycle
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// New creates a Watcher that dispatches into registry.
func New[K comparable](registry *emit.Registry[K, map[string]any], opts ...Option) (*Watcher[K], error) {
	if registry == nil {
		return nil, ErrNilRegistry
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher[K]{
		watcher:  fsw,
		registry: registry,
		kinds:    make(map[string]K),
		config:   cfg,
		errs:     make(chan error, 16),
		closeCh:  make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts watching path and dispatches its changes under kind.
func (w *Watcher[K]) Watch(path string, kind K) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	if _, ok := w.kinds[absPath]; ok {
		return ErrAlreadyWatching
	}

	if err := w.watcher.Add(absPath); err != nil {
		return err
	}

	w.kinds[absPath] = kind
	return nil
}

// Unwatch stops watching path.
func (w *Watcher[K]) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if _, ok := w.kinds[absPath]; !ok {
		return ErrNotWatching
	}

	if err := w.watcher.Remove(absPath); err != nil {
		return err
	}

	delete(w.kinds, absPath)
	return nil
}

// IsWatching returns true if path is being watched.
func (w *Watcher[K]) IsWatching(path string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	_, ok := w.kinds[absPath]
	return ok
}

// WatchedPaths returns all watched paths.
func (w *Watcher[K]) WatchedPaths() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.kinds))
	for p := range w.kinds {
		paths = append(paths, p)
	}
	return paths
}

// Errors returns the channel of watcher errors.
func (w *Watcher[K]) Errors() <-chan error {
	return w.errs
}

// Close stops the watcher. It is safe to call Close multiple times.
func (w *Watcher[K]) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()
	close(w.errs)

	return w.watcher.Close()
}

// processLoop handles incoming fsnotify events.
func (w *Watcher[K]) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent converts an fsnotify event into a payload record and
// dispatches it.
func (w *Watcher[K]) handleFSEvent(fsEvent fsnotify.Event) {
	path := filepath.Clean(fsEvent.Name)

	w.mu.Lock()
	kind, ok := w.kinds[path]
	if !ok {
		// Changes inside a watched directory resolve to the directory's kind.
		kind, ok = w.kinds[filepath.Dir(path)]
	}
	cfg := w.config
	w.mu.Unlock()

	if !ok {
		return
	}

	payload := map[string]any{
		"id":   uuid.NewString(),
		"path": path,
		"op":   opString(fsEvent.Op),
		"at":   time.Now(),
	}
	if cfg.source != "" {
		payload["source"] = cfg.source
	}

	if cfg.decode && (fsEvent.Op.Has(fsnotify.Write) || fsEvent.Op.Has(fsnotify.Create)) {
		doc, err := decodeFile(path)
		switch {
		case err != nil:
			payload["error"] = err.Error()
		case doc != nil:
			payload["data"] = doc
		}
	}

	w.registry.Dispatch(kind, payload)
}

// sendError sends an error to the output channel, dropping it when the
// channel is full.
func (w *Watcher[K]) sendError(err error) {
	select {
	case w.errs <- err:
	default:
	}
}

// opString renders an fsnotify op as a stable label.
func opString(op fsnotify.Op) string {
	names := make([]byte, 0, 32)
	add := func(s string) {
		if len(names) > 0 {
			names = append(names, '|')
		}
		names = append(names, s...)
	}
	if op.Has(fsnotify.Create) {
		add("create")
	}
	if op.Has(fsnotify.Write) {
		add("write")
	}
	if op.Has(fsnotify.Remove) {
		add("remove")
	}
	if op.Has(fsnotify.Rename) {
		add("rename")
	}
	if op.Has(fsnotify.Chmod) {
		add("chmod")
	}
	if len(names) == 0 {
		return "unknown"
	}
	return string(names)
}

package notify

import "errors"

// Sentinel errors for the watcher.
var (
	// ErrNilRegistry is returned when New is given a nil registry.
	ErrNilRegistry = errors.New("registry cannot be nil")

	// ErrWatcherClosed is returned when operations are attempted on a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrPathNotExist is returned when the watched path does not exist.
	ErrPathNotExist = errors.New("path does not exist")

	// ErrAlreadyWatching is returned when the path is already being watched.
	ErrAlreadyWatching = errors.New("path is already being watched")

	// ErrNotWatching is returned when the path is not being watched.
	ErrNotWatching = errors.New("path is not being watched")
)

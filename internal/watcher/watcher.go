// Package watcher reports changes to the files a render depends on.
//
// Editors often replace a file instead of writing it in place, which
// removes the inode fsnotify was following. Watches are therefore placed on
// each file's directory and events are filtered down to the tracked names.
package watcher

import (
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed = errors.New("watcher is closed")
	ErrNotFile       = errors.New("path is a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a change to a tracked file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op is the operation, or several combined after debouncing.
	Op Op

	// Timestamp is when the last contributing change occurred.
	Timestamp time.Time
}

// Watcher monitors a set of files.
type Watcher interface {
	// Add starts tracking a file.
	Add(path string) error

	// Events returns the channel of change events.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error
}

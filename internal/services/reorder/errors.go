package reorder

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistenceFailed is recoverable: local state has already been restored
	// and the same move may be retried.
	ErrPersistenceFailed = errors.New("persistence failed")

	// ErrClosed is returned for jobs submitted after Close.
	ErrClosed = errors.New("coordinator is closed")
)

// PersistenceError describes which remote call failed.
// It matches both ErrPersistenceFailed and the underlying cause with errors.Is.
type PersistenceError struct {
	Op     string // "update position" or "fetch"
	ItemID string // empty for fetch
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.ItemID == "" {
		return fmt.Sprintf("%s: %s: %v", ErrPersistenceFailed, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", ErrPersistenceFailed, e.Op, e.ItemID, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistenceFailed, e.Err}
}

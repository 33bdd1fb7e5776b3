package ordering

import "errors"

// Programming errors: raised synchronously, never retried.
var (
	ErrInvalidBucket = errors.New("invalid bucket")
	ErrItemNotFound  = errors.New("item not found")
)

// ErrMoveInFlight is wrapped in a *SyncError when the collection is reset or
// a second move is applied while an earlier one has not been committed or rolled back.
var ErrMoveInFlight = errors.New("a move is already in flight")

// ErrNotDense reports a bucket whose positions are not exactly 0..n-1.
var ErrNotDense = errors.New("bucket positions are not dense")

// SyncError reports a store operation rejected because of in-flight state.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

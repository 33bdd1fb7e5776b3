package models

import "errors"

// ErrNoBuckets indicates a board was configured without any bucket labels.
var ErrNoBuckets = errors.New("board has no buckets configured")

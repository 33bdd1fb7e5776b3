package database

import "errors"

// ErrItemNotFound is returned when no row matches the requested item id.
var ErrItemNotFound = errors.New("item not found")

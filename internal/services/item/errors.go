package item

import "errors"

// Item validation errors
var (
	ErrEmptyTitle    = errors.New("item title cannot be empty")
	ErrTitleTooLong  = errors.New("item title cannot exceed 255 characters")
	ErrInvalidScope  = errors.New("invalid scope: expected <board>:<owner>")
	ErrInvalidItemID = errors.New("invalid item ID")

	ErrNegativePosition = errors.New("position must be >= 0")
)

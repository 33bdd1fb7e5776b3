package models

import (
	"time"

	"github.com/thenoetrevino/cadence/internal/types"
)

// Payload is the user-facing content of an item. The ordering logic never reads it.
type Payload struct {
	Title string
	Notes string // Markdown, rendered by `item show`
}

// Item is a single ordered row: a focus item card or a playbook category.
type Item struct {
	ID        types.ItemID
	Scope     types.Scope
	Bucket    types.Bucket
	Position  int
	Payload   Payload
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID lets the CLI quiet mode print the id of any item.
func (i *Item) GetID() string {
	return i.ID.String()
}

// PositionUpdate is one persisted change produced by the planner.
type PositionUpdate struct {
	ItemID   types.ItemID
	Bucket   types.Bucket
	Position int
}

// MoveRequest is what a drag-and-drop gesture (or the CLI) produces.
type MoveRequest struct {
	ItemID       types.ItemID
	TargetBucket types.Bucket
	TargetIndex  int
}

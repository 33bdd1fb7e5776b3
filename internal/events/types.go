package events

import (
	"time"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/types"
)

// EventType indicates what happened to a board
type EventType string

const (
	EventMoveCommitted  EventType = "move_committed"
	EventMoveRolledBack EventType = "move_rolled_back"
	EventRefreshed      EventType = "refreshed"
)

// Event is pushed to observers after a coordinator resolves a job
type Event struct {
	Type       EventType
	Scope      types.Scope             // Which board changed
	Move       *models.MoveRequest     // Set for move events
	Updates    []models.PositionUpdate // Rows written (commit) or reverted (rollback)
	Err        error                   // Set for EventMoveRolledBack
	Timestamp  time.Time               // When the event was published
	SequenceID int64                   // Monotonically increasing per bus
}

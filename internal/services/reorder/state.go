package reorder

// State is the position of the current job in the move state machine.
type State int32

const (
	StateIdle State = iota
	StatePlanning
	StateApplied
	StatePersisting
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlanning:
		return "planning"
	case StateApplied:
		return "applied"
	case StatePersisting:
		return "persisting"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled_back"
	default:
		return "unknown"
	}
}

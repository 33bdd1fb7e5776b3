// Package tui is the interactive terminal board. A grabbed card is moved with
// the keyboard; every move goes through the board's coordinator and the view
// re-reads the board when the coordinator publishes an event.
package tui

import (
	"context"

	"charm.land/bubbles/v2/help"

	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/events"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/ordering"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
	"github.com/thenoetrevino/cadence/internal/types"
)

// Board is the part of a coordinator the TUI drives.
type Board interface {
	Scope() types.Scope
	Store() *ordering.Store
	Submit(req models.MoveRequest) <-chan reorder.Result
	Refresh(ctx context.Context) error
}

var _ Board = (*reorder.Coordinator)(nil)

// Model represents the application state for the TUI
type Model struct {
	ctx   context.Context
	board Board

	keys   keyMap
	styles boardStyles
	help   help.Model

	// EventChan receives the board's events from the bus observer
	EventChan   chan events.Event
	unsubscribe func()

	buckets  []types.Bucket
	snapshot ordering.Snapshot

	col, row int
	selected types.ItemID // item under the cursor, followed across reloads
	grabbed  bool
	pending  int // moves submitted and not yet resolved

	status   string
	errMsg   string
	showHelp bool

	width, height int
}

// New creates the board model and subscribes it to bus. Call Close once the
// program has exited.
func New(ctx context.Context, board Board, bus *events.Bus, cfg *config.Config) Model {
	m := Model{
		ctx:       ctx,
		board:     board,
		keys:      newKeyMap(cfg.KeyMappings),
		styles:    newBoardStyles(cfg.Theme),
		help:      help.New(),
		EventChan: make(chan events.Event, 16),
		buckets:   board.Store().Buckets().Labels(),
	}

	scope := board.Scope()
	ch := m.EventChan
	if bus != nil {
		m.unsubscribe = bus.Subscribe(events.ObserverFunc(func(e events.Event) {
			if e.Scope != scope {
				return
			}
			// Events only trigger a re-read, so dropping one while the
			// channel is full loses nothing.
			select {
			case ch <- e:
			default:
			}
		}))
	}

	m.reload()
	return m
}

// Close removes the model's bus subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Grabbed reports whether a card is currently held.
func (m Model) Grabbed() bool { return m.grabbed }

// Cursor returns the column and row under the cursor.
func (m Model) Cursor() (col, row int) { return m.col, m.row }

// Selected returns the id of the item under the cursor, if any.
func (m Model) Selected() types.ItemID { return m.selected }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

// Err returns the last error line.
func (m Model) Err() string { return m.errMsg }

// reload re-reads the store and moves the cursor to the selected item,
// wherever it now is. While moves are pending the cursor stays where the
// last submitted move put it.
func (m *Model) reload() {
	m.snapshot = m.board.Store().Snapshot()
	if m.pending > 0 {
		return
	}

	if m.selected != "" {
		if b, idx, ok := m.snapshot.Locate(m.selected); ok {
			m.col = m.bucketIndex(b)
			m.row = idx
			return
		}
		m.grabbed = false
	}
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if len(m.buckets) == 0 {
		m.col, m.row, m.selected = 0, 0, ""
		return
	}
	m.col = max(0, min(m.col, len(m.buckets)-1))
	items := m.snapshot.ItemsInBucket(m.buckets[m.col])
	if len(items) == 0 {
		m.row = 0
		m.selected = ""
		return
	}
	m.row = max(0, min(m.row, len(items)-1))
	m.selected = items[m.row].ID
}

func (m Model) bucketIndex(b types.Bucket) int {
	for i, l := range m.buckets {
		if l == b {
			return i
		}
	}
	return 0
}

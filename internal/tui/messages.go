package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/cadence/internal/events"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
)

// RefreshMsg is sent when the coordinator published an event for this board
type RefreshMsg struct {
	Event events.Event
}

// MoveResultMsg carries the outcome of a submitted move
type MoveResultMsg struct {
	Request models.MoveRequest
	Result  reorder.Result
}

// RefreshDoneMsg reports a finished manual refresh
type RefreshDoneMsg struct {
	Err error
}

// listenForEvents returns a command that waits for the next board event.
func (m Model) listenForEvents() tea.Cmd {
	if m.EventChan == nil {
		return nil
	}
	ch := m.EventChan
	ctx := m.ctx

	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

// submitMove hands req to the coordinator and waits for its result.
func (m Model) submitMove(req models.MoveRequest) tea.Cmd {
	ch := m.board.Submit(req)
	return func() tea.Msg {
		return MoveResultMsg{Request: req, Result: <-ch}
	}
}

func (m Model) refresh() tea.Cmd {
	board := m.board
	ctx := m.ctx
	return func() tea.Msg {
		return RefreshDoneMsg{Err: board.Refresh(ctx)}
	}
}

package tui

import (
	"errors"
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
)

// Init starts listening for board events
func (m Model) Init() tea.Cmd {
	return m.listenForEvents()
}

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case RefreshMsg:
		m.reload()
		return m, m.listenForEvents()

	case MoveResultMsg:
		return m.handleMoveResult(msg), nil

	case RefreshDoneMsg:
		if msg.Err != nil {
			m.errMsg = msg.Err.Error()
		} else {
			m.errMsg = ""
			m.status = "refreshed"
		}
		m.reload()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.status = "refreshing..."
		return m, m.refresh()
	case key.Matches(msg, m.keys.Grab):
		if m.selected != "" {
			m.grabbed = !m.grabbed
		}
		return m, nil
	}

	if m.grabbed {
		switch {
		case key.Matches(msg, m.keys.MoveUp, m.keys.PrevItem):
			return m.moveGrabbed(0, -1)
		case key.Matches(msg, m.keys.MoveDown, m.keys.NextItem):
			return m.moveGrabbed(0, 1)
		case key.Matches(msg, m.keys.MoveLeft, m.keys.PrevColumn):
			return m.moveGrabbed(-1, 0)
		case key.Matches(msg, m.keys.MoveRight, m.keys.NextColumn):
			return m.moveGrabbed(1, 0)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.PrevItem):
		m.row--
	case key.Matches(msg, m.keys.NextItem):
		m.row++
	case key.Matches(msg, m.keys.PrevColumn):
		m.col--
	case key.Matches(msg, m.keys.NextColumn):
		m.col++
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveSelected(0, -1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveSelected(0, 1)
	case key.Matches(msg, m.keys.MoveLeft):
		return m.moveSelected(-1, 0)
	case key.Matches(msg, m.keys.MoveRight):
		return m.moveSelected(1, 0)
	default:
		return m, nil
	}
	m.selected = ""
	m.clampCursor()
	return m, nil
}

// moveSelected moves the card under the cursor without grabbing it first.
func (m Model) moveSelected(dcol, drow int) (tea.Model, tea.Cmd) {
	if m.selected == "" {
		return m, nil
	}
	return m.moveGrabbed(dcol, drow)
}

// moveGrabbed submits a move of the selected card by one row or one column.
// Moving to another column keeps the row, clamped to the target's length.
// The cursor moves with the card right away so presses made before the
// result arrives build on each other.
func (m Model) moveGrabbed(dcol, drow int) (tea.Model, tea.Cmd) {
	col := m.col + dcol
	row := m.row + drow
	if col < 0 || col >= len(m.buckets) || row < 0 {
		return m, nil
	}
	target := m.buckets[col]
	others := 0
	for _, it := range m.snapshot.ItemsInBucket(target) {
		if it.ID != m.selected {
			others++
		}
	}
	if dcol == 0 && row > others {
		return m, nil
	}
	row = min(row, others)

	req := models.MoveRequest{
		ItemID:       m.selected,
		TargetBucket: target,
		TargetIndex:  row,
	}
	m.col, m.row = col, row
	m.pending++
	m.errMsg = ""
	m.status = fmt.Sprintf("moving to %s #%d...", target, row)
	return m, m.submitMove(req)
}

func (m Model) handleMoveResult(msg MoveResultMsg) Model {
	m.pending = max(0, m.pending-1)

	res := msg.Result
	switch {
	case res.Err == nil && res.Noop:
		m.status = "no change"
	case res.Err == nil:
		m.status = fmt.Sprintf("saved (%d position(s))", len(res.Updates))
	case errors.Is(res.Err, reorder.ErrPersistenceFailed):
		m.errMsg = "save failed, move undone: " + res.Err.Error()
	default:
		m.errMsg = res.Err.Error()
	}
	if res.Err != nil {
		slog.Warn("move failed", "item_id", msg.Request.ItemID, "bucket", msg.Request.TargetBucket, "error", res.Err)
	}

	m.reload()
	return m
}

package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/cadence/internal/app"
	"github.com/thenoetrevino/cadence/internal/config"
	"github.com/thenoetrevino/cadence/internal/database"
	"github.com/thenoetrevino/cadence/internal/events"
	"github.com/thenoetrevino/cadence/internal/models"
	"github.com/thenoetrevino/cadence/internal/services/reorder"
	"github.com/thenoetrevino/cadence/internal/testutil"
	"github.com/thenoetrevino/cadence/internal/types"
)

const testScope = types.Scope("focus:ana")

// setupTestModel builds a board with backlog [A B C] and this_week [P].
func setupTestModel(t *testing.T) (Model, *app.App, []types.ItemID, []types.ItemID) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	ids := testutil.CreateTestItems(t, db, testScope, "backlog", "A", "B", "C")
	week := testutil.CreateTestItems(t, db, testScope, "this_week", "P")

	cfg := config.Default()
	a := app.New(cfg, database.NewItemRepo(db))
	t.Cleanup(func() { _ = a.Close() })

	board, err := a.Board(context.Background(), testScope)
	require.NoError(t, err)

	m := New(context.Background(), board, a.Bus(), cfg)
	t.Cleanup(m.Close)
	return m, a, ids, week
}

func keyPress(s string) tea.KeyPressMsg {
	if s == "space" {
		return tea.KeyPressMsg(tea.Key{Code: tea.KeySpace})
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg(tea.Key{Text: s, Code: r})
}

// press sends a key and runs any move or refresh command it returns,
// feeding the result back into the model.
func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, cmd := m.Update(keyPress(k))
		m = updated.(Model)
		if cmd == nil {
			continue
		}
		msg := cmd()
		switch msg.(type) {
		case MoveResultMsg, RefreshDoneMsg:
			updated, _ = m.Update(msg)
			m = updated.(Model)
		}
	}
	return m
}

func storeOrder(m Model, b types.Bucket) []types.ItemID {
	var out []types.ItemID
	for _, it := range m.board.Store().ItemsInBucket(b) {
		out = append(out, it.ID)
	}
	return out
}

func TestNew_SelectsFirstCard(t *testing.T) {
	m, _, ids, _ := setupTestModel(t)

	col, row := m.Cursor()
	assert.Equal(t, 0, col)
	assert.Equal(t, 0, row)
	assert.Equal(t, ids[0], m.Selected())
	assert.False(t, m.Grabbed())
}

func TestNavigation(t *testing.T) {
	m, _, ids, week := setupTestModel(t)

	m = press(t, m, "j", "j", "j")
	assert.Equal(t, ids[2], m.Selected(), "cursor stops at the last card")

	m = press(t, m, "l")
	assert.Equal(t, week[0], m.Selected(), "row is clamped in a shorter column")

	m = press(t, m, "l")
	col, _ := m.Cursor()
	assert.Equal(t, 2, col)
	assert.Empty(t, m.Selected(), "empty column selects nothing")

	m = press(t, m, "h", "h", "h")
	col, _ = m.Cursor()
	assert.Equal(t, 0, col)
}

func TestGrabAndMoveDown(t *testing.T) {
	m, _, ids, _ := setupTestModel(t)

	m = press(t, m, "space")
	require.True(t, m.Grabbed())

	m = press(t, m, "j")

	assert.Equal(t, []types.ItemID{ids[1], ids[0], ids[2]}, storeOrder(m, "backlog"))
	_, row := m.Cursor()
	assert.Equal(t, 1, row, "cursor follows the grabbed card")
	assert.Equal(t, ids[0], m.Selected())
	assert.True(t, m.Grabbed())
	assert.Contains(t, m.Status(), "saved")
}

func TestGrabAndMoveAcrossColumns(t *testing.T) {
	m, a, ids, week := setupTestModel(t)

	m = press(t, m, "j", "space", "l")

	assert.Equal(t, []types.ItemID{ids[0], ids[2]}, storeOrder(m, "backlog"))
	assert.Equal(t, []types.ItemID{week[0], ids[1]}, storeOrder(m, "this_week"))
	col, row := m.Cursor()
	assert.Equal(t, 1, col)
	assert.Equal(t, 1, row)

	stored, err := a.Repo().FetchAll(context.Background(), testScope)
	require.NoError(t, err)
	for _, it := range stored {
		if it.ID == ids[1] {
			assert.Equal(t, types.Bucket("this_week"), it.Bucket)
			assert.Equal(t, 1, it.Position)
		}
	}
}

func TestMoveWithoutGrabUsesShiftKeys(t *testing.T) {
	m, _, ids, _ := setupTestModel(t)

	m = press(t, m, "J", "J")

	assert.Equal(t, []types.ItemID{ids[1], ids[2], ids[0]}, storeOrder(m, "backlog"))
	assert.False(t, m.Grabbed())
}

func TestStackedMovesBeforeResults(t *testing.T) {
	m, _, ids, week := setupTestModel(t)
	m = press(t, m, "space")

	var cmds []tea.Cmd
	for _, k := range []string{"j", "j"} {
		updated, cmd := m.Update(keyPress(k))
		m = updated.(Model)
		require.NotNil(t, cmd, "second press is not dropped")
		cmds = append(cmds, cmd)
	}
	_, row := m.Cursor()
	assert.Equal(t, 2, row)

	for _, cmd := range cmds {
		updated, _ := m.Update(cmd())
		m = updated.(Model)
	}

	assert.Equal(t, []types.ItemID{ids[1], ids[2], ids[0]}, storeOrder(m, "backlog"))
	_, row = m.Cursor()
	assert.Equal(t, 2, row)
	assert.Equal(t, ids[0], m.Selected())

	// Across a column and up again before either result arrives.
	cmds = cmds[:0]
	for _, k := range []string{"l", "k"} {
		updated, cmd := m.Update(keyPress(k))
		m = updated.(Model)
		require.NotNil(t, cmd)
		cmds = append(cmds, cmd)
	}
	for _, cmd := range cmds {
		updated, _ := m.Update(cmd())
		m = updated.(Model)
	}

	assert.Equal(t, []types.ItemID{ids[0], week[0]}, storeOrder(m, "this_week"))
	col, row := m.Cursor()
	assert.Equal(t, 1, col)
	assert.Equal(t, 0, row)
}

func TestMoveAtEdgesIsIgnored(t *testing.T) {
	m, _, ids, _ := setupTestModel(t)

	updated, cmd := m.Update(keyPress("K"))
	assert.Nil(t, cmd, "first card cannot move up")
	updated, cmd = updated.(Model).Update(keyPress("H"))
	assert.Nil(t, cmd, "first column cannot move left")

	assert.Equal(t, ids, storeOrder(updated.(Model), "backlog"))
}

func TestMoveResult_ErrorIsShown(t *testing.T) {
	m, _, ids, _ := setupTestModel(t)

	updated, _ := m.Update(MoveResultMsg{
		Request: models.MoveRequest{ItemID: ids[0], TargetBucket: "backlog", TargetIndex: 2},
		Result: reorder.Result{
			State: reorder.StateRolledBack,
			Err:   &reorder.PersistenceError{Op: "update_position", ItemID: ids[0].String(), Err: errors.New("disk full")},
		},
	})
	m = updated.(Model)

	assert.Contains(t, m.Err(), "move undone")
	assert.Equal(t, ids, storeOrder(m, "backlog"))
}

func TestRefreshMsg_ReloadsAfterOutsideMove(t *testing.T) {
	m, a, ids, _ := setupTestModel(t)

	board, err := a.Board(context.Background(), testScope)
	require.NoError(t, err)
	require.NoError(t, board.Move(context.Background(), models.MoveRequest{ItemID: ids[0], TargetBucket: "backlog", TargetIndex: 2}))

	var msg tea.Msg
	require.Eventually(t, func() bool {
		select {
		case e := <-m.EventChan:
			msg = RefreshMsg{Event: e}
			return e.Type == events.EventMoveCommitted
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	assert.NotNil(t, cmd, "keeps listening")

	_, row := m.Cursor()
	assert.Equal(t, 2, row, "cursor follows the selected card")
	assert.Equal(t, ids[0], m.Selected())
}

func TestRefreshKey(t *testing.T) {
	m, _, _, _ := setupTestModel(t)

	m = press(t, m, "r")
	assert.Equal(t, "refreshed", m.Status())
	assert.Empty(t, m.Err())
}

func TestHelpAndQuit(t *testing.T) {
	m, _, _, _ := setupTestModel(t)

	m = press(t, m, "?")
	assert.Contains(t, m.View().Content, "Keys")

	m = press(t, m, "x")
	assert.Contains(t, m.View().Content, "focus:ana")

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestView_UsesAltScreen(t *testing.T) {
	m, _, _, _ := setupTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	v := updated.(Model).View()

	assert.True(t, v.AltScreen)
	assert.Contains(t, v.Content, "backlog (3)")
	assert.Contains(t, v.Content, "this_week (1)")
}

package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// View renders the board
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Title.Render("Keys"),
			m.help.FullHelpView(m.keys.FullHelp()),
		)
	}

	columns := make([]string, 0, len(m.buckets))
	for i, b := range m.buckets {
		items := m.snapshot.ItemsInBucket(b)

		cards := []string{m.styles.Header.Render(fmt.Sprintf("%s (%d)", b, len(items)))}
		if len(items) == 0 {
			cards = append(cards, m.styles.Empty.Render("empty"))
		}
		for _, it := range items {
			style := m.styles.Card
			if it.ID == m.selected {
				style = m.styles.CardSelected
				if m.grabbed {
					style = m.styles.CardGrabbed
				}
			}
			cards = append(cards, style.Render(it.Payload.Title))
		}

		colStyle := m.styles.Column
		if i == m.col {
			colStyle = m.styles.ColumnActive
		}
		columns = append(columns, colStyle.Render(lipgloss.JoinVertical(lipgloss.Left, cards...)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(m.board.Scope().String()),
		lipgloss.JoinHorizontal(lipgloss.Top, columns...),
		m.statusLine(),
		m.help.ShortHelpView(m.keys.ShortHelp()),
	)
}

func (m Model) statusLine() string {
	var parts []string
	if m.grabbed {
		parts = append(parts, "holding card")
	}
	if m.pending > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", m.pending))
	}
	if m.status != "" {
		parts = append(parts, m.status)
	}
	line := m.styles.Status.Render(strings.Join(parts, " · "))
	if m.errMsg != "" {
		line = lipgloss.JoinVertical(lipgloss.Left, line, m.styles.Error.Render(m.errMsg))
	}
	return line
}

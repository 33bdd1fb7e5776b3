package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/cadence/internal/config"
)

const (
	columnWidth = 30
	cardWidth   = columnWidth - 4
)

// boardStyles are the lipgloss styles of the board, built from the theme.
type boardStyles struct {
	Title        lipgloss.Style
	Column       lipgloss.Style
	ColumnActive lipgloss.Style
	Header       lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardGrabbed  lipgloss.Style
	Empty        lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
}

func newBoardStyles(theme config.Theme) boardStyles {
	theme.ApplyDefaults()

	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(0, 1).
		Width(columnWidth)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.CardBorder)).
		Foreground(lipgloss.Color(theme.Normal)).
		Width(cardWidth)

	return boardStyles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Title)).
			MarginBottom(1),
		Column:       column,
		ColumnActive: column.BorderForeground(lipgloss.Color(theme.Accent)),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Title)),
		Card:         card,
		CardSelected: card.BorderForeground(lipgloss.Color(theme.SelectedBorder)),
		CardGrabbed: card.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(theme.GrabbedBorder)),
		Empty: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(theme.Subtle)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle)),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Error)),
	}
}

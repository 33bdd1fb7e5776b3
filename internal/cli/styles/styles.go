// Package styles holds the lipgloss styles shared by CLI output.
package styles

import (
	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/cadence/internal/config"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Board styles
	ColumnStyle       lipgloss.Style
	ColumnWidth       = 28
	ColumnHeaderStyle lipgloss.Style
	ItemStyle         lipgloss.Style
	PositionStyle     lipgloss.Style

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Bucket:", "Position:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Notes"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
)

func init() {
	Init(config.DefaultTheme())
}

// Init initializes all CLI styles with the given theme
func Init(theme config.Theme) {
	theme.ApplyDefaults()

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	ColumnStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.ColumnBorder)).
		Padding(0, 1).
		Width(ColumnWidth)

	ColumnHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	ItemStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	PositionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Accent))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Error))
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}

// Field renders a "Label: value" line
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

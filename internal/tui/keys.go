package tui

import (
	"charm.land/bubbles/v2/key"

	"github.com/thenoetrevino/cadence/internal/config"
)

// keyMap holds the board bindings built from the configured key mappings.
type keyMap struct {
	PrevColumn key.Binding
	NextColumn key.Binding
	PrevItem   key.Binding
	NextItem   key.Binding
	Grab       key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	MoveUp     key.Binding
	MoveDown   key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		PrevColumn: key.NewBinding(key.WithKeys(km.PrevColumn, "left"), key.WithHelp(km.PrevColumn, "prev column")),
		NextColumn: key.NewBinding(key.WithKeys(km.NextColumn, "right"), key.WithHelp(km.NextColumn, "next column")),
		PrevItem:   key.NewBinding(key.WithKeys(km.PrevItem, "up"), key.WithHelp(km.PrevItem, "up")),
		NextItem:   key.NewBinding(key.WithKeys(km.NextItem, "down"), key.WithHelp(km.NextItem, "down")),
		Grab:       key.NewBinding(key.WithKeys(km.Grab, "enter"), key.WithHelp(km.Grab, "grab/drop")),
		MoveLeft:   key.NewBinding(key.WithKeys(km.MoveLeft, "shift+left"), key.WithHelp(km.MoveLeft, "move left")),
		MoveRight:  key.NewBinding(key.WithKeys(km.MoveRight, "shift+right"), key.WithHelp(km.MoveRight, "move right")),
		MoveUp:     key.NewBinding(key.WithKeys(km.MoveUp, "shift+up"), key.WithHelp(km.MoveUp, "move up")),
		MoveDown:   key.NewBinding(key.WithKeys(km.MoveDown, "shift+down"), key.WithHelp(km.MoveDown, "move down")),
		Refresh:    key.NewBinding(key.WithKeys(km.Refresh), key.WithHelp(km.Refresh, "refresh")),
		Help:       key.NewBinding(key.WithKeys(km.ShowHelp), key.WithHelp(km.ShowHelp, "help")),
		Quit:       key.NewBinding(key.WithKeys(km.Quit, "ctrl+c"), key.WithHelp(km.Quit, "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grab, k.MoveDown, k.MoveRight, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevColumn, k.NextColumn, k.PrevItem, k.NextItem},
		{k.Grab, k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Refresh, k.Help, k.Quit},
	}
}
